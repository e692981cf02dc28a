package repository

import (
	"Aidol/internal/model"
	"Aidol/internal/pkg/consts"
	"Aidol/internal/pkg/datagw"
	"Aidol/internal/pkg/docstore"
	"context"
)

type UserRepo interface {
	Create(ctx context.Context, user *model.User) error
	Get(ctx context.Context, id string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}

type UserRepoImpl struct {
	store   docstore.Store
	gateway *datagw.Gateway
}

func NewUserRepo(store docstore.Store, gateway *datagw.Gateway) UserRepo {
	return &UserRepoImpl{
		store:   store,
		gateway: gateway,
	}
}

func (s *UserRepoImpl) Create(ctx context.Context, user *model.User) error {
	return s.store.Put(ctx, consts.TableUsers, userToRecord(user))
}

func (s *UserRepoImpl) Get(ctx context.Context, id string) (*model.User, error) {
	rec, err := s.store.Get(ctx, consts.TableUsers, id)
	if err != nil || rec == nil {
		return nil, err
	}
	return recordToUser(rec), nil
}

func (s *UserRepoImpl) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	records, err := s.gateway.Find(ctx, datagw.Query{
		Table:      consts.TableUsers,
		Conditions: []datagw.Condition{{Attribute: "username", Value: username}},
		Limit:      1,
	})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return recordToUser(records[0]), nil
}

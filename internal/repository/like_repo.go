package repository

import (
	"Aidol/internal/model"
	"Aidol/internal/pkg/consts"
	"Aidol/internal/pkg/datagw"
	"Aidol/internal/pkg/docstore"
	"context"
)

type LikeRepo interface {
	Find(ctx context.Context, userID, postID string) (*model.Like, error)
	Create(ctx context.Context, like *model.Like) error
	Delete(ctx context.Context, id string) error
}

type LikeRepoImpl struct {
	store   docstore.Store
	gateway *datagw.Gateway
}

func NewLikeRepo(store docstore.Store, gateway *datagw.Gateway) LikeRepo {
	return &LikeRepoImpl{
		store:   store,
		gateway: gateway,
	}
}

// Find 通过 userId+postId 索引定位点赞记录，未点赞返回 (nil, nil)
// 唯一性由先查后写保证，没有存储层唯一约束
func (s *LikeRepoImpl) Find(ctx context.Context, userID, postID string) (*model.Like, error) {
	records, err := s.gateway.Find(ctx, datagw.Query{
		Table: consts.TableLikes,
		Conditions: []datagw.Condition{
			{Attribute: "userId", Value: userID},
			{Attribute: "postId", Value: postID},
		},
	})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return recordToLike(records[0]), nil
}

func (s *LikeRepoImpl) Create(ctx context.Context, like *model.Like) error {
	return s.store.Put(ctx, consts.TableLikes, likeToRecord(like))
}

func (s *LikeRepoImpl) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, consts.TableLikes, id)
}

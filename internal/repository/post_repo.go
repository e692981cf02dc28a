package repository

import (
	"Aidol/internal/model"
	"Aidol/internal/pkg/consts"
	"Aidol/internal/pkg/datagw"
	"Aidol/internal/pkg/docstore"
	"context"
)

type PostRepo interface {
	Create(ctx context.Context, post *model.Post) error
	Get(ctx context.Context, id string) (*model.Post, error)
	Update(ctx context.Context, id string, set docstore.Record) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit int) ([]*model.Post, error)
	ListByIdol(ctx context.Context, idolName string) ([]*model.Post, error)
	IncrCounter(ctx context.Context, id, attribute string, delta int64) error
	SetCounter(ctx context.Context, id, attribute string, value int64) error
}

type PostRepoImpl struct {
	store   docstore.Store
	gateway *datagw.Gateway
}

func NewPostRepo(store docstore.Store, gateway *datagw.Gateway) PostRepo {
	return &PostRepoImpl{
		store:   store,
		gateway: gateway,
	}
}

func (s *PostRepoImpl) Create(ctx context.Context, post *model.Post) error {
	return s.store.Put(ctx, consts.TablePosts, postToRecord(post))
}

func (s *PostRepoImpl) Get(ctx context.Context, id string) (*model.Post, error) {
	rec, err := s.store.Get(ctx, consts.TablePosts, id)
	if err != nil || rec == nil {
		return nil, err
	}
	return recordToPost(rec), nil
}

func (s *PostRepoImpl) Update(ctx context.Context, id string, set docstore.Record) error {
	return s.store.Update(ctx, consts.TablePosts, id, set, nil)
}

func (s *PostRepoImpl) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, consts.TablePosts, id)
}

// List 全量按时间倒序
// Posts 表没有覆盖"全部帖子按时间排序"的索引，只能走扫描路径，排序由网关补齐
func (s *PostRepoImpl) List(ctx context.Context, limit int) ([]*model.Post, error) {
	records, err := s.gateway.Find(ctx, datagw.Query{
		Table:   consts.TablePosts,
		OrderBy: &datagw.OrderBy{Attribute: "createdAt", Direction: datagw.DirectionDesc},
		Limit:   limit,
	})
	if err != nil {
		return nil, err
	}
	return recordsToPosts(records), nil
}

func (s *PostRepoImpl) ListByIdol(ctx context.Context, idolName string) ([]*model.Post, error) {
	records, err := s.gateway.Find(ctx, datagw.Query{
		Table:      consts.TablePosts,
		Conditions: []datagw.Condition{{Attribute: "idolName", Value: idolName}},
		OrderBy:    &datagw.OrderBy{Attribute: "createdAt", Direction: datagw.DirectionDesc},
	})
	if err != nil {
		return nil, err
	}
	return recordsToPosts(records), nil
}

func (s *PostRepoImpl) IncrCounter(ctx context.Context, id, attribute string, delta int64) error {
	return s.store.Update(ctx, consts.TablePosts, id, nil, map[string]int64{attribute: delta})
}

func (s *PostRepoImpl) SetCounter(ctx context.Context, id, attribute string, value int64) error {
	return s.store.Update(ctx, consts.TablePosts, id, docstore.Record{attribute: value}, nil)
}

func recordsToPosts(records []docstore.Record) []*model.Post {
	posts := make([]*model.Post, 0, len(records))
	for _, rec := range records {
		posts = append(posts, recordToPost(rec))
	}
	return posts
}

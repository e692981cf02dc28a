package repository

import (
	"Aidol/internal/model"
	"Aidol/internal/pkg/consts"
	"Aidol/internal/pkg/datagw"
	"Aidol/internal/pkg/docstore"
	"context"
)

type CommentRepo interface {
	Create(ctx context.Context, comment *model.Comment) error
	Get(ctx context.Context, id string) (*model.Comment, error)
	Update(ctx context.Context, id string, set docstore.Record) error
	Delete(ctx context.Context, id string) error
	ListByPost(ctx context.Context, postID string) ([]*model.Comment, error)
}

type CommentRepoImpl struct {
	store   docstore.Store
	gateway *datagw.Gateway
}

func NewCommentRepo(store docstore.Store, gateway *datagw.Gateway) CommentRepo {
	return &CommentRepoImpl{
		store:   store,
		gateway: gateway,
	}
}

func (s *CommentRepoImpl) Create(ctx context.Context, comment *model.Comment) error {
	return s.store.Put(ctx, consts.TableComments, commentToRecord(comment))
}

func (s *CommentRepoImpl) Get(ctx context.Context, id string) (*model.Comment, error) {
	rec, err := s.store.Get(ctx, consts.TableComments, id)
	if err != nil || rec == nil {
		return nil, err
	}
	return recordToComment(rec), nil
}

func (s *CommentRepoImpl) Update(ctx context.Context, id string, set docstore.Record) error {
	return s.store.Update(ctx, consts.TableComments, id, set, nil)
}

func (s *CommentRepoImpl) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, consts.TableComments, id)
}

// ListByPost 走 postId 索引，按发布时间正序
func (s *CommentRepoImpl) ListByPost(ctx context.Context, postID string) ([]*model.Comment, error) {
	records, err := s.gateway.Find(ctx, datagw.Query{
		Table:      consts.TableComments,
		Conditions: []datagw.Condition{{Attribute: "postId", Value: postID}},
		OrderBy:    &datagw.OrderBy{Attribute: "createdAt", Direction: datagw.DirectionAsc},
	})
	if err != nil {
		return nil, err
	}

	comments := make([]*model.Comment, 0, len(records))
	for _, rec := range records {
		comments = append(comments, recordToComment(rec))
	}
	return comments, nil
}

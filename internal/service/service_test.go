package service

import (
	"Aidol/internal/model"
	"Aidol/internal/pkg/consts"
	"Aidol/internal/pkg/datagw"
	"Aidol/internal/pkg/docstore"
	"Aidol/internal/repository"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type testEnv struct {
	store       *docstore.MemoryStore
	postRepo    repository.PostRepo
	commentRepo repository.CommentRepo
	likeRepo    repository.LikeRepo
}

func newTestEnv() *testEnv {
	tables := docstore.TableConfig{
		consts.TableUsers: {
			{Name: consts.IndexUserUsername, PartitionKey: "username"},
		},
		consts.TablePosts: {
			{Name: consts.IndexPostIdolName, PartitionKey: "idolName"},
		},
		consts.TableComments: {
			{Name: consts.IndexCommentPostID, PartitionKey: "postId", SortKey: "createdAt"},
		},
		consts.TableLikes: {
			{Name: consts.IndexLikeUserPost, PartitionKey: "userId", SortKey: "postId"},
		},
	}
	store := docstore.NewMemoryStore(tables)
	gateway := datagw.New(store, tables)

	return &testEnv{
		store:       store,
		postRepo:    repository.NewPostRepo(store, gateway),
		commentRepo: repository.NewCommentRepo(store, gateway),
		likeRepo:    repository.NewLikeRepo(store, gateway),
	}
}

func (e *testEnv) createPost(t *testing.T, id string) *model.Post {
	t.Helper()
	post := &model.Post{
		ID:        id,
		IdolName:  "aya",
		Content:   "今天也要加油",
		PostType:  model.PostTypeText,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, e.postRepo.Create(context.Background(), post))
	return post
}

package service

import (
	"Aidol/internal/api/dto"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentCounterLifecycle(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	env.createPost(t, "p1")

	svc := NewCommentService(env.commentRepo, env.postRepo, nil)

	// 新增留言，父帖计数 +1
	result, err := svc.CreateComment(ctx, &dto.CommentCreateDTO{
		PostID:   "p1",
		Username: "fan01",
		Content:  "超喜欢这首歌！",
	})
	require.NoError(t, err)
	require.NotNil(t, result.Comment)
	assert.EqualValues(t, 1, result.Comments)
	commentID := result.Comment.ID

	// 删除留言，计数回到 0
	result, err = svc.DeleteComment(ctx, commentID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, result.Comments)

	// 重复删除是幂等空操作，计数保持 0 且无错误
	result, err = svc.DeleteComment(ctx, commentID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, result.Comments)

	post, err := env.postRepo.Get(ctx, "p1")
	require.NoError(t, err)
	assert.EqualValues(t, 0, post.Comments)
}

func TestCommentCounterClamped(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	env.createPost(t, "p1")

	svc := NewCommentService(env.commentRepo, env.postRepo, nil)

	result, err := svc.CreateComment(ctx, &dto.CommentCreateDTO{
		PostID:   "p1",
		Username: "fan01",
		Content:  "打卡",
	})
	require.NoError(t, err)

	// 计数被外部干扰清零后删除留言，不得出现负数
	require.NoError(t, env.postRepo.SetCounter(ctx, "p1", "comments", 0))

	deleted, err := svc.DeleteComment(ctx, result.Comment.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, deleted.Comments)
}

func TestCreateCommentParentMissing(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	svc := NewCommentService(env.commentRepo, env.postRepo, nil)

	// 父帖不存在时跳过计数，留言本体仍然写入
	result, err := svc.CreateComment(ctx, &dto.CommentCreateDTO{
		PostID:   "ghost",
		Username: "fan01",
		Content:  "还在吗",
	})
	require.NoError(t, err)
	assert.EqualValues(t, 0, result.Comments)

	comment, err := env.commentRepo.Get(ctx, result.Comment.ID)
	require.NoError(t, err)
	require.NotNil(t, comment)
	assert.Equal(t, "ghost", comment.PostID)
}

func TestListByPostOrdered(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	env.createPost(t, "p1")

	svc := NewCommentService(env.commentRepo, env.postRepo, nil)

	first, err := svc.CreateComment(ctx, &dto.CommentCreateDTO{PostID: "p1", Username: "fan01", Content: "一楼"})
	require.NoError(t, err)
	// 存储的时间戳是毫秒精度，隔开一点保证可排序
	time.Sleep(2 * time.Millisecond)
	second, err := svc.CreateComment(ctx, &dto.CommentCreateDTO{PostID: "p1", Username: "fan02", Content: "二楼"})
	require.NoError(t, err)

	comments, err := svc.ListByPost(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, first.Comment.ID, comments[0].ID)
	assert.Equal(t, second.Comment.ID, comments[1].ID)
}

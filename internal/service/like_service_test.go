package service

import (
	"Aidol/internal/pkg/consts"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleLikePairing(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	env.createPost(t, "p1")

	svc := NewLikeService(env.likeRepo, env.postRepo, nil)

	// 第一次：点赞
	result, err := svc.ToggleLike(ctx, "p1", "u1")
	require.NoError(t, err)
	assert.Equal(t, consts.LikeActionLiked, result.Action)
	assert.EqualValues(t, 1, result.Likes)

	// 第二次：取消，回到初始状态
	result, err = svc.ToggleLike(ctx, "p1", "u1")
	require.NoError(t, err)
	assert.Equal(t, consts.LikeActionUnliked, result.Action)
	assert.EqualValues(t, 0, result.Likes)

	like, err := env.likeRepo.Find(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.Nil(t, like)
}

func TestToggleLikeCounterNonNegative(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	env.createPost(t, "p1")

	svc := NewLikeService(env.likeRepo, env.postRepo, nil)

	_, err := svc.ToggleLike(ctx, "p1", "u1")
	require.NoError(t, err)

	// 计数被外部干扰清零后，取消点赞也不得出现负数
	require.NoError(t, env.postRepo.SetCounter(ctx, "p1", "likes", 0))

	result, err := svc.ToggleLike(ctx, "p1", "u1")
	require.NoError(t, err)
	assert.Equal(t, consts.LikeActionUnliked, result.Action)
	assert.EqualValues(t, 0, result.Likes)
}

func TestToggleLikeIndependentUsers(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	env.createPost(t, "p1")

	svc := NewLikeService(env.likeRepo, env.postRepo, nil)

	_, err := svc.ToggleLike(ctx, "p1", "u1")
	require.NoError(t, err)
	result, err := svc.ToggleLike(ctx, "p1", "u2")
	require.NoError(t, err)
	assert.EqualValues(t, 2, result.Likes)

	// u1 取消不影响 u2 的点赞
	result, err = svc.ToggleLike(ctx, "p1", "u1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, result.Likes)
}

func TestToggleLikePostMissing(t *testing.T) {
	env := newTestEnv()
	svc := NewLikeService(env.likeRepo, env.postRepo, nil)

	_, err := svc.ToggleLike(context.Background(), "nope", "u1")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

package service

import (
	"Aidol/internal/api/dto"
	"Aidol/internal/model"
	"Aidol/internal/pkg/consts"
	"Aidol/internal/pkg/kafka"
	"Aidol/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

type LikeService interface {
	ToggleLike(ctx context.Context, postID, userID string) (*dto.LikeResultDTO, error)
}

type LikeServiceImpl struct {
	likeRepo repository.LikeRepo
	postRepo repository.PostRepo
	producer *kafka.Producer
}

func NewLikeService(likeRepo repository.LikeRepo, postRepo repository.PostRepo, producer *kafka.Producer) LikeService {
	return &LikeServiceImpl{
		likeRepo: likeRepo,
		postRepo: postRepo,
		producer: producer,
	}
}

// ToggleLike 点赞开关：已赞则取消，未赞则点赞
// 计数失败不回滚点赞记录本体，最终返回回读的权威计数
func (s *LikeServiceImpl) ToggleLike(ctx context.Context, postID, userID string) (*dto.LikeResultDTO, error) {
	post, err := s.postRepo.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	existing, err := s.likeRepo.Find(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	var action string
	if existing != nil {
		err = s.likeRepo.Delete(ctx, existing.ID)
		if err != nil {
			return nil, err
		}
		// 钳位写回，避免计数为负
		next := post.Likes - 1
		if next < 0 {
			next = 0
		}
		if err = s.postRepo.SetCounter(ctx, postID, "likes", next); err != nil {
			log.WarnContext(ctx, "decrement like counter failed", "post_id", postID, "err", err)
		}
		action = consts.LikeActionUnliked
	} else {
		like := &model.Like{
			ID:        uuid.NewString(),
			PostID:    postID,
			UserID:    userID,
			CreatedAt: time.Now().UTC(),
		}
		err = s.likeRepo.Create(ctx, like)
		if err != nil {
			return nil, err
		}
		if err = s.postRepo.IncrCounter(ctx, postID, "likes", 1); err != nil {
			log.WarnContext(ctx, "increment like counter failed", "post_id", postID, "err", err)
		}
		s.producer.Publish(ctx, kafka.EngagementEvent{
			Type:       consts.EventPostLiked,
			PostID:     postID,
			UserID:     userID,
			OccurredAt: like.CreatedAt,
		})
		action = consts.LikeActionLiked
	}

	likes := int64(0)
	if post, err = s.postRepo.Get(ctx, postID); err == nil && post != nil {
		likes = post.Likes
	}
	return &dto.LikeResultDTO{Action: action, Likes: likes}, nil
}

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
	"github.com/jinzhu/copier"
)

type CommentService interface {
	CreateComment(ctx context.Context, commentDTO *dto.CommentCreateDTO) (*dto.CommentResultDTO, error)
	DeleteComment(ctx context.Context, id string) (*dto.CommentResultDTO, error)
	ListByPost(ctx context.Context, postID string) ([]*dto.CommentDTO, error)
}

type CommentServiceImpl struct {
	commentRepo repository.CommentRepo
	postRepo    repository.PostRepo
	producer    *kafka.Producer
}

func NewCommentService(commentRepo repository.CommentRepo, postRepo repository.PostRepo, producer *kafka.Producer) CommentService {
	return &CommentServiceImpl{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		producer:    producer,
	}
}

// CreateComment 发表留言，随后尽力把父帖计数 +1
// 留言本体写入成功后计数失败不回滚，只记日志，等计数自愈
func (s *CommentServiceImpl) CreateComment(ctx context.Context, commentDTO *dto.CommentCreateDTO) (*dto.CommentResultDTO, error) {
	comment := &model.Comment{}
	err := copier.Copy(comment, commentDTO)
	if err != nil {
		return nil, err
	}
	comment.ID = uuid.NewString()
	comment.CreatedAt = time.Now().UTC()

	err = s.commentRepo.Create(ctx, comment)
	if err != nil {
		return nil, err
	}

	// 父帖不存在时跳过计数，留言本身保留
	post, err := s.postRepo.Get(ctx, comment.PostID)
	if err != nil {
		log.WarnContext(ctx, "load parent post failed", "post_id", comment.PostID, "err", err)
	}
	if post != nil {
		if err = s.postRepo.IncrCounter(ctx, comment.PostID, "comments", 1); err != nil {
			log.WarnContext(ctx, "increment comment counter failed", "post_id", comment.PostID, "err", err)
		}
	} else {
		log.WarnContext(ctx, "parent post missing, skip comment counter", "post_id", comment.PostID)
	}

	s.producer.Publish(ctx, kafka.EngagementEvent{
		Type:       consts.EventCommentCreated,
		PostID:     comment.PostID,
		OccurredAt: comment.CreatedAt,
	})

	return &dto.CommentResultDTO{
		Comment:  commentToDTO(comment),
		Comments: s.authoritativeComments(ctx, comment.PostID),
	}, nil
}

// DeleteComment 删除留言并钳位递减父帖计数
// 重复删除是幂等空操作，不再递减
func (s *CommentServiceImpl) DeleteComment(ctx context.Context, id string) (*dto.CommentResultDTO, error) {
	comment, err := s.commentRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return &dto.CommentResultDTO{}, nil
	}

	err = s.commentRepo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	// 钳位写回，避免计数为负
	post, err := s.postRepo.Get(ctx, comment.PostID)
	if err != nil {
		log.WarnContext(ctx, "load parent post failed", "post_id", comment.PostID, "err", err)
	}
	if post != nil {
		next := post.Comments - 1
		if next < 0 {
			next = 0
		}
		if err = s.postRepo.SetCounter(ctx, comment.PostID, "comments", next); err != nil {
			log.WarnContext(ctx, "decrement comment counter failed", "post_id", comment.PostID, "err", err)
		}
	}

	return &dto.CommentResultDTO{
		Comments: s.authoritativeComments(ctx, comment.PostID),
	}, nil
}

// ListByPost 按帖子查询留言，时间正序
func (s *CommentServiceImpl) ListByPost(ctx context.Context, postID string) ([]*dto.CommentDTO, error) {
	if postID == "" {
		return nil, ErrParamInvalid
	}
	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	list := make([]*dto.CommentDTO, 0, len(comments))
	for _, comment := range comments {
		list = append(list, commentToDTO(comment))
	}
	return list, nil
}

// authoritativeComments 回读父帖拿权威计数，读不到时返回 0
func (s *CommentServiceImpl) authoritativeComments(ctx context.Context, postID string) int64 {
	post, err := s.postRepo.Get(ctx, postID)
	if err != nil || post == nil {
		return 0
	}
	return post.Comments
}

func commentToDTO(comment *model.Comment) *dto.CommentDTO {
	commentDTO := &dto.CommentDTO{}
	_ = copier.Copy(commentDTO, comment)
	commentDTO.CreatedAt = comment.CreatedAt.UTC().Format(repository.TimeLayout)
	return commentDTO
}

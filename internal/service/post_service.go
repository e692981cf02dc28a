package service

import (
	"Aidol/internal/api/dto"
	"Aidol/internal/model"
	"Aidol/internal/pkg/consts"
	"Aidol/internal/pkg/docstore"
	"Aidol/internal/pkg/es"
	"Aidol/internal/pkg/kafka"
	"Aidol/internal/pkg/minio"
	"Aidol/internal/pkg/redis"
	"Aidol/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// DefaultFeedLimit 信息流默认条数，只有该条数的请求走缓存
const DefaultFeedLimit = 20

const feedCacheTTL = 30 * time.Second

type PostService interface {
	Publish(ctx context.Context, postDTO *dto.PostCreateDTO) (*dto.PostDTO, error)
	GetPost(ctx context.Context, id string) (*dto.PostDTO, error)
	ListFeed(ctx context.Context, limit int) ([]*dto.PostDTO, error)
	ListByIdol(ctx context.Context, idolName string) ([]*dto.PostDTO, error)
	SearchPosts(ctx context.Context, keyword string, page, pageSize int) ([]*dto.PostDTO, error)
	UpdatePost(ctx context.Context, id string, postDTO *dto.PostUpdateDTO) error
	DeletePost(ctx context.Context, id string) error
}

type PostServiceImpl struct {
	postRepo repository.PostRepo
	esRepo   es.PostRepo
	producer *kafka.Producer
}

func NewPostService(postRepo repository.PostRepo, esRepo es.PostRepo, producer *kafka.Producer) PostService {
	return &PostServiceImpl{
		postRepo: postRepo,
		esRepo:   esRepo,
		producer: producer,
	}
}

// Publish 发布帖子
func (s *PostServiceImpl) Publish(ctx context.Context, postDTO *dto.PostCreateDTO) (*dto.PostDTO, error) {
	if !model.ValidPostType(postDTO.PostType) {
		return nil, ErrPostTypeInvalid
	}

	post := &model.Post{}
	err := copier.Copy(post, postDTO)
	if err != nil {
		return nil, err
	}
	post.ID = uuid.NewString()
	post.CreatedAt = time.Now().UTC()

	err = s.postRepo.Create(ctx, post)
	if err != nil {
		return nil, err
	}

	s.producer.Publish(ctx, kafka.EngagementEvent{
		Type:       consts.EventPostPublished,
		PostID:     post.ID,
		IdolName:   post.IdolName,
		OccurredAt: post.CreatedAt,
	})
	s.indexPost(ctx, post)
	s.invalidateFeed(ctx)

	return postToDTO(post), nil
}

// GetPost 查询单条帖子
func (s *PostServiceImpl) GetPost(ctx context.Context, id string) (*dto.PostDTO, error) {
	post, err := s.postRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return postToDTO(post), nil
}

// ListFeed 按发布时间倒序的信息流
func (s *PostServiceImpl) ListFeed(ctx context.Context, limit int) ([]*dto.PostDTO, error) {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}

	if limit == DefaultFeedLimit {
		value, err := redis.GetValue(ctx, consts.PostFeedKey)
		if err == nil && value != "" {
			var cached []*dto.PostDTO
			if err = json.Unmarshal([]byte(value), &cached); err == nil {
				return cached, nil
			}
		}
	}

	posts, err := s.postRepo.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	list := postsToDTO(posts)

	if limit == DefaultFeedLimit {
		jsonStr, err := json.Marshal(list)
		if err == nil {
			_ = redis.SetWithExpiration(ctx, consts.PostFeedKey, string(jsonStr), feedCacheTTL)
		}
	}
	return list, nil
}

// ListByIdol 按偶像名查询帖子
func (s *PostServiceImpl) ListByIdol(ctx context.Context, idolName string) ([]*dto.PostDTO, error) {
	if idolName == "" {
		return nil, ErrParamInvalid
	}
	posts, err := s.postRepo.ListByIdol(ctx, idolName)
	if err != nil {
		return nil, err
	}
	return postsToDTO(posts), nil
}

// SearchPosts 全文搜索，依赖 Elastic，未启用时降级为空结果
func (s *PostServiceImpl) SearchPosts(ctx context.Context, keyword string, page, pageSize int) ([]*dto.PostDTO, error) {
	if keyword == "" {
		return nil, ErrParamInvalid
	}
	if s.esRepo == nil {
		log.WarnContext(ctx, "search requested but elasticsearch is disabled")
		return []*dto.PostDTO{}, nil
	}
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || pageSize > DefaultFeedLimit {
		pageSize = DefaultFeedLimit
	}

	hits, err := s.esRepo.SearchPosts(ctx, keyword, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}

	// 以文档库为准回表，Elastic 只负责召回
	list := make([]*dto.PostDTO, 0, len(hits))
	for _, hit := range hits {
		post, err := s.postRepo.Get(ctx, hit.ID)
		if err != nil || post == nil {
			continue
		}
		list = append(list, postToDTO(post))
	}
	return list, nil
}

// UpdatePost 稀疏更新，只写请求中出现的字段
func (s *PostServiceImpl) UpdatePost(ctx context.Context, id string, postDTO *dto.PostUpdateDTO) error {
	set := docstore.Record{}
	if postDTO.Content != nil {
		set["content"] = *postDTO.Content
	}
	if postDTO.PostType != nil {
		if !model.ValidPostType(*postDTO.PostType) {
			return ErrPostTypeInvalid
		}
		set["postType"] = *postDTO.PostType
	}
	if postDTO.MediaURL != nil {
		set["mediaUrl"] = *postDTO.MediaURL
	}
	if len(set) == 0 {
		return ErrParamInvalid
	}

	err := s.postRepo.Update(ctx, id, set)
	if errors.Is(err, docstore.ErrRecordNotFound) {
		return ErrPostNotFound
	}
	if err != nil {
		return err
	}

	post, err := s.postRepo.Get(ctx, id)
	if err == nil && post != nil {
		s.indexPost(ctx, post)
	}
	s.invalidateFeed(ctx)
	return nil
}

// DeletePost 删除帖子，目标不存在时视为成功
func (s *PostServiceImpl) DeletePost(ctx context.Context, id string) error {
	err := s.postRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if s.esRepo != nil {
		if err = s.esRepo.DeletePost(ctx, id); err != nil {
			log.WarnContext(ctx, "delete post from es failed", "post_id", id, "err", err)
		}
	}
	s.invalidateFeed(ctx)
	return nil
}

// indexPost 尽力同步到 Elastic，失败只记日志
func (s *PostServiceImpl) indexPost(ctx context.Context, post *model.Post) {
	if s.esRepo == nil {
		return
	}
	doc := &es.PostES{
		ID:        post.ID,
		IdolName:  post.IdolName,
		Content:   post.Content,
		PostType:  post.PostType,
		CreatedAt: post.CreatedAt.UTC().Format(repository.TimeLayout),
	}
	if err := s.esRepo.IndexPost(ctx, doc); err != nil {
		log.WarnContext(ctx, "index post to es failed", "post_id", post.ID, "err", err)
	}
}

func (s *PostServiceImpl) invalidateFeed(ctx context.Context) {
	if err := redis.DeleteKey(ctx, consts.PostFeedKey); err != nil {
		log.WarnContext(ctx, "invalidate feed cache failed", "err", err)
	}
}

func postToDTO(post *model.Post) *dto.PostDTO {
	postDTO := &dto.PostDTO{}
	_ = copier.Copy(postDTO, post)
	postDTO.CreatedAt = post.CreatedAt.UTC().Format(repository.TimeLayout)
	if post.MediaURL != "" {
		postDTO.MediaURL = minio.GetPublicURL(post.MediaURL)
	}
	return postDTO
}

func postsToDTO(posts []*model.Post) []*dto.PostDTO {
	list := make([]*dto.PostDTO, 0, len(posts))
	for _, post := range posts {
		list = append(list, postToDTO(post))
	}
	return list
}

package es

import (
	"context"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/core/search"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/goccy/go-json"
)

// PostES 搜索索引中的帖子文档
type PostES struct {
	ID        string `json:"id"`
	IdolName  string `json:"idol_name"`
	Content   string `json:"content"`
	PostType  string `json:"post_type"`
	CreatedAt string `json:"created_at"`
}

type PostRepo interface {
	IndexPost(ctx context.Context, post *PostES) error
	DeletePost(ctx context.Context, id string) error
	SearchPosts(ctx context.Context, keyword string, from, size int) ([]*PostES, error)
}

type PostRepoImpl struct {
	client *elasticsearch.TypedClient
}

func NewPostRepo(client *elasticsearch.TypedClient) PostRepo {
	return &PostRepoImpl{client: client}
}

func (s *PostRepoImpl) IndexPost(ctx context.Context, post *PostES) error {
	_, err := s.client.Index(PostIndex).
		Id(post.ID).
		Request(post).
		Do(ctx)
	return err
}

func (s *PostRepoImpl) DeletePost(ctx context.Context, id string) error {
	_, err := s.client.Delete(PostIndex, id).Do(ctx)
	return err
}

// SearchPosts 关键词检索，内容权重高于偶像名
func (s *PostRepoImpl) SearchPosts(ctx context.Context, keyword string, from, size int) ([]*PostES, error) {
	req := &search.Request{
		Query: &types.Query{
			MultiMatch: &types.MultiMatchQuery{
				Query:  keyword,
				Fields: []string{"content^2", "idol_name"},
			},
		},
	}

	res, err := s.client.Search().
		Index(PostIndex).
		From(from).
		Size(size).
		Request(req).
		Do(ctx)
	if err != nil {
		return nil, err
	}

	posts := make([]*PostES, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var post PostES
		if err := json.Unmarshal(hit.Source_, &post); err != nil {
			continue
		}
		posts = append(posts, &post)
	}
	return posts, nil
}

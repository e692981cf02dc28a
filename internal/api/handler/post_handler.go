package handler

import (
	"Aidol/internal/api/dto"
	"Aidol/internal/pkg/response"
	"Aidol/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postSvc service.PostService
}

func NewPostHandler(postSvc service.PostService) *PostHandler {
	return &PostHandler{
		postSvc: postSvc,
	}
}

// ListPosts 信息流，传 idol_name 时按偶像过滤
func (s *PostHandler) ListPosts(c *gin.Context) {
	if idolName := c.Query("idol_name"); idolName != "" {
		posts, err := s.postSvc.ListByIdol(c.Request.Context(), idolName)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, &dto.PostListDTO{List: posts})
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	posts, err := s.postSvc.ListFeed(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, &dto.PostListDTO{List: posts})
}

func (s *PostHandler) SearchPosts(c *gin.Context) {
	keyword := c.Query("q")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	posts, err := s.postSvc.SearchPosts(c.Request.Context(), keyword, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, &dto.PostListDTO{List: posts})
}

func (s *PostHandler) GetPost(c *gin.Context) {
	post, err := s.postSvc.GetPost(c.Request.Context(), c.Param("post_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *PostHandler) CreatePost(c *gin.Context) {
	var req dto.PostCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	post, err := s.postSvc.Publish(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *PostHandler) UpdatePost(c *gin.Context) {
	var req dto.PostUpdateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	err := s.postSvc.UpdatePost(c.Request.Context(), c.Param("post_id"), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *PostHandler) DeletePost(c *gin.Context) {
	err := s.postSvc.DeletePost(c.Request.Context(), c.Param("post_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

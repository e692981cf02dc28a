package handler

import (
	"Aidol/internal/api/dto"
	"Aidol/internal/pkg/response"
	"Aidol/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentSvc service.CommentService
}

func NewCommentHandler(commentSvc service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentSvc: commentSvc,
	}
}

func (s *CommentHandler) CreateComment(c *gin.Context) {
	var req dto.CommentCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	// 登录用户的留言以登录名为准
	if username := c.GetString("username"); username != "" {
		req.Username = username
	}

	result, err := s.commentSvc.CreateComment(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *CommentHandler) DeleteComment(c *gin.Context) {
	result, err := s.commentSvc.DeleteComment(c.Request.Context(), c.Param("comment_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *CommentHandler) ListByPost(c *gin.Context) {
	comments, err := s.commentSvc.ListByPost(c.Request.Context(), c.Param("post_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comments)
}

package handler

import (
	"Aidol/internal/pkg/response"
	"Aidol/internal/service"

	"github.com/gin-gonic/gin"
)

type LikeHandler struct {
	likeSvc service.LikeService
}

func NewLikeHandler(likeSvc service.LikeService) *LikeHandler {
	return &LikeHandler{
		likeSvc: likeSvc,
	}
}

func (s *LikeHandler) ToggleLike(c *gin.Context) {
	userID := c.GetString("user_id")

	result, err := s.likeSvc.ToggleLike(c.Request.Context(), c.Param("post_id"), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

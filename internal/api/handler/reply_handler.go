package handler

import (
	"Aidol/internal/api/dto"
	"Aidol/internal/pkg/response"
	"Aidol/internal/service"

	"github.com/gin-gonic/gin"
)

type ReplyHandler struct {
	replySvc service.ReplyService
}

func NewReplyHandler(replySvc service.ReplyService) *ReplyHandler {
	return &ReplyHandler{
		replySvc: replySvc,
	}
}

func (s *ReplyHandler) SuggestReplies(c *gin.Context) {
	var req dto.ReplySuggestReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	suggestion, err := s.replySvc.SuggestReplies(c.Request.Context(), req.MessageID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, suggestion)
}

func (s *ReplyHandler) SendReply(c *gin.Context) {
	var req dto.ReplySendReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	err := s.replySvc.SendReply(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

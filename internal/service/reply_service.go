package service

import (
	"Aidol/internal/api/dto"
	"Aidol/internal/pkg/consts"
	"Aidol/internal/pkg/docstore"
	"Aidol/internal/pkg/workflow"
	"Aidol/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"time"
)

// fallbackPrefixLimit 兜底回复引用原文的最大字符数
const fallbackPrefixLimit = 20

type ReplyService interface {
	SuggestReplies(ctx context.Context, messageID string) (*dto.ReplySuggestionDTO, error)
	SendReply(ctx context.Context, replyDTO *dto.ReplySendReq) error
}

type ReplyServiceImpl struct {
	commentRepo repository.CommentRepo
	postRepo    repository.PostRepo
	wf          *workflow.Client
}

func NewReplyService(commentRepo repository.CommentRepo, postRepo repository.PostRepo, wf *workflow.Client) ReplyService {
	return &ReplyServiceImpl{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		wf:          wf,
	}
}

// SuggestReplies 生成三种风格的回复候选
// 工作流超时、失败或输出不可解析时走确定性兜底，绝不向调用方抛硬错误
func (s *ReplyServiceImpl) SuggestReplies(ctx context.Context, messageID string) (*dto.ReplySuggestionDTO, error) {
	comment, err := s.commentRepo.Get(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrMessageNotFound
	}

	input := map[string]any{
		"message_id":      comment.ID,
		"message_content": comment.Content,
		"user":            comment.Username,
		"request_type":    consts.RequestTypeReplySuggestion,
	}
	if post, err := s.postRepo.Get(ctx, comment.PostID); err == nil && post != nil {
		input["source_context"] = post.Content
	}

	result, err := s.wf.Execute(ctx, consts.WorkflowIdolMultimodal, input)
	if err != nil {
		log.WarnContext(ctx, "reply suggestion workflow failed, using fallback", "message_id", messageID, "err", err)
		return fallbackSuggestion(comment.Content), nil
	}
	if result.Status != workflow.StatusSucceeded || result.Output == nil {
		log.WarnContext(ctx, "reply suggestion workflow did not succeed, using fallback",
			"message_id", messageID, "status", result.Status)
		return fallbackSuggestion(comment.Content), nil
	}

	suggestion := mapSuggestion(result.Output)
	if suggestion == nil {
		log.WarnContext(ctx, "reply suggestion output unusable, using fallback", "message_id", messageID)
		return fallbackSuggestion(comment.Content), nil
	}
	return suggestion, nil
}

// SendReply 把回复写到留言上，并异步触发审计工作流
// 审计工作流启动失败不阻塞发送
func (s *ReplyServiceImpl) SendReply(ctx context.Context, replyDTO *dto.ReplySendReq) error {
	comment, err := s.commentRepo.Get(ctx, replyDTO.MessageID)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrMessageNotFound
	}

	input := map[string]any{
		"message_id":    comment.ID,
		"reply_content": replyDTO.Content,
		"reply_style":   replyDTO.Style,
		"request_type":  consts.RequestTypeReplyProcess,
	}
	if _, err = s.wf.Start(ctx, consts.WorkflowIdolMultimodal, input, ""); err != nil {
		log.WarnContext(ctx, "reply audit workflow start failed", "message_id", comment.ID, "err", err)
	}

	set := docstore.Record{
		"idolReply": replyDTO.Content,
		"repliedAt": time.Now().UTC().Format(repository.TimeLayout),
	}
	if replyDTO.Style != "" {
		set["replyStyle"] = replyDTO.Style
	}
	return s.commentRepo.Update(ctx, comment.ID, set)
}

// mapSuggestion 把工作流输出映射为三种候选
// 后端只给单个 idol_reply 时广播到三种风格，属于降级可用而非错误
func mapSuggestion(output map[string]any) *dto.ReplySuggestionDTO {
	emotion := docstore.StringValue(output["emotion_reply"])
	brand := docstore.StringValue(output["brand_reply"])
	mixed := docstore.StringValue(output["mixed_reply"])
	if emotion != "" || brand != "" || mixed != "" {
		return &dto.ReplySuggestionDTO{
			EmotionReply: emotion,
			BrandReply:   brand,
			MixedReply:   mixed,
		}
	}

	if idolReply := docstore.StringValue(output["idol_reply"]); idolReply != "" {
		return &dto.ReplySuggestionDTO{
			EmotionReply:      idolReply,
			BrandReply:        idolReply,
			MixedReply:        idolReply,
			OriginalIdolReply: idolReply,
		}
	}
	return nil
}

// fallbackSuggestion 纯函数模板兜底，输入相同则输出逐字节相同
func fallbackSuggestion(message string) *dto.ReplySuggestionDTO {
	quoted := truncateMessage(message)
	return &dto.ReplySuggestionDTO{
		EmotionReply: fmt.Sprintf("看到你说「%s」，真的很感动，谢谢你一直陪着我！", quoted),
		BrandReply:   fmt.Sprintf("收到你的留言「%s」，新的内容马上安排，敬请期待！", quoted),
		MixedReply:   fmt.Sprintf("「%s」——这份心意收到啦，接下来也一起加油吧！", quoted),
		Fallback:     true,
	}
}

// truncateMessage 按字符截断引用原文，超长时补省略号
func truncateMessage(message string) string {
	runes := []rune(message)
	if len(runes) <= fallbackPrefixLimit {
		return message
	}
	return string(runes[:fallbackPrefixLimit]) + "..."
}

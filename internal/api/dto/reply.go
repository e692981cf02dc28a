package dto

// ReplySuggestReq 请求 AI 回复建议
type ReplySuggestReq struct {
	MessageID string `json:"message_id" binding:"required"`
}

// ReplySuggestionDTO 三种风格的回复候选
// 工作流失败或超时时由确定性模板兜底，永远会返回内容
type ReplySuggestionDTO struct {
	EmotionReply      string `json:"emotion_reply"`
	BrandReply        string `json:"brand_reply"`
	MixedReply        string `json:"mixed_reply"`
	OriginalIdolReply string `json:"original_idol_reply,omitempty"`
	Fallback          bool   `json:"fallback"`
}

// ReplySendReq 发送回复
type ReplySendReq struct {
	MessageID string `json:"message_id" binding:"required"`
	Content   string `json:"content" binding:"required" validate:"min=1,max=1000"`
	Style     string `json:"style" validate:"omitempty,max=32"`
}

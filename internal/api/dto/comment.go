package dto

// CommentDTO 留言
type CommentDTO struct {
	ID         string `json:"id"`
	PostID     string `json:"post_id"`
	Username   string `json:"username"`
	Content    string `json:"content"`
	IdolReply  string `json:"idol_reply,omitempty"`
	ReplyStyle string `json:"reply_style,omitempty"`
	CreatedAt  string `json:"created_at"`
}

// CommentCreateDTO 发表留言
type CommentCreateDTO struct {
	PostID   string `json:"post_id" binding:"required"`
	Username string `json:"username" binding:"required" validate:"min=1,max=64"`
	Content  string `json:"content" binding:"required" validate:"min=1,max=1000"`
}

// CommentResultDTO 留言写操作结果，附带父帖的权威计数
type CommentResultDTO struct {
	Comment  *CommentDTO `json:"comment,omitempty"`
	Comments int64       `json:"comments"`
}

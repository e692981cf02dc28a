package model

import (
	"time"
)

// Comment 粉丝留言
// 创建与删除伴随父帖 comments 计数的 +1 / 钳位 -1
type Comment struct {
	ID         string    `bson:"id" json:"id"`
	PostID     string    `bson:"postId" json:"post_id"`
	Username   string    `bson:"username" json:"username"`
	Content    string    `bson:"content" json:"content"`
	IdolReply  string    `bson:"idolReply,omitempty" json:"idol_reply,omitempty"`
	ReplyStyle string    `bson:"replyStyle,omitempty" json:"reply_style,omitempty"`
	RepliedAt  string    `bson:"repliedAt,omitempty" json:"replied_at,omitempty"`
	CreatedAt  time.Time `bson:"createdAt" json:"created_at"`
}

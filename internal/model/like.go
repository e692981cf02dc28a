package model

import (
	"time"
)

// Like 点赞记录，应用层保证同一 (postId, userId) 至多一条
type Like struct {
	ID        string    `bson:"id" json:"id"`
	PostID    string    `bson:"postId" json:"post_id"`
	UserID    string    `bson:"userId" json:"user_id"`
	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
}

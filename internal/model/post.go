package model

import (
	"time"
)

// 帖子类型
const (
	PostTypeText  = "text"
	PostTypeImage = "image"
	PostTypeVideo = "video"
	PostTypeMusic = "music"
)

// Post 偶像帖子
// Likes / Comments 是子记录数量的尽力缓存，允许短暂偏离真实值，但恒为非负
type Post struct {
	ID        string    `bson:"id" json:"id"`
	IdolName  string    `bson:"idolName" json:"idol_name"`
	Content   string    `bson:"content" json:"content"`
	PostType  string    `bson:"postType" json:"post_type"`
	MediaURL  string    `bson:"mediaUrl,omitempty" json:"media_url,omitempty"`
	Likes     int64     `bson:"likes" json:"likes"`
	Comments  int64     `bson:"comments" json:"comments"`
	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
}

// ValidPostType 校验帖子类型取值
func ValidPostType(t string) bool {
	switch t {
	case PostTypeText, PostTypeImage, PostTypeVideo, PostTypeMusic:
		return true
	}
	return false
}

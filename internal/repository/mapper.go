package repository

import (
	"Aidol/internal/model"
	"Aidol/internal/pkg/docstore"
	"time"
)

// TimeLayout 记录中的时间戳格式
// 固定宽度的 UTC 格式，保证字典序与时间序一致，网关的内存排序依赖这一点
const TimeLayout = "2006-01-02T15:04:05.000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

func parseTime(v any) time.Time {
	t, _ := time.Parse(TimeLayout, docstore.StringValue(v))
	return t
}

func numberAttr(v any) int64 {
	n, _ := docstore.NumberValue(v)
	return int64(n)
}

func postToRecord(p *model.Post) docstore.Record {
	rec := docstore.Record{
		"id":        p.ID,
		"idolName":  p.IdolName,
		"content":   p.Content,
		"postType":  p.PostType,
		"likes":     p.Likes,
		"comments":  p.Comments,
		"createdAt": formatTime(p.CreatedAt),
	}
	if p.MediaURL != "" {
		rec["mediaUrl"] = p.MediaURL
	}
	return rec
}

func recordToPost(rec docstore.Record) *model.Post {
	return &model.Post{
		ID:        docstore.StringValue(rec["id"]),
		IdolName:  docstore.StringValue(rec["idolName"]),
		Content:   docstore.StringValue(rec["content"]),
		PostType:  docstore.StringValue(rec["postType"]),
		MediaURL:  docstore.StringValue(rec["mediaUrl"]),
		Likes:     numberAttr(rec["likes"]),
		Comments:  numberAttr(rec["comments"]),
		CreatedAt: parseTime(rec["createdAt"]),
	}
}

func commentToRecord(c *model.Comment) docstore.Record {
	rec := docstore.Record{
		"id":        c.ID,
		"postId":    c.PostID,
		"username":  c.Username,
		"content":   c.Content,
		"createdAt": formatTime(c.CreatedAt),
	}
	if c.IdolReply != "" {
		rec["idolReply"] = c.IdolReply
		rec["replyStyle"] = c.ReplyStyle
		rec["repliedAt"] = c.RepliedAt
	}
	return rec
}

func recordToComment(rec docstore.Record) *model.Comment {
	return &model.Comment{
		ID:         docstore.StringValue(rec["id"]),
		PostID:     docstore.StringValue(rec["postId"]),
		Username:   docstore.StringValue(rec["username"]),
		Content:    docstore.StringValue(rec["content"]),
		IdolReply:  docstore.StringValue(rec["idolReply"]),
		ReplyStyle: docstore.StringValue(rec["replyStyle"]),
		RepliedAt:  docstore.StringValue(rec["repliedAt"]),
		CreatedAt:  parseTime(rec["createdAt"]),
	}
}

func likeToRecord(l *model.Like) docstore.Record {
	return docstore.Record{
		"id":        l.ID,
		"postId":    l.PostID,
		"userId":    l.UserID,
		"createdAt": formatTime(l.CreatedAt),
	}
}

func recordToLike(rec docstore.Record) *model.Like {
	return &model.Like{
		ID:        docstore.StringValue(rec["id"]),
		PostID:    docstore.StringValue(rec["postId"]),
		UserID:    docstore.StringValue(rec["userId"]),
		CreatedAt: parseTime(rec["createdAt"]),
	}
}

func userToRecord(u *model.User) docstore.Record {
	roles := make([]any, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, r)
	}
	return docstore.Record{
		"id":           u.ID,
		"username":     u.Username,
		"passwordHash": u.PasswordHash,
		"nickname":     u.Nickname,
		"roles":        roles,
		"createdAt":    formatTime(u.CreatedAt),
	}
}

func recordToUser(rec docstore.Record) *model.User {
	user := &model.User{
		ID:           docstore.StringValue(rec["id"]),
		Username:     docstore.StringValue(rec["username"]),
		PasswordHash: docstore.StringValue(rec["passwordHash"]),
		Nickname:     docstore.StringValue(rec["nickname"]),
		CreatedAt:    parseTime(rec["createdAt"]),
	}
	if raw, ok := rec["roles"].([]any); ok {
		for _, r := range raw {
			user.Roles = append(user.Roles, docstore.StringValue(r))
		}
	} else if raw, ok := rec["roles"].([]string); ok {
		user.Roles = raw
	}
	return user
}

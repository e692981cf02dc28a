package dto

// PostDTO 帖子
type PostDTO struct {
	ID        string `json:"id"`
	IdolName  string `json:"idol_name"`
	Content   string `json:"content"`
	PostType  string `json:"post_type"`
	MediaURL  string `json:"media_url,omitempty"`
	Likes     int64  `json:"likes"`
	Comments  int64  `json:"comments"`
	CreatedAt string `json:"created_at"`
}

// PostCreateDTO 发布帖子
type PostCreateDTO struct {
	IdolName string `json:"idol_name" binding:"required" validate:"min=1,max=64"`
	Content  string `json:"content" binding:"required" validate:"min=1,max=2000"`
	PostType string `json:"post_type" binding:"required"`
	MediaURL string `json:"media_url" validate:"omitempty,max=512"`
}

// PostUpdateDTO 编辑帖子，仅更新出现的字段
type PostUpdateDTO struct {
	Content  *string `json:"content,omitempty" validate:"omitempty,min=1,max=2000"`
	PostType *string `json:"post_type,omitempty"`
	MediaURL *string `json:"media_url,omitempty" validate:"omitempty,max=512"`
}

// PostListDTO 信息流
type PostListDTO struct {
	List []*PostDTO `json:"list"`
}

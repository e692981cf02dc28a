package dto

// RegisterDTO 注册
type RegisterDTO struct {
	Username string `json:"username" binding:"required" validate:"min=3,max=32"`
	Password string `json:"password" binding:"required" validate:"min=6,max=64"`
	Nickname string `json:"nickname" validate:"omitempty,max=64"`
}

// LoginDTO 登录
type LoginDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResultDTO 登录结果
type LoginResultDTO struct {
	Token string   `json:"token"`
	User  *UserDTO `json:"user"`
}

// UserDTO 用户
type UserDTO struct {
	ID        string   `json:"id"`
	Username  string   `json:"username"`
	Nickname  string   `json:"nickname"`
	Roles     []string `json:"roles"`
	CreatedAt string   `json:"created_at"`
}

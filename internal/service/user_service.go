package service

import (
	"Aidol/internal/api/dto"
	"Aidol/internal/model"
	"Aidol/internal/pkg/consts"
	"Aidol/internal/pkg/redis"
	"Aidol/internal/pkg/security"
	"Aidol/internal/repository"
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type UserService interface {
	Register(ctx context.Context, regDTO *dto.RegisterDTO) error
	Login(ctx context.Context, loginDTO *dto.LoginDTO) (*dto.LoginResultDTO, error)
	Logout(ctx context.Context, token string) error
	GetUserInfo(ctx context.Context, id string) (*dto.UserDTO, error)
}

type UserServiceImpl struct {
	userRepo repository.UserRepo
}

func NewUserService(userRepo repository.UserRepo) UserService {
	return &UserServiceImpl{
		userRepo: userRepo,
	}
}

// Register 注册
func (s *UserServiceImpl) Register(ctx context.Context, regDTO *dto.RegisterDTO) error {
	existing, err := s.userRepo.GetByUsername(ctx, regDTO.Username)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrUserExist
	}

	passwordHash, err := security.HashPassword(regDTO.Password)
	if err != nil {
		return err
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Username:     regDTO.Username,
		PasswordHash: passwordHash,
		Nickname:     regDTO.Nickname,
		Roles:        []string{consts.RoleUser},
		CreatedAt:    time.Now().UTC(),
	}
	if user.Nickname == "" {
		user.Nickname = user.Username
	}
	return s.userRepo.Create(ctx, user)
}

// Login 登录，返回 JWT 与用户信息
func (s *UserServiceImpl) Login(ctx context.Context, loginDTO *dto.LoginDTO) (*dto.LoginResultDTO, error) {
	user, err := s.userRepo.GetByUsername(ctx, loginDTO.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if err = security.CheckPasswordHash(loginDTO.Password, user.PasswordHash); err != nil {
		return nil, ErrPasswordIncorrect
	}

	token, err := security.GenerateToken(user.ID, user.Username, user.Roles)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResultDTO{
		Token: token,
		User:  userToDTO(user),
	}, nil
}

// Logout 把 token 签名拉黑到过期
func (s *UserServiceImpl) Logout(ctx context.Context, token string) error {
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return err
	}
	return redis.SetWithExpiration(ctx, consts.TokenBlacklistKey+signature, true, time.Hour*24)
}

// GetUserInfo 查询用户信息
func (s *UserServiceImpl) GetUserInfo(ctx context.Context, id string) (*dto.UserDTO, error) {
	user, err := s.userRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return userToDTO(user), nil
}

func userToDTO(user *model.User) *dto.UserDTO {
	userDTO := &dto.UserDTO{}
	_ = copier.Copy(userDTO, user)
	userDTO.CreatedAt = user.CreatedAt.UTC().Format(repository.TimeLayout)
	return userDTO
}

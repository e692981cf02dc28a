package service

import (
	"Aidol/internal/api/config"
	"Aidol/internal/api/dto"
	"Aidol/internal/pkg/consts"
	"Aidol/internal/pkg/datagw"
	"Aidol/internal/pkg/docstore"
	"Aidol/internal/pkg/security"
	"Aidol/internal/repository"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T) UserService {
	t.Helper()
	config.Cfg = &config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", ExpirationHours: 1},
	}

	tables := docstore.TableConfig{
		consts.TableUsers: {
			{Name: consts.IndexUserUsername, PartitionKey: "username"},
		},
	}
	store := docstore.NewMemoryStore(tables)
	return NewUserService(repository.NewUserRepo(store, datagw.New(store, tables)))
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := newUserService(t)

	err := svc.Register(ctx, &dto.RegisterDTO{Username: "fan01", Password: "secret123"})
	require.NoError(t, err)

	// 用户名唯一
	err = svc.Register(ctx, &dto.RegisterDTO{Username: "fan01", Password: "other456"})
	assert.ErrorIs(t, err, ErrUserExist)

	result, err := svc.Login(ctx, &dto.LoginDTO{Username: "fan01", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "fan01", result.User.Username)
	assert.Contains(t, result.User.Roles, consts.RoleUser)

	claims, err := security.ValidateToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.UserID)
}

func TestLoginFailures(t *testing.T) {
	ctx := context.Background()
	svc := newUserService(t)

	require.NoError(t, svc.Register(ctx, &dto.RegisterDTO{Username: "fan01", Password: "secret123"}))

	_, err := svc.Login(ctx, &dto.LoginDTO{Username: "fan01", Password: "wrong"})
	assert.ErrorIs(t, err, ErrPasswordIncorrect)

	_, err = svc.Login(ctx, &dto.LoginDTO{Username: "ghost", Password: "secret123"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

package service

import (
	"Aidol/internal/pkg/docstore"
	"Aidol/internal/pkg/workflow"
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid      = errors.New("参数错误")
	ErrUserNotFound      = errors.New("用户不存在")
	ErrUserExist         = errors.New("用户名已存在")
	ErrPasswordIncorrect = errors.New("密码错误")
	ErrPostNotFound      = errors.New("帖子不存在")
	ErrPostTypeInvalid   = errors.New("帖子类型无效")
	ErrCommentNotFound   = errors.New("留言不存在")
	ErrMessageNotFound   = errors.New("消息不存在")
	UnauthorizedError    = errors.New("权限不足")
	UnExpectedError      = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:      BadRequest,
	ErrUserNotFound:      NotFound,
	ErrUserExist:         BadRequest,
	ErrPasswordIncorrect: Unauthorized,
	ErrPostNotFound:      NotFound,
	ErrPostTypeInvalid:   BadRequest,
	ErrCommentNotFound:   NotFound,
	ErrMessageNotFound:   NotFound,
	UnauthorizedError:    Unauthorized,
	UnExpectedError:      InternalServerError,
}

// Classify 将错误归类为业务码与对外文案
// 基础设施层的哨兵错误可能被包装过，必须用 errors.Is 判断
func Classify(err error) (int, string) {
	for sentinel, code := range ErrorMap {
		if errors.Is(err, sentinel) {
			return code, sentinel.Error()
		}
	}

	switch {
	case errors.Is(err, docstore.ErrRecordNotFound):
		return NotFound, "记录不存在"
	case errors.Is(err, docstore.ErrIndexNotFound), errors.Is(err, workflow.ErrUnknownWorkflow):
		// 部署期配置错误，直接暴露 500，不做重试
		return InternalServerError, UnExpectedError.Error()
	case errors.Is(err, docstore.ErrStoreUnavailable):
		return InternalServerError, UnExpectedError.Error()
	}
	return InternalServerError, UnExpectedError.Error()
}

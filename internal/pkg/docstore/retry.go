package docstore

import (
	"context"
	"errors"
	"math/rand"
	"net"
	"time"

	pkgerrors "github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
)

// RetryConfig 瞬时故障的有界重试配置
type RetryConfig struct {
	MaxAttempts int
	BackoffBase time.Duration
	MaxBackoff  time.Duration
}

// DefaultRetryConfig 默认重试配置
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		BackoffBase: 100 * time.Millisecond,
		MaxBackoff:  2 * time.Second,
	}
}

// withRetry 只对连接类故障做有界抖动重试
// 配置错误与业务性错误（NotFound 等）原样立即返回
func withRetry(ctx context.Context, cfg RetryConfig, op string, fn func() error) error {
	backoff := cfg.BackoffBase
	var err error

	for attempt := 1; ; attempt++ {
		err = fn()
		if err == nil || !isTransient(err) {
			return err
		}
		if attempt >= cfg.MaxAttempts {
			break
		}

		// 全抖动，避免重试风暴
		sleep := time.Duration(rand.Int63n(int64(backoff)) + 1)
		select {
		case <-ctx.Done():
			return pkgerrors.Wrapf(ErrStoreUnavailable, "%s: %v", op, ctx.Err())
		case <-time.After(sleep):
		}

		backoff *= 2
		if backoff > cfg.MaxBackoff {
			backoff = cfg.MaxBackoff
		}
	}

	return pkgerrors.Wrapf(ErrStoreUnavailable, "%s: %v", op, err)
}

// isTransient 判断是否为值得重试的连接类故障
func isTransient(err error) bool {
	if err == nil {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return mongo.IsNetworkError(err) || mongo.IsTimeout(err)
}

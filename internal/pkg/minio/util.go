package minio

import (
	"Aidol/internal/api/config"
	"context"
	"fmt"
	"net/url"
	"time"
)

// PresignUpload 生成限时上传地址，前端直传媒体文件
func PresignUpload(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	if Client == nil {
		return "", fmt.Errorf("minio client is not initialized")
	}

	presigned, err := Client.PresignedPutObject(ctx, MediaBucket, objectName, expiry)
	if err != nil {
		return "", fmt.Errorf("failed to presign upload: %w", err)
	}
	return presigned.String(), nil
}

// GetPublicURL 将对象名转换为对外可访问的 URL
func GetPublicURL(objectName string) string {
	if objectName == "" {
		return ""
	}
	if u, err := url.Parse(objectName); err == nil && u.Scheme != "" {
		return objectName
	}

	cfg := config.Cfg.MinIO
	endpoint := cfg.PublicEndpoint
	if endpoint == "" {
		endpoint = cfg.Endpoint
	}

	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, endpoint, MediaBucket, objectName)
}

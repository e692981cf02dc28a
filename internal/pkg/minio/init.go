package minio

import (
	"Aidol/internal/api/config"
	"context"
	"fmt"
	log "log/slog"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var (
	// Client 全局 MinIO 客户端实例
	Client *minio.Client
	// MediaBucket 媒体存储桶
	MediaBucket string
)

// Init 初始化 MinIO 客户端，未启用时保持 nil
func Init() error {
	cfg := config.Cfg.MinIO
	if !cfg.Enable {
		return nil
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize minio client: %w", err)
	}

	ctx := context.Background()
	if _, err = client.ListBuckets(ctx); err != nil {
		return fmt.Errorf("failed to connect to minio server: %w", err)
	}

	Client = client
	MediaBucket = cfg.MediaBucket

	log.Info("MinIO initialized successfully", "bucket", MediaBucket)
	return nil
}

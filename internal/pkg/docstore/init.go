package docstore

import (
	"Aidol/internal/api/config"
	"Aidol/internal/pkg/logger"
	"context"
	log "log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// InitMongo 建立连接并返回 Database 引用
func InitMongo(cfg config.MongoConfig) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// 建立连接
	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(cfg.URL).
		SetMonitor(logger.NewMongoMonitor()),
	)
	if err != nil {
		return nil, err
	}

	// 检查连通性
	if err = client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(cfg.Database)

	log.Info("MongoDB initialized successfully", "db", cfg.Database)
	return db, nil
}

// TablesFromConfig 将配置文件中的表声明转换为注入用的 TableConfig
func TablesFromConfig(cfg config.DocStoreConfig) TableConfig {
	tables := make(TableConfig, len(cfg.Tables))
	for _, t := range cfg.Tables {
		indexes := make([]Index, 0, len(t.Indexes))
		for _, idx := range t.Indexes {
			indexes = append(indexes, Index{
				Name:         idx.Name,
				PartitionKey: idx.PartitionKey,
				SortKey:      idx.SortKey,
			})
		}
		tables[t.Name] = indexes
	}
	return tables
}

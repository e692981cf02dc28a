package kafka

import (
	"Aidol/internal/api/config"
	"context"
	log "log/slog"
	"time"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// EngagementEvent 引流事件，供管理后台的分析链路消费
type EngagementEvent struct {
	Type       string    `json:"type"`
	PostID     string    `json:"post_id,omitempty"`
	IdolName   string    `json:"idol_name,omitempty"`
	UserID     string    `json:"user_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Producer 尽力而为的事件发布器
// 未启用或发送失败只记日志，绝不影响主链路
type Producer struct {
	producer sarama.SyncProducer
	topic    string
}

func NewProducer(cfg config.KafkaConfig) (*Producer, error) {
	if !cfg.Enable {
		return nil, nil
	}

	c := sarama.NewConfig()
	c.Producer.Return.Successes = true
	c.Producer.RequiredAcks = sarama.WaitForLocal

	if cfg.Sasl.Enable {
		c.Net.SASL.Enable = true
		c.Net.SASL.Mechanism = sarama.SASLTypePlaintext
		c.Net.SASL.User = cfg.Sasl.Username
		c.Net.SASL.Password = cfg.Sasl.Password
	}

	producer, err := sarama.NewSyncProducer(cfg.Brokers, c)
	if err != nil {
		return nil, err
	}

	log.Info("Kafka producer initialized", "topic", cfg.Topic)
	return &Producer{producer: producer, topic: cfg.Topic}, nil
}

// Publish 发布事件，nil 接收者直接跳过
func (p *Producer) Publish(ctx context.Context, event EngagementEvent) {
	if p == nil {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		log.ErrorContext(ctx, "engagement event marshal failed", "type", event.Type, "err", err)
		return
	}

	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.PostID),
		Value: sarama.ByteEncoder(payload),
	})
	if err != nil {
		log.ErrorContext(ctx, "engagement event publish failed", "type", event.Type, "err", err)
	}
}

// Close 关闭底层生产者
func (p *Producer) Close() {
	if p == nil {
		return
	}
	_ = p.producer.Close()
}

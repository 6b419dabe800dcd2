package kafka

import (
	"Pollhive/internal/api/config"
	"context"
	log "log/slog"
	"time"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// Producer 事件发布器。发送等待 broker 确认，失败原样上报，
// 是否重试由调用方决定。
type Producer struct {
	producer sarama.SyncProducer
}

func NewProducer(cfg *config.Config) (*Producer, error) {
	p, err := sarama.NewSyncProducer(cfg.Kafka.Brokers, newSaramaConfig(cfg.Kafka))
	if err != nil {
		return nil, err
	}
	return &Producer{producer: p}, nil
}

// Publish 构造事件载荷并追加到指定主题。
// 以 userId 作为分区键，保证同一用户的事件保持分区内有序。
func (p *Producer) Publish(ctx context.Context, topic, userID, pollID, actionType string, ts time.Time) error {
	event := Event{
		UserID:     userID,
		PollID:     pollID,
		ActionType: actionType,
		Timestamp:  ts.UTC().Format(time.RFC3339),
	}

	payload, err := json.Marshal(&event)
	if err != nil {
		return err
	}

	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(userID),
		Value: sarama.ByteEncoder(payload),
	})
	if err != nil {
		log.ErrorContext(ctx, "event publish failed", "topic", topic, "err", err)
		return err
	}

	log.InfoContext(ctx, "event published",
		"topic", topic, "partition", partition, "offset", offset,
		"userID", userID, "action", actionType)
	return nil
}

func (p *Producer) Close() error {
	return p.producer.Close()
}

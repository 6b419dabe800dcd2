package kafka

import (
	"Pollhive/internal/api/config"
	"Pollhive/internal/service"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager 管理所有 Kafka 消费者
type ConsumerManager struct {
	interactionsConsumer sarama.ConsumerGroup
	interactionsHandler  sarama.ConsumerGroupHandler

	preferencesConsumer sarama.ConsumerGroup
	preferencesHandler  sarama.ConsumerGroupHandler
}

// NewConsumerManager 构造函数
func NewConsumerManager(
	cfg *config.Config,
	engagementService service.EngagementService,
	recommendService service.RecommendService,
) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	interactionsConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaInteractionsConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}
	interactionsHandler := NewInteractionsHandler(engagementService, recommendService)

	preferencesConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaPreferencesConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}
	preferencesHandler := NewPreferencesHandler(engagementService, recommendService)

	return &ConsumerManager{
		interactionsConsumer: interactionsConsumer,
		interactionsHandler:  interactionsHandler,
		preferencesConsumer:  preferencesConsumer,
		preferencesHandler:   preferencesHandler,
	}, nil
}

// Start 启动所有消费者，阻塞直到 ctx 取消
func (m *ConsumerManager) Start(ctx context.Context, cfg *config.Config) error {
	go func() {
		topic := cfg.KafkaInteractionsConsumer.Topic
		log.Info("Interactions consumer started", "topic", topic)
		for {
			if err := m.interactionsConsumer.Consume(ctx, []string{topic}, m.interactionsHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	go func() {
		topic := cfg.KafkaPreferencesConsumer.Topic
		log.Info("Preferences consumer started", "topic", topic)
		for {
			if err := m.preferencesConsumer.Consume(ctx, []string{topic}, m.preferencesHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	if err := m.interactionsConsumer.Close(); err != nil {
		log.Error("Failed to close interactions consumer", "err", err)
	}
	if err := m.preferencesConsumer.Close(); err != nil {
		log.Error("Failed to close preferences consumer", "err", err)
	}

	return nil
}

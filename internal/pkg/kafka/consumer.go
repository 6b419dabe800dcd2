package kafka

import (
	"context"
	"errors"
	log "log/slog"
	"time"

	"github.com/IBM/sarama"
)

const (
	maxApplyAttempts = 3
	retryBackoff     = 200 * time.Millisecond
)

type LogicFunc func(ctx context.Context, msg *sarama.ConsumerMessage) error

// pullMessages 顺序消费：一条消息处理完（含重试）才拉取下一条
func pullMessages(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim, logic LogicFunc) error {
	for {
		select {
		case msg, ok := <-claim.Messages():
			if !ok {
				return nil
			}
			applyWithRetry(session.Context(), msg, logic)
			session.MarkMessage(msg, "")
		case <-session.Context().Done():
			return nil
		}
	}
}

// applyWithRetry 对单条消息的应用逻辑做有界重试。
// 非法事件直接跳过；重试耗尽后记录并丢弃，消费循环继续。
func applyWithRetry(ctx context.Context, msg *sarama.ConsumerMessage, logic LogicFunc) {
	for attempt := 1; attempt <= maxApplyAttempts; attempt++ {
		err := logic(ctx, msg)
		if err == nil {
			return
		}

		if errors.Is(err, errInvalidEvent) {
			log.WarnContext(ctx, "skip invalid event",
				"topic", msg.Topic, "offset", msg.Offset, "err", err)
			return
		}

		log.ErrorContext(ctx, "process message error",
			"topic", msg.Topic, "offset", msg.Offset, "attempt", attempt, "err", err)

		if attempt < maxApplyAttempts {
			select {
			case <-ctx.Done():
				return
			case <-time.After(retryBackoff):
			}
		}
	}

	log.ErrorContext(ctx, "max retry attempts reached, dropping message",
		"topic", msg.Topic, "offset", msg.Offset)
}

// decodeEvent 解析消息体，解码失败按非法事件处理
func decodeEvent(msg *sarama.ConsumerMessage) (*Event, error) {
	event, err := unmarshalEvent(msg.Value)
	if err != nil {
		return nil, errInvalidEvent
	}
	if err := event.Validate(); err != nil {
		return nil, err
	}
	return event, nil
}

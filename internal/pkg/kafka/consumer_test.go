package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/assert"
)

func testMessage(value string) *sarama.ConsumerMessage {
	return &sarama.ConsumerMessage{Topic: "user_interactions", Offset: 7, Value: []byte(value)}
}

// 持续失败的消息恰好尝试 3 次后被丢弃
func TestApplyWithRetryExhaustsAttempts(t *testing.T) {
	var calls int
	logic := func(ctx context.Context, msg *sarama.ConsumerMessage) error {
		calls++
		return errors.New("apply failed")
	}

	applyWithRetry(context.Background(), testMessage("{}"), logic)
	assert.Equal(t, maxApplyAttempts, calls)
}

func TestApplyWithRetrySucceedsFirstTry(t *testing.T) {
	var calls int
	logic := func(ctx context.Context, msg *sarama.ConsumerMessage) error {
		calls++
		return nil
	}

	applyWithRetry(context.Background(), testMessage("{}"), logic)
	assert.Equal(t, 1, calls)
}

func TestApplyWithRetryRecoversMidway(t *testing.T) {
	var calls int
	logic := func(ctx context.Context, msg *sarama.ConsumerMessage) error {
		calls++
		if calls < 2 {
			return errors.New("transient")
		}
		return nil
	}

	applyWithRetry(context.Background(), testMessage("{}"), logic)
	assert.Equal(t, 2, calls)
}

// 非法事件不重试，单次尝试后直接跳过
func TestApplyWithRetrySkipsInvalidEvent(t *testing.T) {
	var calls int
	logic := func(ctx context.Context, msg *sarama.ConsumerMessage) error {
		calls++
		return errInvalidEvent
	}

	applyWithRetry(context.Background(), testMessage("not json"), logic)
	assert.Equal(t, 1, calls)
}

// 取消的上下文中止重试
func TestApplyWithRetryStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var calls int
	logic := func(ctx context.Context, msg *sarama.ConsumerMessage) error {
		calls++
		cancel()
		return errors.New("apply failed")
	}

	applyWithRetry(ctx, testMessage("{}"), logic)
	assert.Equal(t, 1, calls)
}

func TestDecodeEvent(t *testing.T) {
	msg := testMessage(`{"userId":"u1","pollId":"p1","actionType":"view","timestamp":"2026-01-02T15:04:05Z"}`)
	event, err := decodeEvent(msg)
	assert.NoError(t, err)
	assert.Equal(t, "view", event.ActionType)

	_, err = decodeEvent(testMessage("oops"))
	assert.ErrorIs(t, err, errInvalidEvent)

	_, err = decodeEvent(testMessage(`{"userId":"u1"}`))
	assert.ErrorIs(t, err, errInvalidEvent)
}

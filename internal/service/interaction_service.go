package service

import (
	"Pollhive/internal/model"
	"Pollhive/internal/pkg/consts"
	"Pollhive/internal/repository"
	"context"
	log "log/slog"
	"time"
)

// EventPublisher 事件发布端，由 Kafka 生产者实现
type EventPublisher interface {
	Publish(ctx context.Context, topic, userID, pollID, actionType string, ts time.Time) error
}

// InteractionService 交互入口。只负责校验与发布，
// 落库由两个主题的消费端异步完成。
type InteractionService interface {
	RecordInteraction(ctx context.Context, userID, pollID, action string) error
	GetUserHistory(ctx context.Context, userID string, limit int64) ([]*model.InteractionEvent, error)
	GetPollActivity(ctx context.Context, pollID string, limit int64) ([]*model.InteractionEvent, error)
}

type interactionServiceImpl struct {
	publisher       EventPublisher
	interactionRepo repository.InteractionRepo
}

func NewInteractionService(publisher EventPublisher, interactionRepo repository.InteractionRepo) InteractionService {
	return &interactionServiceImpl{
		publisher:       publisher,
		interactionRepo: interactionRepo,
	}
}

// RecordInteraction 校验后向两个主题各发布一份事件。
// 用户侧主题驱动历史与评分，投票侧主题驱动计数与偏好。
// 第二个主题发布失败时第一个不回滚，消费端天然容忍单边事件。
func (s *interactionServiceImpl) RecordInteraction(ctx context.Context, userID, pollID, action string) error {
	if userID == "" || pollID == "" {
		return ErrParamInvalid
	}
	if !model.ValidAction(action) {
		return ErrActionInvalid
	}

	now := time.Now().UTC()
	if err := s.publisher.Publish(ctx, consts.TopicUserInteractions, userID, pollID, action, now); err != nil {
		return err
	}
	if err := s.publisher.Publish(ctx, consts.TopicPollPreferences, userID, pollID, action, now); err != nil {
		log.ErrorContext(ctx, "preferences topic publish failed",
			"userID", userID, "pollID", pollID, "action", action, "err", err)
		return err
	}

	return nil
}

func (s *interactionServiceImpl) GetUserHistory(ctx context.Context, userID string, limit int64) ([]*model.InteractionEvent, error) {
	if userID == "" {
		return nil, ErrParamInvalid
	}
	return s.interactionRepo.GetByUser(ctx, userID, limit)
}

func (s *interactionServiceImpl) GetPollActivity(ctx context.Context, pollID string, limit int64) ([]*model.InteractionEvent, error) {
	if pollID == "" {
		return nil, ErrParamInvalid
	}
	return s.interactionRepo.GetByPoll(ctx, pollID, limit)
}

package kafka

import (
	"Pollhive/internal/service"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// InteractionsHandler 消费 user_interactions 主题，
// 把事件落到用户侧：互动历史 + 参与度评分，成功后触发推荐刷新
type InteractionsHandler struct {
	engagementService service.EngagementService
	recommendService  service.RecommendService
}

func NewInteractionsHandler(engagementService service.EngagementService, recommendService service.RecommendService) *InteractionsHandler {
	return &InteractionsHandler{
		engagementService: engagementService,
		recommendService:  recommendService,
	}
}

func (h *InteractionsHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("interactions consumer setup")
	return nil
}

func (h *InteractionsHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("interactions consumer cleanup")
	return nil
}

func (h *InteractionsHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	return pullMessages(session, claim, h.handleMessage)
}

func (h *InteractionsHandler) handleMessage(ctx context.Context, msg *sarama.ConsumerMessage) error {
	event, err := decodeEvent(msg)
	if err != nil {
		return err
	}

	if err := h.engagementService.ApplyUserInteraction(ctx, event.UserID, event.PollID, event.ActionType, event.OccurredAt()); err != nil {
		return err
	}

	// 事务提交后才刷新推荐，失败的事件不会触发重算
	h.recommendService.RefreshAsync(event.UserID)
	return nil
}

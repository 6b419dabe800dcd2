package kafka

import (
	"Pollhive/internal/service"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// PreferencesHandler 消费 poll_preferences 主题，
// 把事件落到投票侧：聚合计数 + 点赞/点踩互斥状态，
// 成功后同样触发推荐刷新
type PreferencesHandler struct {
	engagementService service.EngagementService
	recommendService  service.RecommendService
}

func NewPreferencesHandler(engagementService service.EngagementService, recommendService service.RecommendService) *PreferencesHandler {
	return &PreferencesHandler{
		engagementService: engagementService,
		recommendService:  recommendService,
	}
}

func (h *PreferencesHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("preferences consumer setup")
	return nil
}

func (h *PreferencesHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("preferences consumer cleanup")
	return nil
}

func (h *PreferencesHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	return pullMessages(session, claim, h.handleMessage)
}

func (h *PreferencesHandler) handleMessage(ctx context.Context, msg *sarama.ConsumerMessage) error {
	event, err := decodeEvent(msg)
	if err != nil {
		return err
	}

	if err := h.engagementService.ApplyPollPreference(ctx, event.UserID, event.PollID, event.ActionType, event.OccurredAt()); err != nil {
		return err
	}

	// 偏好变化同样影响推荐，提交成功后触发重算
	h.recommendService.RefreshAsync(event.UserID)
	return nil
}

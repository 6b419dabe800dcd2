package handler

import (
	"Pollhive/internal/api/dto"
	"Pollhive/internal/pkg/response"
	"Pollhive/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type InteractionHandler struct {
	interactionService service.InteractionService
}

func NewInteractionHandler(interactionService service.InteractionService) *InteractionHandler {
	return &InteractionHandler{interactionService: interactionService}
}

// Record 上报一次交互，落库由消费端异步完成
func (s *InteractionHandler) Record(c *gin.Context) {
	var req dto.RecordInteractionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	userID := c.GetString("user_id")

	if err := s.interactionService.RecordInteraction(c.Request.Context(), userID, req.PollID, req.Action); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// History 当前用户的交互历史
func (s *InteractionHandler) History(c *gin.Context) {
	userID := c.GetString("user_id")
	limit := parseLimit(c.DefaultQuery("limit", "50"))
	if limit <= 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	events, err := s.interactionService.GetUserHistory(c.Request.Context(), userID, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, events)
}

// PollActivity 指定投票贴的交互流水
func (s *InteractionHandler) PollActivity(c *gin.Context) {
	pollID := c.Param("poll_id")
	if pollID == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	limit := parseLimit(c.DefaultQuery("limit", "50"))
	if limit <= 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	events, err := s.interactionService.GetPollActivity(c.Request.Context(), pollID, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, events)
}

func parseLimit(raw string) int64 {
	limit, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || limit > 200 {
		return 0
	}
	return limit
}

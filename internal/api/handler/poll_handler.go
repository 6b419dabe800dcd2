package handler

import (
	"Pollhive/internal/api/dto"
	"Pollhive/internal/pkg/response"
	"Pollhive/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type PollHandler struct {
	pollService service.PollService
	voteService service.VoteService
}

func NewPollHandler(pollService service.PollService, voteService service.VoteService) *PollHandler {
	return &PollHandler{
		pollService: pollService,
		voteService: voteService,
	}
}

// CreatePoll 创建投票贴
func (s *PollHandler) CreatePoll(c *gin.Context) {
	var req dto.CreatePollReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	userID := c.GetString("user_id")

	poll, err := s.pollService.CreatePoll(c.Request.Context(), userID, service.CreatePollParams{
		Title:         req.Title,
		Description:   req.Description,
		Topics:        req.Topics,
		OptionTexts:   req.Options,
		RequiredVotes: req.RequiredVotes,
		ExpiresAt:     req.ExpiresAt,
		Visibility:    req.Visibility,

		RequiresPaymentForVoting: req.RequiresPaymentForVoting,
		PaymentAmountForVoting:   req.PaymentAmountForVoting,
		CreationFee:              req.CreationFee,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, poll)
}

// GetPoll 投票贴详情
func (s *PollHandler) GetPoll(c *gin.Context) {
	pollID := c.Param("poll_id")
	if pollID == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	poll, err := s.pollService.GetPoll(c.Request.Context(), pollID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, poll)
}

// CastVote 投票
func (s *PollHandler) CastVote(c *gin.Context) {
	pollID := c.Param("poll_id")
	if pollID == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID := c.GetString("user_id")

	var req dto.CastVoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	poll, err := s.voteService.CastVote(c.Request.Context(), userID, pollID, req.OptionID, req.PaymentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, poll)
}

// ExtendVotes 扩充票数配额，重新激活已关闭的投票贴
func (s *PollHandler) ExtendVotes(c *gin.Context) {
	pollID := c.Param("poll_id")
	if pollID == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID := c.GetString("user_id")

	var req dto.ExtendVotesReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	poll, err := s.pollService.ExtendVotes(c.Request.Context(), userID, pollID, req.AdditionalVotes, req.Fee)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, poll)
}

// Trending 热门投票贴
func (s *PollHandler) Trending(c *gin.Context) {
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)
	if err != nil || limit <= 0 || limit > 100 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	polls, err := s.pollService.ListTrending(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, polls)
}

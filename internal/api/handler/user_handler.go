package handler

import (
	"Pollhive/internal/api/dto"
	"Pollhive/internal/pkg/redis"
	"Pollhive/internal/pkg/response"
	"Pollhive/internal/service"
	log "log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

const sessionTTL = 7 * 24 * time.Hour

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Register 创建用户并下发会话
func (s *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	user, err := s.userService.Register(c.Request.Context(), req.Username, req.Email)
	if err != nil {
		response.Error(c, err)
		return
	}

	sessionID := uuid.NewString()
	session := &redis.SessionData{UserID: user.UserID}
	if err := redis.SaveSession(c.Request.Context(), sessionID, session, sessionTTL); err != nil {
		log.ErrorContext(c.Request.Context(), "session save failed", "userID", user.UserID, "err", err)
		response.Error(c, service.UnExpectedError)
		return
	}

	response.Success(c, dto.RegisterResp{
		UserID:    user.UserID,
		SessionID: sessionID,
	})
}

// Payments 当前用户的支付流水
func (s *UserHandler) Payments(c *gin.Context) {
	userID := c.GetString("user_id")
	limit := parseLimit(c.DefaultQuery("limit", "50"))
	if limit <= 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	payments, err := s.userService.GetPayments(c.Request.Context(), userID, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, payments)
}

// GetProfile 当前登录用户的完整画像
func (s *UserHandler) GetProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	user, err := s.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	var resp dto.UserProfileResp
	if err := copier.Copy(&resp, user); err != nil {
		response.Error(c, service.UnExpectedError)
		return
	}
	response.Success(c, resp)
}

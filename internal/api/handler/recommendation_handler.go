package handler

import (
	"Pollhive/internal/pkg/response"
	"Pollhive/internal/service"

	"github.com/gin-gonic/gin"
)

type RecommendationHandler struct {
	recommendService service.RecommendService
}

func NewRecommendationHandler(recommendService service.RecommendService) *RecommendationHandler {
	return &RecommendationHandler{recommendService: recommendService}
}

// Get 当前用户的推荐列表，缓存优先
func (s *RecommendationHandler) Get(c *gin.Context) {
	userID := c.GetString("user_id")

	pollIDs, err := s.recommendService.GetRecommendations(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, pollIDs)
}

// Refresh 强制重算推荐，绕过缓存
func (s *RecommendationHandler) Refresh(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := s.recommendService.Refresh(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

package handler

import (
	"Pollhive/internal/api/dto"
	"Pollhive/internal/pkg/response"
	"Pollhive/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// Create 发表评论，情感分析异步回填
func (s *CommentHandler) Create(c *gin.Context) {
	pollID := c.Param("poll_id")
	if pollID == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID := c.GetString("user_id")

	var req dto.CreateCommentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	comment, err := s.commentService.CreateComment(c.Request.Context(), userID, pollID, req.Text, req.ParentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comment)
}

// List 指定投票贴的评论列表
func (s *CommentHandler) List(c *gin.Context) {
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

	comments, err := s.commentService.GetPollComments(c.Request.Context(), pollID, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comments)
}

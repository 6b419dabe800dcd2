package api

import "Pollhive/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	UserHandler           *handler.UserHandler
	PollHandler           *handler.PollHandler
	InteractionHandler    *handler.InteractionHandler
	CommentHandler        *handler.CommentHandler
	RecommendationHandler *handler.RecommendationHandler
	WsHandler             *handler.WsHandler
}

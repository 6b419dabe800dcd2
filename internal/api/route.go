package api

import (
	"Pollhive/internal/api/middleware"
	"Pollhive/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		userGroup := apiGroup.Group("/user")
		{
			userGroup.POST("/register", group.UserHandler.Register)

			authGroup := userGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.GET("/profile", group.UserHandler.GetProfile)
				authGroup.GET("/payments", group.UserHandler.Payments)
				authGroup.GET("/interactions", group.InteractionHandler.History)
				authGroup.GET("/recommendations", group.RecommendationHandler.Get)
				authGroup.POST("/recommendations/refresh", group.RecommendationHandler.Refresh)
			}
		}

		pollGroup := apiGroup.Group("/poll")
		{
			pollGroup.GET("/trending", group.PollHandler.Trending)
			pollGroup.GET("/:poll_id", group.PollHandler.GetPoll)
			pollGroup.GET("/:poll_id/comments", group.CommentHandler.List)
			pollGroup.GET("/:poll_id/activity", group.InteractionHandler.PollActivity)
			pollGroup.GET("/:poll_id/live", group.WsHandler.Live)

			authGroup := pollGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("", group.PollHandler.CreatePoll)
				authGroup.POST("/:poll_id/vote", group.PollHandler.CastVote)
				authGroup.POST("/:poll_id/extend", group.PollHandler.ExtendVotes)
				authGroup.POST("/:poll_id/comment", group.CommentHandler.Create)
			}
		}

		interactionGroup := apiGroup.Group("/interaction")
		interactionGroup.Use(middleware.AuthMiddleware())
		{
			interactionGroup.POST("", group.InteractionHandler.Record)
		}
	}

	return r
}

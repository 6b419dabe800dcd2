package handler

import (
	"Pollhive/internal/pkg/consts"
	"Pollhive/internal/pkg/redis"
	"context"
	log "log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WsHandler 投票实时推送。每个连接订阅一个投票贴的广播频道，
// 投票事务提交后发布的消息原样推给客户端。
type WsHandler struct{}

func NewWsHandler() *WsHandler {
	return &WsHandler{}
}

func (s *WsHandler) Live(c *gin.Context) {
	pollID := c.Param("poll_id")
	if pollID == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("WS 协议升级失败", "err", err)
		return
	}
	defer func() {
		_ = conn.Close()
	}()

	pubsub := redis.Subscribe(context.Background(), consts.PollLiveChannel+pollID)
	defer func() {
		_ = pubsub.Close()
	}()

	log.Info("投票直播连接已建立", "pollID", pollID)

	stopChan := make(chan struct{})

	// 读循环：监听客户端主动断开
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				close(stopChan)
				return
			}
		}
	}()

	// 写循环：监听 Redis 并推送至客户端
	redisCh := pubsub.Channel()
	for {
		select {
		case msg := <-redisCh:
			_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				log.Error("WS 推送失败", "pollID", pollID, "err", err)
				return
			}
		case <-stopChan:
			log.Info("投票直播连接已断开", "pollID", pollID)
			return
		}
	}
}

package redis

import (
	"Pollhive/internal/pkg/consts"
	"context"
	"time"

	"github.com/goccy/go-json"
)

// SessionData 会话层写入的载荷，这里只消费 user_id
type SessionData struct {
	UserID string `json:"user_id"`
}

// SaveSession 写入会话，TTL 到期自动失效
func SaveSession(ctx context.Context, sessionID string, data *SessionData, ttl time.Duration) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return SetWithExpiration(ctx, consts.SessionKey+sessionID, payload, ttl)
}

// GetSession 按 session_id 读取会话，不存在或已过期返回 nil
func GetSession(ctx context.Context, sessionID string) (*SessionData, error) {
	raw, err := GetValue(ctx, consts.SessionKey+sessionID)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}

	var data SessionData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, err
	}
	return &data, nil
}

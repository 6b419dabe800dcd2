package kafka

import (
	"Pollhive/internal/model"
	"errors"
	"time"

	"github.com/goccy/go-json"
)

// Event 两个主题共用的事件载荷
type Event struct {
	UserID     string `json:"userId"`
	PollID     string `json:"pollId"`
	ActionType string `json:"actionType"`
	Timestamp  string `json:"timestamp"`
}

var errInvalidEvent = errors.New("event missing required fields")

func unmarshalEvent(raw []byte) (*Event, error) {
	var event Event
	if err := json.Unmarshal(raw, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// Validate 校验必填字段，非法事件直接跳过，不会重试
func (e *Event) Validate() error {
	if e.UserID == "" || e.PollID == "" || e.ActionType == "" {
		return errInvalidEvent
	}
	if !model.ValidAction(e.ActionType) {
		return errInvalidEvent
	}
	return nil
}

// OccurredAt 解析事件时间戳，解析失败时退回当前时间
func (e *Event) OccurredAt() time.Time {
	ts, err := time.Parse(time.RFC3339, e.Timestamp)
	if err != nil {
		return time.Now().UTC()
	}
	return ts
}

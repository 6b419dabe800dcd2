package kafka

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventValidate(t *testing.T) {
	valid := Event{UserID: "u1", PollID: "p1", ActionType: "like", Timestamp: "2026-01-02T15:04:05Z"}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name  string
		event Event
	}{
		{"缺 userId", Event{PollID: "p1", ActionType: "like"}},
		{"缺 pollId", Event{UserID: "u1", ActionType: "like"}},
		{"缺 actionType", Event{UserID: "u1", PollID: "p1"}},
		{"非法动作", Event{UserID: "u1", PollID: "p1", ActionType: "share"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.event.Validate(), errInvalidEvent)
		})
	}
}

func TestUnmarshalEvent(t *testing.T) {
	raw := []byte(`{"userId":"u1","pollId":"p1","actionType":"vote","timestamp":"2026-01-02T15:04:05Z"}`)
	event, err := unmarshalEvent(raw)
	require.NoError(t, err)
	assert.Equal(t, "u1", event.UserID)
	assert.Equal(t, "p1", event.PollID)
	assert.Equal(t, "vote", event.ActionType)

	_, err = unmarshalEvent([]byte("not json"))
	assert.Error(t, err)
}

func TestEventOccurredAt(t *testing.T) {
	event := Event{Timestamp: "2026-01-02T15:04:05Z"}
	want := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)
	assert.True(t, event.OccurredAt().Equal(want))

	// 解析失败退回当前时间
	broken := Event{Timestamp: "yesterday"}
	got := broken.OccurredAt()
	assert.WithinDuration(t, time.Now().UTC(), got, 5*time.Second)
}

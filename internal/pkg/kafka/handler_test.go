package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeEngagementService struct {
	interactionCalls int
	preferenceCalls  int
	err              error
}

func (f *fakeEngagementService) ApplyUserInteraction(ctx context.Context, userID, pollID, action string, occurredAt time.Time) error {
	f.interactionCalls++
	return f.err
}

func (f *fakeEngagementService) ApplyPollPreference(ctx context.Context, userID, pollID, action string, occurredAt time.Time) error {
	f.preferenceCalls++
	return f.err
}

type fakeRecommendService struct {
	refreshed []string
}

func (f *fakeRecommendService) GetRecommendations(ctx context.Context, userID string) ([]string, error) {
	return nil, nil
}

func (f *fakeRecommendService) Refresh(ctx context.Context, userID string) error { return nil }

func (f *fakeRecommendService) RefreshAsync(userID string) {
	f.refreshed = append(f.refreshed, userID)
}

func TestInteractionsHandlerRefreshesRecommendations(t *testing.T) {
	engagement := &fakeEngagementService{}
	recommends := &fakeRecommendService{}
	h := NewInteractionsHandler(engagement, recommends)

	msg := testMessage(`{"userId":"u1","pollId":"p1","actionType":"view","timestamp":"2026-01-02T15:04:05Z"}`)
	err := h.handleMessage(context.Background(), msg)

	assert.NoError(t, err)
	assert.Equal(t, 1, engagement.interactionCalls)
	assert.Equal(t, []string{"u1"}, recommends.refreshed)
}

// 偏好主题提交成功后同样要触发该用户的推荐重算
func TestPreferencesHandlerRefreshesRecommendations(t *testing.T) {
	engagement := &fakeEngagementService{}
	recommends := &fakeRecommendService{}
	h := NewPreferencesHandler(engagement, recommends)

	msg := testMessage(`{"userId":"u2","pollId":"p1","actionType":"like","timestamp":"2026-01-02T15:04:05Z"}`)
	err := h.handleMessage(context.Background(), msg)

	assert.NoError(t, err)
	assert.Equal(t, 1, engagement.preferenceCalls)
	assert.Equal(t, []string{"u2"}, recommends.refreshed)
}

// 落库失败的事件不应触发重算
func TestPreferencesHandlerSkipsRefreshOnFailure(t *testing.T) {
	engagement := &fakeEngagementService{err: errors.New("txn aborted")}
	recommends := &fakeRecommendService{}
	h := NewPreferencesHandler(engagement, recommends)

	msg := testMessage(`{"userId":"u2","pollId":"p1","actionType":"like","timestamp":"2026-01-02T15:04:05Z"}`)
	err := h.handleMessage(context.Background(), msg)

	assert.Error(t, err)
	assert.Empty(t, recommends.refreshed)
}

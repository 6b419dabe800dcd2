package redis

import (
	"Pollhive/internal/pkg/consts"
	"context"
	"time"

	"github.com/goccy/go-json"
)

// CacheRecommendations 以 JSON 列表缓存用户推荐，带过期时间
func CacheRecommendations(ctx context.Context, userID string, pollIDs []string, ttl time.Duration) error {
	payload, err := json.Marshal(pollIDs)
	if err != nil {
		return err
	}
	return SetWithExpiration(ctx, consts.RecommendationKey+userID, payload, ttl)
}

// GetCachedRecommendations 读取推荐缓存，未命中返回 nil
func GetCachedRecommendations(ctx context.Context, userID string) ([]string, error) {
	raw, err := GetValue(ctx, consts.RecommendationKey+userID)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}

	var pollIDs []string
	if err := json.Unmarshal([]byte(raw), &pollIDs); err != nil {
		return nil, err
	}
	return pollIDs, nil
}

// DeleteCachedRecommendations 重新计算后删除旧缓存，保证下次读取触发重算
func DeleteCachedRecommendations(ctx context.Context, userID string) error {
	return DeleteKey(ctx, consts.RecommendationKey+userID)
}

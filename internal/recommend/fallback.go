package recommend

import (
	"Pollhive/internal/model"
	"Pollhive/internal/pkg/consts"
	"Pollhive/internal/pkg/redis"
	"Pollhive/internal/repository"
	"context"
	log "log/slog"
	"time"
)

// Fallback 兜底策略，按热门、最新、随机三段填充。
// 冷启动用户或个性化候选不足时使用，三段各占约三分之一，
// 随机段吸收前两段的余量。
type Fallback struct {
	pollRepo repository.PollRepo
}

func NewFallback(pollRepo repository.PollRepo) *Fallback {
	return &Fallback{pollRepo: pollRepo}
}

func (f *Fallback) Recommend(ctx context.Context, user *model.User, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}

	exclude := make(map[string]struct{})
	for _, id := range InteractedPollIDs(user) {
		exclude[id] = struct{}{}
	}

	third := n / 3
	var picked []string

	trending, err := f.trending(ctx, int64(n))
	if err != nil {
		log.WarnContext(ctx, "trending lookup failed", "err", err)
	}
	picked = appendDistinct(picked, trending, exclude, third)

	since := time.Now().AddDate(0, 0, -consts.RecentPollWindowDays)
	recent, err := f.pollRepo.RecentPolls(ctx, since, int64(n))
	if err != nil {
		log.WarnContext(ctx, "recent polls lookup failed", "err", err)
	}
	picked = appendDistinct(picked, pollIDs(recent), exclude, len(picked)+third)

	// 随机段补满剩余名额
	sampled, err := f.pollRepo.SamplePolls(ctx, setKeys(exclude), int64(n))
	if err != nil {
		log.WarnContext(ctx, "sample polls lookup failed", "err", err)
	}
	picked = appendDistinct(picked, pollIDs(sampled), exclude, n)

	return picked, nil
}

// trending 优先读定时任务预计算的榜单，未命中时退回实时查询
func (f *Fallback) trending(ctx context.Context, limit int64) ([]string, error) {
	cached, err := redis.GetList(ctx, consts.PollTrendingKey)
	if err == nil && len(cached) > 0 {
		return cached, nil
	}

	polls, err := f.pollRepo.TrendingPolls(ctx, limit)
	if err != nil {
		return nil, err
	}
	return pollIDs(polls), nil
}

// appendDistinct 追加候选直到 limit，跳过已排除与已选中的
func appendDistinct(dst, src []string, exclude map[string]struct{}, limit int) []string {
	for _, id := range src {
		if len(dst) >= limit {
			break
		}
		if _, ok := exclude[id]; ok {
			continue
		}
		exclude[id] = struct{}{}
		dst = append(dst, id)
	}
	return dst
}

func pollIDs(polls []*model.Poll) []string {
	ids := make([]string, 0, len(polls))
	for _, p := range polls {
		ids = append(ids, p.ID.Hex())
	}
	return ids
}

func setKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	return keys
}

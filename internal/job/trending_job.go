package job

import (
	"Pollhive/internal/pkg/consts"
	"Pollhive/internal/pkg/logger"
	"Pollhive/internal/pkg/redis"
	"Pollhive/internal/repository"
	"context"
	log "log/slog"

	"github.com/google/uuid"
)

const trendingListSize = 50

// TrendingJob 周期性预计算热门榜单写入 Redis，
// 兜底推荐读榜单而不是每次实时聚合
type TrendingJob struct {
	pollRepo repository.PollRepo
}

func NewTrendingJob(pollRepo repository.PollRepo) *TrendingJob {
	return &TrendingJob{pollRepo: pollRepo}
}

func (s *TrendingJob) Run() {
	traceID := "job-trending-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	polls, err := s.pollRepo.TrendingPolls(ctx, trendingListSize)
	if err != nil {
		log.ErrorContext(ctx, "trending polls query error", "err", err)
		return
	}
	if len(polls) == 0 {
		log.InfoContext(ctx, "no active polls, trending list unchanged")
		return
	}

	ids := make([]string, 0, len(polls))
	for _, p := range polls {
		ids = append(ids, p.ID.Hex())
	}

	if err := redis.SetList(ctx, consts.PollTrendingKey, ids); err != nil {
		log.ErrorContext(ctx, "trending list write error", "err", err)
		return
	}

	log.InfoContext(ctx, "trending list refreshed", "count", len(ids))
}

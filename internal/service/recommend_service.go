package service

import (
	"Pollhive/internal/api/config"
	"Pollhive/internal/pkg/redis"
	"Pollhive/internal/pkg/worker"
	"Pollhive/internal/recommend"
	"Pollhive/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

// RecommendService 推荐读写入口。
// 读走缓存，未命中时同步计算一次；事件消费成功后触发异步重算。
type RecommendService interface {
	GetRecommendations(ctx context.Context, userID string) ([]string, error)
	Refresh(ctx context.Context, userID string) error
	RefreshAsync(userID string)
}

type recommendServiceImpl struct {
	userRepo repository.UserRepo
	engine   *recommend.Hybrid
	pool     *worker.Pool
	topN     int
	cacheTTL time.Duration
}

func NewRecommendService(
	cfg *config.Config,
	userRepo repository.UserRepo,
	engine *recommend.Hybrid,
	pool *worker.Pool,
) RecommendService {
	return &recommendServiceImpl{
		userRepo: userRepo,
		engine:   engine,
		pool:     pool,
		topN:     cfg.Recommend.TopN,
		cacheTTL: time.Duration(cfg.Recommend.CacheTTL) * time.Second,
	}
}

func (s *recommendServiceImpl) GetRecommendations(ctx context.Context, userID string) ([]string, error) {
	if userID == "" {
		return nil, ErrParamInvalid
	}

	cached, err := redis.GetCachedRecommendations(ctx, userID)
	if err != nil {
		log.WarnContext(ctx, "recommendation cache read failed", "userID", userID, "err", err)
	}
	if len(cached) > 0 {
		return cached, nil
	}

	return s.recompute(ctx, userID)
}

// Refresh 同步重算并回写，消费端与后台任务共用
func (s *recommendServiceImpl) Refresh(ctx context.Context, userID string) error {
	_, err := s.recompute(ctx, userID)
	return err
}

// RefreshAsync 异步触发重算，调用方不关心结果
func (s *recommendServiceImpl) RefreshAsync(userID string) {
	s.pool.Submit(worker.Task{
		Name:     "recommend:" + userID,
		Attempts: 2,
		Run: func(ctx context.Context) error {
			return s.Refresh(ctx, userID)
		},
	})
}

// recompute 生成新列表、落库快照、重建缓存。
// 旧缓存先失效再写入，避免读到中间状态。
// 未知用户不报错，降级为纯兜底结果且不落快照。
func (s *recommendServiceImpl) recompute(ctx context.Context, userID string) ([]string, error) {
	user, err := s.userRepo.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	pollIDs, err := s.engine.Generate(ctx, user, s.topN)
	if err != nil {
		return nil, err
	}

	if user != nil {
		now := time.Now().UTC()
		if err := s.userRepo.UpdateRecommendations(ctx, userID, pollIDs, now); err != nil {
			log.ErrorContext(ctx, "recommendation snapshot write failed", "userID", userID, "err", err)
		}
	}

	if err := redis.DeleteCachedRecommendations(ctx, userID); err != nil {
		log.WarnContext(ctx, "recommendation cache invalidate failed", "userID", userID, "err", err)
	}
	if len(pollIDs) > 0 {
		if err := redis.CacheRecommendations(ctx, userID, pollIDs, s.cacheTTL); err != nil {
			log.WarnContext(ctx, "recommendation cache write failed", "userID", userID, "err", err)
		}
	}

	log.InfoContext(ctx, "recommendations recomputed", "userID", userID, "count", len(pollIDs))
	return pollIDs, nil
}

package recommend

import (
	"Pollhive/internal/model"
	"context"
	log "log/slog"
)

// Strategy 单一推荐策略，返回不超过 n 条候选
type Strategy interface {
	Recommend(ctx context.Context, user *model.User, n int) ([]string, error)
}

// Hybrid 混合推荐。协同过滤与内容推荐的结果做浅合并去重，
// 不足时由兜底策略补满到 n 条。
type Hybrid struct {
	collaborative Strategy
	contentBased  Strategy
	fallback      Strategy
}

func NewHybrid(collaborative, contentBased, fallback Strategy) *Hybrid {
	return &Hybrid{
		collaborative: collaborative,
		contentBased:  contentBased,
		fallback:      fallback,
	}
}

// Generate 生成最多 n 条推荐。单一策略失败只降级不中断，
// 三路全空时返回空列表而不是错误。
// user 为 nil 表示未知用户，直接走兜底策略。
func (h *Hybrid) Generate(ctx context.Context, user *model.User, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}

	if user == nil {
		return h.fallback.Recommend(ctx, nil, n)
	}

	cf, err := h.collaborative.Recommend(ctx, user, n)
	if err != nil {
		log.WarnContext(ctx, "collaborative strategy failed", "userID", user.UserID, "err", err)
	}

	cbf, err := h.contentBased.Recommend(ctx, user, n)
	if err != nil {
		log.WarnContext(ctx, "content based strategy failed", "userID", user.UserID, "err", err)
	}

	merged := Merge(cf, cbf, n)

	// 兜底只按缺口数量请求，冷门热门随机的配比落在缺口上
	if shortfall := n - len(merged); shortfall > 0 {
		padding, err := h.fallback.Recommend(ctx, user, shortfall)
		if err != nil {
			log.WarnContext(ctx, "fallback strategy failed", "userID", user.UserID, "err", err)
		}
		merged = pad(merged, padding, n)
	}

	return merged, nil
}

// Merge 浅合并：保序拼接去重，截断到 limit
func Merge(primary, secondary []string, limit int) []string {
	seen := make(map[string]struct{}, limit)
	merged := make([]string, 0, limit)

	for _, list := range [][]string{primary, secondary} {
		for _, id := range list {
			if len(merged) >= limit {
				return merged
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			merged = append(merged, id)
		}
	}
	return merged
}

func pad(merged, padding []string, limit int) []string {
	seen := make(map[string]struct{}, len(merged))
	for _, id := range merged {
		seen[id] = struct{}{}
	}

	for _, id := range padding {
		if len(merged) >= limit {
			break
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		merged = append(merged, id)
	}
	return merged
}

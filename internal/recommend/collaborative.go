package recommend

import (
	"Pollhive/internal/model"
	"Pollhive/internal/repository"
	"context"
	log "log/slog"
	"sort"
)

// 相似用户候选集上限，控制单次重算的查询开销
const maxNeighbors = 50

// Collaborative 基于用户的协同过滤。
// 以正向交互集合的交并比衡量用户相似度，
// 候选分值为推荐该贴的相似用户的相似度之和。
type Collaborative struct {
	userRepo repository.UserRepo
}

func NewCollaborative(userRepo repository.UserRepo) *Collaborative {
	return &Collaborative{userRepo: userRepo}
}

func (c *Collaborative) Recommend(ctx context.Context, user *model.User, n int) ([]string, error) {
	positives := PositivePollIDs(user)
	if len(positives) == 0 {
		return nil, nil
	}

	neighbors, err := c.userRepo.FindUsersByInteractedPolls(ctx, positives, user.UserID, maxNeighbors)
	if err != nil {
		return nil, err
	}
	if len(neighbors) == 0 {
		return nil, nil
	}

	interacted := make(map[string]struct{})
	for _, id := range InteractedPollIDs(user) {
		interacted[id] = struct{}{}
	}

	scores := make(map[string]float64)
	for _, neighbor := range neighbors {
		sim := Jaccard(positives, PositivePollIDs(neighbor))
		if sim == 0 {
			continue
		}
		for _, pollID := range PositivePollIDs(neighbor) {
			if _, ok := interacted[pollID]; ok {
				continue
			}
			scores[pollID] += sim
		}
	}

	ranked := rankByScore(scores)
	if len(ranked) > n {
		ranked = ranked[:n]
	}

	log.DebugContext(ctx, "collaborative candidates",
		"userID", user.UserID, "neighbors", len(neighbors), "candidates", len(ranked))
	return ranked, nil
}

// rankByScore 按分值降序排序，同分时按 ID 保证结果稳定
func rankByScore(scores map[string]float64) []string {
	ids := make([]string, 0, len(scores))
	for id := range scores {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if scores[ids[i]] != scores[ids[j]] {
			return scores[ids[i]] > scores[ids[j]]
		}
		return ids[i] < ids[j]
	})
	return ids
}

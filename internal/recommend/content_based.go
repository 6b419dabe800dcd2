package recommend

import (
	"Pollhive/internal/model"
	"Pollhive/internal/repository"
	"context"
	log "log/slog"
)

// 候选池规模，比最终条数大一圈留出排序余地
const candidatePoolSize = 100

// ContentBased 基于内容的推荐。
// 用户画像优先由兴趣主题向量化得到，
// 没有主题时退化为正向交互投票贴特征向量的均值，
// 候选按与画像的余弦相似度排序。
type ContentBased struct {
	pollRepo repository.PollRepo
}

func NewContentBased(pollRepo repository.PollRepo) *ContentBased {
	return &ContentBased{pollRepo: pollRepo}
}

func (c *ContentBased) Recommend(ctx context.Context, user *model.User, n int) ([]string, error) {
	profile, err := c.buildProfile(ctx, user)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, nil
	}

	interacted := InteractedPollIDs(user)
	candidates, err := c.pollRepo.ActivePolls(ctx, interacted, candidatePoolSize)
	if err != nil {
		return nil, err
	}

	scores := make(map[string]float64, len(candidates))
	for _, poll := range candidates {
		if len(poll.FeatureVector) == 0 {
			continue
		}
		if sim := Cosine(profile, poll.FeatureVector); sim > 0 {
			scores[poll.ID.Hex()] = sim
		}
	}

	ranked := rankByScore(scores)
	if len(ranked) > n {
		ranked = ranked[:n]
	}

	log.DebugContext(ctx, "content based candidates",
		"userID", user.UserID, "pool", len(candidates), "candidates", len(ranked))
	return ranked, nil
}

// buildProfile 画像向量，主题和正向交互都为空时返回 nil
func (c *ContentBased) buildProfile(ctx context.Context, user *model.User) ([]float64, error) {
	if len(user.InterestedTopics) > 0 {
		return BuildVector("", "", user.InterestedTopics), nil
	}

	positives := PositivePollIDs(user)
	if len(positives) == 0 {
		return nil, nil
	}

	polls, err := c.pollRepo.GetPollsByIDs(ctx, positives)
	if err != nil {
		return nil, err
	}

	profile := make([]float64, FeatureDim)
	var count int
	for _, poll := range polls {
		if len(poll.FeatureVector) != FeatureDim {
			continue
		}
		for i, v := range poll.FeatureVector {
			profile[i] += v
		}
		count++
	}
	if count == 0 {
		return nil, nil
	}

	for i := range profile {
		profile[i] /= float64(count)
	}
	return profile, nil
}

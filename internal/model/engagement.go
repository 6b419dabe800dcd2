package model

// 动作 → 活跃度分值。like/dislike 的增量与迁移相关，见 ScoreDelta
const (
	weightView    = 0.5
	weightClick   = 1.0
	weightVote    = 2.0
	weightComment = 3.0
	weightLike    = 1.5
	weightDislike = 0.5
)

func preferenceWeight(state PreferenceState) float64 {
	switch state {
	case PrefLiked:
		return weightLike
	case PrefDisliked:
		return weightDislike
	default:
		return 0
	}
}

// ScoreDelta 计算一次动作对用户 engagement_score 的增量。
// like/dislike/neutral 按 weight(new) - weight(old) 计算，
// 例如 disliked → liked 同时撤销 dislike 分值并应用 like 分值。
func ScoreDelta(action string, state PreferenceState) float64 {
	switch action {
	case ActionView:
		return weightView
	case ActionClick:
		return weightClick
	case ActionVote:
		return weightVote
	case ActionComment:
		return weightComment
	case ActionLike, ActionDislike, ActionNeutral:
		_, next, changed := TransitionPreference(state, action)
		if !changed {
			return 0
		}
		return preferenceWeight(next) - preferenceWeight(state)
	}
	return 0
}

// ApplyEngagement 纯内存版的计数器变更，与仓储层的 Mongo 更新语义一致：
// view/click/vote/comment 自增；like/dislike 自增目标并清零对侧；neutral 两侧清零。
func ApplyEngagement(m *EngagementMetrics, action string) {
	switch action {
	case ActionView:
		m.Views++
	case ActionClick:
		m.Clicks++
	case ActionVote:
		m.Votes++
	case ActionComment:
		m.Comments++
	case ActionLike:
		m.Likes++
		m.Dislikes = 0
	case ActionDislike:
		m.Dislikes++
		m.Likes = 0
	case ActionNeutral:
		m.Likes = 0
		m.Dislikes = 0
	}
}

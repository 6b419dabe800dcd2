package recommend

import "Pollhive/internal/model"

// InteractedPollIDs 用户已交互过的全部投票贴 ID，去重。
// 各策略用它做候选排除，保证不会推荐用户已见过的内容。
// 匿名或未知用户传 nil，视为无历史。
func InteractedPollIDs(user *model.User) []string {
	if user == nil {
		return nil
	}

	seen := make(map[string]struct{})
	var ids []string

	add := func(id string) {
		if id == "" {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	for _, v := range user.VotesCast {
		add(v.PollID)
	}
	for _, id := range user.LikedPolls {
		add(id)
	}
	for _, id := range user.DislikedPolls {
		add(id)
	}
	for _, rec := range user.InteractionHistory {
		add(rec.PollID)
	}
	return ids
}

// PositivePollIDs 用户正向交互过的投票贴，作为偏好画像的来源
func PositivePollIDs(user *model.User) []string {
	if user == nil {
		return nil
	}

	seen := make(map[string]struct{})
	var ids []string

	add := func(id string) {
		if id == "" {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	for _, id := range user.LikedPolls {
		add(id)
	}
	for _, v := range user.VotesCast {
		add(v.PollID)
	}
	return ids
}

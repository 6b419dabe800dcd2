package model

// PreferenceState 用户对单个投票贴的偏好状态，三态互斥
type PreferenceState int

const (
	PrefNeutral PreferenceState = iota
	PrefLiked
	PrefDisliked
)

func (s PreferenceState) String() string {
	switch s {
	case PrefLiked:
		return "liked"
	case PrefDisliked:
		return "disliked"
	default:
		return "neutral"
	}
}

// PrefChange 一次偏好变更需要对两个集合执行的操作，
// 由仓储层翻译为单条原子更新（$pull 对侧 + $addToSet 目标侧）
type PrefChange struct {
	AddLiked       bool
	RemoveLiked    bool
	AddDisliked    bool
	RemoveDisliked bool
}

// PreferenceOf 根据集合成员关系还原当前状态
func PreferenceOf(liked, disliked bool) PreferenceState {
	switch {
	case liked:
		return PrefLiked
	case disliked:
		return PrefDisliked
	default:
		return PrefNeutral
	}
}

// TransitionPreference 计算状态迁移。
// 自迁移（已 liked 再收到 like）返回 changed=false，调用方可忽略。
func TransitionPreference(state PreferenceState, action string) (PrefChange, PreferenceState, bool) {
	var c PrefChange
	switch action {
	case ActionLike:
		if state == PrefLiked {
			return c, state, false
		}
		c.AddLiked = true
		c.RemoveDisliked = state == PrefDisliked
		return c, PrefLiked, true
	case ActionDislike:
		if state == PrefDisliked {
			return c, state, false
		}
		c.AddDisliked = true
		c.RemoveLiked = state == PrefLiked
		return c, PrefDisliked, true
	case ActionNeutral:
		if state == PrefNeutral {
			return c, state, false
		}
		c.RemoveLiked = state == PrefLiked
		c.RemoveDisliked = state == PrefDisliked
		return c, PrefNeutral, true
	}
	return c, state, false
}

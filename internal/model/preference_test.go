package model

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionPreference(t *testing.T) {
	tests := []struct {
		name        string
		state       PreferenceState
		action      string
		wantState   PreferenceState
		wantChanged bool
		wantChange  PrefChange
	}{
		{
			name:        "中性点赞",
			state:       PrefNeutral,
			action:      ActionLike,
			wantState:   PrefLiked,
			wantChanged: true,
			wantChange:  PrefChange{AddLiked: true},
		},
		{
			name:        "点踩翻转为点赞",
			state:       PrefDisliked,
			action:      ActionLike,
			wantState:   PrefLiked,
			wantChanged: true,
			wantChange:  PrefChange{AddLiked: true, RemoveDisliked: true},
		},
		{
			name:        "点赞翻转为点踩",
			state:       PrefLiked,
			action:      ActionDislike,
			wantState:   PrefDisliked,
			wantChanged: true,
			wantChange:  PrefChange{AddDisliked: true, RemoveLiked: true},
		},
		{
			name:        "点赞转中性",
			state:       PrefLiked,
			action:      ActionNeutral,
			wantState:   PrefNeutral,
			wantChanged: true,
			wantChange:  PrefChange{RemoveLiked: true},
		},
		{
			name:        "重复点赞不变",
			state:       PrefLiked,
			action:      ActionLike,
			wantState:   PrefLiked,
			wantChanged: false,
		},
		{
			name:        "重复点踩不变",
			state:       PrefDisliked,
			action:      ActionDislike,
			wantState:   PrefDisliked,
			wantChanged: false,
		},
		{
			name:        "中性重复中性不变",
			state:       PrefNeutral,
			action:      ActionNeutral,
			wantState:   PrefNeutral,
			wantChanged: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			change, next, changed := TransitionPreference(tt.state, tt.action)
			assert.Equal(t, tt.wantState, next)
			assert.Equal(t, tt.wantChanged, changed)
			assert.Equal(t, tt.wantChange, change)
		})
	}
}

// 任意动作序列后两个集合保持互斥
func TestPreferenceMutualExclusion(t *testing.T) {
	actions := []string{ActionLike, ActionDislike, ActionNeutral}
	rng := rand.New(rand.NewSource(1))

	for round := 0; round < 100; round++ {
		var liked, disliked bool
		state := PrefNeutral

		for step := 0; step < 50; step++ {
			action := actions[rng.Intn(len(actions))]
			change, next, changed := TransitionPreference(state, action)
			if !changed {
				continue
			}

			if change.RemoveLiked {
				liked = false
			}
			if change.RemoveDisliked {
				disliked = false
			}
			if change.AddLiked {
				liked = true
			}
			if change.AddDisliked {
				disliked = true
			}

			require.False(t, liked && disliked, "集合互斥被破坏: round=%d step=%d action=%s", round, step, action)
			require.Equal(t, next, PreferenceOf(liked, disliked))
			state = next
		}
	}
}

// 变更与目标状态一致：AddLiked 必达 liked，AddDisliked 必达 disliked
func TestTransitionChangeMatchesState(t *testing.T) {
	states := []PreferenceState{PrefNeutral, PrefLiked, PrefDisliked}
	actions := []string{ActionLike, ActionDislike, ActionNeutral}

	for _, state := range states {
		for _, action := range actions {
			change, next, changed := TransitionPreference(state, action)
			if !changed {
				assert.Equal(t, state, next)
				assert.Equal(t, PrefChange{}, change)
				continue
			}
			assert.False(t, change.AddLiked && change.AddDisliked)
			if change.AddLiked {
				assert.Equal(t, PrefLiked, next)
			}
			if change.AddDisliked {
				assert.Equal(t, PrefDisliked, next)
			}
		}
	}
}

func TestPreferenceOf(t *testing.T) {
	assert.Equal(t, PrefLiked, PreferenceOf(true, false))
	assert.Equal(t, PrefDisliked, PreferenceOf(false, true))
	assert.Equal(t, PrefNeutral, PreferenceOf(false, false))
}

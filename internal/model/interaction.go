package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ActionView    = "view"
	ActionClick   = "click"
	ActionVote    = "vote"
	ActionComment = "comment"
	ActionLike    = "like"
	ActionDislike = "dislike"
	ActionNeutral = "neutral"
)

// ValidAction 事件允许的全部动作类型
func ValidAction(action string) bool {
	switch action {
	case ActionView, ActionClick, ActionVote, ActionComment,
		ActionLike, ActionDislike, ActionNeutral:
		return true
	}
	return false
}

// IsPreferenceAction like/dislike/neutral 才会驱动偏好状态机
func IsPreferenceAction(action string) bool {
	switch action {
	case ActionLike, ActionDislike, ActionNeutral:
		return true
	}
	return false
}

// InteractionEvent 不可变交互日志，只插入，不更新不删除
type InteractionEvent struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     string             `bson:"user_id" json:"userId"`
	PollID     string             `bson:"poll_id" json:"pollId"`
	ActionType string             `bson:"action_type" json:"actionType"`
	Timestamp  time.Time          `bson:"timestamp" json:"timestamp"`
}

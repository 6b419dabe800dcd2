package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VoteRecord 用户投票记录，每个 pollId 至多一条，是"是否已投票"的权威依据
type VoteRecord struct {
	PollID   string    `bson:"poll_id" json:"pollId"`
	OptionID string    `bson:"option_id" json:"optionId"`
	VotedAt  time.Time `bson:"voted_at" json:"votedAt"`
}

// InteractionRecord 用户维度的交互历史条目，只追加不修改
type InteractionRecord struct {
	PollID     string    `bson:"poll_id" json:"pollId"`
	ActionType string    `bson:"action_type" json:"actionType"`
	OccurredAt time.Time `bson:"occurred_at" json:"occurredAt"`
}

type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID   string             `bson:"user_id" json:"userId"`
	Username string             `bson:"username" json:"username"`
	Email    string             `bson:"email,omitempty" json:"email"`

	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
	PollsCreated []string  `bson:"polls_created,omitempty" json:"pollsCreated"`

	VotesCast []VoteRecord `bson:"votes_cast,omitempty" json:"votesCast"`

	// liked_polls 与 disliked_polls 互斥，同一 pollId 不会同时出现在两个集合
	LikedPolls    []string `bson:"liked_polls,omitempty" json:"likedPolls"`
	DislikedPolls []string `bson:"disliked_polls,omitempty" json:"dislikedPolls"`

	InterestedTopics   []string            `bson:"interested_topics,omitempty" json:"interestedTopics"`
	InteractionHistory []InteractionRecord `bson:"interaction_history,omitempty" json:"interactionHistory"`
	EngagementScore    float64             `bson:"engagement_score" json:"engagementScore"`

	Comments []string `bson:"comments,omitempty" json:"comments"`
	Payments []string `bson:"payments,omitempty" json:"-"`

	// 最近一次异步刷新的推荐结果，读取方容忍过期
	Recommendations []string  `bson:"recommendation_vector,omitempty" json:"recommendations"`
	RecommendedAt   time.Time `bson:"recommended_at,omitempty" json:"recommendedAt"`
}

// HasVoted 是否已对指定投票贴投过票
func (u *User) HasVoted(pollID string) bool {
	for _, v := range u.VotesCast {
		if v.PollID == pollID {
			return true
		}
	}
	return false
}

package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PollOption 投票选项，OptionID 在创建时生成
type PollOption struct {
	OptionID  primitive.ObjectID `bson:"option_id" json:"optionId"`
	Text      string             `bson:"text" json:"text"`
	VoteCount int64              `bson:"vote_count" json:"voteCount"`
}

// EngagementMetrics 投票贴的聚合计数器
// likes/dislikes 为 last-writer-wins 聚合值，与用户侧集合分开维护
type EngagementMetrics struct {
	Views    int64 `bson:"views" json:"views"`
	Clicks   int64 `bson:"clicks" json:"clicks"`
	Votes    int64 `bson:"votes" json:"votes"`
	Comments int64 `bson:"comments" json:"comments"`
	Likes    int64 `bson:"likes" json:"likes"`
	Dislikes int64 `bson:"dislikes" json:"dislikes"`
}

type Poll struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Topics      []string           `bson:"topics" json:"topics"`
	Options     []PollOption       `bson:"options" json:"options"`
	CreatedBy   string             `bson:"created_by" json:"createdBy"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	ExpiresAt   *time.Time         `bson:"expires_at,omitempty" json:"expiresAt"`
	Visibility  string             `bson:"visibility" json:"visibility"`

	// currentVotes 达到 requiredVotes 时 is_active 翻转为 false，
	// 仅在扩票后重新激活
	IsActive      bool  `bson:"is_active" json:"isActive"`
	TotalVotes    int64 `bson:"total_votes" json:"totalVotes"`
	CurrentVotes  int64 `bson:"current_votes" json:"currentVotes"`
	RequiredVotes int64 `bson:"required_votes" json:"requiredVotes"`

	Engagement EngagementMetrics `bson:"engagement_metrics" json:"engagementMetrics"`

	// FeatureVector 创建时由标题/描述/话题预计算，供内容推荐使用
	FeatureVector []float64 `bson:"feature_vector,omitempty" json:"-"`

	Comments       []string `bson:"comments,omitempty" json:"comments"`
	LinkedPayments []string `bson:"linked_payments,omitempty" json:"-"`

	RequiresPaymentForVoting   bool    `bson:"requires_payment_for_voting" json:"requiresPaymentForVoting"`
	PaymentAmountForVoting     float64 `bson:"payment_amount_for_voting" json:"paymentAmountForVoting"`
	RequiresPaymentForCreation bool    `bson:"requires_payment_for_creation" json:"requiresPaymentForCreation"`
	PaymentAmountForCreation   float64 `bson:"payment_amount_for_creation" json:"paymentAmountForCreation"`
}

package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 情感分析的终态标签，分析全部失败时写入 error
const (
	SentimentPending = "pending"
	SentimentError   = "error"
)

type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"user_id" json:"userId"`
	PollID    string             `bson:"poll_id" json:"pollId"`
	Text      string             `bson:"text" json:"text"`
	ParentID  string             `bson:"parent_id,omitempty" json:"parentId"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`

	// 情感字段由后台任务异步回写
	SentimentScore *float64 `bson:"sentiment_score,omitempty" json:"sentimentScore"`
	SentimentLabel string   `bson:"sentiment_label" json:"sentimentLabel"`
}

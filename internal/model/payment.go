package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	PaymentTypeCreation      = "creation"
	PaymentTypeVoting        = "voting"
	PaymentTypeVoteExtension = "vote_extension"

	PaymentStatusCompleted = "completed"
)

type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        string             `bson:"user_id" json:"userId"`
	PollID        string             `bson:"poll_id" json:"pollId"`
	Amount        float64            `bson:"amount" json:"amount"`
	PaymentType   string             `bson:"payment_type" json:"paymentType"`
	TransactionID string             `bson:"transaction_id,omitempty" json:"transactionId"`
	Status        string             `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
}

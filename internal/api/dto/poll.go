package dto

import "time"

type CreatePollReq struct {
	Title         string     `json:"title" binding:"required,max=200"`
	Description   string     `json:"description" binding:"max=2000"`
	Topics        []string   `json:"topics" binding:"max=10"`
	Options       []string   `json:"options" binding:"required,min=2,max=20,dive,required"`
	RequiredVotes int64      `json:"requiredVotes" binding:"gte=0"`
	ExpiresAt     *time.Time `json:"expiresAt"`
	Visibility    string     `json:"visibility" binding:"omitempty,oneof=public private"`

	RequiresPaymentForVoting bool    `json:"requiresPaymentForVoting"`
	PaymentAmountForVoting   float64 `json:"paymentAmountForVoting" binding:"gte=0"`
	CreationFee              float64 `json:"creationFee" binding:"gte=0"`
}

type ExtendVotesReq struct {
	AdditionalVotes int64   `json:"additionalVotes" binding:"required,gt=0"`
	Fee             float64 `json:"fee" binding:"gte=0"`
}

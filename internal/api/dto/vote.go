package dto

type CastVoteReq struct {
	OptionID string `json:"optionId" binding:"required"`
	// 付费投票时由支付层回传的交易号，可选
	PaymentID string `json:"paymentId"`
}

package dto

type RecordInteractionReq struct {
	PollID string `json:"pollId" binding:"required"`
	Action string `json:"action" binding:"required,oneof=view click like dislike neutral"`
}

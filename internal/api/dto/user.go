package dto

type RegisterReq struct {
	Username string `json:"username" binding:"required,min=2,max=32"`
	Email    string `json:"email" binding:"omitempty,email"`
}

type RegisterResp struct {
	UserID    string `json:"userId"`
	SessionID string `json:"sessionId"`
}

// UserProfileResp 对外画像，不暴露支付与推荐快照等内部字段
type UserProfileResp struct {
	UserID           string   `json:"userId"`
	Username         string   `json:"username"`
	LikedPolls       []string `json:"likedPolls"`
	DislikedPolls    []string `json:"dislikedPolls"`
	InterestedTopics []string `json:"interestedTopics"`
	EngagementScore  float64  `json:"engagementScore"`
	PollsCreated     []string `json:"pollsCreated"`
}

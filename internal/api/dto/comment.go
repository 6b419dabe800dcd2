package dto

type CreateCommentReq struct {
	Text     string `json:"text" binding:"required,max=1000"`
	ParentID string `json:"parentId"`
}

package dto

// PostRequest is the create/edit form body. Group is a group id or empty.
type PostRequest struct {
	Text  string `form:"text"`
	Group string `form:"group"`
}

type CreateGroupRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Slug        string `json:"slug" binding:"required,max=100"`
	Description string `json:"description"`
}

type LoginRequest struct {
	Username string `form:"username"`
	Password string `form:"password"`
	Next     string `form:"next"`
}

type SignUpRequest struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

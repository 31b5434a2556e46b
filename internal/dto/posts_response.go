package dto

import "github.com/yatube/post-service/internal/model"

type GetPost struct {
	Post     model.FullPost `json:"post"`
	IsAuthor bool           `json:"is_author"`
}

package model

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID        int64     `json:"id"`
	AuthorID  uuid.UUID `json:"author_id"`
	GroupID   *int64    `json:"group_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type FullPost struct {
	Post   Post       `json:"post"`
	Author PostAuthor `json:"author"`
	Group  *Group     `json:"group"`
}

// PostFilter narrows a post listing. Nil fields are not applied.
type PostFilter struct {
	GroupID  *int64
	AuthorID *uuid.UUID
}

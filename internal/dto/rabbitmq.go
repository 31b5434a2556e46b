package dto

import (
	"time"

	"github.com/google/uuid"
)

type MQPostCreatedMsg struct {
	PostID    int64     `json:"post_id"`
	UserID    uuid.UUID `json:"user_id"`
	GroupID   *int64    `json:"group_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

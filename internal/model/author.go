package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser  = "user"
	RoleMod   = "mod"
	RoleAdmin = "admin"
)

type Author struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

func (a *Author) IsStaff() bool {
	return a.Role == RoleMod || a.Role == RoleAdmin
}

type PostAuthor struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

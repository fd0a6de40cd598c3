package models

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Keyword   string    `json:"keyword"`
	Theme     string    `json:"theme"`
	Mode      string    `json:"mode"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Generation log status enums. Exactly one log row exists per attempt that
// reached the debit step; pre-debit failures write nothing.
const (
	GenerationStatusSuccess  = "success"
	GenerationStatusRefunded = "refunded"
)

type GenerationLog struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	Keyword      string    `json:"keyword"`
	Theme        string    `json:"theme"`
	VoltsCharged int       `json:"volts_charged"`
	Status       string    `json:"status"`
	ErrorDetail  *string   `json:"error_detail,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Volt ledger entry_type enums.
const (
	VoltEntryGenerationCharge = "generation_charge"
	VoltEntryGenerationRefund = "generation_refund"
	VoltEntryAdminGrant       = "admin_grant"
	VoltEntrySignupBonus      = "signup_bonus"
)

// SignupBonusVolts is granted once at registration.
const SignupBonusVolts = 30

type VoltEntry struct {
	ID           uuid.UUID  `json:"id"`
	UserID       uuid.UUID  `json:"user_id"`
	AttemptID    *uuid.UUID `json:"attempt_id,omitempty"`
	EntryType    string     `json:"entry_type"`
	Amount       int        `json:"amount"`
	BalanceAfter *int       `json:"balance_after,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

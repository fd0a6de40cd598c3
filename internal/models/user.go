package models

import (
	"time"

	"github.com/google/uuid"
)

// User grade enums. Grade drives the daily generation quota.
const (
	GradeFree  = "free"
	GradePro   = "pro"
	GradeAdmin = "admin"
)

// Daily generation limits per grade.
const (
	MaxDailyFree  = 3
	MaxDailyPro   = 30
	MaxDailyAdmin = 1000
)

type User struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	DisplayName   string    `json:"display_name"`
	PasswordHash  string    `json:"-"`
	Grade         string    `json:"grade"`
	Volts         int       `json:"volts"`
	DailyCount    int       `json:"daily_count"`
	MaxDailyCount int       `json:"max_daily_count"`
	BlogURL       string    `json:"blog_url"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// MaxDailyForGrade returns the daily generation limit for a grade.
// Unknown grades fall back to the free tier.
func MaxDailyForGrade(grade string) int {
	switch grade {
	case GradePro:
		return MaxDailyPro
	case GradeAdmin:
		return MaxDailyAdmin
	default:
		return MaxDailyFree
	}
}

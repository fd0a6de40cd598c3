package account

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/blogvolt/backend/internal/auth"
	"github.com/blogvolt/backend/internal/middleware"
	"github.com/blogvolt/backend/internal/models"
)

// ProfileStore updates and re-reads the user's own record.
type ProfileStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, displayName, blogURL string) error
}

// LedgerReader lists the user's volt movements.
type LedgerReader interface {
	Entries(ctx context.Context, userID uuid.UUID) ([]*models.VoltEntry, error)
}

type Handler struct {
	users  ProfileStore
	ledger LedgerReader
	log    *slog.Logger
}

func NewHandler(users ProfileStore, ledger LedgerReader, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{users: users, ledger: ledger, log: log}
}

// GetMe handles GET /api/v1/account/me.
func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromCtx(r.Context())
	if user == nil {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, auth.UserToResponse(user))
}

type updateSettingsRequest struct {
	DisplayName string `json:"display_name"`
	BlogURL     string `json:"blog_url"`
}

// UpdateSettings handles PATCH /api/v1/account/settings. Empty fields keep their
// current value.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromCtx(r.Context())
	if user == nil {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}
	var req updateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		displayName = user.DisplayName
	}
	blogURL := strings.TrimSpace(req.BlogURL)
	if blogURL == "" {
		blogURL = user.BlogURL
	}

	if err := h.users.UpdateProfile(r.Context(), user.ID, displayName, blogURL); err != nil {
		h.log.Error("update settings failed", "user_id", user.ID, "error", err)
		http.Error(w, "updating settings failed", http.StatusInternalServerError)
		return
	}
	updated, err := h.users.GetByID(r.Context(), user.ID)
	if err != nil || updated == nil {
		h.log.Error("reload user failed", "user_id", user.ID, "error", err)
		http.Error(w, "updating settings failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, auth.UserToResponse(updated))
}

// ListVoltLedger handles GET /api/v1/volt-ledger.
func (h *Handler) ListVoltLedger(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromCtx(r.Context())
	if user == nil {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}
	entries, err := h.ledger.Entries(r.Context(), user.ID)
	if err != nil {
		h.log.Error("list volt entries failed", "user_id", user.ID, "error", err)
		http.Error(w, "listing volt history failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"balance": user.Volts,
		"entries": entries,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

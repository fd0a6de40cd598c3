package admin

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/blogvolt/backend/internal/models"
)

// Store is the admin console's read/write surface over users and logs.
type Store interface {
	ListUsers(ctx context.Context, f UserFilter) ([]*models.User, error)
	SetGrade(ctx context.Context, userID uuid.UUID, grade string) (int64, error)
	ListGenerationLogs(ctx context.Context, f LogFilter) ([]*models.GenerationLog, error)
}

// Granter credits volts outside the generation flow.
type Granter interface {
	Credit(ctx context.Context, userID uuid.UUID, amount int, entryType string, attemptID *uuid.UUID) error
}

type Handler struct {
	store  Store
	ledger Granter
	log    *slog.Logger
}

func NewHandler(store Store, ledger Granter, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{store: store, ledger: ledger, log: log}
}

// ListUsers handles GET /api/v1/admin/users?grade=&email=&limit=&offset=.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	f := UserFilter{
		Grade: r.URL.Query().Get("grade"),
		Email: r.URL.Query().Get("email"),
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		f.Limit, _ = strconv.Atoi(v)
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		f.Offset, _ = strconv.Atoi(v)
	}

	users, err := h.store.ListUsers(r.Context(), f)
	if err != nil {
		h.log.Error("admin list users failed", "error", err)
		http.Error(w, "listing users failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}

type setGradeRequest struct {
	Grade string `json:"grade"`
}

// SetGrade handles PATCH /api/v1/admin/users/{id}/grade.
func (h *Handler) SetGrade(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}
	var req setGradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	switch req.Grade {
	case models.GradeFree, models.GradePro, models.GradeAdmin:
	default:
		http.Error(w, "unknown grade", http.StatusBadRequest)
		return
	}

	n, err := h.store.SetGrade(r.Context(), userID, req.Grade)
	if err != nil {
		h.log.Error("set grade failed", "user_id", userID, "error", err)
		http.Error(w, "updating grade failed", http.StatusInternalServerError)
		return
	}
	if n == 0 {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}
	h.log.Info("user grade changed", "user_id", userID, "grade", req.Grade)
	w.WriteHeader(http.StatusNoContent)
}

type grantVoltsRequest struct {
	Amount int `json:"amount"`
}

// GrantVolts handles POST /api/v1/admin/users/{id}/volts.
func (h *Handler) GrantVolts(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}
	var req grantVoltsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Amount <= 0 {
		http.Error(w, "amount must be positive", http.StatusBadRequest)
		return
	}

	if err := h.ledger.Credit(r.Context(), userID, req.Amount, models.VoltEntryAdminGrant, nil); err != nil {
		h.log.Error("grant volts failed", "user_id", userID, "amount", req.Amount, "error", err)
		http.Error(w, "granting volts failed", http.StatusInternalServerError)
		return
	}
	h.log.Info("volts granted", "user_id", userID, "amount", req.Amount)
	writeJSON(w, http.StatusOK, map[string]int{"granted": req.Amount})
}

// ListLogs handles GET /api/v1/admin/generation-logs?user_id=&status=&limit=&offset=.
func (h *Handler) ListLogs(w http.ResponseWriter, r *http.Request) {
	var f LogFilter
	if v := r.URL.Query().Get("user_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			http.Error(w, "invalid user_id", http.StatusBadRequest)
			return
		}
		f.UserID = id
	}
	if s := r.URL.Query().Get("status"); s != "" {
		if s != models.GenerationStatusSuccess && s != models.GenerationStatusRefunded {
			http.Error(w, "unknown status", http.StatusBadRequest)
			return
		}
		f.Status = s
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		f.Limit, _ = strconv.Atoi(v)
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		f.Offset, _ = strconv.Atoi(v)
	}

	logs, err := h.store.ListGenerationLogs(r.Context(), f)
	if err != nil {
		h.log.Error("admin list logs failed", "error", err)
		http.Error(w, "listing logs failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"logs": logs})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

package generation

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/blogvolt/backend/internal/middleware"
	"github.com/blogvolt/backend/internal/validation"
)

type GenerateRequest struct {
	Keyword    string `json:"keyword"`
	Theme      string `json:"theme"`
	Mode       string `json:"mode"`
	StyleGuide string `json:"style_guide"`
}

type GenerateResponse struct {
	Status        string `json:"status"`
	Content       string `json:"content"`
	VoltsCharged  int    `json:"volts_charged"`
	ArchivalError string `json:"archival_error,omitempty"`
}

type Handler struct {
	svc       *Service
	validator *validation.Validator
	log       *slog.Logger
}

func NewHandler(svc *Service, validator *validation.Validator, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{svc: svc, validator: validator, log: log}
}

// Generate handles POST /api/v1/generate. The error mapping keeps the two
// payment outcomes distinct: 402 responses mean no volts moved, while a 502
// after the debit always carries the "refunded" wording.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromCtx(r.Context())
	if user == nil {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "read body failed", http.StatusBadRequest)
		return
	}
	if err := h.validator.Validate("generate", body); err != nil {
		if errors.Is(err, validation.ErrValidation) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		h.log.Error("validate generate request", "error", err)
		writeError(w, http.StatusBadRequest, "validation failed")
		return
	}
	var req GenerateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	out, err := h.svc.Generate(r.Context(), user.ID, Request{
		Keyword:    req.Keyword,
		Theme:      req.Theme,
		Mode:       req.Mode,
		StyleGuide: req.StyleGuide,
	})
	if err != nil {
		h.writeGenerateError(w, user.ID, err)
		return
	}

	resp := GenerateResponse{
		Status:       out.Status,
		Content:      out.Draft,
		VoltsCharged: out.Charged,
	}
	if out.ArchivalErr != nil {
		resp.ArchivalError = "the post could not be saved to your history"
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) writeGenerateError(w http.ResponseWriter, userID uuid.UUID, err error) {
	switch {
	case errors.Is(err, ErrNoUser):
		writeError(w, http.StatusUnauthorized, "authentication required")
	case errors.Is(err, ErrEmptyKeyword), errors.Is(err, ErrInvalidTheme):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInsufficientVolts):
		writeError(w, http.StatusPaymentRequired, "not enough volts: you were not charged")
	case errors.Is(err, ErrPaymentFailed):
		h.log.Error("volt debit failed", "user_id", userID, "error", err)
		writeError(w, http.StatusPaymentRequired, "charging volts failed: you were not charged")
	case errors.Is(err, ErrGenerationFailed):
		h.log.Error("generation failed after charge", "user_id", userID, "error", err)
		writeError(w, http.StatusBadGateway, "generation failed: your volts were refunded")
	default:
		h.log.Error("generate failed", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "generation failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

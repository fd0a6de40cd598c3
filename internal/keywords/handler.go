package keywords

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/blogvolt/backend/internal/validation"
)

// CandidateSource fetches related-keyword candidates; satisfied by MetricsClient.
type CandidateSource interface {
	RelatedCandidates(ctx context.Context, keyword string) ([]Candidate, error)
}

type Handler struct {
	source    CandidateSource
	validator *validation.Validator
	log       *slog.Logger
}

func NewHandler(source CandidateSource, validator *validation.Validator, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{source: source, validator: validator, log: log}
}

type analyzeRequest struct {
	Keyword string `json:"keyword"`
}

type densityRequest struct {
	Keyword string `json:"keyword"`
	Theme   string `json:"theme"`
}

// Analyze handles POST /api/v1/keywords/analyze.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, `{"error":"read body failed"}`, http.StatusBadRequest)
		return
	}
	if err := h.validator.Validate("keyword_analyze", body); err != nil {
		if errors.Is(err, validation.ErrValidation) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
			return
		}
		h.log.Error("validate analyze request", "error", err)
		http.Error(w, `{"error":"validation failed"}`, http.StatusBadRequest)
		return
	}
	var req analyzeRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, `{"error":"invalid JSON"}`, http.StatusBadRequest)
		return
	}
	keyword := strings.TrimSpace(req.Keyword)
	if keyword == "" {
		http.Error(w, `{"error":"keyword must not be empty"}`, http.StatusBadRequest)
		return
	}

	candidates, err := h.source.RelatedCandidates(r.Context(), keyword)
	if err != nil {
		h.log.Error("fetch keyword candidates failed", "keyword", keyword, "error", err)
		http.Error(w, `{"error":"keyword metrics unavailable"}`, http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, Analyze(keyword, candidates))
}

// Density handles POST /api/v1/keywords/density.
func (h *Handler) Density(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, `{"error":"read body failed"}`, http.StatusBadRequest)
		return
	}
	if err := h.validator.Validate("keyword_density", body); err != nil {
		if errors.Is(err, validation.ErrValidation) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
			return
		}
		h.log.Error("validate density request", "error", err)
		http.Error(w, `{"error":"validation failed"}`, http.StatusBadRequest)
		return
	}
	var req densityRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, `{"error":"invalid JSON"}`, http.StatusBadRequest)
		return
	}
	keyword := strings.TrimSpace(req.Keyword)
	if keyword == "" {
		http.Error(w, `{"error":"keyword must not be empty"}`, http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, EstimateDensity(keyword))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

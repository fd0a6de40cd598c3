package history

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/blogvolt/backend/internal/middleware"
	"github.com/blogvolt/backend/internal/models"
)

// Store is the persistence surface the handler needs.
type Store interface {
	List(ctx context.Context, userID uuid.UUID, f ListFilter) ([]models.Post, error)
	Delete(ctx context.Context, userID, postID uuid.UUID) (int64, error)
	DeleteBulk(ctx context.Context, userID uuid.UUID, postIDs []uuid.UUID) (int64, error)
}

type Handler struct {
	store Store
	log   *slog.Logger
}

func NewHandler(store Store, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{store: store, log: log}
}

// List handles GET /api/v1/posts?theme=&limit=&offset=.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromCtx(r.Context())
	if user == nil {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	f := ListFilter{Theme: r.URL.Query().Get("theme")}
	if f.Theme != "" && !models.IsValidTheme(f.Theme) {
		http.Error(w, "unknown theme", http.StatusBadRequest)
		return
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		f.Limit, _ = strconv.Atoi(v)
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		f.Offset, _ = strconv.Atoi(v)
	}

	posts, err := h.store.List(r.Context(), user.ID, f)
	if err != nil {
		h.log.Error("list posts failed", "user_id", user.ID, "error", err)
		http.Error(w, "listing posts failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"posts": posts})
}

// Delete handles DELETE /api/v1/posts/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromCtx(r.Context())
	if user == nil {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}
	postID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid post id", http.StatusBadRequest)
		return
	}

	n, err := h.store.Delete(r.Context(), user.ID, postID)
	if err != nil {
		h.log.Error("delete post failed", "user_id", user.ID, "post_id", postID, "error", err)
		http.Error(w, "deleting post failed", http.StatusInternalServerError)
		return
	}
	if n == 0 {
		// Not found and not-yours are deliberately indistinguishable.
		http.Error(w, "post not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type bulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

// DeleteBulk handles POST /api/v1/posts/delete-bulk.
func (h *Handler) DeleteBulk(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromCtx(r.Context())
	if user == nil {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}
	var req bulkDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if len(req.IDs) == 0 {
		http.Error(w, "ids must not be empty", http.StatusBadRequest)
		return
	}

	ids := make([]uuid.UUID, 0, len(req.IDs))
	for _, raw := range req.IDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			http.Error(w, "invalid post id: "+raw, http.StatusBadRequest)
			return
		}
		ids = append(ids, id)
	}

	n, err := h.store.DeleteBulk(r.Context(), user.ID, ids)
	if err != nil {
		h.log.Error("bulk delete failed", "user_id", user.ID, "error", err)
		http.Error(w, "deleting posts failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"deleted": n})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

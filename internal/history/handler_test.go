package history

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/blogvolt/backend/internal/middleware"
	"github.com/blogvolt/backend/internal/models"
)

type stubStore struct {
	posts      []models.Post
	lastFilter ListFilter
	deleted    []uuid.UUID
	deleteN    int64
}

func (s *stubStore) List(_ context.Context, _ uuid.UUID, f ListFilter) ([]models.Post, error) {
	s.lastFilter = f
	return s.posts, nil
}

func (s *stubStore) Delete(_ context.Context, _ uuid.UUID, postID uuid.UUID) (int64, error) {
	s.deleted = append(s.deleted, postID)
	return s.deleteN, nil
}

func (s *stubStore) DeleteBulk(_ context.Context, _ uuid.UUID, postIDs []uuid.UUID) (int64, error) {
	s.deleted = append(s.deleted, postIDs...)
	return s.deleteN, nil
}

func authed(r *http.Request) *http.Request {
	u := &models.User{ID: uuid.New(), Email: "u@example.com"}
	return r.WithContext(middleware.WithUser(r.Context(), u))
}

func TestList_ThemeFilterAndPaging(t *testing.T) {
	store := &stubStore{posts: []models.Post{{Keyword: "pasta"}}}
	h := NewHandler(store, nil)

	req := authed(httptest.NewRequest(http.MethodGet, "/api/v1/posts?theme=restaurant&limit=5&offset=10", nil))
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if store.lastFilter.Theme != models.ThemeRestaurant || store.lastFilter.Limit != 5 || store.lastFilter.Offset != 10 {
		t.Errorf("filter = %+v", store.lastFilter)
	}
}

func TestList_RejectsUnknownTheme(t *testing.T) {
	h := NewHandler(&stubStore{}, nil)
	req := authed(httptest.NewRequest(http.MethodGet, "/api/v1/posts?theme=gardening", nil))
	rec := httptest.NewRecorder()
	h.List(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestList_Unauthenticated(t *testing.T) {
	h := NewHandler(&stubStore{}, nil)
	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/v1/posts", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestDelete_NotFoundWhenNoRows(t *testing.T) {
	store := &stubStore{deleteN: 0}
	h := NewHandler(store, nil)

	req := authed(httptest.NewRequest(http.MethodDelete, "/api/v1/posts/x", nil))
	req.SetPathValue("id", uuid.NewString())
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestDelete_Success(t *testing.T) {
	store := &stubStore{deleteN: 1}
	h := NewHandler(store, nil)

	postID := uuid.New()
	req := authed(httptest.NewRequest(http.MethodDelete, "/api/v1/posts/x", nil))
	req.SetPathValue("id", postID.String())
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if len(store.deleted) != 1 || store.deleted[0] != postID {
		t.Errorf("deleted = %v, want [%s]", store.deleted, postID)
	}
}

func TestDeleteBulk_ReportsCount(t *testing.T) {
	store := &stubStore{deleteN: 2}
	h := NewHandler(store, nil)

	body := `{"ids":["` + uuid.NewString() + `","` + uuid.NewString() + `"]}`
	req := authed(httptest.NewRequest(http.MethodPost, "/api/v1/posts/delete-bulk", strings.NewReader(body)))
	rec := httptest.NewRecorder()
	h.DeleteBulk(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp map[string]int64
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["deleted"] != 2 {
		t.Errorf("deleted = %d, want 2", resp["deleted"])
	}
}

func TestDeleteBulk_RejectsBadID(t *testing.T) {
	h := NewHandler(&stubStore{}, nil)
	req := authed(httptest.NewRequest(http.MethodPost, "/api/v1/posts/delete-bulk", strings.NewReader(`{"ids":["nope"]}`)))
	rec := httptest.NewRecorder()
	h.DeleteBulk(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

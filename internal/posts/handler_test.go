package posts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"chirp/internal/identity"
)

// Mock posts service for handler tests
type mockPostsService struct {
	createFunc func(ctx context.Context, authorID uuid.UUID, content string) (*Post, error)
}

func (m *mockPostsService) Create(ctx context.Context, authorID uuid.UUID, content string) (*Post, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, authorID, content)
	}
	return &Post{ID: uuid.New(), UserID: authorID, Content: content, CreatedAt: time.Now()}, nil
}

func setupPostsRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(svc)
	r.POST("/api/posts", identity.RequireAuth(), h.Create)
	return r
}

func TestCreateHandler_Unauthorized(t *testing.T) {
	r := setupPostsRouter(&mockPostsService{})

	req := httptest.NewRequest(http.MethodPost, "/api/posts", strings.NewReader(`{"content":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", w.Code)
	}
}

func TestCreateHandler_MissingContent(t *testing.T) {
	r := setupPostsRouter(&mockPostsService{})

	req := httptest.NewRequest(http.MethodPost, "/api/posts", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", uuid.NewString())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestCreateHandler_WhitespaceContent(t *testing.T) {
	r := setupPostsRouter(&mockPostsService{
		createFunc: func(ctx context.Context, authorID uuid.UUID, content string) (*Post, error) {
			return nil, ErrEmptyContent
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/posts", strings.NewReader(`{"content":"   "}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", uuid.NewString())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestCreateHandler_RateLimited(t *testing.T) {
	r := setupPostsRouter(&mockPostsService{
		createFunc: func(ctx context.Context, authorID uuid.UUID, content string) (*Post, error) {
			return nil, ErrRateLimited
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/posts", strings.NewReader(`{"content":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", uuid.NewString())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusTooManyRequests {
		t.Errorf("expected status 429, got %d", w.Code)
	}
}

func TestCreateHandler_Created(t *testing.T) {
	author := uuid.New()
	r := setupPostsRouter(&mockPostsService{})

	req := httptest.NewRequest(http.MethodPost, "/api/posts", strings.NewReader(`{"content":"hello"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", author.String())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", w.Code)
	}

	var post Post
	if err := json.NewDecoder(w.Body).Decode(&post); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if post.UserID != author {
		t.Errorf("expected author %s, got %s", author, post.UserID)
	}
	if post.Content != "hello" {
		t.Errorf("expected content hello, got %q", post.Content)
	}
}

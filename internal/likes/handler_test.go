package likes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"chirp/internal/identity"
)

// Mock likes service for handler tests
type mockLikesService struct {
	toggleFunc func(ctx context.Context, actorID, postID uuid.UUID) (bool, error)
}

func (m *mockLikesService) Toggle(ctx context.Context, actorID, postID uuid.UUID) (bool, error) {
	if m.toggleFunc != nil {
		return m.toggleFunc(ctx, actorID, postID)
	}
	return true, nil
}

func (m *mockLikesService) Count(ctx context.Context, postID uuid.UUID) (int64, error) {
	return 0, nil
}

func setupLikesRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(svc)
	r.POST("/api/posts/:id/like", identity.RequireAuth(), h.Toggle)
	return r
}

func TestToggleHandler_Unauthorized(t *testing.T) {
	r := setupLikesRouter(&mockLikesService{})

	req := httptest.NewRequest(http.MethodPost, "/api/posts/"+uuid.NewString()+"/like", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", w.Code)
	}
}

func TestToggleHandler_InvalidPostID(t *testing.T) {
	r := setupLikesRouter(&mockLikesService{})

	req := httptest.NewRequest(http.MethodPost, "/api/posts/not-a-uuid/like", nil)
	req.Header.Set("X-User-ID", uuid.NewString())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestToggleHandler_PostNotFound(t *testing.T) {
	r := setupLikesRouter(&mockLikesService{
		toggleFunc: func(ctx context.Context, actorID, postID uuid.UUID) (bool, error) {
			return false, ErrPostNotFound
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/posts/"+uuid.NewString()+"/like", nil)
	req.Header.Set("X-User-ID", uuid.NewString())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

func TestToggleHandler_ReportsDirection(t *testing.T) {
	actor := uuid.New()
	post := uuid.New()

	var gotActor, gotPost uuid.UUID
	r := setupLikesRouter(&mockLikesService{
		toggleFunc: func(ctx context.Context, actorID, postID uuid.UUID) (bool, error) {
			gotActor, gotPost = actorID, postID
			return true, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/posts/"+post.String()+"/like", nil)
	req.Header.Set("X-User-ID", actor.String())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if gotActor != actor || gotPost != post {
		t.Errorf("expected toggle(%s, %s), got toggle(%s, %s)", actor, post, gotActor, gotPost)
	}

	var resp ToggleResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.AddedLike {
		t.Error("expected added_like to be true")
	}
}

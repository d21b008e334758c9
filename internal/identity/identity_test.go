package identity

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func captureViewer(found *bool, viewer *Viewer) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := FromContext(c)
		*found = ok
		*viewer = v
		c.Status(http.StatusOK)
	}
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	reached := false
	r.GET("/", RequireAuth(), func(c *gin.Context) {
		reached = true
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", w.Code)
	}
	if reached {
		t.Error("handler ran for an unauthenticated request")
	}
}

func TestRequireAuth_MalformedUserID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", RequireAuth(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-User-ID", "not-a-uuid")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", w.Code)
	}
}

func TestRequireAuth_AttachesViewer(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()

	var found bool
	var viewer Viewer
	r := gin.New()
	r.GET("/", RequireAuth(), captureViewer(&found, &viewer))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-User-ID", userID.String())
	req.Header.Set("X-User-Name", "ada")
	req.Header.Set("X-User-Image", "https://example.com/ada.png")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if !found {
		t.Fatal("viewer missing from context")
	}
	if viewer.UserID != userID || viewer.Name != "ada" || viewer.Image != "https://example.com/ada.png" {
		t.Errorf("unexpected viewer: %+v", viewer)
	}
}

func TestOptionalAuth_AnonymousPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var found bool
	var viewer Viewer
	r := gin.New()
	r.GET("/", OptionalAuth(), captureViewer(&found, &viewer))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if found {
		t.Error("anonymous request should yield no viewer")
	}
	if !viewer.Anonymous() {
		t.Errorf("expected anonymous viewer, got %+v", viewer)
	}
}

func TestOptionalAuth_MalformedIDTreatedAsAnonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var found bool
	var viewer Viewer
	r := gin.New()
	r.GET("/", OptionalAuth(), captureViewer(&found, &viewer))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-User-ID", "garbage")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if found {
		t.Error("malformed identity should be treated as anonymous")
	}
}

func TestOptionalAuth_AttachesViewerWhenPresent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()

	var found bool
	var viewer Viewer
	r := gin.New()
	r.GET("/", OptionalAuth(), captureViewer(&found, &viewer))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-User-ID", userID.String())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if !found {
		t.Fatal("viewer missing from context")
	}
	if viewer.UserID != userID {
		t.Errorf("expected viewer %s, got %s", userID, viewer.UserID)
	}
}

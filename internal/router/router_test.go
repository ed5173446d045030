package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"inkpress/internal/auth"
	"inkpress/internal/handlers"
	"inkpress/internal/service"
)

// newTestRouter wires the router with zero-value services. Tests here
// exercise routing and middleware only and never reach a data store.
func newTestRouter(tokens *auth.Manager) http.Handler {
	return New(
		tokens,
		handlers.NewAuthHandler(service.NewUserService(nil), tokens),
		handlers.NewCategoryHandler(service.NewCategoryService(nil)),
		handlers.NewPostHandler(service.NewPostService(nil, nil, nil)),
		handlers.NewImageHandler(service.NewImageService(nil, nil)),
	)
}

func TestHealth(t *testing.T) {
	r := newTestRouter(auth.NewManager("test-secret", time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %q", rr.Body.String())
	}
}

func TestUnknownRoute(t *testing.T) {
	r := newTestRouter(auth.NewManager("test-secret", time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rr.Code)
	}
}

func TestMutationsRequireAuth(t *testing.T) {
	r := newTestRouter(auth.NewManager("test-secret", time.Hour))

	routes := []struct {
		method, path string
	}{
		{http.MethodPost, "/api/v1/categories"},
		{http.MethodPatch, "/api/v1/categories/" + uuid.NewString()},
		{http.MethodDelete, "/api/v1/categories/" + uuid.NewString()},
		{http.MethodPost, "/api/v1/posts"},
		{http.MethodPatch, "/api/v1/posts/" + uuid.NewString()},
		{http.MethodDelete, "/api/v1/posts/" + uuid.NewString()},
		{http.MethodPost, "/api/v1/posts/" + uuid.NewString() + "/images"},
		{http.MethodDelete, "/api/v1/posts/" + uuid.NewString() + "/images/" + uuid.NewString()},
		{http.MethodPost, "/api/v1/images"},
		{http.MethodDelete, "/api/v1/images/" + uuid.NewString()},
		{http.MethodGet, "/api/v1/me"},
		{http.MethodPatch, "/api/v1/me"},
	}
	for _, rt := range routes {
		req := httptest.NewRequest(rt.method, rt.path, nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: status %d, want 401", rt.method, rt.path, rr.Code)
		}
	}
}

func TestAuthenticatedRequestReachesHandler(t *testing.T) {
	tokens := auth.NewManager("test-secret", time.Hour)
	r := newTestRouter(tokens)

	token, _, err := tokens.Issue(uuid.New())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// A malformed body is rejected by the handler, not the middleware:
	// 400 proves the request cleared authentication.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/categories", strings.NewReader("not json"))
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rr.Code)
	}
}

func TestLoginRateLimited(t *testing.T) {
	r := newTestRouter(auth.NewManager("test-secret", time.Hour))

	// The login limiter allows 10 requests per minute per IP; the 11th
	// must be rejected before the handler runs.
	var last int
	for i := 0; i < 11; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader("not json"))
		req.RemoteAddr = "203.0.113.9:4711"
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		last = rr.Code
	}

	if last != http.StatusTooManyRequests {
		t.Errorf("11th login attempt: status %d, want 429", last)
	}
}

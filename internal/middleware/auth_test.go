package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"inkpress/internal/auth"
)

func TestRequireAuth(t *testing.T) {
	tokens := auth.NewManager("test-secret", time.Hour)
	userID := uuid.New()

	var gotPrincipal uuid.UUID
	var gotOK bool
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPrincipal, gotOK = Principal(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := RequireAuth(tokens)(inner)

	t.Run("valid token reaches handler with principal", func(t *testing.T) {
		token, _, err := tokens.Issue(userID)
		if err != nil {
			t.Fatalf("Issue: %v", err)
		}

		req := httptest.NewRequest(http.MethodPost, "/api/v1/posts", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Errorf("status: got %d, want 200", rr.Code)
		}
		if !gotOK || gotPrincipal != userID {
			t.Errorf("principal = (%v, %v), want (%v, true)", gotPrincipal, gotOK, userID)
		}
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/posts", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Errorf("status: got %d, want 401", rr.Code)
		}
	})

	t.Run("malformed header is rejected", func(t *testing.T) {
		for _, header := range []string{"Bearer", "Bearer ", "Basic dXNlcjpwdw==", "garbage"} {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/posts", nil)
			req.Header.Set("Authorization", header)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != http.StatusUnauthorized {
				t.Errorf("header %q: status %d, want 401", header, rr.Code)
			}
		}
	})

	t.Run("token signed with another secret is rejected", func(t *testing.T) {
		other, _, err := auth.NewManager("other-secret", time.Hour).Issue(userID)
		if err != nil {
			t.Fatalf("Issue: %v", err)
		}

		req := httptest.NewRequest(http.MethodPost, "/api/v1/posts", nil)
		req.Header.Set("Authorization", "Bearer "+other)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Errorf("status: got %d, want 401", rr.Code)
		}
	})
}

func TestPrincipal_Unauthenticated(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/posts", nil)
	if _, ok := Principal(req.Context()); ok {
		t.Error("Principal reported ok on a bare request context")
	}
}

package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/KonradTesch/Book-Alchemy/internal/session"
)

func newTestRouterConfig() RouterConfig {
	return RouterConfig{
		BookLister:    &mockBookLister{},
		BookCreator:   &mockBookCreator{},
		BookDeleter:   &mockBookDeleter{},
		AuthorStore:   testAuthors(),
		CoverResolver: &mockCoverResolver{},
		Sessions:      session.NewMemoryManager(),
		TemplatesPath: "../../templates",
		StaticPath:    "../../static",
		Version:       "test",
	}
}

func TestRouterSecurityHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := NewRouter(newTestRouterConfig())

	req, _ := http.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	for header, expected := range map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
	} {
		if got := w.Header().Get(header); got != expected {
			t.Errorf("expected %s: %s, got %q", header, expected, got)
		}
	}
	if !strings.Contains(w.Header().Get("Content-Security-Policy"), "img-src") {
		t.Error("expected a Content-Security-Policy allowing cover images")
	}
}

func TestRouterHealthEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := NewRouter(newTestRouterConfig())

	req, _ := http.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var health HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &health); err != nil {
		t.Fatalf("failed to decode health response: %v", err)
	}
	if health.Status != "healthy" {
		t.Errorf("expected healthy status, got %q", health.Status)
	}
	if health.Version != "test" {
		t.Errorf("expected version test, got %q", health.Version)
	}
	if health.Checks["database"] != "not configured" {
		t.Errorf("unexpected database check: %q", health.Checks["database"])
	}
}

func TestRouterCSRFProtection(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := newTestRouterConfig()
	cfg.CSRFSecret = []byte("0123456789abcdef0123456789abcdef")
	router := NewRouter(cfg)

	// Reads stay open.
	req, _ := http.NewRequest("GET", "/add_author", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200 for GET, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "csrf") {
		t.Error("expected a CSRF token field in the form")
	}

	// Writes without a token are rejected.
	req, _ = http.NewRequest("POST", "/add_author", strings.NewReader("name=Frank+Herbert"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("expected status 403 for a tokenless POST, got %d", w.Code)
	}
}

func TestRouterUnknownRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := NewRouter(newTestRouterConfig())

	req, _ := http.NewRequest("GET", "/no-such-page", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

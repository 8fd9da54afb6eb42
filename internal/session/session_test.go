package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestFlashSurvivesRedirect(t *testing.T) {
	gin.SetMode(gin.TestMode)

	sm := NewMemoryManager()

	router := gin.New()
	router.Use(sm.LoadSave())
	router.POST("/delete", func(c *gin.Context) {
		sm.Flash(c.Request.Context(), "'Dune' deleted.")
		c.Redirect(http.StatusSeeOther, "/")
	})
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, sm.PopFlash(c.Request.Context()))
	})

	req, _ := http.NewRequest("POST", "/delete", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}

	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected a session cookie on the redirect response")
	}

	// Follow the redirect carrying the session cookie
	req, _ = http.NewRequest("GET", "/", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if got := w.Body.String(); got != "'Dune' deleted." {
		t.Errorf("expected flash message, got %q", got)
	}

	// The flash is one-shot
	req, _ = http.NewRequest("GET", "/", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if got := w.Body.String(); got != "" {
		t.Errorf("expected flash to be cleared, got %q", got)
	}
}

func TestPopFlashEmptySession(t *testing.T) {
	gin.SetMode(gin.TestMode)

	sm := NewMemoryManager()

	router := gin.New()
	router.Use(sm.LoadSave())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, sm.PopFlash(c.Request.Context()))
	})

	req, _ := http.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := w.Body.String(); got != "" {
		t.Errorf("expected empty flash, got %q", got)
	}
}

package http

import (
	"errors"
	"html/template"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/KonradTesch/Book-Alchemy/internal/database/books"
	"github.com/KonradTesch/Book-Alchemy/internal/entities"
	"github.com/KonradTesch/Book-Alchemy/internal/session"
)

// loadTemplates parses the real application templates so controller tests
// exercise the same rendering path as production.
func loadTemplates(t *testing.T) *template.Template {
	t.Helper()
	tmpl, err := template.New("").ParseGlob("../../templates/*.html")
	if err != nil {
		t.Fatalf("failed to parse templates: %v", err)
	}
	return tmpl
}

type mockBookLister struct {
	books      []entities.Book
	err        error
	gotSearch  string
	gotSortKey books.SortKey
}

func (m *mockBookLister) ListBooks(search string, sortBy books.SortKey) ([]entities.Book, error) {
	m.gotSearch = search
	m.gotSortKey = sortBy
	return m.books, m.err
}

func year(v int) *int {
	return &v
}

func TestHomePage(t *testing.T) {
	gin.SetMode(gin.TestMode)

	store := &mockBookLister{
		books: []entities.Book{
			{ID: 1, Title: "Dune", ISBN: "1111111111", PublicationYear: year(1965), Author: entities.Author{Name: "Frank Herbert"}},
			{ID: 2, Title: "Foundation", ISBN: "2222222222", Author: entities.Author{Name: "Isaac Asimov"}},
		},
	}
	controller := NewHomeController(store, nil)

	router := gin.New()
	router.SetHTMLTemplate(loadTemplates(t))
	router.GET("/", controller.HomePage)

	req, _ := http.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	body := w.Body.String()
	if !strings.Contains(body, "Dune") || !strings.Contains(body, "Foundation") {
		t.Error("expected both books in the listing")
	}
	if !strings.Contains(body, "Frank Herbert") {
		t.Error("expected author name in the listing")
	}
	if !strings.Contains(body, "(1965)") {
		t.Error("expected publication year in the listing")
	}

	if store.gotSortKey != books.SortByTitle {
		t.Errorf("expected default sort by title, got %s", store.gotSortKey)
	}
	if store.gotSearch != "" {
		t.Errorf("expected empty search, got %q", store.gotSearch)
	}
}

func TestHomePage_SortAndSearchParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	store := &mockBookLister{}
	controller := NewHomeController(store, nil)

	router := gin.New()
	router.SetHTMLTemplate(loadTemplates(t))
	router.GET("/", controller.HomePage)

	req, _ := http.NewRequest("GET", "/?sort_by=year&search=+dune+", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if store.gotSortKey != books.SortByYear {
		t.Errorf("expected sort by year, got %s", store.gotSortKey)
	}
	if store.gotSearch != "dune" {
		t.Errorf("expected trimmed search query, got %q", store.gotSearch)
	}
}

func TestHomePage_UnknownSortKeyDefaultsToTitle(t *testing.T) {
	gin.SetMode(gin.TestMode)

	store := &mockBookLister{}
	controller := NewHomeController(store, nil)

	router := gin.New()
	router.SetHTMLTemplate(loadTemplates(t))
	router.GET("/", controller.HomePage)

	req, _ := http.NewRequest("GET", "/?sort_by=garbage", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if store.gotSortKey != books.SortByTitle {
		t.Errorf("expected fallback to title sort, got %s", store.gotSortKey)
	}
}

func TestHomePage_StoreError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	store := &mockBookLister{err: errors.New("db gone")}
	controller := NewHomeController(store, nil)

	router := gin.New()
	router.SetHTMLTemplate(loadTemplates(t))
	router.GET("/", controller.HomePage)

	req, _ := http.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", w.Code)
	}
}

func TestHomePage_ShowsFlashMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)

	sm := session.NewMemoryManager()
	store := &mockBookLister{}
	controller := NewHomeController(store, sm)

	router := gin.New()
	router.SetHTMLTemplate(loadTemplates(t))
	router.Use(sm.LoadSave())
	router.POST("/flash", func(c *gin.Context) {
		sm.Flash(c.Request.Context(), "'Dune' was deleted.")
		c.Status(http.StatusNoContent)
	})
	router.GET("/", controller.HomePage)

	req, _ := http.NewRequest("POST", "/flash", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	cookies := w.Result().Cookies()

	req, _ = http.NewRequest("GET", "/", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if !strings.Contains(w.Body.String(), "was deleted.") {
		t.Error("expected the flash message on the home page")
	}
}

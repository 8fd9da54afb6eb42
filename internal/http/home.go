package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/KonradTesch/Book-Alchemy/internal/database/books"
	"github.com/KonradTesch/Book-Alchemy/internal/entities"
	"github.com/KonradTesch/Book-Alchemy/internal/session"
)

// BookLister defines the catalog listing operation backing the home page.
type BookLister interface {
	ListBooks(search string, sortBy books.SortKey) ([]entities.Book, error)
}

type HomeController struct {
	store    BookLister
	sessions *session.Manager
}

func NewHomeController(store BookLister, sessions *session.Manager) *HomeController {
	return &HomeController{store: store, sessions: sessions}
}

// HomePage renders the catalog listing.
// GET /?sort_by=title|year|author&search=...
func (controller *HomeController) HomePage(c *gin.Context) {
	sortBy := books.ParseSortKey(c.DefaultQuery("sort_by", "title"))
	search := strings.TrimSpace(c.Query("search"))

	list, err := controller.store.ListBooks(search, sortBy)
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading books: %s", err.Error())
		return
	}

	flash := ""
	if controller.sessions != nil {
		flash = controller.sessions.PopFlash(c.Request.Context())
	}

	c.HTML(http.StatusOK, "home", gin.H{
		"Books":       list,
		"TotalBooks":  len(list),
		"SortBy":      string(sortBy),
		"SearchQuery": search,
		"Flash":       flash,
		"CSRFField":   csrfField(c),
	})
}

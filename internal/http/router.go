package http

import (
	"html/template"

	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(SecurityHeadersMiddleware())

	// Protect the form posts when a CSRF secret is configured.
	// CSRF must run before the session middleware so the session context
	// is layered on top of CSRF's request replacement.
	if len(cfg.CSRFSecret) > 0 {
		router.Use(CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	if cfg.Sessions != nil {
		router.Use(cfg.Sessions.LoadSave())
	}

	// Load HTML templates
	tmpl := template.Must(template.New("").ParseGlob(cfg.TemplatesPath + "/*.html"))
	router.SetHTMLTemplate(tmpl)

	// Serve static files
	router.Static("/static", cfg.StaticPath)

	health := NewHealthController(cfg.Database, cfg.Version)
	home := NewHomeController(cfg.BookLister, cfg.Sessions)
	authorsController := NewAuthorsController(cfg.AuthorStore)
	booksController := NewBooksController(cfg.BookCreator, cfg.AuthorStore, cfg.CoverResolver)
	deleteController := NewDeleteController(cfg.BookDeleter, cfg.Sessions)

	// Catalog pages
	router.GET("/", home.HomePage)
	router.GET("/add_author", authorsController.AddAuthorPage)
	router.POST("/add_author", authorsController.AddAuthor)
	router.GET("/add_book", booksController.AddBookPage)
	router.POST("/add_book", booksController.AddBook)
	router.POST("/book/:id/delete", deleteController.DeleteBook)

	// Health endpoint
	router.GET("/health", health.Status)

	return router
}

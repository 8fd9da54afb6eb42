package http

import (
	"github.com/KonradTesch/Book-Alchemy/internal/database"
	"github.com/KonradTesch/Book-Alchemy/internal/session"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	BookLister    BookLister
	BookCreator   BookCreator
	BookDeleter   BookDeleter
	AuthorStore   AuthorStore
	CoverResolver CoverResolver
	Sessions      *session.Manager
	Database      *database.Database

	// UI paths
	TemplatesPath string
	StaticPath    string

	// Application info
	Version string

	// Form hardening; CSRF is skipped when the secret is empty
	CSRFSecret    []byte
	SecureCookies bool
}

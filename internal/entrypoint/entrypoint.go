package entrypoint

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KonradTesch/Book-Alchemy/internal/config"
	"github.com/KonradTesch/Book-Alchemy/internal/covers"
	"github.com/KonradTesch/Book-Alchemy/internal/database"
	"github.com/KonradTesch/Book-Alchemy/internal/database/authors"
	"github.com/KonradTesch/Book-Alchemy/internal/database/books"
	http_controllers "github.com/KonradTesch/Book-Alchemy/internal/http"
	"github.com/KonradTesch/Book-Alchemy/internal/session"
)

func Serve(router *gin.Engine, cfg *config.Config) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Book Alchemy v%s", version)

	// Make sure the database directory exists
	if dir := filepath.Dir(cfg.Database.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("Failed to create database directory %s: %v", dir, err)
		}
	}

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	authorRepo := authors.NewRepository(db.DB)
	bookRepo := books.NewRepository(db.DB)

	resolver := covers.NewResolver(cfg.OpenLibrary.BaseURL, cfg.OpenLibrary.CoversURL)

	// Sessions back the flash message shown after deleting a book
	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatalf("Failed to get SQL DB for sessions: %v", err)
	}
	sessions, err := session.NewManager(sqlDB, cfg.Session)
	if err != nil {
		log.Fatalf("Failed to initialize session manager: %v", err)
	}

	var csrfSecret []byte
	if cfg.Session.CSRFSecret != "" {
		csrfSecret, err = hex.DecodeString(cfg.Session.CSRFSecret)
		if err != nil {
			// Not hex, use as raw bytes
			csrfSecret = []byte(cfg.Session.CSRFSecret)
		}
	} else {
		csrfSecret, err = generateCSRFSecret()
		if err != nil {
			log.Fatalf("Failed to generate CSRF secret: %v", err)
		}
		log.Printf("Generated CSRF secret (set CSRF_SECRET to persist)")
	}

	routerCfg := http_controllers.RouterConfig{
		BookLister:    bookRepo,
		BookCreator:   bookRepo,
		BookDeleter:   bookRepo,
		AuthorStore:   authorRepo,
		CoverResolver: resolver,
		Sessions:      sessions,
		Database:      db,
		TemplatesPath: cfg.UI.TemplatesPath,
		StaticPath:    cfg.UI.StaticPath,
		Version:       version,
		CSRFSecret:    csrfSecret,
		SecureCookies: cfg.Session.SecureCookies,
	}

	router := http_controllers.NewRouter(routerCfg)

	Serve(router, cfg)
}

func generateCSRFSecret() ([]byte, error) {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, err
	}
	return secret, nil
}

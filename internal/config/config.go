package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		UI
		OpenLibrary
		Session
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	UI struct {
		TemplatesPath string
		StaticPath    string
	}
	OpenLibrary struct {
		BaseURL   string
		CoversURL string
	}
	Session struct {
		Lifetime      time.Duration
		SecureCookies bool
		CSRFSecret    string // hex-encoded; generated at startup when empty
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("templates_path", "./templates")
	v.SetDefault("static_path", "./static")
	v.SetDefault("openlibrary_base_url", "https://openlibrary.org")
	v.SetDefault("openlibrary_covers_url", "https://covers.openlibrary.org")
	v.SetDefault("session_lifetime", "24h")
	// Local single-user tool, typically served over plain HTTP
	v.SetDefault("secure_cookies", false)
	v.SetDefault("csrf_secret", "")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		UI: UI{
			TemplatesPath: v.GetString("TEMPLATES_PATH"),
			StaticPath:    v.GetString("STATIC_PATH"),
		},
		OpenLibrary: OpenLibrary{
			BaseURL:   v.GetString("OPENLIBRARY_BASE_URL"),
			CoversURL: v.GetString("OPENLIBRARY_COVERS_URL"),
		},
		Session: Session{
			Lifetime:      v.GetDuration("SESSION_LIFETIME"),
			SecureCookies: v.GetBool("SECURE_COOKIES"),
			CSRFSecret:    v.GetString("CSRF_SECRET"),
		},
	}
}

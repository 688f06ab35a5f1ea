package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestParseDefaults(t *testing.T) {
	conf, err := Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if conf.HTTP.Address != ":8080" {
		t.Errorf("expected default address :8080, got %q", conf.HTTP.Address)
	}
	if conf.HTTP.BasePath != "/api" {
		t.Errorf("expected base path /api, got %q", conf.HTTP.BasePath)
	}
	if conf.Storage.Database.Path != "posest.sqlite3" {
		t.Errorf("unexpected database path %q", conf.Storage.Database.Path)
	}
	if conf.Auth.TokenExpiry != 168*time.Hour {
		t.Errorf("unexpected token expiry %s", conf.Auth.TokenExpiry)
	}
	if slog.Level(conf.Logger.Level) != slog.LevelInfo {
		t.Errorf("expected info level, got %v", slog.Level(conf.Logger.Level))
	}
}

func TestParseFromEnv(t *testing.T) {
	t.Setenv("POSEST_HTTP_ADDRESS", "127.0.0.1:9000")
	t.Setenv("POSEST_HTTP_CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("POSEST_LOG_LEVEL", "debug")
	t.Setenv("POSEST_AUTH_TOKEN_EXPIRY", "1h")

	conf, err := Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if conf.HTTP.Address != "127.0.0.1:9000" {
		t.Errorf("unexpected address %q", conf.HTTP.Address)
	}
	if len(conf.HTTP.CORSAllowedOrigins) != 2 {
		t.Errorf("expected 2 origins, got %v", conf.HTTP.CORSAllowedOrigins)
	}
	if slog.Level(conf.Logger.Level) != slog.LevelDebug {
		t.Errorf("expected debug level, got %v", slog.Level(conf.Logger.Level))
	}
	if conf.Auth.TokenExpiry != time.Hour {
		t.Errorf("unexpected token expiry %s", conf.Auth.TokenExpiry)
	}
}

func TestParseInvalidLevel(t *testing.T) {
	t.Setenv("POSEST_LOG_LEVEL", "loud")

	if _, err := Parse(); err == nil {
		t.Error("expected invalid log level to fail")
	}
}

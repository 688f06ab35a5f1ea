package store

import (
	"context"
	"testing"

	"github.com/erazemk/posest/internal/db"
)

func TestGetJWTSecret_GeneratesAndPersists(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	// First call should generate a secret.
	secret1, err := GetJWTSecret(ctx, database)
	if err != nil {
		t.Fatal(err)
	}
	if len(secret1) != 64 { // 32 bytes = 64 hex chars
		t.Fatalf("expected 64 hex chars, got %d", len(secret1))
	}

	// Second call should return the same secret.
	secret2, err := GetJWTSecret(ctx, database)
	if err != nil {
		t.Fatal(err)
	}
	if secret1 != secret2 {
		t.Fatalf("expected same secret, got %q and %q", secret1, secret2)
	}
}

func TestInitSettingKeepsFirstValue(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	missing, err := GetSetting(ctx, database, "theme")
	if err != nil {
		t.Fatalf("GetSetting: %v", err)
	}
	if missing != "" {
		t.Errorf("expected empty value for missing key, got %q", missing)
	}

	if v, _ := InitSetting(ctx, database, "theme", "dark"); v != "dark" {
		t.Errorf("expected 'dark', got %q", v)
	}
	if v, _ := InitSetting(ctx, database, "theme", "light"); v != "dark" {
		t.Errorf("expected first value to win, got %q", v)
	}
}

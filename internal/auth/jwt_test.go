package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/erazemk/posest/internal/model"
)

func TestGenerateAndValidateToken(t *testing.T) {
	issuer := NewIssuer("test-secret-key", 0)

	token, err := issuer.GenerateToken(1, "admin", model.RoleAdmin)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := issuer.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}

	if claims.UserID != 1 {
		t.Errorf("expected user_id 1, got %d", claims.UserID)
	}
	if claims.Username != "admin" {
		t.Errorf("expected username 'admin', got %q", claims.Username)
	}
	if claims.Role != model.RoleAdmin {
		t.Errorf("expected role 'admin', got %q", claims.Role)
	}
	if claims.ID == "" {
		t.Error("expected a JTI")
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, _ := NewIssuer("secret1", 0).GenerateToken(1, "admin", model.RoleAdmin)

	if _, err := NewIssuer("secret2", 0).ValidateToken(token); err == nil {
		t.Error("expected error for wrong secret")
	}
}

func TestValidateTokenInvalid(t *testing.T) {
	if _, err := NewIssuer("secret", 0).ValidateToken("not-a-token"); err == nil {
		t.Error("expected error for invalid token")
	}
}

func TestValidateTokenRejectsOtherAlgorithms(t *testing.T) {
	claims := Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "jti",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("signing: %v", err)
	}

	if _, err := NewIssuer("secret", 0).ValidateToken(token); err == nil {
		t.Error("expected HS512 token to be rejected")
	}
}

func TestTokenExpiry(t *testing.T) {
	issuer := NewIssuer("test", time.Hour)
	token, _ := issuer.GenerateToken(1, "test", model.RoleUser)
	claims, _ := issuer.ValidateToken(token)

	diff := time.Now().Add(time.Hour).Sub(claims.ExpiresAt.Time)
	if diff < -5*time.Second || diff > 5*time.Second {
		t.Errorf("token expiry too far from expected: diff=%v", diff)
	}

	expired := NewIssuer("test", time.Nanosecond)
	token, _ = expired.GenerateToken(1, "test", model.RoleUser)
	time.Sleep(1100 * time.Millisecond)
	if _, err := expired.ValidateToken(token); err == nil {
		t.Error("expected expired token to be rejected")
	}
}

package services

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/smart-ats/internal/config"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:  "test-secret",
		Issuer:     "smart-ats-test",
		AccessTTL:  time.Hour,
		RefreshTTL: 24 * time.Hour,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokenService(testAuthConfig())
	userID := uuid.New()

	signed, err := tokens.GenerateAccessToken(userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := tokens.ParseToken(signed, TokenTypeAccess)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if claims.Subject != userID.String() {
		t.Fatalf("expected subject %s, got %s", userID, claims.Subject)
	}

	if claims.Issuer != "smart-ats-test" {
		t.Fatalf("unexpected issuer: %s", claims.Issuer)
	}
}

func TestRefreshTokenRejectedAsAccess(t *testing.T) {
	tokens := NewTokenService(testAuthConfig())

	signed, err := tokens.GenerateRefreshToken(uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := tokens.ParseToken(signed, TokenTypeAccess); err == nil {
		t.Fatal("expected refresh token to be rejected as access token")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	cfg := testAuthConfig()
	cfg.AccessTTL = -time.Minute
	tokens := NewTokenService(cfg)

	signed, err := tokens.GenerateAccessToken(uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := tokens.ParseToken(signed, TokenTypeAccess); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestTokenFromDifferentSecretRejected(t *testing.T) {
	tokens := NewTokenService(testAuthConfig())

	otherCfg := testAuthConfig()
	otherCfg.JWTSecret = "other-secret"
	otherTokens := NewTokenService(otherCfg)

	signed, err := otherTokens.GenerateAccessToken(uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := tokens.ParseToken(signed, TokenTypeAccess); err == nil {
		t.Fatal("expected token signed with another secret to be rejected")
	}
}

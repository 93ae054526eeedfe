package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"alfredoptarigan/smart-ats/internal/config"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// TokenClaims extends the registered claims with the token type so refresh
// tokens cannot be replayed as access tokens.
type TokenClaims struct {
	jwt.RegisteredClaims
	TokenType string `json:"token_type"`
}

type TokenService interface {
	GenerateAccessToken(userID uuid.UUID) (string, error)
	GenerateRefreshToken(userID uuid.UUID) (string, error)
	ParseToken(tokenStr, expectedType string) (*TokenClaims, error)
}

type tokenService struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenService(cfg config.AuthConfig) TokenService {
	return &tokenService{
		secret:     []byte(cfg.JWTSecret),
		issuer:     cfg.Issuer,
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
	}
}

// GenerateAccessToken implements TokenService.
func (t *tokenService) GenerateAccessToken(userID uuid.UUID) (string, error) {
	return t.generate(userID, TokenTypeAccess, t.accessTTL)
}

// GenerateRefreshToken implements TokenService.
func (t *tokenService) GenerateRefreshToken(userID uuid.UUID) (string, error) {
	return t.generate(userID, TokenTypeRefresh, t.refreshTTL)
}

func (t *tokenService) generate(userID uuid.UUID, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		TokenType: tokenType,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// ParseToken implements TokenService.
func (t *tokenService) ParseToken(tokenStr, expectedType string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &TokenClaims{}, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))

	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	if t.issuer != "" && claims.Issuer != t.issuer {
		return nil, fmt.Errorf("invalid token issuer")
	}

	if claims.TokenType != expectedType {
		return nil, fmt.Errorf("invalid token type")
	}

	return claims, nil
}

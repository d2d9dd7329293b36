// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/finance-tracker/recurring/internal/application/adapter"
	domainerror "github.com/finance-tracker/recurring/internal/domain/error"
)

// tokenTypeAccess marks access tokens; refresh tokens are rejected.
const tokenTypeAccess = "access"

// CustomClaims represents the custom claims carried by identity provider tokens.
type CustomClaims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// tokenValidator implements the adapter.TokenValidator interface.
type tokenValidator struct {
	secret []byte
	issuer string
}

// NewTokenValidator creates a validator for HS256 tokens signed with secret.
// An empty issuer disables the issuer check.
func NewTokenValidator(secret, issuer string) adapter.TokenValidator {
	return &tokenValidator{
		secret: []byte(secret),
		issuer: issuer,
	}
}

// ValidateAccessToken validates an access token and returns its claims.
func (v *tokenValidator) ValidateAccessToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	claims, err := v.parseJWT(token)
	if err != nil {
		return nil, err
	}

	if claims.TokenType != tokenTypeAccess {
		return nil, fmt.Errorf("invalid token type: expected access token: %w", domainerror.ErrInvalidToken)
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID in token: %w", domainerror.ErrInvalidToken)
	}

	return &adapter.TokenClaims{
		UserID:    userID,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// parseJWT parses and validates a JWT token.
func (v *tokenValidator) parseJWT(tokenString string) (*CustomClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domainerror.ErrExpiredToken
		}
		return nil, fmt.Errorf("failed to parse token: %w", domainerror.ErrInvalidToken)
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, domainerror.ErrInvalidToken
	}

	return claims, nil
}

// SignAccessToken issues an access token the way the identity provider does.
// It is used by local tooling and tests.
func SignAccessToken(secret, issuer string, userID uuid.UUID, email string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := CustomClaims{
		UserID:    userID.String(),
		Email:     email,
		TokenType: tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   userID.String(),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

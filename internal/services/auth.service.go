package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"emoshown/config"
	"emoshown/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/golang-jwt/jwt/v5"
)

// AuthService verifies bearer tokens minted for the app by the auth provider.
// Tokens are HS256 signed with the shared AUTH_JWT_SECRET.
type AuthService struct {
	secret []byte
	issuer string
	log    logger.Logger
}

type tokenClaims struct {
	jwt.RegisteredClaims
	Name  string `json:"name"`
	Email string `json:"email"`
}

func NewAuthService(cfg config.Config) (*AuthService, error) {
	log := logger.New("AuthService")

	if cfg.AuthJWTSecret == "" {
		return nil, log.ErrMsg("auth configuration required but not provided: missing AUTH_JWT_SECRET")
	}

	return &AuthService{
		secret: []byte(cfg.AuthJWTSecret),
		issuer: strings.TrimSuffix(cfg.AuthJWTIssuer, "/"),
		log:    log,
	}, nil
}

func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*types.TokenInfo, error) {
	log := s.log.TraceFromContext(ctx).Function("ValidateToken")

	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if s.issuer != "" {
		options = append(options, jwt.WithIssuer(s.issuer))
	}

	var claims tokenClaims
	token, err := jwt.ParseWithClaims(
		tokenString,
		&claims,
		func(token *jwt.Token) (any, error) {
			return s.secret, nil
		},
		options...,
	)
	if err != nil {
		return &types.TokenInfo{Valid: false}, log.Err("JWT verification failed", err)
	}

	if !token.Valid {
		return &types.TokenInfo{Valid: false}, log.ErrMsg("JWT token is invalid")
	}

	if claims.Subject == "" {
		return &types.TokenInfo{Valid: false}, log.ErrMsg("JWT token has no subject")
	}

	return &types.TokenInfo{
		UserID: claims.Subject,
		Email:  claims.Email,
		Name:   strings.TrimSpace(claims.Name),
		Valid:  true,
	}, nil
}

// IssueToken signs a token the way the auth provider does, with the same
// secret and issuer ValidateToken expects.
func (s *AuthService) IssueToken(subject, name, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Name:  name,
		Email: email,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

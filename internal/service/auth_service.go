package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ai-quizzer/internal/config"
	"ai-quizzer/internal/dto"
	"ai-quizzer/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const tokenTypeAccess = "access"

var (
	ErrInvalidJWTToken = errors.New("invalid jwt token")
	ErrMissingSecret   = errors.New("jwt secret key is not configured")
)

// AuthService verifies the bearer tokens that identify students.
// Tokens are issued by an external identity provider sharing the HMAC
// secret; IssueToken exists for tooling and tests.
type AuthService interface {
	ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
	IssueToken(ctx context.Context, userID, email string) (string, error)
}

type authServiceImpl struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(cfg config.JWTConfig) (AuthService, error) {
	if cfg.SecretKey == "" {
		return nil, ErrMissingSecret
	}
	ttl := cfg.AccessTokenTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &authServiceImpl{secret: []byte(cfg.SecretKey), issuer: cfg.Issuer, ttl: ttl}, nil
}

func (s *authServiceImpl) IssueToken(ctx context.Context, userID, email string) (string, error) {
	if userID == "" {
		return "", errors.New("user id is required")
	}
	now := time.Now()
	claims := dto.AuthClaims{
		UserID:    userID,
		Email:     email,
		TokenType: tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *authServiceImpl) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &dto.AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		logger.Get().Warn("JWT validation failed",
			zap.Error(err),
			zap.Bool("expired", errors.Is(err, jwt.ErrTokenExpired)),
			zap.String("token_snippet", snippet(tokenString)))
		return nil, fmt.Errorf("%w: %v", ErrInvalidJWTToken, err)
	}

	claims, ok := token.Claims.(*dto.AuthClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidJWTToken
	}
	if claims.UserID == "" {
		claims.UserID = claims.Subject
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("%w: missing user id", ErrInvalidJWTToken)
	}
	if claims.TokenType != "" && claims.TokenType != tokenTypeAccess {
		return nil, fmt.Errorf("%w: not an access token", ErrInvalidJWTToken)
	}
	return claims, nil
}

func snippet(token string) string {
	if len(token) > 20 {
		return token[:20] + "..."
	}
	return token
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"ai-quizzer/internal/config"
	"ai-quizzer/internal/dto"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-with-enough-length"

func newTestAuthService(t *testing.T) AuthService {
	t.Helper()
	svc, err := NewAuthService(config.JWTConfig{SecretKey: testSecret, Issuer: "ai-quizzer", AccessTokenTTL: time.Hour})
	require.NoError(t, err)
	return svc
}

func signClaims(t *testing.T, claims dto.AuthClaims, method jwt.SigningMethod, key interface{}) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func TestNewAuthService_RequiresSecret(t *testing.T) {
	_, err := NewAuthService(config.JWTConfig{})
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestIssueAndValidate(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	token, err := svc.IssueToken(ctx, "student-1", "kid@example.com")
	require.NoError(t, err)

	claims, err := svc.ValidateJWT(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "student-1", claims.UserID)
	assert.Equal(t, "kid@example.com", claims.Email)
	assert.Equal(t, "ai-quizzer", claims.Issuer)
}

func TestValidateJWT_Rejects(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()
	future := jwt.NewNumericDate(time.Now().Add(time.Hour))

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not.a.token"},
		{"wrong secret", signClaims(t, dto.AuthClaims{UserID: "u", RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: future}}, jwt.SigningMethodHS256, []byte("other-secret"))},
		{"expired", signClaims(t, dto.AuthClaims{UserID: "u", RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute))}}, jwt.SigningMethodHS256, []byte(testSecret))},
		{"refresh token", signClaims(t, dto.AuthClaims{UserID: "u", TokenType: "refresh", RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: future}}, jwt.SigningMethodHS256, []byte(testSecret))},
		{"no user", signClaims(t, dto.AuthClaims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: future}}, jwt.SigningMethodHS256, []byte(testSecret))},
		{"alg none", signClaims(t, dto.AuthClaims{UserID: "u", RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: future}}, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateJWT(ctx, tt.token)
			assert.True(t, errors.Is(err, ErrInvalidJWTToken), "got %v", err)
		})
	}
}

func TestValidateJWT_SubjectFallback(t *testing.T) {
	svc := newTestAuthService(t)
	token := signClaims(t, dto.AuthClaims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "student-9",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}, jwt.SigningMethodHS256, []byte(testSecret))

	claims, err := svc.ValidateJWT(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "student-9", claims.UserID)
}

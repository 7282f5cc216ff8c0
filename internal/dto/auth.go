package dto

import "github.com/golang-jwt/jwt/v5"

// AuthClaims defines the custom claims for JWT.
type AuthClaims struct {
	UserID    string `json:"userId"`
	Email     string `json:"email,omitempty"`
	TokenType string `json:"token_type,omitempty"` // "access" when set
	jwt.RegisteredClaims
}

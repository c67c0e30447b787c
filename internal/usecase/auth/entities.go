package auth

import (
	"time"

	"oalass-backend/internal/domain/user"

	"github.com/golang-jwt/jwt/v5"
)

const (
	issuer   = "OALASS"
	audience = "oalass-portal"
)

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.RegisteredClaims
	Role user.Role `json:"role"`
	Dept uint64    `json:"dept"`
}

type LoginInput struct {
	Email    string
	Password string
}

type TokenDTO struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	ExpiresAt   time.Time  `json:"expires_at"`
	User        *user.User `json:"user"`
}

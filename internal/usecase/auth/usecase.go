package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainUser "oalass-backend/internal/domain/user"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("missing or invalid token")
)

type Usecase struct {
	users  domainUser.Repository
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewUsecase(users domainUser.Repository, secret string, ttl time.Duration) *Usecase {
	return &Usecase{users: users, secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock overrides the time source (tests).
func (u *Usecase) WithClock(now func() time.Time) *Usecase {
	u.now = now
	return u
}

func (u *Usecase) Login(ctx context.Context, in LoginInput) (*TokenDTO, error) {
	usr, err := u.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("finding user by email: %w", err)
	}
	if err := usr.CheckPassword(in.Password); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !usr.IsActive {
		return nil, domainUser.ErrInactive
	}

	now := u.now().UTC()
	usr.LastLoginAt = &now
	if err := u.users.Save(ctx, usr); err != nil {
		return nil, fmt.Errorf("setting last login: %w", err)
	}

	token, exp, err := u.Issue(usr)
	if err != nil {
		return nil, err
	}
	return &TokenDTO{AccessToken: token, TokenType: "Bearer", ExpiresAt: exp, User: usr}, nil
}

// Issue signs a token for usr.
func (u *Usecase) Issue(usr *domainUser.User) (string, time.Time, error) {
	now := u.now().UTC()
	exp := now.Add(u.ttl)
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   usr.UserID,
			Audience:  jwt.ClaimStrings{audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Role: usr.Role,
		Dept: usr.DepartmentID,
	}
	ss, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(u.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}
	return ss, exp, nil
}

// Parse validates the signature and registered claims of token.
func (u *Usecase) Parse(token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return u.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(u.now),
	)
	if err != nil || claims.Subject == "" {
		return nil, ErrUnauthenticated
	}
	return claims, nil
}

// Authenticate resolves the current user behind token. The user row is
// re-read so role changes and deactivation take effect immediately.
func (u *Usecase) Authenticate(ctx context.Context, token string) (*domainUser.User, error) {
	claims, err := u.Parse(token)
	if err != nil {
		return nil, err
	}
	usr, err := u.users.GetByUserID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("finding user by ID: %w", err)
	}
	if !usr.IsActive {
		return nil, domainUser.ErrInactive
	}
	return usr, nil
}

package jwtauth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"nicu-progress/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"

	defaultIssuer = "nicu-progress"
)

var ErrSecretEmpty = errors.New("jwt secret is empty")

type Config struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Issuer     string
}

type tokenClaims struct {
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// Issuer firma y verifica tokens HS256.
// Implementa auth.AuthVerifier y auth.TokenIssuer.
type Issuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	issuer     string
	now        func() time.Time
}

func NewIssuer(cfg Config) (*Issuer, error) {
	if strings.TrimSpace(cfg.Secret) == "" {
		return nil, ErrSecretEmpty
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = 15 * time.Minute
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = 7 * 24 * time.Hour
	}
	if strings.TrimSpace(cfg.Issuer) == "" {
		cfg.Issuer = defaultIssuer
	}
	return &Issuer{
		secret:     []byte(cfg.Secret),
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		issuer:     cfg.Issuer,
		now:        time.Now,
	}, nil
}

func (i *Issuer) Issue(userID string) (auth.TokenPair, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return auth.TokenPair{}, auth.ErrInvalidToken
	}
	access, err := i.sign(userID, TypeAccess, i.accessTTL)
	if err != nil {
		return auth.TokenPair{}, err
	}
	refresh, err := i.sign(userID, TypeRefresh, i.refreshTTL)
	if err != nil {
		return auth.TokenPair{}, err
	}
	return auth.TokenPair{Access: access, Refresh: refresh}, nil
}

func (i *Issuer) Refresh(_ context.Context, refreshToken string) (string, error) {
	c, err := i.parse(refreshToken, TypeRefresh)
	if err != nil {
		return "", err
	}
	return i.sign(c.UserID, TypeAccess, i.accessTTL)
}

// Verify solo acepta access tokens; un refresh token no sirve como Bearer.
func (i *Issuer) Verify(_ context.Context, token string) (auth.Claims, error) {
	return i.parse(token, TypeAccess)
}

func (i *Issuer) sign(userID, tokenType string, ttl time.Duration) (string, error) {
	now := i.now()
	claims := tokenClaims{
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    i.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", tokenType, err)
	}
	return s, nil
}

func (i *Issuer) parse(token, wantType string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, auth.ErrInvalidToken
	}

	var c tokenClaims
	_, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.issuer),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("%w: %v", auth.ErrInvalidToken, err)
	}
	if c.TokenType != wantType || strings.TrimSpace(c.Subject) == "" {
		return auth.Claims{}, auth.ErrInvalidToken
	}

	out := auth.Claims{UserID: c.Subject, TokenType: c.TokenType}
	if c.ExpiresAt != nil {
		out.ExpiresAt = c.ExpiresAt.Time
	}
	return out, nil
}

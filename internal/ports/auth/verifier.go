package auth

import (
	"context"
	"errors"
)

var ErrInvalidToken = errors.New("invalid token")

// AuthVerifier verifica un token de acceso y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// TokenIssuer emite tokens firmados para un usuario ya autenticado.
type TokenIssuer interface {
	Issue(userID string) (TokenPair, error)
	// Refresh valida un refresh token y emite un nuevo access token.
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

var ErrBadCredentials = errors.New("invalid username or password")

// CredentialChecker valida usuario/contraseña.
type CredentialChecker interface {
	Check(ctx context.Context, username, password string) error
}

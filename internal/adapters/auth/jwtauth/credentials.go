package jwtauth

import (
	"context"
	"strings"

	"nicu-progress/internal/ports/auth"

	"golang.org/x/crypto/bcrypt"
)

// Credentials valida contraseñas contra hashes bcrypt (username => hash).
type Credentials struct {
	hashes map[string][]byte
}

func NewCredentials(hashes map[string]string) *Credentials {
	c := &Credentials{hashes: make(map[string][]byte, len(hashes))}
	for user, h := range hashes {
		c.hashes[strings.TrimSpace(user)] = []byte(h)
	}
	return c
}

func (c *Credentials) Check(_ context.Context, username, password string) error {
	hash, ok := c.hashes[strings.TrimSpace(username)]
	if !ok {
		return auth.ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return auth.ErrBadCredentials
	}
	return nil
}

// HashPassword genera el hash que se configura en CLINICIANS.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

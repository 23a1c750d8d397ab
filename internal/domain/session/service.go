package session

import (
	"context"
	"errors"
	"strings"

	"nicu-progress/internal/ports/auth"
)

var ErrInvalidInput = errors.New("username and password are required")

// Service autentica clínicos y emite tokens.
type Service struct {
	creds  auth.CredentialChecker
	tokens auth.TokenIssuer
}

func NewService(creds auth.CredentialChecker, tokens auth.TokenIssuer) *Service {
	return &Service{creds: creds, tokens: tokens}
}

func (s *Service) Login(ctx context.Context, username, password string) (auth.TokenPair, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return auth.TokenPair{}, ErrInvalidInput
	}
	if err := s.creds.Check(ctx, username, password); err != nil {
		return auth.TokenPair{}, err
	}
	return s.tokens.Issue(username)
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return "", auth.ErrInvalidToken
	}
	return s.tokens.Refresh(ctx, refreshToken)
}

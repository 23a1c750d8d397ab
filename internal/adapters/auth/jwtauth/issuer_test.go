package jwtauth

import (
	"context"
	"errors"
	"testing"
	"time"

	"nicu-progress/internal/ports/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIssuer(t *testing.T) *Issuer {
	t.Helper()
	iss, err := NewIssuer(Config{Secret: "s3cret", AccessTTL: time.Minute, RefreshTTL: time.Hour})
	require.NoError(t, err)
	return iss
}

func TestIssuer_IssueAndVerify(t *testing.T) {
	iss := newTestIssuer(t)

	pair, err := iss.Issue("nurse.ana")
	require.NoError(t, err)
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)

	claims, err := iss.Verify(context.Background(), pair.Access)
	require.NoError(t, err)
	assert.Equal(t, "nurse.ana", claims.UserID)
	assert.Equal(t, TypeAccess, claims.TokenType)
}

func TestIssuer_RefreshTokenIsNotABearer(t *testing.T) {
	iss := newTestIssuer(t)
	pair, err := iss.Issue("nurse.ana")
	require.NoError(t, err)

	_, err = iss.Verify(context.Background(), pair.Refresh)
	assert.True(t, errors.Is(err, auth.ErrInvalidToken))

	_, err = iss.Refresh(context.Background(), pair.Access)
	assert.True(t, errors.Is(err, auth.ErrInvalidToken))
}

func TestIssuer_RefreshIssuesNewAccess(t *testing.T) {
	iss := newTestIssuer(t)
	pair, err := iss.Issue("nurse.ana")
	require.NoError(t, err)

	access, err := iss.Refresh(context.Background(), pair.Refresh)
	require.NoError(t, err)

	claims, err := iss.Verify(context.Background(), access)
	require.NoError(t, err)
	assert.Equal(t, "nurse.ana", claims.UserID)
}

func TestIssuer_ExpiredAndForeignTokens(t *testing.T) {
	iss := newTestIssuer(t)
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	iss.now = func() time.Time { return base }

	pair, err := iss.Issue("nurse.ana")
	require.NoError(t, err)

	iss.now = func() time.Time { return base.Add(2 * time.Minute) }
	_, err = iss.Verify(context.Background(), pair.Access)
	assert.True(t, errors.Is(err, auth.ErrInvalidToken), "expired access token")

	other, err := NewIssuer(Config{Secret: "other"})
	require.NoError(t, err)
	foreign, err := other.Issue("nurse.ana")
	require.NoError(t, err)
	_, err = iss.Refresh(context.Background(), foreign.Refresh)
	assert.True(t, errors.Is(err, auth.ErrInvalidToken), "signed with another secret")
}

func TestNewIssuer_RequiresSecret(t *testing.T) {
	_, err := NewIssuer(Config{Secret: "  "})
	assert.ErrorIs(t, err, ErrSecretEmpty)
}

func TestCredentials_Check(t *testing.T) {
	hash, err := HashPassword("pa55")
	require.NoError(t, err)
	creds := NewCredentials(map[string]string{"nurse.ana": hash})

	assert.NoError(t, creds.Check(context.Background(), "nurse.ana", "pa55"))
	assert.ErrorIs(t, creds.Check(context.Background(), "nurse.ana", "wrong"), auth.ErrBadCredentials)
	assert.ErrorIs(t, creds.Check(context.Background(), "ghost", "pa55"), auth.ErrBadCredentials)
}

package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/impulse-lab/lab-booking-service/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret")

	token, exp, err := tm.Generate("user-123", domain.RoleAdmin, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := tm.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.SubjectID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a")
	verifier := NewTokenManager("secret-b")

	token, _, err := issuer.Generate("user-123", domain.RoleUser, time.Hour)
	require.NoError(t, err)

	_, err = verifier.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenExpired(t *testing.T) {
	tm := NewTokenManager("test-secret")

	token, _, err := tm.Generate("user-123", domain.RoleUser, time.Minute)
	require.NoError(t, err)

	tm.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = tm.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenTampered(t *testing.T) {
	tm := NewTokenManager("test-secret")

	token, _, err := tm.Generate("user-123", domain.RoleUser, time.Hour)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + ".eyJzdWJfaWQiOiJvdGhlciJ9." + parts[2]

	_, err = tm.Parse(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenUnknownRoleRejected(t *testing.T) {
	tm := NewTokenManager("test-secret")

	token, _, err := tm.Generate("user-123", domain.Role("superuser"), time.Hour)
	require.NoError(t, err)

	_, err = tm.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenMalformed(t *testing.T) {
	tm := NewTokenManager("test-secret")

	for _, input := range []string{"", "not-a-jwt", "a.b", "a.b.c.d"} {
		_, err := tm.Parse(input)
		assert.ErrorIs(t, err, ErrInvalidToken, "input %q", input)
	}
}

package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func newTestManager(t *testing.T, secret string, expiration time.Duration) *TokenManager {
	t.Helper()
	manager, err := NewTokenManager(secret, expiration)
	require.NoError(t, err)
	return manager
}

func TestTokenIssueAndVerify(t *testing.T) {
	manager := newTestManager(t, testSecret, time.Hour)

	token, err := manager.Issue("64a1f2e3d4c5b6a798887766")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := manager.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "64a1f2e3d4c5b6a798887766", userID)
}

func TestTokenVerifyWrongSecret(t *testing.T) {
	manager := newTestManager(t, testSecret, time.Hour)
	other := newTestManager(t, "a-different-secret", time.Hour)

	token, err := manager.Issue("64a1f2e3d4c5b6a798887766")
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenVerifyExpired(t *testing.T) {
	manager := newTestManager(t, testSecret, time.Hour)
	manager.expiration = -time.Minute

	token, err := manager.Issue("64a1f2e3d4c5b6a798887766")
	require.NoError(t, err)

	_, err = manager.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenVerifyGarbage(t *testing.T) {
	manager := newTestManager(t, testSecret, time.Hour)

	for _, tok := range []string{"", "not.a.token", "abcdef"} {
		_, err := manager.Verify(tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestNewTokenManagerDefaults(t *testing.T) {
	manager := newTestManager(t, testSecret, 0)
	assert.Equal(t, 30*24*time.Hour, manager.Expiration())

	_, err := NewTokenManager("", time.Hour)
	assert.Error(t, err)
}

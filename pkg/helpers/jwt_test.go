package helpers_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secondchance/marketplace/pkg/helpers"
)

func TestJWTRoundTrip(t *testing.T) {
	mgr := helpers.NewJWTManager("test-secret", 7*24*time.Hour)

	token, exp, err := mgr.Issue("user-1", "buyer@example.com", "buyer")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), exp, 5*time.Second)

	claims, err := mgr.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "buyer@example.com", claims.Email)
	assert.Equal(t, "buyer", claims.Username)
}

func TestJWTWrongSecret(t *testing.T) {
	issuer := helpers.NewJWTManager("secret-a", time.Hour)
	verifier := helpers.NewJWTManager("secret-b", time.Hour)

	token, _, err := issuer.Issue("user-1", "buyer@example.com", "buyer")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, helpers.ErrInvalidToken)
}

func TestJWTExpired(t *testing.T) {
	mgr := helpers.NewJWTManager("test-secret", -time.Minute)

	token, _, err := mgr.Issue("user-1", "buyer@example.com", "buyer")
	require.NoError(t, err)

	_, err = mgr.Verify(token)
	assert.ErrorIs(t, err, helpers.ErrInvalidToken)
}

func TestJWTGarbage(t *testing.T) {
	mgr := helpers.NewJWTManager("test-secret", time.Hour)
	_, err := mgr.Verify("not-a-token")
	assert.ErrorIs(t, err, helpers.ErrInvalidToken)
}

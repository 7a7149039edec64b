package helpers_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secondchance/marketplace/pkg/helpers"
)

func TestGenVerificationToken(t *testing.T) {
	a, err := helpers.GenVerificationToken()
	require.NoError(t, err)
	b, err := helpers.GenVerificationToken()
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)

	_, err = hex.DecodeString(a)
	assert.NoError(t, err)
}

func TestRedisKeys(t *testing.T) {
	assert.Equal(t, "oauth:state:abc", helpers.KeyOAuthState("abc"))
	assert.Equal(t, "products:homepage", helpers.KeyHomepageSections())
}

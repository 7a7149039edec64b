package helpers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secondchance/marketplace/pkg/helpers"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := helpers.HashPassword("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	assert.True(t, helpers.CompareHashAndPassword(hash, "password123"))
	assert.False(t, helpers.CompareHashAndPassword(hash, "password124"))
	assert.False(t, helpers.CompareHashAndPassword("", "password123"))
}

package helpers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accountkit/account-service/pkg/helpers"
)

func TestHashPasswordSaltsPerCall(t *testing.T) {
	h1, err := helpers.HashPassword("Passw0rd1")
	require.NoError(t, err)
	h2, err := helpers.HashPassword("Passw0rd1")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2, "same plaintext must not produce the same hash")
	assert.NotEqual(t, "Passw0rd1", h1, "hash must not be the plaintext")
	assert.True(t, helpers.CompareHashAndPassword(h1, "Passw0rd1"))
	assert.True(t, helpers.CompareHashAndPassword(h2, "Passw0rd1"))
}

func TestCompareHashAndPassword(t *testing.T) {
	hash, err := helpers.HashPassword("correct-horse-1")
	require.NoError(t, err)

	testCases := []struct {
		description string
		hash        string
		plain       string
		want        bool
	}{
		{"matching password", hash, "correct-horse-1", true},
		{"wrong password", hash, "battery-staple-2", false},
		{"empty password", hash, "", false},
		{"malformed hash", "not-a-bcrypt-hash", "correct-horse-1", false},
		{"empty hash", "", "correct-horse-1", false},
		{"both empty", "", "", false},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, helpers.CompareHashAndPassword(tc.hash, tc.plain), tc.description)
	}
}

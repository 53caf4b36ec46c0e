package kernel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freight/internal/core/domain/model/kernel"
)

func TestNewAccessToken(t *testing.T) {
	token1 := kernel.NewAccessToken()
	token2 := kernel.NewAccessToken()

	require.NoError(t, token1.Validate())
	assert.False(t, token1.IsEqual(token2))
}

func TestAccessTokenFromString(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		original := kernel.NewAccessToken()

		restored, err := kernel.AccessTokenFromString(original.String())

		require.NoError(t, err)
		assert.True(t, original.IsEqual(restored))
	})

	t.Run("malformed token", func(t *testing.T) {
		_, err := kernel.AccessTokenFromString("definitely-not-a-token")
		require.Error(t, err)
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := kernel.AccessTokenFromString("")
		require.Error(t, err)
	})
}

func TestAccessTokenValidate(t *testing.T) {
	var zero kernel.AccessToken
	require.ErrorIs(t, zero.Validate(), kernel.ErrAccessTokenIsNotConstructed)
}

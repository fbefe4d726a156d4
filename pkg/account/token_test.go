package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOtp(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		otp, err := generateOtp()
		require.NoError(t, err)
		assert.Len(t, otp, 6, "OTP should always be six digits, zero-padded")
		for _, c := range otp {
			assert.True(t, c >= '0' && c <= '9', "OTP should be numeric")
		}
		seen[otp] = true
	}
	assert.Greater(t, len(seen), 1, "OTPs should not all be identical")
}

func TestGenerateResetToken(t *testing.T) {
	a, err := generateResetToken()
	require.NoError(t, err)
	b, err := generateResetToken()
	require.NoError(t, err)

	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b, "each issuance yields an independent value")
}

func TestBcryptHasher(t *testing.T) {
	h := &BcryptHasher{}

	t.Run("ValidPassword", func(t *testing.T) {
		hashed, err := h.Hash("validPassword123")
		require.NoError(t, err)
		assert.NotEmpty(t, hashed)
		assert.NotEqual(t, "validPassword123", hashed)

		match, err := h.Verify("validPassword123", hashed)
		require.NoError(t, err)
		assert.True(t, match)
	})

	t.Run("IncorrectPassword", func(t *testing.T) {
		hashed, err := h.Hash("correctPassword")
		require.NoError(t, err)

		match, err := h.Verify("incorrectPassword", hashed)
		require.NoError(t, err)
		assert.False(t, match)
	})

	t.Run("EmptyPassword", func(t *testing.T) {
		_, err := h.Hash("")
		assert.Error(t, err)

		match, err := h.Verify("", "")
		assert.Error(t, err)
		assert.False(t, match)
	})
}

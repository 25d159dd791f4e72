package crypto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheMichaelB/pwvault/internal/crypto"
)

// fastParams keeps Argon2id cheap in tests while staying valid.
func fastParams() crypto.Params {
	return crypto.Params{TimeCost: 1, MemoryKiB: 8, Parallelism: 1, HashLen: crypto.KeySize}
}

func TestDeriveKey(t *testing.T) {
	salt := []byte("0123456789abcdef")

	t.Run("deterministic", func(t *testing.T) {
		key1, err := crypto.DeriveKey("Secr3t!", salt, fastParams())
		require.NoError(t, err)
		require.Len(t, key1, crypto.KeySize)

		key2, err := crypto.DeriveKey("Secr3t!", salt, fastParams())
		require.NoError(t, err)
		assert.Equal(t, key1, key2)
	})

	t.Run("passphrase changes key", func(t *testing.T) {
		key1, err := crypto.DeriveKey("Secr3t!", salt, fastParams())
		require.NoError(t, err)

		key2, err := crypto.DeriveKey("secr3t!", salt, fastParams())
		require.NoError(t, err)
		assert.NotEqual(t, key1, key2)
	})

	t.Run("salt changes key", func(t *testing.T) {
		key1, err := crypto.DeriveKey("Secr3t!", salt, fastParams())
		require.NoError(t, err)

		key2, err := crypto.DeriveKey("Secr3t!", []byte("fedcba9876543210"), fastParams())
		require.NoError(t, err)
		assert.NotEqual(t, key1, key2)
	})

	t.Run("cost parameters change key", func(t *testing.T) {
		key1, err := crypto.DeriveKey("Secr3t!", salt, fastParams())
		require.NoError(t, err)

		p := fastParams()
		p.TimeCost = 2
		key2, err := crypto.DeriveKey("Secr3t!", salt, p)
		require.NoError(t, err)
		assert.NotEqual(t, key1, key2)
	})

	t.Run("empty salt rejected", func(t *testing.T) {
		_, err := crypto.DeriveKey("Secr3t!", nil, fastParams())
		assert.Error(t, err)
	})
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		params  crypto.Params
		wantErr bool
	}{
		{
			name:   "defaults",
			params: crypto.DefaultParams(),
		},
		{
			name:   "minimal valid",
			params: fastParams(),
		},
		{
			name:    "zero time cost",
			params:  crypto.Params{TimeCost: 0, MemoryKiB: 8, Parallelism: 1, HashLen: 32},
			wantErr: true,
		},
		{
			name:    "memory too small",
			params:  crypto.Params{TimeCost: 1, MemoryKiB: 4, Parallelism: 1, HashLen: 32},
			wantErr: true,
		},
		{
			name:    "zero parallelism",
			params:  crypto.Params{TimeCost: 1, MemoryKiB: 8, Parallelism: 0, HashLen: 32},
			wantErr: true,
		},
		{
			name:    "hash length mismatch",
			params:  crypto.Params{TimeCost: 1, MemoryKiB: 8, Parallelism: 1, HashLen: 16},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLegacyParams(t *testing.T) {
	// The documented legacy set must stay fixed: changing it would
	// lock users out of old files.
	legacy, ok := crypto.LegacyParams[1]
	require.True(t, ok)
	assert.Equal(t, uint32(3), legacy.TimeCost)
	assert.Equal(t, uint32(64*1024), legacy.MemoryKiB)
	assert.Equal(t, uint8(1), legacy.Parallelism)
	assert.Equal(t, uint32(crypto.KeySize), legacy.HashLen)
}

func TestNewSalt(t *testing.T) {
	salt1, err := crypto.NewSalt()
	require.NoError(t, err)
	assert.Len(t, salt1, crypto.SaltSize)

	salt2, err := crypto.NewSalt()
	require.NoError(t, err)
	assert.NotEqual(t, salt1, salt2)
}

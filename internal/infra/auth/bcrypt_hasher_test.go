package auth

import (
	"testing"

	"trolley/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	cfg := &config.Config{}
	cfg.Auth.BcryptCost = 4 // MinCost keeps the test fast

	hasher := NewBcryptHasher(cfg)

	hash, err := hasher.Hash("pw-12345678")
	require.NoError(t, err)
	assert.NotEqual(t, "pw-12345678", hash)

	assert.True(t, hasher.Check("pw-12345678", hash))
	assert.False(t, hasher.Check("wrong-password", hash))
}

func TestBcryptHasher_SaltedHashesDiffer(t *testing.T) {
	cfg := &config.Config{}
	cfg.Auth.BcryptCost = 4

	hasher := NewBcryptHasher(cfg)

	first, err := hasher.Hash("pw-12345678")
	require.NoError(t, err)
	second, err := hasher.Hash("pw-12345678")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Check("pw-12345678", first))
	assert.True(t, hasher.Check("pw-12345678", second))
}

func TestBcryptHasher_InvalidCostFallsBack(t *testing.T) {
	cfg := &config.Config{}
	cfg.Auth.BcryptCost = 99

	hasher := NewBcryptHasher(cfg)

	hash, err := hasher.Hash("pw-12345678")
	require.NoError(t, err)
	assert.True(t, hasher.Check("pw-12345678", hash))
}

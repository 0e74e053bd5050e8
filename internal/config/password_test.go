package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPasswordConfig(t *testing.T) {
	tests := []struct {
		name     string
		cost     string
		wantCost int
		wantErr  bool
	}{
		{name: "default cost", cost: "", wantCost: 12},
		{name: "minimum valid cost", cost: "10", wantCost: 10},
		{name: "maximum valid cost", cost: "14", wantCost: 14},
		{name: "cost below range", cost: "9", wantErr: true},
		{name: "cost above range", cost: "15", wantErr: true},
		{name: "non-numeric cost", cost: "fast", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BCRYPT_COST", tt.cost)
			t.Setenv("PASSWORD_PEPPER", "")

			cfg, err := NewPasswordConfig()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCost, cfg.BcryptCost)
		})
	}
}

func TestPasswordConfig_HashAndVerify(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: 10}

	hash, err := cfg.HashPassword("s3cret-casablanca")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.True(t, cfg.VerifyPassword("s3cret-casablanca", hash))
	assert.False(t, cfg.VerifyPassword("wrong-password", hash))
	assert.False(t, cfg.VerifyPassword("s3cret-casablanca", "not-a-bcrypt-hash"))
	assert.False(t, cfg.VerifyPassword("s3cret-casablanca", ""))

	// Salted: same password, different hashes.
	hash2, err := cfg.HashPassword("s3cret-casablanca")
	require.NoError(t, err)
	assert.NotEqual(t, hash, hash2)
}

func TestPasswordConfig_Pepper(t *testing.T) {
	peppered := &PasswordConfig{BcryptCost: 10, Pepper: "extra-secret"}
	plain := &PasswordConfig{BcryptCost: 10}

	hash, err := peppered.HashPassword("s3cret")
	require.NoError(t, err)

	assert.True(t, peppered.VerifyPassword("s3cret", hash))
	assert.False(t, plain.VerifyPassword("s3cret", hash), "hash made with a pepper must not verify without it")
}

func TestPasswordConfig_RejectsOversizedPassword(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: 10}

	// bcrypt errors past 72 bytes instead of truncating.
	long := make([]byte, 80)
	for i := range long {
		long[i] = 'a'
	}
	_, err := cfg.HashPassword(string(long))
	require.Error(t, err)
}

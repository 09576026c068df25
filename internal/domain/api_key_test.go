package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAPIKey(t *testing.T) {
	key, hash, prefix, err := GenerateAPIKey(EnvTest)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(key, "fk_test_"))
	assert.Len(t, hash, 64)
	assert.Equal(t, key[:14], prefix)
	assert.Equal(t, HashAPIKey(key), hash)
	assert.True(t, IsValidKeyFormat(key))
}

func TestGenerateAPIKey_InvalidEnvironment(t *testing.T) {
	_, _, _, err := GenerateAPIKey("staging")
	assert.Error(t, err)
}

func TestGenerateAPIKey_Unique(t *testing.T) {
	k1, _, _, err := GenerateAPIKey(EnvLive)
	require.NoError(t, err)
	k2, _, _, err := GenerateAPIKey(EnvLive)
	require.NoError(t, err)
	assert.NotEqual(t, k1, k2)
}

func TestIsValidKeyFormat(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want bool
	}{
		{"valid live key", "fk_live_" + strings.Repeat("a", 32), true},
		{"valid test key", "fk_test_" + strings.Repeat("Z", 32), true},
		{"wrong prefix", "sk_live_" + strings.Repeat("a", 32), false},
		{"wrong environment", "fk_prod_" + strings.Repeat("a", 32), false},
		{"random part too short", "fk_live_" + strings.Repeat("a", 16), false},
		{"invalid characters", "fk_live_" + strings.Repeat("!", 32), false},
		{"missing parts", "fk_live", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidKeyFormat(tt.key))
		})
	}
}

func TestAPIKeyValidate(t *testing.T) {
	valid := APIKey{
		Name:        "booking-app",
		KeyHash:     strings.Repeat("0", 64),
		KeyPrefix:   "fk_live_abc123",
		Environment: EnvLive,
	}
	assert.NoError(t, valid.Validate())

	noName := valid
	noName.Name = ""
	assert.Error(t, noName.Validate())

	noHash := valid
	noHash.KeyHash = ""
	assert.Error(t, noHash.Validate())

	badEnv := valid
	badEnv.Environment = "qa"
	assert.Error(t, badEnv.Validate())
}

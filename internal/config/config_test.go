package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/fides_test")
	t.Setenv("ADMIN_JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "mock", cfg.TextExtractor)
	assert.Equal(t, 30*time.Second, cfg.ExtractionTimeout)
	assert.Equal(t, "fides-api", cfg.AdminJWTIssuer)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoad_MissingRequired(t *testing.T) {
	// t.Setenv registers restoration of the original values; envconfig only
	// treats a required variable as missing when it is unset, not empty.
	t.Setenv("DATABASE_URL", "")
	t.Setenv("ADMIN_JWT_SECRET", "")
	os.Unsetenv("DATABASE_URL")
	os.Unsetenv("ADMIN_JWT_SECRET")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/fides_test")
	t.Setenv("ADMIN_JWT_SECRET", "test-secret")
	t.Setenv("ENV", "production")
	t.Setenv("PORT", "8080")
	t.Setenv("TEXT_EXTRACTOR", "rekognition")
	t.Setenv("EXTRACTION_TIMEOUT", "10s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "rekognition", cfg.TextExtractor)
	assert.Equal(t, 10*time.Second, cfg.ExtractionTimeout)
	assert.True(t, cfg.IsProduction())
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, "/api", cfg.APIPrefix)
	assert.Equal(t, "goal", cfg.Mongo.Database)
	assert.Equal(t, int64(2*1024*1024), cfg.Uploads.MaxFileSize)
	assert.Equal(t, 4, cfg.Uploads.MaxFiles)
	assert.True(t, cfg.Validation.StrictQuery)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, 10*time.Second, cfg.Cache.SubmissionGuardTTL)
	assert.Zero(t, cfg.Audit.Workers)
	assert.False(t, cfg.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://mongo:27017")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("ENV", EnvProduction)
	t.Setenv("ALLOWED_ORIGINS", "https://goal.edu.in, https://admin.goal.edu.in ,")
	t.Setenv("STRICT_QUERY_VALIDATION", "false")
	t.Setenv("JWT_EXPIRATION", "not-a-duration")
	t.Setenv("UPLOAD_MAX_FILE_SIZE", "-5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []string{"https://goal.edu.in", "https://admin.goal.edu.in"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.Validation.StrictQuery)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, int64(2*1024*1024), cfg.Uploads.MaxFileSize)
}

func TestLoadRequiresSecrets(t *testing.T) {
	t.Setenv("MONGODB_URI", "")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MONGODB_URI")
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

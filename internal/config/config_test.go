package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hub-server.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("defaults fill unset values", func(t *testing.T) {
		path := writeConfig(t, `
jwt:
  secret: test-secret
`)

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "/api", cfg.API.Prefix)
		assert.Equal(t, 3000, cfg.API.Port)
		assert.Equal(t, 100, cfg.API.RateLimit)
		assert.Equal(t, time.Minute, cfg.API.RateWindow)
		assert.Equal(t, []string{"*"}, cfg.API.CORSOrigins)
		assert.Equal(t, "generated-pdfs", cfg.Storage.Bucket)
		assert.Equal(t, "gpt-4o", cfg.AI.Model)
		assert.Equal(t, 4000, cfg.AI.MaxTokens)
		assert.Equal(t, 60*time.Second, cfg.PDF.RenderTimeout)
		assert.False(t, cfg.IsProduction())
	})

	t.Run("missing jwt secret is fatal", func(t *testing.T) {
		path := writeConfig(t, `
api:
  port: 8080
`)

		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("environment overrides the file", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		t.Setenv("PORT", "9090")
		t.Setenv("API_PREFIX", "/hub")
		t.Setenv("JWT_SECRET", "env-secret")

		path := writeConfig(t, `
api:
  port: 8080
  prefix: /api
jwt:
  secret: file-secret
`)

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, 9090, cfg.API.Port)
		assert.Equal(t, "/hub", cfg.API.Prefix)
		assert.Equal(t, "env-secret", cfg.JWT.Secret)
		assert.True(t, cfg.IsProduction())
	})
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("reads values from yaml", func(t *testing.T) {
		path := writeConfig(t, `
server:
  port: 8080
data:
  file: /var/lib/baulog/bautagebuch.json
  uploadsDir: /var/lib/baulog/uploads
openai:
  apiKey: aus-der-datei
  model: gpt-4o
  timeoutSeconds: 30
storage:
  driver: minio
`)
		t.Setenv("OPENAI_API_KEY", "")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, "/var/lib/baulog/bautagebuch.json", cfg.Data.File)
		assert.Equal(t, "aus-der-datei", cfg.OpenAI.APIKey)
		assert.Equal(t, 30, cfg.OpenAI.TimeoutSeconds)
		assert.Equal(t, "minio", cfg.Storage.Driver)
	})

	t.Run("applies defaults", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, `{}`))
		require.NoError(t, err)
		assert.Equal(t, 3000, cfg.Server.Port)
		assert.Equal(t, "data/bautagebuch.json", cfg.Data.File)
		assert.Equal(t, "uploads", cfg.Data.UploadsDir)
		assert.Equal(t, 60, cfg.OpenAI.TimeoutSeconds)
		assert.Equal(t, "local", cfg.Storage.Driver)
	})

	t.Run("env key wins over file", func(t *testing.T) {
		path := writeConfig(t, "openai:\n  apiKey: aus-der-datei\n")
		t.Setenv("OPENAI_API_KEY", "aus-der-umgebung")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "aus-der-umgebung", cfg.OpenAI.APIKey)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "fehlt.yaml"))
		assert.Error(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "server: [das ist kaputt"))
		assert.Error(t, err)
	})
}

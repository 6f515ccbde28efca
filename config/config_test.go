package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"API_URL", "WEB_BASE_URL", "LOG_LEVEL", "STUB_API_ADDR"} {
		t.Setenv(key, "")
	}
	t.Setenv("MATH_HELPER_HOME", t.TempDir())
}

func TestLoad_DefaultsWithoutConfigFile(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.APIBaseURL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "/login", cfg.LoginPath)
	assert.Equal(t, 100, cfg.Articles.PreviewLength)
	assert.Equal(t, 200, cfg.Articles.WordsPerMinute)
	assert.Equal(t, 3, cfg.Articles.PDFReadMinutes)
	assert.Equal(t, "readability", cfg.Articles.TextExtractor)
	assert.Equal(t, filepath.Join(os.Getenv("MATH_HELPER_HOME"), "storage.db"), cfg.CredentialStorePath)
}

func TestLoad_YamlAndEnvOverride(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	yamlBody := `
api_base_url: "https://api.example.uz"
request_timeout: 3s
logging:
  level: debug
articles:
  preview_length: 40
  text_extractor: plain
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, CONFIG_FILE), []byte(yamlBody), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ENV_FILE), []byte("WEB_BASE_URL=https://matematika.uz\n"), 0o644))
	// godotenv 은 이미 존재하는 변수를 덮어쓰지 않으므로 완전히 제거해 둔다.
	require.NoError(t, os.Unsetenv("WEB_BASE_URL"))
	t.Setenv("API_URL", "https://override.example.uz")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "https://override.example.uz", cfg.APIBaseURL)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 40, cfg.Articles.PreviewLength)
	assert.Equal(t, 200, cfg.Articles.WordsPerMinute)
	assert.Equal(t, "plain", cfg.Articles.TextExtractor)
	assert.Equal(t, "https://matematika.uz/login", cfg.LoginURL())
}

func TestLoad_RejectsUnknownExtractor(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, CONFIG_FILE), []byte("articles:\n  text_extractor: goose\n"), 0o644))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestLoad_InvalidYaml(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, CONFIG_FILE), []byte("logging: [\n"), 0o644))

	_, err := Load(dir)
	assert.Error(t, err)
}

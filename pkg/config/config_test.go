package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp switches into a fresh temp directory for the duration of the test.
func chdirTemp(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	originalDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	t.Cleanup(func() {
		os.Chdir(originalDir)
	})
	return tmpDir
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	tmpDir := chdirTemp(t)

	yamlContent := `
env: "test"
log_level: "debug"
state_dir: "` + filepath.ToSlash(tmpDir) + `/state"
api:
  base_url: "https://yaml.example.com"
  barrier_path: "barriers/new"
  timeout: 5s
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.yaml"), []byte(yamlContent), 0644))

	t.Setenv("SURVEY_API_BASE_URL", "https://env.example.com")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("SURVEYOR_CREDENTIALS_KEY", "secret-passphrase")

	cfg, err := Load("", "test-version")
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.com", cfg.API.BaseURL, "env must override yaml")
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "debug", cfg.LogLevel, "yaml value must be read")
	assert.Equal(t, "/barriers/new", cfg.API.BarrierPath, "barrier path must be made absolute")
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, "test-version", cfg.Version)
	assert.Equal(t, "secret-passphrase", cfg.CredentialsKey)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	chdirTemp(t)
	stateDir := t.TempDir()
	t.Setenv("SURVEYOR_STATE_DIR", stateDir)
	t.Setenv("SURVEY_API_BASE_URL", "")
	t.Setenv("ENVIRONMENT", "")
	os.Unsetenv("SURVEY_API_BASE_URL")
	os.Unsetenv("ENVIRONMENT")

	cfg, err := Load("", "dev")
	require.NoError(t, err)

	assert.Equal(t, "https://ada1.evanterry.com", cfg.API.BaseURL)
	assert.Equal(t, "/evanterry/surveyors.nsf/createBarrier", cfg.API.BarrierPath)
	assert.Equal(t, time.Duration(0), cfg.API.Timeout)
	assert.Equal(t, "local", cfg.Env)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, filepath.Join(stateDir, "state.db"), cfg.DatabasePath)
	assert.Equal(t, filepath.Join(stateDir, "credentials.yaml"), cfg.CredentialsFile)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	chdirTemp(t)

	_, err := Load("does-not-exist.yaml", "dev")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does-not-exist.yaml")
}

func TestLoad_RejectsInvalidBaseURL(t *testing.T) {
	chdirTemp(t)
	t.Setenv("SURVEYOR_STATE_DIR", t.TempDir())

	tests := []struct {
		name    string
		baseURL string
	}{
		{name: "missing scheme", baseURL: "ada1.evanterry.com"},
		{name: "unsupported scheme", baseURL: "ftp://ada1.evanterry.com"},
		{name: "unparsable", baseURL: "http://[::1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SURVEY_API_BASE_URL", tt.baseURL)
			_, err := Load("", "dev")
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid api configuration")
		})
	}
}

func TestLoad_ExpandsHomeDirectory(t *testing.T) {
	chdirTemp(t)
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SURVEYOR_STATE_DIR", "~/.surveyor-test")

	cfg, err := Load("", "dev")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".surveyor-test"), cfg.StateDir)
	assert.Equal(t, filepath.Join(home, ".surveyor-test", "state.db"), cfg.DatabasePath)
}

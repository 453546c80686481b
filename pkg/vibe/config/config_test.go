package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		service string
		wantErr bool
	}{
		{name: "valid service", service: "vibe-palette-test"},
		{name: "empty service", service: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.service)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigKeyring(t *testing.T) {
	keyring.MockInit()

	c, err := New("vibe-palette-test")
	require.NoError(t, err)

	assert.False(t, c.Exists("api"))
	assert.Equal(t, "", c.Get("api"))

	require.NoError(t, c.Set("api", "  sk-test-1234  "))
	assert.True(t, c.Exists("api"))
	assert.Equal(t, "sk-test-1234", c.Get("api"), "values are trimmed")

	require.NoError(t, c.Set("api", "   "), "blank value deletes the entry")
	assert.False(t, c.Exists("api"))

	assert.NoError(t, c.Delete("api"), "deleting a missing entry is fine")
	assert.ErrorIs(t, c.Set("", "x"), ErrEmptyKey)
	assert.ErrorIs(t, c.Delete(""), ErrEmptyKey)
	assert.False(t, c.Exists(""))
	assert.Equal(t, "", c.Get(""))
}

func TestCredential(t *testing.T) {
	keyring.MockInit()
	c, err := New("vibe-palette-test")
	require.NoError(t, err)

	cred := Credential{Config: c, Key: "api", EnvVar: "VIBE_TEST_API_KEY"}

	t.Setenv("VIBE_TEST_API_KEY", "")
	assert.Equal(t, "", cred.Credential())

	t.Setenv("VIBE_TEST_API_KEY", "from-env")
	assert.Equal(t, "from-env", cred.Credential())

	require.NoError(t, cred.Save("from-keyring"))
	assert.Equal(t, "from-keyring", cred.Credential(), "keyring wins over the environment")

	require.NoError(t, cred.Save(""))
	assert.Equal(t, "from-env", cred.Credential())

	assert.Error(t, Credential{Key: "api"}.Save("x"))
}

func TestLoadSettingsDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("VIBE_DATA_DIR", dir)

	cfg, err := LoadSettings("", "")
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, DefaultModel, cfg.Model)
	assert.Equal(t, DefaultFallbackDelay, cfg.FallbackDelay)
	assert.Equal(t, time.Duration(0), cfg.RequestTimeout)
	assert.NoError(t, cfg.Validate())
}

func TestLoadSettingsFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
data_dir: /tmp/vibe-from-file
api_url: http://localhost:9999/v1/chat/completions
model: gpt-4o-mini
fallback_delay: 250ms
request_timeout: 20s
log_level: debug
`), 0644))

	t.Setenv("VIBE_DATA_DIR", "")
	t.Setenv("VIBE_MODEL", "from-env-model")
	t.Setenv("VIBE_FALLBACK_DELAY", "0s")

	cfg, err := LoadSettings(path, "")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/vibe-from-file", cfg.DataDir)
	assert.Equal(t, "http://localhost:9999/v1/chat/completions", cfg.APIURL)
	assert.Equal(t, "from-env-model", cfg.Model)
	assert.Equal(t, time.Duration(0), cfg.FallbackDelay)
	assert.Equal(t, 20*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadSettingsDataDirOverride(t *testing.T) {
	envDir := t.TempDir()
	flagDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(envDir, SettingsFile), []byte("model: from-env-dir\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(flagDir, SettingsFile), []byte(`
model: from-flag-dir
data_dir: /tmp/ignored
`), 0644))

	t.Setenv("VIBE_DATA_DIR", envDir)
	t.Setenv("VIBE_MODEL", "")

	cfg, err := LoadSettings("", flagDir)
	require.NoError(t, err)
	assert.Equal(t, "from-flag-dir", cfg.Model, "settings come from the given data dir")
	assert.Equal(t, flagDir, cfg.DataDir, "the given data dir wins over file and env")

	cfg, err = LoadSettings("", "")
	require.NoError(t, err)
	assert.Equal(t, "from-env-dir", cfg.Model)
	assert.Equal(t, envDir, cfg.DataDir)
}

func TestLoadSettingsErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("model: [unclosed"), 0644))

	_, err := LoadSettings(bad, "")
	assert.Error(t, err)

	t.Setenv("VIBE_REQUEST_TIMEOUT", "soon")
	_, err = LoadSettings(filepath.Join(dir, "missing.yaml"), "")
	assert.Error(t, err)
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *Settings)
		wantErr bool
	}{
		{name: "defaults", mutate: func(s *Settings) {}},
		{name: "empty data dir", mutate: func(s *Settings) { s.DataDir = "" }, wantErr: true},
		{name: "ftp url", mutate: func(s *Settings) { s.APIURL = "ftp://example.com" }, wantErr: true},
		{name: "no host", mutate: func(s *Settings) { s.APIURL = "https://" }, wantErr: true},
		{name: "empty model", mutate: func(s *Settings) { s.Model = "" }, wantErr: true},
		{name: "negative delay", mutate: func(s *Settings) { s.FallbackDelay = -time.Second }, wantErr: true},
		{name: "negative timeout", mutate: func(s *Settings) { s.RequestTimeout = -time.Second }, wantErr: true},
		{name: "bad level", mutate: func(s *Settings) { s.LogLevel = "loud" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			s.DataDir = "/tmp/vibe"
			tt.mutate(&s)
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

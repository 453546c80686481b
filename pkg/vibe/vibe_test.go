package vibe

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ImGajeed76/vibepalette/pkg/vibe/config"
	"github.com/ImGajeed76/vibepalette/pkg/vibe/palette"
	"github.com/ImGajeed76/vibepalette/pkg/vibe/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func testSettings(t *testing.T) *config.Settings {
	t.Helper()
	settings := config.DefaultSettings()
	settings.DataDir = t.TempDir()
	settings.FallbackDelay = 0
	return &settings
}

func TestOpenRejectsInvalidSettings(t *testing.T) {
	settings := testSettings(t)
	settings.APIURL = "ftp://example.com"

	_, err := Open(settings)
	assert.Error(t, err)
}

func TestOpenGeneratesAndStores(t *testing.T) {
	keyring.MockInit()
	t.Setenv(APIKeyEnv, "")

	app, err := Open(testSettings(t))
	require.NoError(t, err)
	defer app.Close()

	p, source, err := app.Resolver.GenerateWithSource(context.Background(), "calm ocean")
	require.NoError(t, err)
	assert.Equal(t, resolver.SourceLocal, source, "no credential means local themes")
	assert.Len(t, p.Colors, palette.Size)

	require.NoError(t, app.History.Add(p))

	reopened, err := Open(app.Settings)
	require.NoError(t, err)
	defer reopened.Close()

	stored := reopened.History.List()
	require.Len(t, stored, 1)
	assert.Equal(t, p.ID, stored[0].ID)
	assert.Equal(t, p.Colors, stored[0].Colors)
}

func TestOpenUsesKeyringCredential(t *testing.T) {
	keyring.MockInit()
	t.Setenv(APIKeyEnv, "")

	app, err := Open(testSettings(t))
	require.NoError(t, err)
	defer app.Close()

	assert.Equal(t, "", app.Credential.Credential())
	require.NoError(t, app.Credential.Save("sk-test"))
	assert.Equal(t, "sk-test", app.Credential.Credential())
}

func TestNewLogger(t *testing.T) {
	logger, closer, err := NewLogger("", "debug")
	require.NoError(t, err)
	assert.Nil(t, closer)
	logger.Info("discarded")

	path := filepath.Join(t.TempDir(), "logs", "vibe.log")
	logger, closer, err = NewLogger(path, "info")
	require.NoError(t, err)
	logger.Debug("too quiet")
	logger.Info("palette generated")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "palette generated")
	assert.Contains(t, string(data), "app=vibe-palette")
	assert.NotContains(t, string(data), "too quiet")

	_, _, err = NewLogger(path, "loud")
	assert.Error(t, err)
}

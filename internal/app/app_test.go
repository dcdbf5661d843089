package app_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"omnichat/backend/internal/app"
	"omnichat/backend/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		AppPort:               0,
		DatabasePath:          filepath.Join(t.TempDir(), "omnichat.db"),
		UpstreamURL:           "http://localhost:9000",
		DefaultProvider:       "openai",
		RequestTimeoutSeconds: 5,
		UploadMaxBytes:        1 << 20,
		LogLevel:              "ERROR",
	}
}

func TestNewApp(t *testing.T) {
	cfg := testConfig(t)

	a, err := app.NewApp(cfg)
	require.NoError(t, err)
	defer a.DB.Close()

	assert.NotNil(t, a.DB)
	assert.NotNil(t, a.Server)
	assert.NotNil(t, a.Server.Handler)
	require.NoError(t, a.DB.Ping(), "migrations must leave a usable database behind")
}

func TestNewApp_RehydratesAcrossRestarts(t *testing.T) {
	cfg := testConfig(t)

	first, err := app.NewApp(cfg)
	require.NoError(t, err)
	require.NoError(t, first.DB.Close())

	// A second boot against the same file must replay the migrations as a
	// no-op and come up cleanly.
	second, err := app.NewApp(cfg)
	require.NoError(t, err)
	defer second.DB.Close()
	require.NoError(t, second.DB.Ping())
}

func TestNewApp_RejectsUnknownDefaultProvider(t *testing.T) {
	cfg := testConfig(t)
	cfg.DefaultProvider = "mistral"

	_, err := app.NewApp(cfg)
	require.Error(t, err)
}

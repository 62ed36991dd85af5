package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := LoadWithViper(v)
	require.NoError(t, err)

	assert.Equal(t, "jyotish.db", cfg.Database.Path)
	assert.Equal(t, "https://nominatim.openstreetmap.org", cfg.Geocoder.BaseURL)
	assert.Equal(t, "lahiri", cfg.Ephemeris.Ayanamsa)
	assert.True(t, cfg.LocalInference.Enabled)
	assert.Equal(t, "http://localhost:11434", cfg.LocalInference.BaseURL)
	assert.Equal(t, "openai/gpt-4o-mini", cfg.OpenRouter.Model)
	assert.Equal(t, DefaultServerPort, cfg.GetServerPort())
	assert.Equal(t, "north", cfg.GetChartStyle())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jyotish.toml")

	content := `
[server]
port = 9999

[geocoder]
user_agent = "test-agent/0.1"

[local_inference]
enabled = false

[reading]
chart_style = "south"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.GetServerPort())
	assert.Equal(t, "test-agent/0.1", cfg.Geocoder.UserAgent)
	assert.False(t, cfg.LocalInference.Enabled)
	assert.Equal(t, "south", cfg.GetChartStyle())

	// Unset values fall back to defaults
	assert.Equal(t, "jyotish.db", cfg.Database.Path)
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/jyotish.toml")
	assert.Error(t, err)
}

func TestGettersWithZeroValues(t *testing.T) {
	cfg := &Config{}

	assert.Equal(t, DefaultServerPort, cfg.GetServerPort())
	assert.Equal(t, "jyotish.db", cfg.GetDatabasePath())
	assert.NotEmpty(t, cfg.GetServerAllowedOrigins())
	assert.Equal(t, "north", cfg.GetChartStyle())

	zero := 0
	cfg.Server.Port = &zero
	assert.Equal(t, DefaultServerPort, cfg.GetServerPort())
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "telecorpus", cfg.MongoDB)
	assert.Equal(t, "raw_messages", cfg.RawCollection)
	assert.Equal(t, "cleaned_messages", cfg.CleanCollection)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 2.0, cfg.ScrapeRPS)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MONGO_DB", "other")
	t.Setenv("TG_API_ID", "12345")
	t.Setenv("SCRAPE_RPS", "0.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "other", cfg.MongoDB)
	assert.Equal(t, 12345, cfg.TGApiID)
	assert.Equal(t, 0.5, cfg.ScrapeRPS)
}

func TestLoad_MalformedNumbersFallBack(t *testing.T) {
	t.Setenv("TG_API_ID", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.TGApiID)
}

func TestLoadChannels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "channels.yaml")
	content := "channels:\n  - \"@DoctorsET\"\n  - \"@lobelia4cosmetics\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	list, err := LoadChannels(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"@DoctorsET", "@lobelia4cosmetics"}, list.Channels)
}

func TestLoadChannels_MissingFile(t *testing.T) {
	_, err := LoadChannels(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

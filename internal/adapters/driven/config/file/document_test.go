package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/inkpanel/internal/logger"
)

func TestWriteDefault_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	require.NoError(t, WriteDefault(path, false))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	l, err := NewLoader(path, logger.Discard())
	require.NoError(t, err)
	cfg, err := l.Load()
	require.NoError(t, err)
	want := Defaults()
	assert.Equal(t, want.Display, cfg.Display)
	assert.Equal(t, want.Intervals, cfg.Intervals)
	assert.Equal(t, want.Cache, cfg.Cache)
	assert.Equal(t, want.Pagination, cfg.Pagination)
	assert.Equal(t, want.Log, cfg.Log)
	assert.Empty(t, cfg.Todo.Goals)
}

func TestWriteDefault_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("# mine\n"), 0600))

	err := WriteDefault(path, false)
	require.Error(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# mine\n", string(data))

	require.NoError(t, WriteDefault(path, true))
}

func TestMarshal_Redacts(t *testing.T) {
	cfg := Defaults()
	cfg.Providers.Weather.APIKey = "weather-secret"
	cfg.Todo.NotionToken = "notion-secret"

	data, err := Marshal(cfg, true)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "weather-secret")
	assert.NotContains(t, string(data), "notion-secret")
	assert.Contains(t, string(data), redacted)

	data, err = Marshal(cfg, false)
	require.NoError(t, err)
	assert.Contains(t, string(data), "weather-secret")
}

func TestFlatten(t *testing.T) {
	got := flatten(map[string]any{
		"a": map[string]any{"b": 1, "c": map[string]any{"d": "x"}},
		"e": true,
	}, "")

	assert.Equal(t, map[string]any{"a.b": 1, "a.c.d": "x", "e": true}, got)
}

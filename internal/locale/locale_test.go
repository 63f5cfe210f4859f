package locale

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ansidocs/ansidocs/internal/config"
	"github.com/ansidocs/ansidocs/internal/loader"
	"github.com/ansidocs/ansidocs/internal/logging"
)

const enTable = `
file:
  remove: Remove $path$
`

func testConfig(dir, lang string) *config.Config {
	cfg := config.Default()
	cfg.StringsDir = dir
	cfg.Lang = lang
	return cfg
}

func TestLoadRequestedLocale(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "de.yml"),
		[]byte("file:\n  remove: Entferne $path$\n"), 0o644))

	log := logging.New(false, false)
	table, err := Load(loader.New(log), testConfig(dir, "de"), log)
	require.NoError(t, err)

	s, ok := table.Lookup("file", "remove")
	require.True(t, ok)
	assert.Equal(t, "Entferne $path$", s)
}

func TestLoadFallsBackToDefault(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en.yml"), []byte(enTable), 0o644))

	log := logging.New(false, false)
	table, err := Load(loader.New(log), testConfig(dir, "fr"), log)
	require.NoError(t, err)

	s, ok := table.Lookup("file", "remove")
	require.True(t, ok)
	assert.Equal(t, "Remove $path$", s)
}

func TestLoadNoTableAtAll(t *testing.T) {
	log := logging.New(false, false)
	_, err := Load(loader.New(log), testConfig(t.TempDir(), "en"), log)
	assert.Error(t, err)
}

func TestLookupMissing(t *testing.T) {
	table := Table{"file": {"remove": "x"}}
	_, ok := table.Lookup("file", "unknown")
	assert.False(t, ok)
	_, ok = table.Lookup("unknown", "remove")
	assert.False(t, ok)
}

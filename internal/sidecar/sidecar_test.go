package sidecar

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ansidocs/ansidocs/internal/logging"
)

func TestFilename(t *testing.T) {
	assert.Equal(t, "_etc_nginx_nginx.conf", Filename("/etc/nginx/nginx.conf"))
	assert.Equal(t, "relative_path", Filename("relative/path"))
}

func TestPlaceInlineBelowLimit(t *testing.T) {
	w := New(t.TempDir(), 10, logging.New(false, false))

	text, linked, err := w.Place("/etc/motd", "short")
	require.NoError(t, err)
	assert.False(t, linked)
	assert.Equal(t, "short", text)
}

func TestPlaceAtLimitStaysInline(t *testing.T) {
	w := New(t.TempDir(), 5, logging.New(false, false))

	text, linked, err := w.Place("/etc/motd", "12345")
	require.NoError(t, err)
	assert.False(t, linked, "content at the threshold is still inline")
	assert.Equal(t, "12345", text)
}

func TestPlaceSpillsOverLimit(t *testing.T) {
	dir := t.TempDir()
	w := New(dir, 10, logging.New(false, false))
	content := strings.Repeat("x", 11)

	text, linked, err := w.Place("/etc/nginx/nginx.conf", content)
	require.NoError(t, err)
	assert.True(t, linked)
	assert.Equal(t, "_etc_nginx_nginx.conf", text)

	written, err := os.ReadFile(filepath.Join(dir, "_etc_nginx_nginx.conf"))
	require.NoError(t, err)
	assert.Equal(t, content, string(written), "sidecar holds exactly the expanded content")
}

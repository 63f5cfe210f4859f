package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ansidocs/ansidocs/internal/book"
	"github.com/ansidocs/ansidocs/internal/config"
)

func TestFormatsDiscovery(t *testing.T) {
	dir := t.TempDir()
	for _, f := range []string{"markdown", "html"} {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, f), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, f, "main.j2"), []byte("x"), 0o644))
	}
	// A directory without main.j2 is not a format, nor is a plain file.
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "broken"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README"), []byte("x"), 0o644))

	formats, err := Formats(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"html", "markdown"}, formats)
}

func TestRenderBindsPlays(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "plain"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "plain", "main.j2"),
		[]byte("{% for play in plays %}{{ play.Name|titlecase }};{% endfor %}"), 0o644))

	cfg := config.Default()
	cfg.TemplatesDir = dir
	cfg.Format = "plain"

	pb := &book.Playbook{Plays: []*book.Play{{Name: "web servers"}, {Name: "db"}}}
	out, err := Render(cfg, pb, nil)
	require.NoError(t, err)
	assert.Equal(t, "Web Servers;Db;", out)
}

func TestRenderShippedMarkdownFormat(t *testing.T) {
	templates := filepath.Join("..", "..", "templates")
	if _, err := os.Stat(filepath.Join(templates, "markdown", "main.j2")); err != nil {
		t.Skip("shipped templates not found:", templates)
	}

	cfg := config.Default()
	cfg.TemplatesDir = templates
	cfg.Format = "markdown"

	pb := &book.Playbook{Plays: []*book.Play{{
		Name:  "Web servers",
		Hosts: "web",
		Tasks: []*book.Task{{
			Name:     "remove temp file",
			Module:   "file",
			Text:     []string{"Remove /tmp/app.tmp"},
			Commands: "rm -rf /tmp/app.tmp",
			Content:  []book.ContentBlock{{Linked: true, Text: "_etc_big_file"}},
		}},
	}}}

	out, err := Render(cfg, pb, nil)
	require.NoError(t, err)
	assert.Contains(t, out, "## Web servers")
	assert.Contains(t, out, "- Remove /tmp/app.tmp")
	assert.Contains(t, out, "rm -rf /tmp/app.tmp")
	assert.Contains(t, out, "[`_etc_big_file`](_etc_big_file)")
	assert.NoError(t, CheckMarkdown([]byte(out)))
}

func TestCheckMarkdown(t *testing.T) {
	assert.NoError(t, CheckMarkdown([]byte("# Title\n\nSome *text*.\n")))
}

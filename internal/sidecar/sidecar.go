// Package sidecar spills oversized expanded content to side files so
// the rendered document references them instead of inlining pages of
// file content.
package sidecar

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ansidocs/ansidocs/internal/logging"
)

// Writer places expanded content either inline or in a side file,
// depending on the configured length limit.
type Writer struct {
	dir   string
	limit int
	log   *logging.Logger
}

// New creates a Writer spilling to dir for content longer than limit
// characters.
func New(dir string, limit int, log *logging.Logger) *Writer {
	return &Writer{dir: dir, limit: limit, log: log}
}

// Filename derives the deterministic sidecar name from a destination
// path: every path separator becomes an underscore. Two tasks writing
// to the same destination produce the same name; nothing guards against
// that collision.
func Filename(dest string) string {
	name := strings.ReplaceAll(dest, "/", "_")
	return strings.ReplaceAll(name, string(filepath.Separator), "_")
}

// Place returns the content to record on the task and whether it is a
// linked reference. Content at or below the limit is returned inline;
// longer content is written verbatim to the sidecar file and its name
// is returned instead.
func (w *Writer) Place(dest, content string) (string, bool, error) {
	if len(content) <= w.limit {
		return content, false, nil
	}
	name := Filename(dest)
	if name == "" {
		name = "content"
	}
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", false, fmt.Errorf("writing sidecar %s: %w", path, err)
	}
	w.log.Verbosef("wrote %d characters to sidecar %s", len(content), path)
	return name, true, nil
}

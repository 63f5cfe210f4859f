// Package render feeds the assembled hierarchy into a format-specific
// template. Formats are directories under the templates root, each with
// a main.j2 entry point.
package render

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/flosch/pongo2/v6"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ansidocs/ansidocs/internal/book"
	"github.com/ansidocs/ansidocs/internal/config"
	"github.com/ansidocs/ansidocs/internal/locale"
)

var titleCaser = cases.Title(language.English)

func init() {
	// Available to format templates and role templates alike.
	pongo2.RegisterFilter("titlecase", func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		return pongo2.AsValue(titleCaser.String(in.String())), nil
	})
}

// Formats discovers the available output formats by scanning the
// templates root for directories containing main.j2, sorted by name.
func Formats(templatesDir string) ([]string, error) {
	entries, err := os.ReadDir(templatesDir)
	if err != nil {
		return nil, fmt.Errorf("scanning formats in %s: %w", templatesDir, err)
	}
	var formats []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(templatesDir, e.Name(), "main.j2")); err == nil {
			formats = append(formats, e.Name())
		}
	}
	sort.Strings(formats)
	return formats, nil
}

// Render produces the final markup: the configured format's main.j2
// with the playbook's plays and the locale string table bound into its
// namespace.
func Render(cfg *config.Config, pb *book.Playbook, table locale.Table) (string, error) {
	dir := cfg.FormatPath(cfg.Format)
	fsLoader, err := pongo2.NewLocalFileSystemLoader(dir)
	if err != nil {
		return "", fmt.Errorf("format %q: %w", cfg.Format, err)
	}
	set := pongo2.NewSet(cfg.Format, fsLoader)
	tpl, err := set.FromFile("main.j2")
	if err != nil {
		return "", fmt.Errorf("loading format %q: %w", cfg.Format, err)
	}

	out, err := tpl.Execute(pongo2.Context{
		"plays":   pb.Plays,
		"strings": table,
	})
	if err != nil {
		return "", fmt.Errorf("rendering format %q: %w", cfg.Format, err)
	}
	return out, nil
}

package locale

import (
	"fmt"

	"github.com/ansidocs/ansidocs/internal/config"
	"github.com/ansidocs/ansidocs/internal/loader"
	"github.com/ansidocs/ansidocs/internal/logging"
)

// DefaultLang is the fallback locale.
const DefaultLang = "en"

// Table maps module name to line-key to template string. It is loaded
// once per run and read-only afterwards.
type Table map[string]map[string]string

// Load reads the locale table for the configured language, falling back
// to the default locale with a warning when it is absent. A missing
// default table is fatal since no module text could be resolved.
func Load(l *loader.Loader, cfg *config.Config, log *logging.Logger) (Table, error) {
	var table Table
	found, err := l.LoadInto(cfg.StringsPath(cfg.Lang), &table)
	if err != nil {
		return nil, fmt.Errorf("loading strings for %q: %w", cfg.Lang, err)
	}
	if found {
		return table, nil
	}
	if cfg.Lang != DefaultLang {
		log.Warnf("no strings for locale %q, falling back to %q", cfg.Lang, DefaultLang)
		found, err = l.LoadInto(cfg.StringsPath(DefaultLang), &table)
		if err != nil {
			return nil, fmt.Errorf("loading default strings: %w", err)
		}
		if found {
			return table, nil
		}
	}
	return nil, fmt.Errorf("no string table found under %s", cfg.StringsDir)
}

// Lookup returns the template for a module's line key.
func (t Table) Lookup(module, key string) (string, bool) {
	lines, ok := t[module]
	if !ok {
		return "", false
	}
	s, ok := lines[key]
	return s, ok
}

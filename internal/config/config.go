package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Config carries the complete configuration for one conversion run.
// It is built once from the CLI flags and passed by pointer to every
// component; nothing mutates it after construction.
type Config struct {
	// PlaybookPath is the playbook file as given on the command line.
	PlaybookPath string

	// BaseDir is the root for roles, var files and top-level templates.
	// Defaults to the playbook's directory.
	BaseDir string

	// Format selects the output format directory under TemplatesDir.
	Format string

	// Output is the destination file; empty means stdout.
	Output string

	// Limit is the sidecar threshold in characters. Expanded content
	// longer than this is spilled to a side file.
	Limit int

	// Lang selects the locale string table (strings/<lang>.yml).
	Lang string

	// ModulesFile is the module registry document.
	ModulesFile string

	// TemplatesDir is the root holding <format>/main.j2 directories.
	TemplatesDir string

	// StringsDir holds the locale tables.
	StringsDir string

	// SidecarDir is where oversized content files are written.
	SidecarDir string

	// FailOnError makes missing required structural fields fatal.
	FailOnError bool

	Verbose bool
	Debug   bool
}

// Default returns a Config with the documented defaults filled in.
func Default() *Config {
	return &Config{
		Format:       "markdown",
		Limit:        1000,
		Lang:         "en",
		ModulesFile:  "modules.yml",
		TemplatesDir: "templates",
		StringsDir:   "strings",
		SidecarDir:   ".",
	}
}

// Validate checks the configuration for required fields and consistency.
func (c *Config) Validate() error {
	if c.PlaybookPath == "" {
		return fmt.Errorf("playbook path is required")
	}
	if _, err := os.Stat(c.PlaybookPath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("playbook does not exist: %s", c.PlaybookPath)
		}
		return fmt.Errorf("playbook: %w", err)
	}
	if c.Limit <= 0 {
		return fmt.Errorf("limit must be positive, got %d", c.Limit)
	}
	if c.Format == "" {
		return fmt.Errorf("format is required")
	}
	return nil
}

// RolesPath returns the roles directory under the base directory.
func (c *Config) RolesPath() string {
	return filepath.Join(c.BaseDir, "roles")
}

// RolePath returns the directory of a single role.
func (c *Config) RolePath(name string) string {
	return filepath.Join(c.RolesPath(), name)
}

// RoleTemplatesPath returns a role's template search root.
func (c *Config) RoleTemplatesPath(name string) string {
	return filepath.Join(c.RolePath(name), "templates")
}

// BaseTemplatesPath returns the template search root for top-level tasks.
func (c *Config) BaseTemplatesPath() string {
	return filepath.Join(c.BaseDir, "templates")
}

// StringsPath returns the locale table path for a language, without
// extension; the document loader resolves the .yml/.yaml pair.
func (c *Config) StringsPath(lang string) string {
	return filepath.Join(c.StringsDir, lang)
}

// FormatPath returns the directory of one output format.
func (c *Config) FormatPath(format string) string {
	return filepath.Join(c.TemplatesDir, format)
}

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/ansidocs/ansidocs/internal/book"
	"github.com/ansidocs/ansidocs/internal/config"
	"github.com/ansidocs/ansidocs/internal/interp"
	"github.com/ansidocs/ansidocs/internal/loader"
	"github.com/ansidocs/ansidocs/internal/locale"
	"github.com/ansidocs/ansidocs/internal/logging"
	"github.com/ansidocs/ansidocs/internal/registry"
	"github.com/ansidocs/ansidocs/internal/render"
	"github.com/ansidocs/ansidocs/internal/sidecar"
)

var cfg = config.Default()

// rootCmd converts one playbook into documentation; the conversion is
// the tool's only job, so it lives on the root command.
var rootCmd = &cobra.Command{
	Use:   "ansidocs <playbook>",
	Short: "Generate documentation from a configuration-management playbook",
	Long: `ansidocs converts a declarative playbook into human-readable
documentation in a chosen markup format.

It interprets each task against a curated module registry, expands the
module's text, commands and content templates against the task's
parameters and the play/role variable stores, and renders the assembled
hierarchy through templates/<format>/main.j2.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true, // Don't print usage on errors unrelated to flags
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg.PlaybookPath = args[0]
		if cfg.BaseDir == "" {
			cfg.BaseDir = filepath.Dir(cfg.PlaybookPath)
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		return run(cfg)
	},
}

// Execute runs the root command; any error already printed by cobra
// maps to exit code 1.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVar(&cfg.BaseDir, "basedir", "", "base directory for roles and var files (default: playbook's directory)")
	rootCmd.Flags().StringVar(&cfg.Format, "format", cfg.Format, "output format (see 'ansidocs formats')")
	rootCmd.Flags().StringVar(&cfg.Output, "output", "", "output file (default: stdout)")
	rootCmd.Flags().IntVar(&cfg.Limit, "limit", cfg.Limit, "sidecar threshold in characters")
	rootCmd.Flags().StringVar(&cfg.Lang, "lang", cfg.Lang, "locale for module strings")
	rootCmd.Flags().StringVar(&cfg.ModulesFile, "modules", cfg.ModulesFile, "module registry file")
	rootCmd.Flags().StringVar(&cfg.TemplatesDir, "templates", cfg.TemplatesDir, "output format templates directory")
	rootCmd.Flags().BoolVar(&cfg.FailOnError, "fail-on-error", false, "treat missing required fields as fatal")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&cfg.Debug, "debug", false, "enable debug output")
}

// run wires the pipeline: loader → hierarchy builder → renderer.
func run(cfg *config.Config) error {
	log := logging.New(cfg.Verbose, cfg.Debug)
	ld := loader.New(log)

	formats, err := render.Formats(cfg.TemplatesDir)
	if err != nil {
		return err
	}
	if !slices.Contains(formats, cfg.Format) {
		return fmt.Errorf("unknown format %q, available: %v", cfg.Format, formats)
	}

	reg, err := registry.Load(ld, cfg.ModulesFile, log)
	if err != nil {
		return err
	}
	table, err := locale.Load(ld, cfg, log)
	if err != nil {
		return err
	}

	in := interp.New(table, log)
	sc := sidecar.New(cfg.SidecarDir, cfg.Limit, log)
	builder := book.NewBuilder(cfg, log, ld, reg, in, sc)

	pb, err := builder.Build()
	if err != nil {
		return err
	}
	log.Verbosef("expanded %d plays from %s", len(pb.Plays), cfg.PlaybookPath)

	out, err := render.Render(cfg, pb, table)
	if err != nil {
		return err
	}
	if cfg.Format == "markdown" {
		if err := render.CheckMarkdown([]byte(out)); err != nil {
			log.Warnf("rendered output is not well-formed markdown: %v", err)
		}
	}

	if cfg.Output == "" {
		fmt.Print(out)
		return nil
	}
	if err := os.WriteFile(cfg.Output, []byte(out), 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	log.Verbosef("wrote %s", cfg.Output)
	return nil
}

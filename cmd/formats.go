package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ansidocs/ansidocs/internal/render"
)

// formatsCmd lists the output formats discovered under the templates
// directory.
var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List available output formats",
	RunE: func(cmd *cobra.Command, args []string) error {
		formats, err := render.Formats(cfg.TemplatesDir)
		if err != nil {
			return err
		}
		for _, f := range formats {
			fmt.Println(f)
		}
		return nil
	},
}

func init() {
	formatsCmd.Flags().StringVar(&cfg.TemplatesDir, "templates", cfg.TemplatesDir, "output format templates directory")
	rootCmd.AddCommand(formatsCmd)
}

package cli

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/yaklabco/spanrender/internal/ui/pretty"
	"github.com/yaklabco/spanrender/pkg/config"
	"github.com/yaklabco/spanrender/pkg/langdetect"
	"github.com/yaklabco/spanrender/pkg/present"
)

func newLanguagesCommand(global *globalFlags) *cobra.Command {
	var detect string

	cmd := &cobra.Command{
		Use:   "languages",
		Short: "List the code block language tags",
		Long: `List the language tags recognized on the first line of a code block.
The table comes from the "languages" configuration key, or the built-in
table when none is configured. Tags the highlighter does not know are
marked.

With --detect, print the language guessed for a snippet instead.

Examples:
  spanrender languages
  spanrender languages --detect 'def main(): pass'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if cmd.Flags().Changed("detect") {
				fmt.Fprintln(out, langdetect.Detect(detect))
				return nil
			}

			cfg, err := loadConfig(cmd, global, &config.Config{})
			if err != nil {
				return err
			}

			names := cfg.Languages
			if len(names) == 0 {
				names = present.DefaultLanguages()
			}
			names = present.NewLanguageTable(names...).Names()

			styles := pretty.NewStyles(pretty.IsColorEnabled(string(cfg.Color), out))
			unknown := lo.Reject(names, func(name string, _ int) bool { return langdetect.IsKnown(name) })

			for _, name := range names {
				if lo.Contains(unknown, name) {
					fmt.Fprintf(out, "%s %s\n", name, styles.Dim.Render("(no highlighter)"))
					continue
				}
				fmt.Fprintln(out, name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&detect, "detect", "", "guess the language of a code snippet")

	return cmd
}

package cli

import (
	"fmt"
	"unicode/utf8"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/yaklabco/spanrender/internal/logging"
	"github.com/yaklabco/spanrender/internal/ui/pretty"
	"github.com/yaklabco/spanrender/pkg/bodyrange"
	"github.com/yaklabco/spanrender/pkg/config"
	"github.com/yaklabco/spanrender/pkg/linkcheck"
	"github.com/yaklabco/spanrender/pkg/linkify"
	"github.com/yaklabco/spanrender/pkg/reporter"
)

// Link statuses shown by the links command.
const (
	linkStatusOK     = "ok"
	linkStatusSneaky = "sneaky"
)

func newLinksCommand(global *globalFlags) *cobra.Command {
	var length int

	cmd := &cobra.Command{
		Use:   "links [file|-]",
		Short: "List the links detected in a message",
		Long: `List the links the scanner finds in a message, with their code point
offsets. Links whose visible text could mislead a reader are marked sneaky;
they are rendered as plain text.

Examples:
  spanrender links message.json
  echo "see https://example.com" | spanrender links --length 10`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli := &config.Config{}
			if cmd.Flags().Changed("length") {
				if length < 0 {
					return fmt.Errorf("%w: --length must not be negative", ErrUsage)
				}
				cli.DisplayLength = length
			}
			return runLinks(cmd, args, global, cli)
		},
	}

	cmd.Flags().IntVarP(&length, "length", "n", 0, "truncate the display text to this many code points")

	return cmd
}

func runLinks(cmd *cobra.Command, args []string, global *globalFlags, cli *config.Config) error {
	cfg, err := loadConfig(cmd, global, cli)
	if err != nil {
		return err
	}

	msg, err := readMessage(cmd, args, cfg)
	if err != nil {
		return err
	}

	displayLength := msg.DisplayLength
	if displayLength <= 0 {
		displayLength = cfg.DisplayLength
	}
	if total := utf8.RuneCountInString(msg.Text); displayLength <= 0 || displayLength > total {
		displayLength = total
	}

	links := linkify.NewScanner(cfg.Schemes...).Scan(msg.Text, displayLength)
	logging.Default().Debug("scanned links", logging.FieldLinks, len(links))

	out := cmd.OutOrStdout()
	styles := pretty.NewStyles(pretty.IsColorEnabled(string(cfg.Color), out))

	if len(links) == 0 {
		fmt.Fprintln(out, styles.Dim.Render("No links found."))
		return nil
	}

	rows := lo.Map(links, func(r bodyrange.Range, _ int) pretty.TableRow {
		url := r.Value.(bodyrange.Link).URL
		sneaky := linkcheck.IsSneaky(url)
		return pretty.TableRow{
			Start:    r.Start,
			Length:   r.Length,
			Kind:     r.Kind().String(),
			Text:     reporter.EscapeControl(url),
			Status:   lo.Ternary(sneaky, linkStatusSneaky, linkStatusOK),
			Rejected: sneaky,
		}
	})

	fmt.Fprint(out, pretty.NewTableFormatter(styles, reporter.TerminalWidth(out)).FormatTable(rows))
	return nil
}

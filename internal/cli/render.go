package cli

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/spanrender/internal/logging"
	"github.com/yaklabco/spanrender/pkg/config"
	"github.com/yaklabco/spanrender/pkg/display"
	"github.com/yaklabco/spanrender/pkg/engine"
	"github.com/yaklabco/spanrender/pkg/fsutil"
	"github.com/yaklabco/spanrender/pkg/present"
	"github.com/yaklabco/spanrender/pkg/reporter"
)

type renderFlags struct {
	format  string
	input   string
	length  int
	context string
	reveal  []int
	verify  bool
	strict  bool
	summary bool
	dropped bool
	compact bool
	output  string
}

func newRenderCommand(global *globalFlags) *cobra.Command {
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Render a message",
		Long:  renderLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, global, flags)
		},
	}

	addRenderFlags(cmd, flags)

	return cmd
}

const renderLongDescription = `Render a message through the full annotation pipeline.

The message is read from the named file, or from stdin when the file is "-"
or omitted. JSON envelopes, Markdown and plain text are accepted; the input
format is taken from --input, then the file extension, then the content.

Examples:
  spanrender render message.json              # Styled terminal output
  spanrender render notes.md --format html    # HTML fragment
  spanrender render - --format json < msg.json
  spanrender render msg.json --reveal 1,2     # Show spoiler groups 1 and 2
  spanrender render msg.json --format nodes   # Dump display nodes
  spanrender render msg.json --strict         # Fail if annotations were dropped
  spanrender render msg.md -f html -o msg.html  # Write to a file`

func runRender(cmd *cobra.Command, args []string, global *globalFlags, flags *renderFlags) error {
	cli, err := renderConfig(cmd, flags)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd, global, cli)
	if err != nil {
		return err
	}

	eng, err := engine.FromConfig(cfg)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	msg, err := readMessage(cmd, args, cfg)
	if err != nil {
		return err
	}

	logger := logging.Default()
	ctx := logging.WithLogger(commandContext(cmd), logger)
	result := eng.Process(ctx, msg, present.NewRevealState(cfg.Reveal...))

	if cfg.Verify {
		if err := display.CheckTiling(result.Nodes, result.TextLength); err != nil {
			return fmt.Errorf("%w: %w", ErrTiling, err)
		}
		logger.Debug("display nodes verified", logging.FieldNodes, len(result.Nodes))
	}

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	var buf bytes.Buffer
	writer := cmd.OutOrStdout()
	if flags.output != "" {
		writer = &buf
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      writer,
		Format:      format,
		Color:       string(cfg.Color),
		ShowSummary: flags.summary,
		ShowDropped: flags.dropped,
		Compact:     flags.compact,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report result: %w", err)
	}

	if flags.output != "" {
		written, err := fsutil.WriteIfChanged(ctx, flags.output, buf.Bytes(), 0)
		if err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		logger.Debug("wrote output", logging.FieldOutput, flags.output, "changed", written)
	}

	if flags.strict && len(result.Dropped) > 0 {
		return fmt.Errorf("%w: %d", ErrAnnotationsDropped, len(result.Dropped))
	}

	return nil
}

// renderConfig maps the flags the user set to a CLI config layer.
func renderConfig(cmd *cobra.Command, flags *renderFlags) (*config.Config, error) {
	cli := &config.Config{}
	changed := cmd.Flags().Changed

	if changed("format") {
		format, err := config.ParseOutputFormat(flags.format)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUsage, err)
		}
		cli.Format = format
	}
	if changed("input") {
		input, err := config.ParseInputFormat(flags.input)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUsage, err)
		}
		cli.Input = input
	}
	if changed("length") {
		if flags.length < 0 {
			return nil, fmt.Errorf("%w: --length must not be negative", ErrUsage)
		}
		cli.DisplayLength = flags.length
	}
	if changed("context") {
		cli.Context = flags.context
	}
	if changed("reveal") {
		cli.Reveal = flags.reveal
	}
	cli.Verify = flags.verify

	return cli, nil
}

func addRenderFlags(cmd *cobra.Command, flags *renderFlags) {
	cmd.Flags().StringVarP(&flags.format, "format", "f", "text", "output format: text, json, html, nodes")
	cmd.Flags().StringVarP(&flags.input, "input", "i", "", "input format: json, markdown, plain (default: detect)")
	cmd.Flags().IntVarP(&flags.length, "length", "n", 0, "truncate the display text to this many code points")
	cmd.Flags().StringVar(&flags.context, "context", config.DefaultContext, "render context: timeline, preview, search")
	cmd.Flags().IntSliceVar(&flags.reveal, "reveal", nil, "spoiler group ids to show unmasked")
	cmd.Flags().BoolVar(&flags.verify, "verify", false, "check that display nodes tile the text")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "exit non-zero when annotations are dropped")
	cmd.Flags().BoolVar(&flags.summary, "summary", false, "print a summary line (text format)")
	cmd.Flags().BoolVar(&flags.dropped, "dropped", false, "list dropped annotations (text format)")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output (json, html)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write output to a file instead of stdout")
}

package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/spanrender/internal/logging"
	"github.com/yaklabco/spanrender/internal/ui/pretty"
	"github.com/yaklabco/spanrender/pkg/config"
	"github.com/yaklabco/spanrender/pkg/engine"
	"github.com/yaklabco/spanrender/pkg/fsutil"
	"github.com/yaklabco/spanrender/pkg/present"
	"github.com/yaklabco/spanrender/pkg/reporter"
	"github.com/yaklabco/spanrender/pkg/runner"
)

type batchFlags struct {
	format         string
	input          string
	context        string
	length         int
	reveal         []int
	jobs           int
	ignore         []string
	followSymlinks bool
	out            string
	strict         bool
	compact        bool
}

func newBatchCommand(global *globalFlags) *cobra.Command {
	flags := &batchFlags{}

	cmd := &cobra.Command{
		Use:   "batch [paths...]",
		Short: "Render many message files concurrently",
		Long: `Render every message file under the given paths.

Directories are walked recursively for .json, .md, .markdown and .txt files;
hidden entries are skipped. Each file gets a summary line. With --out, each
rendering is also written below the output directory, keeping its relative
path and taking the extension of the output format.

Examples:
  spanrender batch                          # Everything under the current directory
  spanrender batch messages/ --jobs 4
  spanrender batch . --ignore "vendor/**"   # Skip a directory
  spanrender batch inbox -f html --out site # Write HTML files to site/
  spanrender batch inbox --strict           # Fail if any annotation was dropped`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, args, global, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "text", "format of files written with --out: text, json, html, nodes")
	cmd.Flags().StringVarP(&flags.input, "input", "i", "", "input format: json, markdown, plain (default: detect per file)")
	cmd.Flags().StringVar(&flags.context, "context", config.DefaultContext, "render context: timeline, preview, search")
	cmd.Flags().IntVarP(&flags.length, "length", "n", 0, "truncate the display text to this many code points")
	cmd.Flags().IntSliceVar(&flags.reveal, "reveal", nil, "spoiler group ids to show unmasked")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "number of concurrent workers (default: number of CPUs)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns of paths to skip")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "walk symlinked directories")
	cmd.Flags().StringVar(&flags.out, "out", "", "directory to write rendered files to")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "exit non-zero when annotations are dropped")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output (json, html)")

	return cmd
}

func runBatch(cmd *cobra.Command, args []string, global *globalFlags, flags *batchFlags) error {
	cli, err := batchConfig(cmd, flags)
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

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	logger := logging.Default()
	ctx := logging.WithLogger(commandContext(cmd), logger)

	result, err := runner.New(eng).Run(ctx, runner.Options{
		Paths:          args,
		WorkingDir:     workDir,
		ExcludeGlobs:   flags.ignore,
		FollowSymlinks: flags.followSymlinks,
		Jobs:           flags.jobs,
		Input:          cfg.Input,
		Reveal:         present.NewRevealState(cfg.Reveal...),
	})
	if err != nil {
		return fmt.Errorf("batch: %w", err)
	}

	out := cmd.OutOrStdout()
	styles := pretty.NewStyles(pretty.IsColorEnabled(string(cfg.Color), out))

	for _, file := range result.Files {
		name := displayPath(workDir, file.Path)

		if file.Error != nil {
			logger.Error("failed to process file", logging.FieldPath, name, logging.FieldError, file.Error)
			fmt.Fprintf(out, "%s: %s\n", styles.FilePath.Render(name), styles.Error.Render(file.Error.Error()))
			continue
		}

		fmt.Fprintf(out, "%s: %s", styles.FilePath.Render(name), styles.FormatSummaryOneLine(reporter.Stats(file.Result)))

		if flags.out != "" {
			target := filepath.Join(flags.out, outputName(name, format))
			if err := writeRendering(ctx, target, file.Result, format, flags.compact); err != nil {
				return err
			}
		}
	}

	fmt.Fprint(out, formatBatchTotals(styles, result.Stats))

	if result.HasErrors() {
		return fmt.Errorf("%w: %d of %d", ErrBatchFailed, result.Stats.FilesErrored, result.Stats.FilesDiscovered)
	}
	if flags.strict && result.HasDrops() {
		return fmt.Errorf("%w: %d", ErrAnnotationsDropped, result.Stats.Dropped)
	}

	return nil
}

// batchConfig maps the flags the user set to a CLI config layer.
func batchConfig(cmd *cobra.Command, flags *batchFlags) (*config.Config, error) {
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
	if flags.jobs < 0 {
		return nil, fmt.Errorf("%w: --jobs must not be negative", ErrUsage)
	}

	return cli, nil
}

func writeRendering(ctx context.Context, path string, result *engine.Result, format reporter.Format, compact bool) error {
	var buf bytes.Buffer

	rep, err := reporter.New(reporter.Options{
		Writer:  &buf,
		Format:  format,
		Color:   string(config.ColorNever),
		Compact: compact,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}
	if err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report %s: %w", path, err)
	}

	written, err := fsutil.WriteIfChanged(ctx, path, buf.Bytes(), 0)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	logging.FromContext(ctx).Debug("wrote output", logging.FieldOutput, path, "changed", written)
	return nil
}

// displayPath is path relative to workDir, or path itself when it lies
// outside workDir.
func displayPath(workDir, path string) string {
	rel, err := filepath.Rel(workDir, path)
	if err != nil || !filepath.IsLocal(rel) {
		return path
	}
	return rel
}

// outputName is the file name below --out for a rendering of name.
func outputName(name string, format reporter.Format) string {
	if filepath.IsAbs(name) {
		name = filepath.Base(name)
	}
	base := strings.TrimSuffix(name, filepath.Ext(name))

	switch format {
	case reporter.FormatJSON:
		return base + ".json"
	case reporter.FormatHTML:
		return base + ".html"
	case reporter.FormatNodes:
		return base + ".nodes.txt"
	default:
		return base + ".txt"
	}
}

func formatBatchTotals(styles *pretty.Styles, stats runner.Stats) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\n%d %s processed", stats.FilesProcessed, plural(stats.FilesProcessed, "file", "files"))
	if stats.FilesErrored > 0 {
		b.WriteString(", ")
		b.WriteString(styles.Error.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}
	fmt.Fprintf(&b, ", %d %s, %d %s",
		stats.Links, plural(stats.Links, "link", "links"),
		stats.Nodes, plural(stats.Nodes, "node", "nodes"))
	if stats.Dropped > 0 {
		b.WriteString(", ")
		b.WriteString(styles.Warning.Render(fmt.Sprintf("%d dropped in %d %s",
			stats.Dropped, stats.FilesWithDrops, plural(stats.FilesWithDrops, "file", "files"))))
	}
	b.WriteString("\n")

	return b.String()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

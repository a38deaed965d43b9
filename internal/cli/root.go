// Package cli provides the Cobra command structure for spanrender.
package cli

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/spanrender/internal/configloader"
	"github.com/yaklabco/spanrender/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	debug      bool
	configPath string
	color      string
	logLevel   string
}

// NewRootCommand creates the root spanrender command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "spanrender",
		Short: "Render annotated message text",
		Long: `spanrender turns message text and its annotation ranges into render
instructions.

It detects links, resolves overlapping formatting, spoiler and mention
ranges into a tree, flattens that tree into display nodes and dispatches
each node to a styled element. Messages are read as JSON envelopes,
Markdown or plain text.

` + environmentHelp(),
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if cmd.Flags().Changed("log-level") {
				logging.SetLevel(flags.logLevel)
			}
			if flags.debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&flags.color, "color", "auto",
		"colorize output: auto, always, never")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "info",
		"log level: debug, info, warn, error")

	// Add subcommands.
	rootCmd.AddCommand(newRenderCommand(flags))
	rootCmd.AddCommand(newBatchCommand(flags))
	rootCmd.AddCommand(newLinksCommand(flags))
	rootCmd.AddCommand(newLanguagesCommand(flags))
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(flags.color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}

// environmentHelp lists the SPANRENDER_* variables for the root help text.
func environmentHelp() string {
	vars := configloader.ListEnvVars()
	names := make([]string, 0, len(vars))
	width := 0
	for name := range vars {
		names = append(names, name)
		width = max(width, len(name))
	}
	slices.Sort(names)

	var b strings.Builder
	b.WriteString("Environment:")
	for _, name := range names {
		fmt.Fprintf(&b, "\n  %-*s  %s", width, name, vars[name])
	}
	return b.String()
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/spanrender/internal/configloader"
	"github.com/yaklabco/spanrender/internal/logging"
	"github.com/yaklabco/spanrender/pkg/config"
	"github.com/yaklabco/spanrender/pkg/engine"
	"github.com/yaklabco/spanrender/pkg/fsutil"
	"github.com/yaklabco/spanrender/pkg/wire"
)

// stdinName is the argument naming standard input.
const stdinName = "-"

// loadConfig resolves the configuration for a command, with cli holding the
// values set by its flags.
func loadConfig(cmd *cobra.Command, flags *globalFlags, cli *config.Config) (*config.Config, error) {
	logger := logging.Default()

	if cmd.Flags().Changed("color") {
		cli.Color = config.ColorMode(flags.color)
	}
	if cmd.Flags().Changed("log-level") {
		cli.LogLevel = flags.logLevel
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(commandContext(cmd), configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: flags.configPath,
		CLIConfig:    cli,
	})
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", "files", loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	if !cmd.Flags().Changed("log-level") && !flags.debug {
		logging.SetLevel(cfg.LogLevel)
	}

	logger.Debug("configuration loaded",
		logging.FieldContext, cfg.Context,
		logging.FieldSchemes, cfg.Schemes,
		logging.FieldFormat, cfg.Format,
		logging.FieldDisplayLength, cfg.DisplayLength,
	)

	return cfg, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// readInput reads the named file, or stdin for "-" or no argument.
func readInput(cmd *cobra.Command, args []string) (data []byte, name string, err error) {
	if len(args) > 0 && args[0] != stdinName {
		data, err := fsutil.ReadMessage(commandContext(cmd), args[0])
		if err != nil {
			return nil, "", fmt.Errorf("read input: %w", err)
		}
		return data, args[0], nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && len(args) == 0 && term.IsTerminal(int(f.Fd())) {
		return nil, "", ErrNoInput
	}

	data, err = io.ReadAll(in)
	if err != nil {
		return nil, "", fmt.Errorf("read stdin: %w", err)
	}
	return data, stdinName, nil
}

// inputFormat picks the decoder for data: the configured format, then the
// file extension, then a look at the content.
func inputFormat(configured config.InputFormat, name string, data []byte) string {
	if configured != "" {
		return string(configured)
	}
	return wire.DetectFormat(name, data)
}

// readMessage reads and decodes the message named by args.
func readMessage(cmd *cobra.Command, args []string, cfg *config.Config) (engine.Message, error) {
	data, name, err := readInput(cmd, args)
	if err != nil {
		return engine.Message{}, err
	}

	format := inputFormat(cfg.Input, name, data)
	logging.Default().Debug("decoding message",
		logging.FieldInput, name,
		logging.FieldFormat, format,
	)

	msg, err := wire.Decode(format, data)
	if err != nil {
		if errors.Is(err, wire.ErrInvalidJSON) || errors.Is(err, wire.ErrNoText) {
			return engine.Message{}, fmt.Errorf("%w: %s: %w", ErrUsage, name, err)
		}
		return engine.Message{}, fmt.Errorf("decode %s: %w", name, err)
	}
	return msg, nil
}

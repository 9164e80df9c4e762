// Package cmd implements the logtree command line.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/philipp01105/logtree/config"
	"github.com/philipp01105/logtree/core"
	"github.com/philipp01105/logtree/logger"
)

// errBadValue is returned for --value arguments without "=".
var errBadValue = errors.New("value must have the form key=value")

// options collects the flags of one invocation.
type options struct {
	configPath string
	names      []string
	verbosity  int
	level      uint32
	values     []string
	errText    string
	backend    string
	format     string
}

// newRootCmd creates the root command. Output goes to the command's out and
// err writers so tests can capture it.
func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "logtree [flags] message...",
		Short: "Emit one structured log entry through a logger tree",
		Long: `logtree builds a root logger from a YAML configuration, derives a node
from the given names, verbosity offset and values, and logs the message
through it. With --error the entry is logged as an error.`,
		Example: `  logtree -n resolver -l 1 -k qname=example.com. cache miss
  logtree -c logtree.yaml -e timeout -n doq handshake failed`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, strings.Join(args, " "))
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "path to YAML configuration file")
	flags.StringSliceVarP(&opts.names, "name", "n", nil, "logger name segment, repeatable")
	flags.IntVar(&opts.verbosity, "verbosity", -1, "root verbosity threshold (-1 keeps the configured one)")
	flags.Uint32VarP(&opts.level, "level", "l", 0, "verbosity offset of the message")
	flags.StringArrayVarP(&opts.values, "value", "k", nil, "key=value pair attached to the entry, repeatable")
	flags.StringVarP(&opts.errText, "error", "e", "", "log an error entry with this detail")
	flags.StringVar(&opts.backend, "backend", "", "override the backend of every output")
	flags.StringVar(&opts.format, "format", "", "override the format of every output (text or json)")

	return cmd
}

func run(cmd *cobra.Command, opts *options, msg string) (err error) {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	fields, err := parseValues(opts.values)
	if err != nil {
		return err
	}

	root, closeFn, err := cfg.BuildTo(config.Streams{
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() {
		err = multierr.Append(err, closeFn())
	}()

	prev, _ := logger.Default()
	logger.SetDefault(root)
	defer logger.SetDefault(prev)

	node, _ := logger.Default()
	for _, name := range opts.names {
		node = node.WithName(name)
	}
	if opts.level > 0 {
		node = node.V(core.Level(opts.level))
	}
	if len(fields) > 0 {
		node = node.WithFields(fields...)
	}

	if cmd.Flags().Changed("error") {
		node.Error(errors.New(opts.errText), msg)
	} else {
		node.Info(msg)
	}
	return nil
}

func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if opts.verbosity >= 0 {
		v := core.Level(opts.verbosity)
		cfg.Verbosity = &v
	}
	for i := range cfg.Outputs {
		if opts.backend != "" {
			cfg.Outputs[i].Backend = opts.backend
		}
		if opts.format != "" {
			cfg.Outputs[i].Format = opts.format
		}
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

func parseValues(pairs []string) ([]core.Field, error) {
	fields := make([]core.Field, 0, len(pairs))
	for _, pair := range pairs {
		key, val, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: %q", errBadValue, pair)
		}
		fields = append(fields, logger.String(key, val))
	}
	return fields, nil
}

// Execute runs the logtree CLI and exits with non-zero status on error.
func Execute() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "logtree:", err)
		os.Exit(1)
	}
}

// Package cli implements the g25mix command tree: solve, nearest and inspect.
package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/g25mix/internal/config"
	"github.com/katalvlaran/g25mix/internal/logging"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
)

// Output formats.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatTable = "table"
)

// ErrNoCLIContext indicates a command ran without the root pre-run hook.
var ErrNoCLIContext = errors.New("cli: command context not initialized")

type cliContextKey struct{}

// RootOptions holds the global flags.
type RootOptions struct {
	ConfigPath   string
	LogLevel     string
	OutputFormat string
	Verbose      bool
}

// CLIContext carries initialized dependencies down the command tree.
type CLIContext struct {
	Config       *config.Config
	Logger       logging.Logger
	OutputFormat string
	Verbose      bool
}

// NewRootCommand builds the root command with every subcommand attached.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "g25mix",
		Short: "Model G25 coordinates as convex mixtures of source populations",
		Long: "g25mix estimates admixture proportions: each target is fitted as a\n" +
			"non-negative, sum-to-one mixture of source populations by minimizing\n" +
			"the RMS distance between the modeled and the target coordinates.",
		Version: fmt.Sprintf("%s (commit: %s)", Version, GitCommit),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return persistentPreRun(cmd, opts)
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if cc, err := GetCLIContext(cmd); err == nil {
				_ = cc.Logger.Sync()
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "config file (YAML); G25MIX_* env vars override it")
	pf.StringVar(&opts.LogLevel, "log-level", "", "log level: debug, info, warn, error (default from config)")
	pf.StringVarP(&opts.OutputFormat, "output", "o", FormatText, "output format: text, json, table")
	pf.BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(newSolveCmd(), newNearestCmd(), newInspectCmd())

	return cmd
}

// persistentPreRun loads config, builds the logger and stores the CLIContext.
func persistentPreRun(cmd *cobra.Command, opts *RootOptions) error {
	format := strings.ToLower(opts.OutputFormat)
	switch format {
	case FormatText, FormatJSON, FormatTable:
	default:
		return fmt.Errorf("unknown output format %q (want text, json or table)", opts.OutputFormat)
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	if opts.Verbose {
		cfg.Log.Level = "debug"
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	logger = logger.Named("g25mix")
	logging.SetDefault(logger)

	cc := &CLIContext{Config: cfg, Logger: logger, OutputFormat: format, Verbose: opts.Verbose}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, cliContextKey{}, cc))

	return nil
}

// GetCLIContext extracts the CLIContext stored by the root pre-run hook.
func GetCLIContext(cmd *cobra.Command) (*CLIContext, error) {
	ctx := cmd.Context()
	if ctx == nil {
		return nil, ErrNoCLIContext
	}
	cc, ok := ctx.Value(cliContextKey{}).(*CLIContext)
	if !ok || cc == nil {
		return nil, ErrNoCLIContext
	}

	return cc, nil
}

// Execute runs the command tree against os.Args.
func Execute(ctx context.Context) error {
	root := NewRootCommand()
	if err := root.ExecuteContext(ctx); err != nil {
		PrintError(root, err)
		return err
	}

	return nil
}

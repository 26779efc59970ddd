package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/layerkeys/internal/config"
	"github.com/dshills/layerkeys/internal/logging"
)

// state shared by the subcommands, filled in by the root pre-run
type globals struct {
	configPath string
	logLevel   string
	logFile    string

	cfg     config.Config
	logger  *zap.Logger
	logSink io.Closer
}

// Execute runs the command line with os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	g := &globals{}

	root := &cobra.Command{
		Use:          "layerkeys",
		Short:        "Keyboard shortcuts for layer stack operations",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			g.close()
		},
	}

	root.PersistentFlags().StringVarP(&g.configPath, "config", "c", os.Getenv(config.EnvPrefix+"CONFIG"),
		"config file (default ./"+config.DefaultFile+", env "+config.EnvPrefix+"CONFIG)")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "override logging.level")
	root.PersistentFlags().StringVar(&g.logFile, "log-file", "", "write logs to this file instead of stderr")

	root.AddCommand(
		runCmd(g),
		bindingsCmd(g),
		dispatchCmd(g),
		configCmd(g),
		versionCmd(),
	)
	return root
}

func (g *globals) load() error {
	cfg, err := config.Load(config.WithFile(g.configPath))
	if err != nil {
		return err
	}
	if g.logLevel != "" {
		cfg.Logging.Level = g.logLevel
	}
	g.cfg = cfg

	opts := logging.FromConfig(cfg.Logging)
	if g.logFile != "" {
		f, err := os.OpenFile(g.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		g.logSink = f
		opts.Output = f
	}
	logger, err := logging.New(opts)
	if err != nil {
		g.close()
		return err
	}
	g.logger = logger
	return nil
}

func (g *globals) close() {
	if g.logger != nil {
		_ = g.logger.Sync()
	}
	if g.logSink != nil {
		_ = g.logSink.Close()
		g.logSink = nil
	}
}

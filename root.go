package main

import (
	"fmt"
	"sync"

	"github.com/alexjean/devify/internal/config"
	"github.com/alexjean/devify/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// commandContext loads configuration once and carries the logger built
// from it.
type commandContext struct {
	configOnce sync.Once
	config     config.Config
	configErr  error

	verbose bool
	logger  *zap.Logger
}

func (c *commandContext) ensureConfig() (config.Config, error) {
	c.configOnce.Do(func() {
		c.config, c.configErr = config.Load()
	})
	return c.config, c.configErr
}

func (c *commandContext) initLogger() error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	level := cfg.Log.Level
	if c.verbose {
		level = "debug"
	}
	logger, err := logging.New(level, cfg.Log.Development)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	c.logger = logger
	return nil
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "devify",
		Short:         "Developer portfolio served as a music streaming app",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return ctx.initLogger()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if ctx.logger != nil {
				_ = ctx.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&ctx.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newServeCommand(ctx))
	rootCmd.AddCommand(newTracksCommand())
	rootCmd.AddCommand(newAskCommand(ctx))
	rootCmd.AddCommand(newGreetCommand(ctx))

	return rootCmd
}

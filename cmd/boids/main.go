package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/lao-tseu-is-alive/go-flock-simulation/internal/cli"
	"github.com/lao-tseu-is-alive/go-flock-simulation/internal/headless"
)

const defaultTicks = 600

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &cli.Flags{}
	var (
		ticks   int
		compare bool
	)
	cmd := &cobra.Command{
		Use:   "boids",
		Short: "Run a flock headless and report how fast it ticks",
		Long: "Run a flock headless and report how fast it ticks.\n\n" +
			"With --compare the configuration runs once per strategy and the command\n" +
			"fails unless every agent matches bit for bit after every tick.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if ticks < 1 {
				return fmt.Errorf("--ticks must be at least 1, got %d", ticks)
			}
			return run(cmd.Context(), flags, cmd.Flags(), ticks, compare)
		},
	}
	flags.Register(cmd.Flags())
	cmd.Flags().IntVarP(&ticks, "ticks", "t", defaultTicks, "number of ticks to run")
	cmd.Flags().BoolVar(&compare, "compare", false, "run every strategy and check they agree")
	return cmd
}

func run(ctx context.Context, flags *cli.Flags, fs *pflag.FlagSet, ticks int, compare bool) error {
	logger, err := flags.Logger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := flags.Config(fs)
	if err != nil {
		logger.Error("invalid configuration", zap.Error(err))
		return err
	}

	if compare {
		if _, err := headless.Compare(ctx, cfg, ticks, logger); err != nil {
			logger.Error("comparison failed", zap.Error(err))
			return err
		}
		return nil
	}

	if _, err := headless.Run(ctx, cfg, ticks, logger); err != nil {
		logger.Error("run failed", zap.Error(err))
		return err
	}
	return nil
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/lao-tseu-is-alive/go-flock-simulation/internal/cli"
	"github.com/lao-tseu-is-alive/go-flock-simulation/internal/termview"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/simulation"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &cli.Flags{}
	cmd := &cobra.Command{
		Use:   "terminal",
		Short: "Watch a 3D flock in the terminal",
		Long: "Watch a 3D flock in the terminal.\n\n" +
			"The screen belongs to the view, so logs are discarded unless --log-file is set.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), flags, cmd.Flags())
		},
	}
	flags.Register(cmd.Flags())
	return cmd
}

func run(ctx context.Context, flags *cli.Flags, fs *pflag.FlagSet) error {
	if flags.LogFile == "" {
		flags.LogFile = os.DevNull
	}
	logger, err := flags.Logger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := flags.Config(fs)
	if err != nil {
		return err
	}

	runner, err := simulation.StartRunner(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = runner.Stop(context.Background()) }()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	view := termview.New(screen, runner, cfg, runner.Simulation().Snapshot(), logger)
	return view.Run(ctx)
}

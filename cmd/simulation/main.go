package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/lao-tseu-is-alive/go-flock-simulation/internal/cli"
	"github.com/lao-tseu-is-alive/go-flock-simulation/internal/viewer"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/simulation"
)

const (
	screenWidth  = 1280
	screenHeight = 800
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
		Use:          "simulation",
		Short:        "Watch a 3D flock in a window",
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

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Flock: parallel vs batch")

	game := viewer.NewGame(ctx, runner, cfg, logger, screenWidth, screenHeight)
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

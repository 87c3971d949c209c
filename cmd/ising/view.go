//go:build ebiten

package main

import (
	"context"
	"errors"
	"fmt"

	"ising/internal/app"
	"ising/internal/metrics"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
)

func runView(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	file, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("scale") {
		file.Run.Scale = flagScale
	}
	if flags.Changed("tps") {
		file.Run.TPS = flagTPS
	}
	if flags.Changed("metrics-addr") {
		file.Run.MetricsAddr = flagMetricsAddr
	}
	if err := file.Validate(); err != nil {
		return err
	}
	tps := file.Run.TPS
	if tps <= 0 {
		tps = 60
	}

	sim, err := buildSim(file, logger)
	if err != nil {
		return err
	}

	collector := metrics.NewCollector(sim.Name())
	if obs, ok := sim.(observable); ok {
		obs.AddObserver(collector)
	}
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	if addr := file.Run.MetricsAddr; addr != "" {
		go func() {
			if err := collector.Serve(ctx, addr); err != nil {
				logger.Error("metrics server stopped", "err", err)
			}
		}()
	}

	game := app.New(sim, file.Run.Scale, file.Lattice.Seed, logger, collector.ObserveTick)
	ebiten.SetWindowTitle(fmt.Sprintf("ising — %dx%d J=%.3g", file.Lattice.Width, file.Lattice.Height, file.Lattice.Coupling))
	ebiten.SetTPS(tps)
	ebiten.SetWindowSize(game.WindowSize())

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

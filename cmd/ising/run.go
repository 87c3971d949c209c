package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ising/internal/core"
	"ising/internal/metrics"
	"ising/internal/render"
	"ising/internal/sims/lattice"

	"github.com/spf13/cobra"
)

var (
	flagFrames      int
	flagTPS         int
	flagMetricsAddr string
	flagColor       bool
	flagEvery       bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Step the lattice headless and print it",
	Long: `Build a lattice, advance it for a number of frames and print the grid.
Each frame runs --steps single-site proposals (one sweep by default).

Examples:
  ising run --width 32 --height 16 --frames 50 --every
  ising run --seed 42 --color=false > lattice.txt`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().IntVar(&flagFrames, "frames", 1, "Frames (ticks) to advance")
	runCmd.Flags().IntVar(&flagTPS, "tps", 0, "Frames per second (0 = unthrottled)")
	runCmd.Flags().StringVar(&flagMetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")
	runCmd.Flags().BoolVar(&flagColor, "color", true, "Colour the printed grid")
	runCmd.Flags().BoolVar(&flagEvery, "every", false, "Print the grid after every frame")
}

type observable interface {
	AddObserver(lattice.FlipObserver)
}

type counted interface {
	Counts() (accepted, rejected uint64)
}

func runRun(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	file, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("frames") {
		file.Run.Frames = flagFrames
	}
	if flags.Changed("tps") {
		file.Run.TPS = flagTPS
	}
	if flags.Changed("metrics-addr") {
		file.Run.MetricsAddr = flagMetricsAddr
	}
	if flags.Changed("color") {
		file.Run.Color = flagColor
	}
	if err := file.Validate(); err != nil {
		return err
	}

	sim, err := buildSim(file, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	collector := metrics.NewCollector(sim.Name())
	if obs, ok := sim.(observable); ok {
		obs.AddObserver(collector)
	}
	if file.Run.MetricsAddr != "" {
		go func() {
			if err := collector.Serve(ctx, file.Run.MetricsAddr); err != nil {
				logger.Error("metrics server stopped", "err", err)
			}
		}()
		logger.Info("serving metrics", "addr", file.Run.MetricsAddr)
	}

	cfg := file.Lattice
	logger.Info("lattice ready",
		"w", cfg.Width, "h", cfg.Height, "J", cfg.Coupling,
		"T", cfg.Temperature, "policy", cfg.Policy, "steps", cfg.Sweep())

	out := cmd.OutOrStdout()
	text := render.NewText(file.Run.Color)
	width := sim.Size().W
	pacer := core.NewFixedStep(file.Run.TPS)

	frame := 0
	for frame < file.Run.Frames {
		if err := pacer.Wait(ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				logger.Warn("interrupted", "frame", frame)
				break
			}
			return err
		}
		sim.Step()
		collector.ObserveTick()
		frame++
		if flagEvery {
			fmt.Fprintf(out, "frame %d\n%s\n", frame, text.Render(sim.Cells(), width))
		}
		logger.Debug("tick", "frame", frame)
	}
	if !flagEvery || frame == 0 {
		fmt.Fprintln(out, text.Render(sim.Cells(), width))
	}

	if c, ok := sim.(counted); ok {
		accepted, rejected := c.Counts()
		logger.Info("done", "frames", frame, "accepted", accepted, "rejected", rejected)
	}
	return nil
}

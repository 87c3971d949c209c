// ising runs the two-dimensional Ising model from the terminal or in a window.
//
// Usage:
//
//	ising run                - Step the lattice headless and print it
//	ising view               - Open an interactive window (requires -tags ebiten)
//	ising list               - List registered simulations
//	ising version            - Print the build version
//
// Global flags:
//
//	--config <path>      - YAML configuration file
//	--log-level <level>  - debug, info, warn or error (default: info)
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"ising/internal/config"
	"ising/internal/core"
	"ising/internal/sims/lattice"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var version = "dev"

var (
	flagConfig   string
	flagLogLevel string
	flagSim      string
)

// errNoGUI is returned by view in builds without the ebiten tag.
var errNoGUI = errors.New("the window viewer requires the ebiten build tag")

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, errNoGUI) {
			fmt.Fprintln(os.Stderr, "Re-run with `go run -tags ebiten ./cmd/ising view` or build with `-tags ebiten`.")
			os.Exit(2)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ising",
	Short: "2D Ising model simulator",
	Long: `ising simulates the two-dimensional Ising model on a toroidal lattice
using single-spin-flip Monte Carlo updates.

Examples:
  ising run --width 40 --height 20 --frames 10
  ising run --temperature 2.269 --policy metropolis --seed 7
  ising run --config ./ising.yaml --metrics-addr :9090 --tps 5
  ising view --scale 4`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var latticeFlags lattice.Config

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to YAML config")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagSim, "sim", "ising", "Registered simulation to drive")

	def := lattice.DefaultConfig()
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&latticeFlags.Width, "width", def.Width, "Lattice width")
	pf.IntVar(&latticeFlags.Height, "height", def.Height, "Lattice height")
	pf.Float64Var(&latticeFlags.Coupling, "coupling", def.Coupling, "Coupling constant J")
	pf.Float64Var(&latticeFlags.Temperature, "temperature", def.Temperature, "Temperature (must be > 0)")
	pf.IntVar(&latticeFlags.StepsPerTick, "steps", def.StepsPerTick, "Flip proposals per tick (0 = one sweep)")
	pf.StringVar(&latticeFlags.Policy, "policy", def.Policy, "Acceptance policy: legacy or metropolis")
	pf.Int64Var(&latticeFlags.Seed, "seed", def.Seed, "RNG seed (0 = random)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(versionCmd)
}

func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "ising",
		Level:           level,
	}), nil
}

// loadConfig reads the config file and applies explicitly set flags on top.
func loadConfig(cmd *cobra.Command) (config.File, error) {
	file, err := config.Load(flagConfig)
	if err != nil {
		return file, err
	}
	flags := cmd.Flags()
	if flags.Changed("width") {
		file.Lattice.Width = latticeFlags.Width
	}
	if flags.Changed("height") {
		file.Lattice.Height = latticeFlags.Height
	}
	if flags.Changed("coupling") {
		file.Lattice.Coupling = latticeFlags.Coupling
	}
	if flags.Changed("temperature") {
		file.Lattice.Temperature = latticeFlags.Temperature
	}
	if flags.Changed("steps") {
		file.Lattice.StepsPerTick = latticeFlags.StepsPerTick
	}
	if flags.Changed("policy") {
		file.Lattice.Policy = latticeFlags.Policy
	}
	if flags.Changed("seed") {
		file.Lattice.Seed = latticeFlags.Seed
	}
	if err := file.Validate(); err != nil {
		return file, err
	}
	return file, nil
}

// buildSim constructs the selected sim from the resolved configuration.
func buildSim(file config.File, logger *log.Logger) (core.Sim, error) {
	sim, err := core.Build(flagSim, file.Lattice.ToMap())
	if err != nil {
		return nil, err
	}
	if l, ok := sim.(interface{ SetLogger(*log.Logger) }); ok {
		l.SetLogger(logger)
	}
	return sim, nil
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered simulations",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		for _, name := range core.Names() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the build version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

package main

import "github.com/spf13/cobra"

var flagScale int

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Open an interactive window",
	Long: `Open the lattice in a window. Requires a build with -tags ebiten.

Controls:
  Space   - Pause / resume
  N       - Single tick
  R / S   - Reset with the same / a new seed
  Tab     - Select HUD control
  + / -   - Adjust the selected control
  Q/Esc   - Quit`,
	Args: cobra.NoArgs,
	RunE: runView,
}

func init() {
	viewCmd.Flags().IntVar(&flagScale, "scale", 4, "Pixels per lattice site")
	viewCmd.Flags().IntVar(&flagTPS, "tps", 60, "Ticks per second")
	viewCmd.Flags().StringVar(&flagMetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")
}

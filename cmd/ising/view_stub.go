//go:build !ebiten

package main

import "github.com/spf13/cobra"

func runView(*cobra.Command, []string) error {
	return errNoGUI
}

// Command fretboard prints scale guides, positions and harmonized tabs in the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Conceptual-Machines/fretboard-api/internal/logger"
)

var (
	instrumentName string
	fretCount      int
	noColor        bool
	verbose        bool
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "fretboard",
		Short: "Scale guides for stringed instruments",
		Long: `fretboard maps a root note and scale onto the neck of a stringed instrument.

It lists the scale's notes and degrees, three playable fingering positions,
an ascending diagonal run and interval-harmonized tablature.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if noColor {
				color.NoColor = true
			}
			level := "warn"
			if verbose {
				level = "debug"
			}
			return logger.Init(logger.Options{Environment: "cli", Level: level})
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	root.PersistentFlags().StringVarP(&instrumentName, "instrument", "i", "", "instrument preset (default from presets)")
	root.PersistentFlags().IntVar(&fretCount, "frets", 0, "override the preset's fret count")
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newScalesCmd(), newInstrumentsCmd(), newGuideCmd(), newTabCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error: %v", err))
		os.Exit(1)
	}
}

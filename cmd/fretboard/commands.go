package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Conceptual-Machines/fretboard-api/internal/cache"
	"github.com/Conceptual-Machines/fretboard-api/internal/services"
	"github.com/Conceptual-Machines/fretboard-api/internal/theory"
)

const cliCacheCapacity = 16

var (
	header = color.New(color.FgCyan, color.Bold)
	accent = color.New(color.FgYellow, color.Bold)
	muted  = color.New(color.FgHiBlack)
)

func newService() (*services.GuideService, error) {
	inst, err := theory.LookupInstrument(instrumentName)
	if err != nil {
		return nil, err
	}
	if fretCount > 0 {
		inst.Frets = fretCount
	}
	return services.NewGuideService(inst, cache.NewMemoryStore(cliCacheCapacity, 0), services.NewCatalogEnricher(), nil), nil
}

func newScalesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scales",
		Short: "List supported scales",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, name := range theory.ScaleNames() {
				formula, _ := theory.GetFormula(name)
				degrees := make([]string, 0, len(formula)+1)
				degrees = append(degrees, theory.RootDegree)
				for _, step := range formula {
					degrees = append(degrees, step.Degree)
				}
				fmt.Fprintf(out, "%-24s %s\n", name, muted.Sprint(strings.Join(degrees, " ")))
			}
			return nil
		},
	}
}

func newInstrumentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "instruments",
		Short: "List instrument presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			def := theory.DefaultInstrument()
			for _, inst := range theory.Instruments() {
				marker := " "
				if inst.Name == def.Name {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %-18s %2d frets  %s\n", marker, inst.Name, inst.Frets, strings.Join(inst.StringNames, " "))
			}
			return nil
		},
	}
}

func newGuideCmd() *cobra.Command {
	var (
		root   string
		scale  string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "guide",
		Short: "Print the full guide for a scale",
		Example: `  fretboard guide --root C --scale Major
  fretboard guide -r A -s "Minor Pentatonic" -i guitar-6 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			guide, err := svc.Generate(cmd.Context(), root, scale)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(guide)
			}

			printGuide(out, svc.Instrument(), guide)
			return nil
		},
	}

	cmd.Flags().StringVarP(&root, "root", "r", "", "root note, e.g. C, F#, Bb")
	cmd.Flags().StringVarP(&scale, "scale", "s", "Major", "scale name")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the guide as JSON")
	_ = cmd.MarkFlagRequired("root")
	return cmd
}

func newTabCmd() *cobra.Command {
	var (
		root     string
		scale    string
		interval int
		run      bool
	)

	cmd := &cobra.Command{
		Use:   "tab",
		Short: "Print harmonized tablature for a scale",
		Example: `  fretboard tab --root E --scale "Harmonic Minor" --interval 2
  fretboard tab -r G -s Mixolydian --run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			names := svc.Instrument().StringNames

			if run {
				guide, err := svc.Generate(cmd.Context(), root, scale)
				if err != nil {
					return err
				}
				header.Fprintf(out, "%s %s diagonal run\n", guide.RootNote, guide.ScaleName)
				fmt.Fprint(out, guide.DiagramData.RunTab.Render(names))
				return nil
			}

			tab, err := svc.Harmonize(cmd.Context(), root, scale, interval)
			if err != nil {
				return err
			}
			header.Fprintf(out, "%s %s harmonized (interval %d)\n", root, scale, interval)
			fmt.Fprint(out, tab.Render(names))
			return nil
		},
	}

	cmd.Flags().StringVarP(&root, "root", "r", "", "root note")
	cmd.Flags().StringVarP(&scale, "scale", "s", "Major", "scale name")
	cmd.Flags().IntVarP(&interval, "interval", "n", theory.DefaultHarmonyInterval, "scale steps between the two notes of each pair")
	cmd.Flags().BoolVar(&run, "run", false, "print the diagonal run instead of the harmony")
	_ = cmd.MarkFlagRequired("root")
	return cmd
}

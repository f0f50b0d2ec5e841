package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/Conceptual-Machines/fretboard-api/internal/models"
	"github.com/Conceptual-Machines/fretboard-api/internal/theory"
)

func printGuide(out io.Writer, inst theory.Instrument, guide *models.ScaleGuide) {
	data := guide.DiagramData

	header.Fprintf(out, "%s %s", guide.RootNote, guide.ScaleName)
	muted.Fprintf(out, "  (%s, %d frets)\n", inst.Label, data.FretCount)

	fmt.Fprintln(out)
	header.Fprintln(out, "Degrees")
	for _, d := range guide.DegreeExplanations {
		label := fmt.Sprintf("%-3s %-3s", d.Degree, d.Note)
		if d.Degree == theory.RootDegree {
			label = accent.Sprint(label)
		}
		fmt.Fprintf(out, "  %s %2d  %s\n", label, d.Semitones, muted.Sprint(d.Interval))
	}

	if len(guide.DiatonicChords) > 0 {
		fmt.Fprintln(out)
		header.Fprintln(out, "Diatonic chords")
		for _, ch := range guide.DiatonicChords {
			fmt.Fprintf(out, "  %-5s %-6s %s\n", ch.Roman, ch.Symbol, muted.Sprint(ch.Seventh))
		}
	}

	for i, p := range data.Positions {
		if p.IsEmpty() {
			continue
		}
		window := data.PositionWindows[i]
		fmt.Fprintln(out)
		header.Fprintf(out, "Position %d", i+1)
		muted.Fprintf(out, "  frets %d-%d\n", window.Start, window.End)
		fmt.Fprint(out, renderNeck(data.Notes, inst.StringNames, window.Start, window.End, p))
	}

	fmt.Fprintln(out)
	header.Fprintln(out, "Diagonal run")
	fmt.Fprint(out, data.RunTab.Render(inst.StringNames))
}

// renderNeck draws a fret window with one cell per fret. Fingered notes show their
// finger number, other scale notes a dot, roots are highlighted.
func renderNeck(notes []theory.FretboardNote, stringNames []string, start, end int, position theory.FingeringPosition) string {
	visible := theory.FilterFrets(notes, start, end)
	byCell := make(map[[2]int]theory.FretboardNote, len(visible))
	for _, n := range visible {
		byCell[[2]int{n.String, n.Fret}] = n
	}

	width := 0
	for _, name := range stringNames {
		if len(name) > width {
			width = len(name)
		}
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", width+1))
	for f := start; f <= end; f++ {
		fmt.Fprintf(&b, "%-4d", f)
	}
	b.WriteString("\n")

	for s, name := range stringNames {
		fmt.Fprintf(&b, "%-*s|", width, name)
		for f := start; f <= end; f++ {
			n, ok := byCell[[2]int{s, f}]
			if !ok {
				b.WriteString("---|")
				continue
			}
			mark := "o"
			if finger, fingered := position.Finger(s, f); fingered {
				mark = fmt.Sprint(finger)
			}
			cell := "-" + mark + "-"
			if n.IsRoot() {
				cell = "-" + color.New(color.FgYellow, color.Bold).Sprint(mark) + "-"
			}
			b.WriteString(cell + "|")
		}
		b.WriteString("\n")
	}
	return b.String()
}

package theory

import "sort"

const (
	// DefaultHarmonyInterval harmonizes in diatonic thirds
	DefaultHarmonyInterval = 2
	// harmonyMaxStretch is the largest fret distance between the two notes of a pair,
	// which keeps the pair inside a 4-fret span
	harmonyMaxStretch = 3
)

type positionPitch struct {
	String int
	Fret   int
	Note   PitchClass
}

// Harmonize pairs every note of each non-empty position with the scale tone interval
// degrees above it, found on a lower string index within the same position.
// Each pair is written as two consecutive single-note columns; a bar closes every
// position and the tab always ends with a bar.
func Harmonize(positions []FingeringPosition, scale []ScaleNote, tuning Tuning, interval int) *Tab {
	tab := NewTab(len(tuning))
	if len(scale) == 0 {
		tab.EnsureTrailingBar()
		return tab
	}

	index := degreeIndex(scale)

	for _, position := range positions {
		if position.IsEmpty() {
			continue
		}

		notes := make([]positionPitch, 0, len(position.Notes))
		for _, pn := range position.Notes {
			if pn.String < 0 || pn.String >= len(tuning) {
				continue
			}
			notes = append(notes, positionPitch{
				String: pn.String,
				Fret:   pn.Fret,
				Note:   SoundingPitch(tuning, pn.String, pn.Fret),
			})
		}

		// Lowest pitch first: lowest string (highest index) then ascending fret
		sort.SliceStable(notes, func(i, j int) bool {
			if notes[i].String != notes[j].String {
				return notes[i].String > notes[j].String
			}
			return notes[i].Fret < notes[j].Fret
		})

		for _, root := range notes {
			idx, ok := index[root.Note]
			if !ok {
				continue
			}
			target := scale[wrapIndex(idx+interval, len(scale))].Note

			partner, found := findPartner(notes, root, target)
			if !found {
				continue
			}
			tab.AddNote(root.String, root.Fret)
			tab.AddNote(partner.String, partner.Fret)
		}

		tab.AddBar()
	}

	tab.EnsureTrailingBar()
	return tab
}

func findPartner(notes []positionPitch, root positionPitch, target PitchClass) (positionPitch, bool) {
	for _, candidate := range notes {
		if candidate.Note != target || candidate.String >= root.String {
			continue
		}
		if abs(candidate.Fret-root.Fret) > harmonyMaxStretch {
			continue
		}
		return candidate, true
	}
	return positionPitch{}, false
}

// RunTab writes a diagonal run as single-note columns closed by a bar
func RunTab(run []DiagonalRunNote, stringCount int) *Tab {
	tab := NewTab(stringCount)
	for _, n := range run {
		tab.AddNote(n.String, n.Fret)
	}
	tab.EnsureTrailingBar()
	return tab
}

func wrapIndex(i, n int) int {
	return ((i % n) + n) % n
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

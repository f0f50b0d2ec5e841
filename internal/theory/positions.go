package theory

import (
	"fmt"
	"sort"
	"strings"
)

const (
	// PositionSpan is the number of frets covered by one hand position
	PositionSpan = 5
	// PositionCount is the number of positions returned by FindPositions
	PositionCount = 3

	anchorStringCount = 2
	minPositionNotes  = 5 // a candidate needs strictly more notes than this
	openPositionFret  = 2 // roots at or below this fret anchor the window at fret 1
	maxFinger         = 4
)

// PositionNote is a fretted note with its assigned finger
type PositionNote struct {
	String int `json:"string"`
	Fret   int `json:"fret"`
	Finger int `json:"finger"`
}

// Key returns the "string-fret" key identifying the note on the neck
func (n PositionNote) Key() string {
	return fmt.Sprintf("%d-%d", n.String, n.Fret)
}

// FingeringPosition is a box pattern inside [StartFret, StartFret+4].
// Notes keep the order they were collected in; an empty position has no notes.
type FingeringPosition struct {
	StartFret int            `json:"startFret"`
	Notes     []PositionNote `json:"notes"`
}

// IsEmpty reports whether the position holds no notes
func (p FingeringPosition) IsEmpty() bool {
	return len(p.Notes) == 0
}

// EndFret returns the last fret covered by the window
func (p FingeringPosition) EndFret() int {
	return p.StartFret + PositionSpan - 1
}

// Finger looks up the finger assigned to (string, fret)
func (p FingeringPosition) Finger(stringIndex, fret int) (int, bool) {
	for _, n := range p.Notes {
		if n.String == stringIndex && n.Fret == fret {
			return n.Finger, true
		}
	}
	return 0, false
}

// FingerMap returns the position as a "string-fret" -> finger map
func (p FingeringPosition) FingerMap() map[string]int {
	m := make(map[string]int, len(p.Notes))
	for _, n := range p.Notes {
		m[n.Key()] = n.Finger
	}
	return m
}

// MinFret returns the lowest fret in the position, or 0 when empty
func (p FingeringPosition) MinFret() int {
	if p.IsEmpty() {
		return 0
	}
	lowest := p.Notes[0].Fret
	for _, n := range p.Notes[1:] {
		if n.Fret < lowest {
			lowest = n.Fret
		}
	}
	return lowest
}

// signature identifies a position by content, independent of the window start
func (p FingeringPosition) signature() string {
	keys := make([]string, len(p.Notes))
	for i, n := range p.Notes {
		keys[i] = n.Key()
	}
	sort.Strings(keys)
	return strings.Join(keys, ",")
}

// FindPositions derives up to three box patterns anchored on roots of the two lowest strings.
// Missing positions are returned empty so the result always has PositionCount entries.
func FindPositions(notes []FretboardNote, stringCount int) [PositionCount]FingeringPosition {
	var candidates []FingeringPosition
	seen := make(map[string]bool)

	for _, anchor := range notes {
		if !anchor.IsRoot() || !isAnchorString(anchor.String, stringCount) {
			continue
		}

		start := anchor.Fret - 1
		if anchor.Fret <= openPositionFret {
			start = 1
		}

		candidate := collectWindow(notes, start)
		if len(candidate.Notes) <= minPositionNotes {
			continue
		}

		sig := candidate.signature()
		if seen[sig] {
			continue
		}
		seen[sig] = true
		candidates = append(candidates, candidate)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].MinFret() < candidates[j].MinFret()
	})

	var positions [PositionCount]FingeringPosition
	for i := range positions {
		if i < len(candidates) {
			positions[i] = candidates[i]
		} else {
			positions[i] = FingeringPosition{Notes: []PositionNote{}}
		}
	}
	return positions
}

func isAnchorString(stringIndex, stringCount int) bool {
	return stringIndex >= stringCount-anchorStringCount && stringIndex < stringCount
}

func collectWindow(notes []FretboardNote, start int) FingeringPosition {
	end := start + PositionSpan - 1
	position := FingeringPosition{StartFret: start}
	for _, n := range notes {
		if n.IsOpen() || n.Fret < start || n.Fret > end {
			continue
		}
		position.Notes = append(position.Notes, PositionNote{
			String: n.String,
			Fret:   n.Fret,
			Finger: clampFinger(n.Fret - start + 1),
		})
	}
	return position
}

func clampFinger(finger int) int {
	if finger < 1 {
		return 1
	}
	if finger > maxFinger {
		return maxFinger
	}
	return finger
}

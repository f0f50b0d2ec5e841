package theory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindPositions_CMajor(t *testing.T) {
	inst := guitar7(t)
	notes := MapFretboard(mustScale(t, "C", "Major"), inst.Tuning, inst.Frets)

	positions := FindPositions(notes, inst.StringCount())

	// Roots on the two lowest strings sit at frets 1, 8, 13 and 20; the fret 20 box
	// sorts fourth and is dropped
	expected := []struct {
		start int
		count int
	}{
		{start: 1, count: 21},
		{start: 7, count: 19},
		{start: 12, count: 21},
	}
	for i, want := range expected {
		assert.Equal(t, want.start, positions[i].StartFret, "position %d start", i)
		assert.Len(t, positions[i].Notes, want.count, "position %d size", i)
	}

	// The open position: C on the low B string at fret 1 anchors the window at fret 1
	finger, ok := positions[0].Finger(6, 1)
	require.True(t, ok)
	assert.Equal(t, 1, finger)
	finger, ok = positions[0].Finger(0, 5)
	require.True(t, ok)
	assert.Equal(t, 4, finger)

	_, ok = positions[0].Finger(0, 0)
	assert.False(t, ok, "open strings never belong to a position")
}

func TestFindPositions_Invariants(t *testing.T) {
	inst := guitar7(t)

	for _, scaleName := range []string{"Major", "Natural Minor", "Harmonic Minor", "Minor Pentatonic", "Blues", "Whole Tone"} {
		for _, root := range NoteNames() {
			notes := MapFretboard(mustScale(t, root, scaleName), inst.Tuning, inst.Frets)
			positions := FindPositions(notes, inst.StringCount())

			signatures := make(map[string]bool)
			prevMin := -1
			for i, p := range positions {
				if p.IsEmpty() {
					continue
				}

				assert.Greater(t, len(p.Notes), 5, "%s %s position %d too sparse", root, scaleName, i)
				assert.GreaterOrEqual(t, p.MinFret(), prevMin, "%s %s positions out of order", root, scaleName)
				prevMin = p.MinFret()

				for _, n := range p.Notes {
					assert.NotZero(t, n.Fret, "open string in position")
					assert.GreaterOrEqual(t, n.Fret, p.StartFret)
					assert.LessOrEqual(t, n.Fret, p.StartFret+PositionSpan-1)
					assert.Equal(t, clampFinger(n.Fret-p.StartFret+1), n.Finger)
					assert.GreaterOrEqual(t, n.Finger, 1)
					assert.LessOrEqual(t, n.Finger, 4)
				}

				sig := p.signature()
				assert.False(t, signatures[sig], "%s %s duplicate position", root, scaleName)
				signatures[sig] = true
			}
		}
	}
}

func TestFindPositions_PadsWithEmptyPositions(t *testing.T) {
	inst := guitar7(t)
	// Only five frets: the single root on the low strings yields one box
	notes := MapFretboard(mustScale(t, "C", "Major"), inst.Tuning, 5)

	positions := FindPositions(notes, inst.StringCount())
	assert.False(t, positions[0].IsEmpty())
	assert.Equal(t, 1, positions[0].StartFret)
	assert.True(t, positions[1].IsEmpty())
	assert.True(t, positions[2].IsEmpty())
	assert.NotNil(t, positions[2].Notes)
}

func TestFindPositions_NoNotes(t *testing.T) {
	positions := FindPositions(nil, 7)
	for _, p := range positions {
		assert.True(t, p.IsEmpty())
	}
}

func TestFindPositions_DropsSparseWindows(t *testing.T) {
	notes := []FretboardNote{
		{String: 6, Fret: 5, Note: MustParseNote("E"), Degree: RootDegree},
		{String: 5, Fret: 5, Note: MustParseNote("A"), Degree: "4"},
		{String: 4, Fret: 6, Note: MustParseNote("D#"), Degree: "7"},
	}
	positions := FindPositions(notes, 7)
	assert.True(t, positions[0].IsEmpty())
}

func TestFingeringPosition_FingerMap(t *testing.T) {
	p := FingeringPosition{StartFret: 3, Notes: []PositionNote{
		{String: 6, Fret: 3, Finger: 1},
		{String: 6, Fret: 5, Finger: 3},
	}}
	assert.Equal(t, map[string]int{"6-3": 1, "6-5": 3}, p.FingerMap())
	assert.Equal(t, 7, p.EndFret())
	assert.Equal(t, 3, p.MinFret())
}

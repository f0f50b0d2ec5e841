package theory

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayout_FullNeck(t *testing.T) {
	inst := guitar7(t)
	notes := MapFretboard(mustScale(t, "C", "Major"), inst.Tuning, inst.Frets)

	g := Layout(0, 24, notes, inst.StringCount())

	assert.True(t, g.FullNeck)
	assert.True(t, g.HasOpenColumn)
	assert.Equal(t, FullNeckFretWidth, g.FretWidth)
	assert.Equal(t, 5.5*g.FretWidth, g.X(5))
	assert.Equal(t, OpenStringX, g.X(0))
	assert.Equal(t, 25, g.Columns)
	assert.Equal(t, 25*FullNeckFretWidth, g.Width)
	assert.Equal(t, 7*RowHeight, g.Height)
	assert.Len(t, g.Points, len(notes))
}

func TestLayout_PositionWindow(t *testing.T) {
	inst := guitar7(t)
	notes := MapFretboard(mustScale(t, "C", "Major"), inst.Tuning, inst.Frets)

	g := Layout(3, 7, notes, inst.StringCount())

	assert.False(t, g.FullNeck)
	assert.False(t, g.HasOpenColumn)
	assert.Equal(t, PositionFretWidth, g.FretWidth)
	assert.Equal(t, 1*g.FretWidth, g.X(3))
	assert.Equal(t, 3*g.FretWidth, g.X(5))
	// five frets plus the border column
	assert.Equal(t, 6, g.Columns)

	require.NotEmpty(t, g.Points)
	for _, p := range g.Points {
		assert.GreaterOrEqual(t, p.Fret, 3)
		assert.LessOrEqual(t, p.Fret, 7)
		assert.Equal(t, g.X(p.Fret), p.X)
		assert.Equal(t, g.Y(p.String), p.Y)
	}
	assert.Len(t, g.Notes(), len(FilterFrets(notes, 3, 7)))
}

func TestLayout_ShortWindowFromNutIsAPosition(t *testing.T) {
	g := Layout(0, 12, nil, 6)
	assert.False(t, g.FullNeck)
	assert.True(t, g.HasOpenColumn)
	assert.Equal(t, PositionFretWidth, g.FretWidth)
	assert.Empty(t, g.Points)
}

func TestInstrumentLayout_FullNeckFollowsFretCount(t *testing.T) {
	tests := []struct {
		instrument string
		start      int
		end        int
		fullNeck   bool
	}{
		{instrument: "bass-4", start: 0, end: 20, fullNeck: true},
		{instrument: "guitar-7", start: 0, end: 24, fullNeck: true},
		{instrument: "bass-4", start: 0, end: 12, fullNeck: false},
		{instrument: "bass-4", start: 3, end: 20, fullNeck: false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s %d-%d", tt.instrument, tt.start, tt.end), func(t *testing.T) {
			inst, err := LookupInstrument(tt.instrument)
			require.NoError(t, err)

			g := inst.Layout(tt.start, tt.end, nil)
			assert.Equal(t, tt.fullNeck, g.FullNeck)
			assert.Equal(t, inst.StringCount(), g.StringCount)
			if tt.fullNeck {
				assert.Equal(t, FullNeckFretWidth, g.FretWidth)
				assert.Equal(t, 5.5*g.FretWidth, g.X(5))
				assert.Equal(t, tt.end+1, g.Columns)
			} else {
				assert.Equal(t, PositionFretWidth, g.FretWidth)
			}
		})
	}
}

func TestLayout_Y(t *testing.T) {
	g := Layout(1, 5, nil, 7)
	assert.Equal(t, 0.5*RowHeight, g.Y(0))
	assert.Equal(t, 6.5*RowHeight, g.Y(6))
	assert.Equal(t, RowHeight, g.Y(1)-g.Y(0))
}

func TestLayout_InvertedWindow(t *testing.T) {
	g := Layout(9, 4, nil, 7)
	assert.Equal(t, 9, g.StartFret)
	assert.Equal(t, 9, g.EndFret)
	assert.Equal(t, 2, g.Columns)
}

func TestFretRange(t *testing.T) {
	tests := []struct {
		name          string
		notes         []FretboardNote
		expectedStart int
		expectedEnd   int
	}{
		{name: "no notes", notes: nil, expectedStart: 1, expectedEnd: 5},
		{name: "only open strings", notes: []FretboardNote{{String: 0, Fret: 0}}, expectedStart: 1, expectedEnd: 5},
		{name: "narrow spread widened", notes: []FretboardNote{{Fret: 7}, {Fret: 8}}, expectedStart: 7, expectedEnd: 11},
		{name: "wide spread kept", notes: []FretboardNote{{Fret: 0}, {Fret: 3}, {Fret: 12}}, expectedStart: 3, expectedEnd: 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := FretRange(tt.notes)
			assert.Equal(t, tt.expectedStart, start)
			assert.Equal(t, tt.expectedEnd, end)
		})
	}
}

func TestPositionRange(t *testing.T) {
	start, end := PositionRange(FingeringPosition{})
	assert.Equal(t, 1, start)
	assert.Equal(t, 5, end)

	start, end = PositionRange(FingeringPosition{StartFret: 7, Notes: []PositionNote{{String: 6, Fret: 8, Finger: 2}}})
	assert.Equal(t, 7, start)
	assert.Equal(t, 11, end)
}

package theory

// Diagram layout constants, in pixels
const (
	FullNeckFretWidth = 40.0
	PositionFretWidth = 60.0
	RowHeight         = 30.0
	// OpenStringX is where open-string notes are drawn, just left of the nut
	OpenStringX = 15.0

	fullNeckMinSpan  = 20
	defaultStartFret = 1
	defaultEndFret   = 5
)

// NotePoint is a note with its pixel coordinates
type NotePoint struct {
	FretboardNote
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Geometry is the pixel layout of a fret window. It is derived data and never stored.
type Geometry struct {
	StartFret     int         `json:"startFret"`
	EndFret       int         `json:"endFret"`
	StringCount   int         `json:"stringCount"`
	FullNeck      bool        `json:"fullNeck"`
	HasOpenColumn bool        `json:"hasOpenColumn"`
	FretWidth     float64     `json:"fretWidth"`
	RowHeight     float64     `json:"rowHeight"`
	Columns       int         `json:"columns"`
	Width         float64     `json:"width"`
	Height        float64     `json:"height"`
	Points        []NotePoint `json:"points"`
}

// X returns the horizontal center of a fret inside the window
func (g Geometry) X(fret int) float64 {
	if fret == 0 {
		return OpenStringX
	}
	if g.FullNeck {
		return (float64(fret-g.StartFret) + 0.5) * g.FretWidth
	}
	return float64(fret-g.StartFret+1) * g.FretWidth
}

// Y returns the vertical center of a string row
func (g Geometry) Y(stringIndex int) float64 {
	return (float64(stringIndex) + 0.5) * g.RowHeight
}

// Notes returns the notes visible in the window
func (g Geometry) Notes() []FretboardNote {
	notes := make([]FretboardNote, len(g.Points))
	for i, p := range g.Points {
		notes[i] = p.FretboardNote
	}
	return notes
}

// Layout computes the diagram geometry for [startFret, endFret]. A window starting at the
// nut and spanning more than 20 frets is drawn as a full neck with narrow frets; anything
// else is a position window with wide frets and a border column on the left.
func Layout(startFret, endFret int, notes []FretboardNote, stringCount int) Geometry {
	startFret, endFret = clampWindow(startFret, endFret)
	fullNeck := startFret == 0 && endFret-startFret > fullNeckMinSpan
	return layout(startFret, endFret, notes, stringCount, fullNeck)
}

// Layout computes the geometry of a window on this instrument. A window from the nut to
// the last fret is the full neck even on necks with 20 frets or fewer.
func (inst Instrument) Layout(startFret, endFret int, notes []FretboardNote) Geometry {
	startFret, endFret = clampWindow(startFret, endFret)
	fullNeck := startFret == 0 && (endFret-startFret > fullNeckMinSpan || endFret >= inst.Frets)
	return layout(startFret, endFret, notes, inst.StringCount(), fullNeck)
}

func clampWindow(startFret, endFret int) (int, int) {
	if startFret < 0 {
		startFret = 0
	}
	if endFret < startFret {
		endFret = startFret
	}
	return startFret, endFret
}

func layout(startFret, endFret int, notes []FretboardNote, stringCount int, fullNeck bool) Geometry {
	g := Geometry{
		StartFret:     startFret,
		EndFret:       endFret,
		StringCount:   stringCount,
		FullNeck:      fullNeck,
		HasOpenColumn: startFret == 0,
		RowHeight:     RowHeight,
	}

	if g.FullNeck {
		g.FretWidth = FullNeckFretWidth
		g.Columns = endFret - startFret + 1
	} else {
		g.FretWidth = PositionFretWidth
		g.Columns = endFret - startFret + 2
	}
	g.Width = float64(g.Columns) * g.FretWidth
	g.Height = float64(stringCount) * g.RowHeight

	visible := FilterFrets(notes, startFret, endFret)
	g.Points = make([]NotePoint, 0, len(visible))
	for _, n := range visible {
		g.Points = append(g.Points, NotePoint{FretboardNote: n, X: g.X(n.Fret), Y: g.Y(n.String)})
	}

	return g
}

// FretRange returns the window spanned by the fretted notes, at least PositionSpan frets
// wide. Without fretted notes it falls back to frets 1-5.
func FretRange(notes []FretboardNote) (int, int) {
	start, end := -1, -1
	for _, n := range notes {
		if n.IsOpen() {
			continue
		}
		if start == -1 || n.Fret < start {
			start = n.Fret
		}
		if n.Fret > end {
			end = n.Fret
		}
	}

	if start == -1 {
		return defaultStartFret, defaultEndFret
	}
	if end-start+1 < PositionSpan {
		end = start + PositionSpan - 1
	}
	return start, end
}

// PositionRange returns the window of a fingering position, or the default window when empty
func PositionRange(p FingeringPosition) (int, int) {
	if p.IsEmpty() {
		return defaultStartFret, defaultEndFret
	}
	return p.StartFret, p.EndFret()
}

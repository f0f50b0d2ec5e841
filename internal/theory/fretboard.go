package theory

// FretboardNote is one playable occurrence of a scale tone
type FretboardNote struct {
	String int        `json:"string"`
	Fret   int        `json:"fret"`
	Note   PitchClass `json:"noteName"`
	Degree string     `json:"degree"`
}

// IsOpen reports whether the note is played on an unfretted string
func (n FretboardNote) IsOpen() bool {
	return n.Fret == 0
}

// IsRoot reports whether the note carries the root degree
func (n FretboardNote) IsRoot() bool {
	return n.Degree == RootDegree
}

// SoundingPitch returns the pitch class produced at (string, fret) for the given tuning
func SoundingPitch(tuning Tuning, stringIndex, fret int) PitchClass {
	return tuning[stringIndex].Transpose(fret)
}

// MapFretboard enumerates every (string, fret) whose sounding pitch belongs to the scale.
// Output is ordered by string, then fret, frets 0 through fretCount inclusive.
func MapFretboard(scale []ScaleNote, tuning Tuning, fretCount int) []FretboardNote {
	degrees := make(map[PitchClass]string, len(scale))
	for _, n := range scale {
		if _, seen := degrees[n.Note]; !seen {
			degrees[n.Note] = n.Degree
		}
	}

	notes := make([]FretboardNote, 0, len(tuning)*(fretCount+1)*len(degrees)/semitonesPerOctave+1)
	for s := range tuning {
		for fret := 0; fret <= fretCount; fret++ {
			pc := SoundingPitch(tuning, s, fret)
			degree, ok := degrees[pc]
			if !ok {
				continue
			}
			notes = append(notes, FretboardNote{
				String: s,
				Fret:   fret,
				Note:   pc,
				Degree: degree,
			})
		}
	}

	return notes
}

// FilterFrets keeps notes whose fret lies within [startFret, endFret]
func FilterFrets(notes []FretboardNote, startFret, endFret int) []FretboardNote {
	filtered := make([]FretboardNote, 0, len(notes))
	for _, n := range notes {
		if n.Fret >= startFret && n.Fret <= endFret {
			filtered = append(filtered, n)
		}
	}
	return filtered
}

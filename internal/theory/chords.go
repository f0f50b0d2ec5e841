package theory

import (
	"fmt"
	"strings"
	"sync"

	"github.com/Conceptual-Machines/fretboard-api/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// DegreeInfo explains one scale degree
type DegreeInfo struct {
	Degree    string     `json:"degree"`
	Note      PitchClass `json:"noteName"`
	Semitones int        `json:"semitones"`
	Interval  string     `json:"interval"`
}

type degreeDescription struct {
	Name      string `yaml:"name"`
	Semitones int    `yaml:"semitones"`
}

var (
	degreesOnce  sync.Once
	degreeTable  map[string]degreeDescription
	degreesError error
)

func loadDegrees() (map[string]degreeDescription, error) {
	degreesOnce.Do(func() {
		degreeTable, degreesError = parseDegrees(embedded.DegreesYAML)
	})
	return degreeTable, degreesError
}

func parseDegrees(data []byte) (map[string]degreeDescription, error) {
	table := make(map[string]degreeDescription)
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to decode degree table: %w", err)
	}
	return table, nil
}

// DegreeExplanations describes each note of a resolved scale. Labels missing from the
// table get an empty interval name; the semitone distance is always computed.
func DegreeExplanations(scale []ScaleNote) ([]DegreeInfo, error) {
	table, err := loadDegrees()
	if err != nil {
		return nil, err
	}
	return explainDegrees(scale, table), nil
}

func explainDegrees(scale []ScaleNote, table map[string]degreeDescription) []DegreeInfo {
	if len(scale) == 0 {
		return []DegreeInfo{}
	}

	root := scale[0].Note
	infos := make([]DegreeInfo, len(scale))
	for i, n := range scale {
		infos[i] = DegreeInfo{
			Degree:    n.Degree,
			Note:      n.Note,
			Semitones: root.Interval(n.Note),
			Interval:  table[n.Degree].Name,
		}
	}
	return infos
}

// Chord qualities
const (
	QualityMajor      = "major"
	QualityMinor      = "minor"
	QualityDiminished = "diminished"
	QualityAugmented  = "augmented"
	QualityOther      = "other"
)

const heptatonicSize = 7

// DiatonicChord is the triad built on one scale degree
type DiatonicChord struct {
	Degree  string       `json:"degree"`
	Roman   string       `json:"roman"`
	Root    PitchClass   `json:"root"`
	Symbol  string       `json:"symbol"`
	Quality string       `json:"quality"`
	Seventh string       `json:"seventh"`
	Notes   []PitchClass `json:"notes"`
}

var triadSuffix = map[string]string{
	QualityMajor:      "",
	QualityMinor:      "m",
	QualityDiminished: "dim",
	QualityAugmented:  "+",
	QualityOther:      "?",
}

// seventhNames maps (triad quality, fifth-to-seventh gap) to a seventh chord suffix
var seventhNames = map[string]map[int]string{
	QualityMajor:      {4: "maj7", 3: "7"},
	QualityMinor:      {4: "mMaj7", 3: "m7"},
	QualityDiminished: {4: "m7b5", 3: "dim7"},
	QualityAugmented:  {3: "maj7#5", 2: "7#5"},
}

var romanNumerals = [heptatonicSize]string{"I", "II", "III", "IV", "V", "VI", "VII"}

// DiatonicChords stacks thirds on every degree of a seven-note scale. Other scale sizes
// have no diatonic triads and yield an empty list.
func DiatonicChords(scale []ScaleNote) []DiatonicChord {
	if len(scale) != heptatonicSize {
		return []DiatonicChord{}
	}

	chords := make([]DiatonicChord, heptatonicSize)
	for i := range scale {
		root := scale[i].Note
		third := scale[(i+2)%heptatonicSize].Note
		fifth := scale[(i+4)%heptatonicSize].Note
		seventh := scale[(i+6)%heptatonicSize].Note

		quality := triadQuality(root.Interval(third), third.Interval(fifth))
		chords[i] = DiatonicChord{
			Degree:  scale[i].Degree,
			Roman:   romanFor(i, quality),
			Root:    root,
			Symbol:  root.String() + triadSuffix[quality],
			Quality: quality,
			Seventh: seventhName(root, quality, fifth.Interval(seventh)),
			Notes:   []PitchClass{root, third, fifth},
		}
	}
	return chords
}

func triadQuality(lower, upper int) string {
	switch {
	case lower == 4 && upper == 3:
		return QualityMajor
	case lower == 3 && upper == 4:
		return QualityMinor
	case lower == 3 && upper == 3:
		return QualityDiminished
	case lower == 4 && upper == 4:
		return QualityAugmented
	default:
		return QualityOther
	}
}

func romanFor(index int, quality string) string {
	numeral := romanNumerals[index]
	switch quality {
	case QualityMinor:
		return strings.ToLower(numeral)
	case QualityDiminished:
		return strings.ToLower(numeral) + "°"
	case QualityAugmented:
		return numeral + "+"
	default:
		return numeral
	}
}

func seventhName(root PitchClass, quality string, gap int) string {
	names, ok := seventhNames[quality]
	if !ok {
		return ""
	}
	suffix, ok := names[gap]
	if !ok {
		return ""
	}
	return root.String() + suffix
}

package theory

import (
	"sort"
	"strings"
)

// FormulaStep is one interval of a scale formula, measured from the previous scale tone
type FormulaStep struct {
	Semitones int
	Degree    string
}

// Formula is the ordered list of steps that follows the root
type Formula []FormulaStep

func steps(pairs ...any) Formula {
	f := make(Formula, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		f = append(f, FormulaStep{Semitones: pairs[i].(int), Degree: pairs[i+1].(string)})
	}
	return f
}

// scaleFormulas is the fixed interval table. Keys are the canonical scale names.
var scaleFormulas = map[string]Formula{
	// Diatonic modes
	"Major":         steps(2, "2", 2, "3", 1, "4", 2, "5", 2, "6", 2, "7"),
	"Natural Minor": steps(2, "2", 1, "b3", 2, "4", 2, "5", 1, "b6", 2, "b7"),
	"Dorian":        steps(2, "2", 1, "b3", 2, "4", 2, "5", 2, "6", 1, "b7"),
	"Phrygian":      steps(1, "b2", 2, "b3", 2, "4", 2, "5", 1, "b6", 2, "b7"),
	"Lydian":        steps(2, "2", 2, "3", 2, "#4", 1, "5", 2, "6", 2, "7"),
	"Mixolydian":    steps(2, "2", 2, "3", 1, "4", 2, "5", 2, "6", 1, "b7"),
	"Locrian":       steps(1, "b2", 2, "b3", 2, "4", 1, "b5", 2, "b6", 2, "b7"),

	// Minor variants and their modes
	"Harmonic Minor":    steps(2, "2", 1, "b3", 2, "4", 2, "5", 1, "b6", 3, "7"),
	"Melodic Minor":     steps(2, "2", 1, "b3", 2, "4", 2, "5", 2, "6", 2, "7"),
	"Phrygian Dominant": steps(1, "b2", 3, "3", 1, "4", 2, "5", 1, "b6", 2, "b7"),
	"Lydian Dominant":   steps(2, "2", 2, "3", 2, "#4", 1, "5", 2, "6", 1, "b7"),
	"Altered":           steps(1, "b2", 2, "#2", 1, "3", 2, "b5", 2, "#5", 2, "b7"),
	"Harmonic Major":    steps(2, "2", 2, "3", 1, "4", 2, "5", 1, "b6", 3, "7"),
	"Hungarian Minor":   steps(2, "2", 1, "b3", 3, "#4", 1, "5", 1, "b6", 3, "7"),
	"Double Harmonic":   steps(1, "b2", 3, "3", 1, "4", 2, "5", 1, "b6", 3, "7"),

	// Pentatonic and blues
	"Major Pentatonic": steps(2, "2", 2, "3", 3, "5", 2, "6"),
	"Minor Pentatonic": steps(3, "b3", 2, "4", 2, "5", 3, "b7"),
	"Blues":            steps(3, "b3", 2, "4", 1, "b5", 1, "5", 3, "b7"),
	"Major Blues":      steps(2, "2", 1, "b3", 1, "3", 3, "5", 2, "6"),
	"Hirajoshi":        steps(2, "2", 1, "b3", 4, "5", 1, "b6"),

	// Symmetric
	"Whole Tone":            steps(2, "2", 2, "3", 2, "#4", 2, "#5", 2, "b7"),
	"Diminished":            steps(2, "2", 1, "b3", 2, "4", 1, "b5", 2, "b6", 1, "6", 2, "7"),
	"Half-Whole Diminished": steps(1, "b2", 2, "#2", 1, "3", 2, "#4", 1, "5", 2, "6", 1, "b7"),
}

// scaleAliases maps alternative names onto canonical table keys
var scaleAliases = map[string]string{
	"Ionian":        "Major",
	"Aeolian":       "Natural Minor",
	"Minor":         "Natural Minor",
	"Super Locrian": "Altered",
	"Whole-Half":    "Diminished",
	"Half-Whole":    "Half-Whole Diminished",
	"Minor Blues":   "Blues",
	"Spanish Gypsy": "Phrygian Dominant",
	"Byzantine":     "Double Harmonic",
	"Lydian Dom":    "Lydian Dominant",
	"Jazz Minor":    "Melodic Minor",
	"Gypsy Minor":   "Hungarian Minor",
	"Pentatonic":    "Major Pentatonic",
}

// GetFormula returns the formula for a canonical or alias scale name
func GetFormula(name string) (Formula, bool) {
	canonical, ok := lookupScaleName(name)
	if !ok {
		return nil, false
	}
	return scaleFormulas[canonical], true
}

// ScaleNames returns the canonical scale names in sorted order
func ScaleNames() []string {
	names := make([]string, 0, len(scaleFormulas))
	for name := range scaleFormulas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookupScaleName(name string) (string, bool) {
	trimmed := strings.TrimSpace(name)
	if _, ok := scaleFormulas[trimmed]; ok {
		return trimmed, true
	}
	if canonical, ok := scaleAliases[trimmed]; ok {
		return canonical, true
	}

	// Fall back to a case-insensitive match so "harmonic minor" resolves too
	for key := range scaleFormulas {
		if strings.EqualFold(key, trimmed) {
			return key, true
		}
	}
	for alias, canonical := range scaleAliases {
		if strings.EqualFold(alias, trimmed) {
			return canonical, true
		}
	}
	return "", false
}

package theory

import (
	"errors"
	"fmt"
)

// ErrFormulaNotFound is returned for scale names missing from the formula table.
// It is an input error: callers should surface it and not retry.
var ErrFormulaNotFound = errors.New("scale formula not found")

// RootDegree labels the first note of every scale
const RootDegree = "R"

// ScaleNote is a pitch class together with its role in the scale
type ScaleNote struct {
	Note   PitchClass `json:"noteName"`
	Degree string     `json:"degree"`
}

// CanonicalScaleName resolves aliases and casing to the name used by the formula table
func CanonicalScaleName(name string) (string, error) {
	canonical, ok := lookupScaleName(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrFormulaNotFound, name)
	}
	return canonical, nil
}

// ResolveScale walks the chromatic circle from root, applying each formula step in turn.
// The result starts with {root, "R"} and has len(formula)+1 notes.
func ResolveScale(root PitchClass, scaleName string) ([]ScaleNote, error) {
	formula, ok := GetFormula(scaleName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrFormulaNotFound, scaleName)
	}

	notes := make([]ScaleNote, 0, len(formula)+1)
	current := root.normalize()
	notes = append(notes, ScaleNote{Note: current, Degree: RootDegree})

	for _, step := range formula {
		current = current.Transpose(step.Semitones)
		notes = append(notes, ScaleNote{Note: current, Degree: step.Degree})
	}

	return notes, nil
}

// ScaleNoteNames returns the canonical note names of a resolved scale
func ScaleNoteNames(scale []ScaleNote) []string {
	names := make([]string, len(scale))
	for i, n := range scale {
		names[i] = n.Note.String()
	}
	return names
}

// ScaleDegrees returns the degree labels of a resolved scale
func ScaleDegrees(scale []ScaleNote) []string {
	degrees := make([]string, len(scale))
	for i, n := range scale {
		degrees[i] = n.Degree
	}
	return degrees
}

// degreeIndex maps each pitch class of the scale to its position in the sequence.
// The first occurrence wins if a formula ever revisits a pitch class.
func degreeIndex(scale []ScaleNote) map[PitchClass]int {
	index := make(map[PitchClass]int, len(scale))
	for i, n := range scale {
		if _, seen := index[n.Note]; !seen {
			index[n.Note] = i
		}
	}
	return index
}

package theory

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownNote is returned when a note name cannot be mapped onto the chromatic circle.
var ErrUnknownNote = errors.New("unknown note")

const semitonesPerOctave = 12

// PitchClass is an index on the chromatic circle, C = 0 through B = 11.
type PitchClass int

// noteNames is the canonical spelling table. Every name the engine emits comes from here.
var noteNames = [semitonesPerOctave]string{
	"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B",
}

// naturals maps note letters to their pitch class
var naturals = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

// String returns the canonical name of the pitch class
func (p PitchClass) String() string {
	return noteNames[p.normalize()]
}

// Transpose moves the pitch class by the given number of semitones, wrapping around the octave
func (p PitchClass) Transpose(semitones int) PitchClass {
	return PitchClass(int(p) + semitones).normalize()
}

// Interval returns the ascending distance in semitones from p to other (0-11)
func (p PitchClass) Interval(other PitchClass) int {
	return int(other.normalize()-p.normalize()+semitonesPerOctave) % semitonesPerOctave
}

func (p PitchClass) normalize() PitchClass {
	return PitchClass(((int(p) % semitonesPerOctave) + semitonesPerOctave) % semitonesPerOctave)
}

// MarshalText encodes the pitch class by its canonical name
func (p PitchClass) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText accepts any spelling ParseNote accepts
func (p *PitchClass) UnmarshalText(text []byte) error {
	pc, err := ParseNote(string(text))
	if err != nil {
		return err
	}
	*p = pc
	return nil
}

// ParseNote converts a note name like "C", "F#", "Bb", "E♭" or "Cb" to its pitch class.
// Any number of accidentals is accepted; the result is always canonical.
func ParseNote(name string) (PitchClass, error) {
	s := strings.TrimSpace(name)
	s = strings.ReplaceAll(s, "♯", "#")
	s = strings.ReplaceAll(s, "♭", "b")
	if s == "" {
		return 0, fmt.Errorf("%w: empty name", ErrUnknownNote)
	}

	letter := strings.ToUpper(s[:1])[0]
	base, ok := naturals[letter]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownNote, name)
	}

	offset := 0
	for _, r := range s[1:] {
		switch r {
		case '#':
			offset++
		case 'b':
			offset--
		default:
			return 0, fmt.Errorf("%w: %q", ErrUnknownNote, name)
		}
	}

	return PitchClass(base).Transpose(offset), nil
}

// MustParseNote is ParseNote for fixed tables; it panics on invalid input.
func MustParseNote(name string) PitchClass {
	pc, err := ParseNote(name)
	if err != nil {
		panic(err)
	}
	return pc
}

// NoteNames returns the canonical 12-name table in circle order
func NoteNames() []string {
	names := make([]string, semitonesPerOctave)
	copy(names, noteNames[:])
	return names
}

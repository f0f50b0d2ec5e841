package theory

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/Conceptual-Machines/fretboard-api/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// ErrUnknownInstrument is returned when an instrument preset name is not defined
var ErrUnknownInstrument = errors.New("unknown instrument")

// Tuning lists open-string pitch classes, index 0 being the highest-pitched string
type Tuning []PitchClass

// Instrument is a named tuning with its fret count
type Instrument struct {
	Name        string   `json:"name"`
	Label       string   `json:"label"`
	Frets       int      `json:"frets"`
	Tuning      Tuning   `json:"tuning"`
	StringNames []string `json:"stringNames"`
}

// StringCount returns the number of strings of the instrument
func (i Instrument) StringCount() int {
	return len(i.Tuning)
}

type instrumentFile struct {
	Default     string `yaml:"default"`
	Instruments []struct {
		Name    string   `yaml:"name"`
		Label   string   `yaml:"label"`
		Frets   int      `yaml:"frets"`
		Strings []string `yaml:"strings"`
	} `yaml:"instruments"`
}

// ParseInstruments decodes instrument presets from YAML and returns them along with
// the name of the default preset
func ParseInstruments(data []byte) ([]Instrument, string, error) {
	var file instrumentFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, "", fmt.Errorf("failed to decode instruments: %w", err)
	}

	instruments := make([]Instrument, 0, len(file.Instruments))
	for _, raw := range file.Instruments {
		if raw.Name == "" {
			return nil, "", fmt.Errorf("instrument without name")
		}
		if len(raw.Strings) == 0 {
			return nil, "", fmt.Errorf("instrument %s: no strings", raw.Name)
		}
		if raw.Frets <= 0 {
			return nil, "", fmt.Errorf("instrument %s: invalid fret count %d", raw.Name, raw.Frets)
		}

		tuning := make(Tuning, len(raw.Strings))
		names := make([]string, len(raw.Strings))
		for i, s := range raw.Strings {
			pc, err := ParseNote(s)
			if err != nil {
				return nil, "", fmt.Errorf("instrument %s string %d: %w", raw.Name, i, err)
			}
			tuning[i] = pc
			names[i] = pc.String()
		}

		instruments = append(instruments, Instrument{
			Name:        raw.Name,
			Label:       raw.Label,
			Frets:       raw.Frets,
			Tuning:      tuning,
			StringNames: names,
		})
	}

	return instruments, file.Default, nil
}

var (
	presetsOnce   sync.Once
	presets       map[string]Instrument
	defaultPreset string
	presetsErr    error
)

func loadPresets() {
	presetsOnce.Do(func() {
		instruments, def, err := ParseInstruments(embedded.InstrumentsYAML)
		if err != nil {
			presetsErr = err
			return
		}
		presets = make(map[string]Instrument, len(instruments))
		for _, inst := range instruments {
			presets[inst.Name] = inst
		}
		defaultPreset = def
	})
}

// LookupInstrument returns a preset by name. An empty name selects the default preset.
func LookupInstrument(name string) (Instrument, error) {
	loadPresets()
	if presetsErr != nil {
		return Instrument{}, presetsErr
	}
	if name == "" {
		name = defaultPreset
	}
	inst, ok := presets[name]
	if !ok {
		return Instrument{}, fmt.Errorf("%w: %q", ErrUnknownInstrument, name)
	}
	return inst, nil
}

// Instruments returns all presets sorted by name
func Instruments() []Instrument {
	loadPresets()
	list := make([]Instrument, 0, len(presets))
	for _, inst := range presets {
		list = append(list, inst)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

// DefaultInstrument returns the default preset (7-string guitar, 24 frets)
func DefaultInstrument() Instrument {
	inst, err := LookupInstrument("")
	if err != nil {
		panic(err)
	}
	return inst
}

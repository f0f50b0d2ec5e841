package embedded

import (
	_ "embed"
)

// Instrument presets (tunings, fret counts)
//
//go:embed data/instruments.yaml
var InstrumentsYAML []byte

// Degree descriptions used by the degree explanation table
//
//go:embed data/degrees.yaml
var DegreesYAML []byte

// Short descriptions of every scale, served as offline guide enrichment
//
//go:embed data/scales.yaml
var ScalesYAML []byte

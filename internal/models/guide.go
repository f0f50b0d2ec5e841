package models

import (
	"encoding/json"
	"time"

	"github.com/Conceptual-Machines/fretboard-api/internal/theory"
)

// FretWindow is an inclusive fret range
type FretWindow struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// DiagramData holds everything the rendering layer needs to draw a scale
type DiagramData struct {
	ScaleNotes      []theory.ScaleNote         `json:"scaleNotes"`
	StringNames     []string                   `json:"stringNames"`
	FretCount       int                        `json:"fretCount"`
	Notes           []theory.FretboardNote     `json:"notes"`
	Positions       []theory.FingeringPosition `json:"positions"`
	PositionWindows []FretWindow               `json:"positionWindows"`
	DiagonalRun     []theory.DiagonalRunNote   `json:"diagonalRun"`
	RunTab          *theory.Tab                `json:"runTab"`
	HarmonyInterval int                        `json:"harmonyInterval"`
	HarmonyTab      *theory.Tab                `json:"harmonyTab"`
}

// Enrichment carries content fetched from outside the engine. Every field is optional
// and may be missing when the content source fails.
type Enrichment struct {
	Overview               json.RawMessage `json:"overview,omitempty"`
	ListeningGuide         json.RawMessage `json:"listeningGuide,omitempty"`
	ToneAndGear            json.RawMessage `json:"toneAndGear,omitempty"`
	KeyChords              json.RawMessage `json:"keyChords,omitempty"`
	Licks                  json.RawMessage `json:"licks,omitempty"`
	HarmonizationExercises json.RawMessage `json:"harmonizationExercises,omitempty"`
	Etudes                 json.RawMessage `json:"etudes,omitempty"`
	ModeSpotlight          json.RawMessage `json:"modeSpotlight,omitempty"`
}

// ScaleGuide is the merged result for one (root, scale) request
type ScaleGuide struct {
	Key         string    `json:"key"`
	RootNote    string    `json:"rootNote"`
	ScaleName   string    `json:"scaleName"`
	Instrument  string    `json:"instrument"`
	GeneratedAt time.Time `json:"generatedAt"`
	CacheHit    bool      `json:"cacheHit"`

	DiagramData        DiagramData            `json:"diagramData"`
	DegreeExplanations []theory.DegreeInfo    `json:"degreeExplanations"`
	DiatonicChords     []theory.DiatonicChord `json:"diatonicChords"`

	Enrichment
}

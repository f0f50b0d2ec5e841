package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/Conceptual-Machines/fretboard-api/internal/models"
	"github.com/Conceptual-Machines/fretboard-api/pkg/embedded"
)

// EnrichmentRequest describes the guide being enriched
type EnrichmentRequest struct {
	Key        string
	Root       string
	Scale      string
	ScaleNotes []string
	Degrees    []string
}

// Enricher supplies optional guide content that the engine does not compute.
// A failing Enricher never invalidates the engine fields of a guide.
type Enricher interface {
	Enrich(ctx context.Context, req EnrichmentRequest) (models.Enrichment, error)
}

// NoopEnricher adds nothing
type NoopEnricher struct{}

func (NoopEnricher) Enrich(context.Context, EnrichmentRequest) (models.Enrichment, error) {
	return models.Enrichment{}, nil
}

type catalogEntry struct {
	Overview  string   `yaml:"overview" json:"summary"`
	Family    string   `yaml:"family" json:"family"`
	Parent    string   `yaml:"parent" json:"parentScale"`
	Character string   `yaml:"character" json:"characterDegree"`
	Styles    []string `yaml:"styles" json:"styles"`
}

// CatalogEnricher fills the overview and mode spotlight from the embedded scale catalog
type CatalogEnricher struct {
	once    sync.Once
	entries map[string]catalogEntry
	err     error
}

// NewCatalogEnricher creates an enricher backed by the embedded catalog
func NewCatalogEnricher() *CatalogEnricher {
	return &CatalogEnricher{}
}

func (e *CatalogEnricher) load() (map[string]catalogEntry, error) {
	e.once.Do(func() {
		entries := make(map[string]catalogEntry)
		if err := yaml.Unmarshal(embedded.ScalesYAML, &entries); err != nil {
			e.err = fmt.Errorf("failed to decode scale catalog: %w", err)
			return
		}
		e.entries = entries
	})
	return e.entries, e.err
}

func (e *CatalogEnricher) Enrich(_ context.Context, req EnrichmentRequest) (models.Enrichment, error) {
	entries, err := e.load()
	if err != nil {
		return models.Enrichment{}, err
	}

	entry, ok := entries[req.Scale]
	if !ok {
		return models.Enrichment{}, nil
	}

	overview, err := json.Marshal(map[string]any{
		"title":   req.Root + " " + req.Scale,
		"summary": entry.Overview,
		"notes":   req.ScaleNotes,
		"styles":  entry.Styles,
	})
	if err != nil {
		return models.Enrichment{}, err
	}

	spotlight, err := json.Marshal(struct {
		Scale string `json:"scale"`
		catalogEntry
		Degrees []string `json:"degrees"`
	}{Scale: req.Scale, catalogEntry: entry, Degrees: req.Degrees})
	if err != nil {
		return models.Enrichment{}, err
	}

	return models.Enrichment{
		Overview:      overview,
		ModeSpotlight: spotlight,
	}, nil
}

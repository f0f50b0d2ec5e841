package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Conceptual-Machines/fretboard-api/internal/cache"
	"github.com/Conceptual-Machines/fretboard-api/internal/logger"
	"github.com/Conceptual-Machines/fretboard-api/internal/metrics"
	"github.com/Conceptual-Machines/fretboard-api/internal/models"
	"github.com/Conceptual-Machines/fretboard-api/internal/theory"
)

// ErrInvalidInput wraps every error caused by the caller's request
var ErrInvalidInput = errors.New("invalid input")

const defaultCacheCapacity = 256

// GuideService builds scale guides and memoizes them in a Store
type GuideService struct {
	instrument theory.Instrument
	store      cache.Store
	enricher   Enricher
	recorder   metrics.Recorder
	group      singleflight.Group
	now        func() time.Time
}

// NewGuideService wires the engine to a cache, an enricher and a metrics recorder.
// Nil collaborators fall back to an unbounded-TTL memory store, NoopEnricher and metrics.Nop.
func NewGuideService(instrument theory.Instrument, store cache.Store, enricher Enricher, recorder metrics.Recorder) *GuideService {
	if store == nil {
		store = cache.NewMemoryStore(defaultCacheCapacity, 0)
	}
	if enricher == nil {
		enricher = NoopEnricher{}
	}
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &GuideService{
		instrument: instrument,
		store:      store,
		enricher:   enricher,
		recorder:   recorder,
		now:        time.Now,
	}
}

// Instrument returns the instrument guides are built for
func (s *GuideService) Instrument() theory.Instrument {
	return s.instrument
}

// Store returns the cache the service writes to
func (s *GuideService) Store() cache.Store {
	return s.store
}

// ListScales returns the canonical scale names
func (s *GuideService) ListScales() []string {
	return theory.ScaleNames()
}

// Generate returns the guide for root and scale, building it on a cache miss
func (s *GuideService) Generate(ctx context.Context, root, scale string) (*models.ScaleGuide, error) {
	rootNote, scaleName, err := canonicalize(root, scale)
	if err != nil {
		return nil, err
	}
	key := cache.Key(rootNote.String(), scaleName)

	if guide, ok := s.lookup(ctx, key); ok {
		hit := *guide
		hit.CacheHit = true
		logger.LogGeneration(key, 0, true, nil)
		return &hit, nil
	}

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		return s.generate(ctx, key, rootNote, scaleName)
	})
	if err != nil {
		return nil, err
	}

	guide := *v.(*models.ScaleGuide)
	return &guide, nil
}

func (s *GuideService) lookup(ctx context.Context, key string) (*models.ScaleGuide, bool) {
	guide, ok, err := s.store.Get(ctx, key)
	if err != nil {
		logger.Warn("Cache read failed, rebuilding guide", logger.Fields{
			"guide_key":     key,
			"cache_backend": s.store.Name(),
			"error":         err.Error(),
		})
		ok = false
	}
	s.recorder.RecordCacheLookup(ctx, s.store.Name(), ok)
	return guide, ok
}

func (s *GuideService) generate(ctx context.Context, key string, root theory.PitchClass, scaleName string) (*models.ScaleGuide, error) {
	start := s.now()

	scaleNotes, err := theory.ResolveScale(root, scaleName)
	if err != nil {
		s.recorder.RecordGenerationDuration(ctx, time.Since(start), false)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	guide, err := s.build(key, root, scaleName, scaleNotes)
	if err != nil {
		s.recorder.RecordGenerationDuration(ctx, time.Since(start), false)
		logger.Error("Failed to build guide", err, logger.Fields{"guide_key": key})
		return nil, err
	}
	s.enrich(ctx, guide, scaleNotes)

	if err := s.store.Set(ctx, key, guide); err != nil {
		logger.Error("Failed to cache guide", err, logger.Fields{
			"guide_key":     key,
			"cache_backend": s.store.Name(),
		})
	}

	duration := time.Since(start)
	s.recorder.RecordGenerationDuration(ctx, duration, true)
	logger.LogGeneration(key, duration, false, logger.Fields{"instrument": s.instrument.Name})

	return guide, nil
}

// build runs the engine pipeline for one resolved scale
func (s *GuideService) build(key string, root theory.PitchClass, scaleName string, scaleNotes []theory.ScaleNote) (*models.ScaleGuide, error) {
	inst := s.instrument
	stringCount := inst.StringCount()

	notes := theory.MapFretboard(scaleNotes, inst.Tuning, inst.Frets)
	positions := theory.FindPositions(notes, stringCount)
	run := theory.PlanDiagonalRun(notes, stringCount)

	windows := make([]models.FretWindow, len(positions))
	for i, p := range positions {
		start, end := theory.PositionRange(p)
		windows[i] = models.FretWindow{Start: start, End: end}
	}

	degrees, err := theory.DegreeExplanations(scaleNotes)
	if err != nil {
		return nil, fmt.Errorf("failed to explain degrees of %s %s: %w", root, scaleName, err)
	}

	return &models.ScaleGuide{
		Key:         key,
		RootNote:    root.String(),
		ScaleName:   scaleName,
		Instrument:  inst.Name,
		GeneratedAt: s.now().UTC(),
		DiagramData: models.DiagramData{
			ScaleNotes:      scaleNotes,
			StringNames:     inst.StringNames,
			FretCount:       inst.Frets,
			Notes:           notes,
			Positions:       positions[:],
			PositionWindows: windows,
			DiagonalRun:     run,
			RunTab:          theory.RunTab(run, stringCount),
			HarmonyInterval: theory.DefaultHarmonyInterval,
			HarmonyTab:      theory.Harmonize(positions[:], scaleNotes, inst.Tuning, theory.DefaultHarmonyInterval),
		},
		DegreeExplanations: degrees,
		DiatonicChords:     theory.DiatonicChords(scaleNotes),
	}, nil
}

func (s *GuideService) enrich(ctx context.Context, guide *models.ScaleGuide, scaleNotes []theory.ScaleNote) {
	enrichment, err := s.enricher.Enrich(ctx, EnrichmentRequest{
		Key:        guide.Key,
		Root:       guide.RootNote,
		Scale:      guide.ScaleName,
		ScaleNotes: theory.ScaleNoteNames(scaleNotes),
		Degrees:    theory.ScaleDegrees(scaleNotes),
	})
	if err != nil {
		logger.Error("Guide enrichment failed", err, logger.Fields{"guide_key": guide.Key})
		return
	}
	guide.Enrichment = enrichment
}

// Harmonize returns a tab pairing each position note with the scale tone interval
// degrees above it
func (s *GuideService) Harmonize(ctx context.Context, root, scale string, interval int) (*theory.Tab, error) {
	guide, err := s.Generate(ctx, root, scale)
	if err != nil {
		return nil, err
	}

	size := len(guide.DiagramData.ScaleNotes)
	if interval < 1 || interval >= size {
		return nil, fmt.Errorf("%w: interval must be between 1 and %d", ErrInvalidInput, size-1)
	}
	if interval == guide.DiagramData.HarmonyInterval && guide.DiagramData.HarmonyTab != nil {
		return guide.DiagramData.HarmonyTab.Clone(), nil
	}

	return theory.Harmonize(guide.DiagramData.Positions, guide.DiagramData.ScaleNotes, s.instrument.Tuning, interval), nil
}

// Diagram lays out the guide's notes for a fret window. A zero window means the full neck.
func (s *GuideService) Diagram(ctx context.Context, root, scale string, startFret, endFret int) (theory.Geometry, error) {
	guide, err := s.Generate(ctx, root, scale)
	if err != nil {
		return theory.Geometry{}, err
	}

	fretCount := guide.DiagramData.FretCount
	if startFret == 0 && endFret == 0 {
		endFret = fretCount
	}
	if startFret < 0 || endFret < startFret {
		return theory.Geometry{}, fmt.Errorf("%w: invalid fret window %d-%d", ErrInvalidInput, startFret, endFret)
	}
	if startFret > fretCount {
		return theory.Geometry{}, fmt.Errorf("%w: start fret %d beyond fret %d", ErrInvalidInput, startFret, fretCount)
	}
	if endFret > fretCount {
		endFret = fretCount
	}

	return s.instrument.Layout(startFret, endFret, guide.DiagramData.Notes), nil
}

func canonicalize(root, scale string) (theory.PitchClass, string, error) {
	rootNote, err := theory.ParseNote(root)
	if err != nil {
		return 0, "", fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	scaleName, err := theory.CanonicalScaleName(scale)
	if err != nil {
		return 0, "", fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return rootNote, scaleName, nil
}

package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conceptual-Machines/fretboard-api/internal/cache"
	"github.com/Conceptual-Machines/fretboard-api/internal/models"
	"github.com/Conceptual-Machines/fretboard-api/internal/theory"
)

type countingEnricher struct {
	calls   atomic.Int32
	release chan struct{}
	err     error
}

func (e *countingEnricher) Enrich(context.Context, EnrichmentRequest) (models.Enrichment, error) {
	e.calls.Add(1)
	if e.release != nil {
		<-e.release
	}
	if e.err != nil {
		return models.Enrichment{}, e.err
	}
	return models.Enrichment{Overview: json.RawMessage(`{"summary":"ok"}`)}, nil
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) (*models.ScaleGuide, bool, error) {
	return nil, false, errors.New("down")
}

func (failingStore) Set(context.Context, string, *models.ScaleGuide) error {
	return errors.New("down")
}

func (failingStore) Name() string { return "failing" }

func newService(t *testing.T, enricher Enricher) *GuideService {
	t.Helper()
	inst, err := theory.LookupInstrument("guitar-7")
	require.NoError(t, err)
	return NewGuideService(inst, cache.NewMemoryStore(16, time.Hour), enricher, nil)
}

func TestGenerate_BuildsGuide(t *testing.T) {
	svc := newService(t, nil)

	guide, err := svc.Generate(context.Background(), "C", "Major")
	require.NoError(t, err)

	assert.Equal(t, "C|Major", guide.Key)
	assert.Equal(t, "C", guide.RootNote)
	assert.Equal(t, "Major", guide.ScaleName)
	assert.Equal(t, "guitar-7", guide.Instrument)
	assert.False(t, guide.CacheHit)

	data := guide.DiagramData
	assert.Len(t, data.ScaleNotes, 7)
	assert.Len(t, data.Notes, 105)
	assert.Len(t, data.Positions, theory.PositionCount)
	assert.Len(t, data.PositionWindows, theory.PositionCount)
	assert.Equal(t, models.FretWindow{Start: 1, End: 5}, data.PositionWindows[0])
	assert.Len(t, data.DiagonalRun, 15)
	assert.Equal(t, 24, data.FretCount)
	assert.Equal(t, theory.DefaultHarmonyInterval, data.HarmonyInterval)

	last, ok := data.HarmonyTab.Last()
	require.True(t, ok)
	assert.True(t, last.IsBar())
	assert.Equal(t, len(data.DiagonalRun)+1, data.RunTab.Len())

	assert.Len(t, guide.DegreeExplanations, 7)
	assert.Len(t, guide.DiatonicChords, 7)
}

func TestGenerate_CanonicalizesInput(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()

	first, err := svc.Generate(ctx, "Db", "ionian")
	require.NoError(t, err)
	assert.Equal(t, "C#|Major", first.Key)

	second, err := svc.Generate(ctx, "c#", "Major")
	require.NoError(t, err)
	assert.True(t, second.CacheHit)
	assert.Equal(t, first.GeneratedAt, second.GeneratedAt)
}

func TestGenerate_CacheHitDoesNotRebuild(t *testing.T) {
	enricher := &countingEnricher{}
	svc := newService(t, enricher)
	ctx := context.Background()

	_, err := svc.Generate(ctx, "A", "Minor Pentatonic")
	require.NoError(t, err)
	hit, err := svc.Generate(ctx, "A", "Minor Pentatonic")
	require.NoError(t, err)

	assert.True(t, hit.CacheHit)
	assert.Equal(t, int32(1), enricher.calls.Load())
	assert.Empty(t, hit.DiatonicChords)
	assert.JSONEq(t, `{"summary":"ok"}`, string(hit.Overview))
}

func TestGenerate_CollapsesConcurrentMisses(t *testing.T) {
	enricher := &countingEnricher{release: make(chan struct{})}
	svc := newService(t, enricher)
	ctx := context.Background()

	const callers = 8
	var wg sync.WaitGroup
	guides := make([]*models.ScaleGuide, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			g, err := svc.Generate(ctx, "E", "Harmonic Minor")
			assert.NoError(t, err)
			guides[i] = g
		}(i)
	}

	time.Sleep(50 * time.Millisecond)
	close(enricher.release)
	wg.Wait()

	assert.Equal(t, int32(1), enricher.calls.Load())
	for _, g := range guides {
		require.NotNil(t, g)
		assert.Equal(t, "E|Harmonic Minor", g.Key)
	}
}

func TestGenerate_EnrichmentFailureKeepsEngineFields(t *testing.T) {
	svc := newService(t, &countingEnricher{err: errors.New("upstream timeout")})

	guide, err := svc.Generate(context.Background(), "G", "Mixolydian")
	require.NoError(t, err)

	assert.Nil(t, guide.Overview)
	assert.NotEmpty(t, guide.DiagramData.Notes)
	assert.Len(t, guide.DiatonicChords, 7)
}

func TestGenerate_StoreFailureStillServes(t *testing.T) {
	inst, err := theory.LookupInstrument("guitar-6")
	require.NoError(t, err)
	svc := NewGuideService(inst, failingStore{}, nil, nil)

	guide, err := svc.Generate(context.Background(), "E", "Minor Pentatonic")
	require.NoError(t, err)
	assert.False(t, guide.CacheHit)
	assert.Equal(t, 6, len(guide.DiagramData.StringNames))
}

func TestGenerate_InvalidInput(t *testing.T) {
	svc := newService(t, nil)

	tests := []struct {
		name   string
		root   string
		scale  string
		target error
	}{
		{"unknown scale", "C", "Nonexistent", theory.ErrFormulaNotFound},
		{"unknown note", "H", "Major", theory.ErrUnknownNote},
		{"empty root", "", "Major", theory.ErrUnknownNote},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Generate(context.Background(), tt.root, tt.scale)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestHarmonize(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()

	thirds, err := svc.Harmonize(ctx, "C", "Major", 2)
	require.NoError(t, err)
	guide, err := svc.Generate(ctx, "C", "Major")
	require.NoError(t, err)
	assert.Equal(t, guide.DiagramData.HarmonyTab.Len(), thirds.Len())

	sixths, err := svc.Harmonize(ctx, "C", "Major", 5)
	require.NoError(t, err)
	last, ok := sixths.Last()
	require.True(t, ok)
	assert.True(t, last.IsBar())

	for _, interval := range []int{0, 7, -1} {
		_, err := svc.Harmonize(ctx, "C", "Major", interval)
		assert.ErrorIs(t, err, ErrInvalidInput, "interval %d", interval)
	}

	// Pentatonic scales have five notes, so a fifth-degree interval is out of range
	_, err = svc.Harmonize(ctx, "A", "Minor Pentatonic", 5)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestHarmonize_ReturnsIndependentTab(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()

	first, err := svc.Harmonize(ctx, "G", "Major", theory.DefaultHarmonyInterval)
	require.NoError(t, err)
	columns := first.Len()

	first.AddNote(0, 3)
	first.AddRest()

	second, err := svc.Harmonize(ctx, "G", "Major", theory.DefaultHarmonyInterval)
	require.NoError(t, err)
	assert.Equal(t, columns, second.Len())

	guide, err := svc.Generate(ctx, "G", "Major")
	require.NoError(t, err)
	assert.Equal(t, columns, guide.DiagramData.HarmonyTab.Len())
	last, ok := guide.DiagramData.HarmonyTab.Last()
	require.True(t, ok)
	assert.True(t, last.IsBar())
}

func TestDiagram(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()

	full, err := svc.Diagram(ctx, "C", "Major", 0, 0)
	require.NoError(t, err)
	assert.True(t, full.FullNeck)
	assert.Equal(t, 24, full.EndFret)
	assert.Len(t, full.Points, 105)

	window, err := svc.Diagram(ctx, "C", "Major", 5, 8)
	require.NoError(t, err)
	assert.False(t, window.FullNeck)
	for _, p := range window.Points {
		assert.GreaterOrEqual(t, p.Fret, 5)
		assert.LessOrEqual(t, p.Fret, 8)
	}

	clamped, err := svc.Diagram(ctx, "C", "Major", 20, 40)
	require.NoError(t, err)
	assert.Equal(t, 24, clamped.EndFret)

	_, err = svc.Diagram(ctx, "C", "Major", 9, 3)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.Diagram(ctx, "C", "Major", 30, 32)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDiagram_FullNeckOnTwentyFretBass(t *testing.T) {
	inst, err := theory.LookupInstrument("bass-4")
	require.NoError(t, err)
	require.Equal(t, 20, inst.Frets)
	svc := NewGuideService(inst, cache.NewMemoryStore(16, time.Hour), nil, nil)

	full, err := svc.Diagram(context.Background(), "E", "Minor Pentatonic", 0, 0)
	require.NoError(t, err)
	assert.True(t, full.FullNeck)
	assert.Equal(t, 0, full.StartFret)
	assert.Equal(t, 20, full.EndFret)
	assert.Equal(t, theory.FullNeckFretWidth, full.FretWidth)
	assert.Equal(t, 21, full.Columns)
	assert.Equal(t, 5.5*full.FretWidth, full.X(5))
}

func TestCatalogEnricher(t *testing.T) {
	e := NewCatalogEnricher()

	enrichment, err := e.Enrich(context.Background(), EnrichmentRequest{
		Root:       "D",
		Scale:      "Dorian",
		ScaleNotes: []string{"D", "E", "F", "G", "A", "B", "C"},
		Degrees:    []string{"R", "2", "b3", "4", "5", "6", "b7"},
	})
	require.NoError(t, err)

	var overview map[string]any
	require.NoError(t, json.Unmarshal(enrichment.Overview, &overview))
	assert.Equal(t, "D Dorian", overview["title"])
	assert.NotEmpty(t, overview["summary"])

	var spotlight map[string]any
	require.NoError(t, json.Unmarshal(enrichment.ModeSpotlight, &spotlight))
	assert.Equal(t, "Major", spotlight["parentScale"])
	assert.Equal(t, "6", spotlight["characterDegree"])

	unknown, err := e.Enrich(context.Background(), EnrichmentRequest{Scale: "Nope"})
	require.NoError(t, err)
	assert.Nil(t, unknown.Overview)
}

func TestCatalogEnricher_CoversEveryScale(t *testing.T) {
	entries, err := NewCatalogEnricher().load()
	require.NoError(t, err)
	for _, name := range theory.ScaleNames() {
		assert.Contains(t, entries, name)
	}
}

package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conceptual-Machines/fretboard-api/internal/cache"
	"github.com/Conceptual-Machines/fretboard-api/internal/config"
	"github.com/Conceptual-Machines/fretboard-api/internal/services"
	"github.com/Conceptual-Machines/fretboard-api/internal/theory"
)

func newRouter(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := services.NewGuideService(theory.DefaultInstrument(), cache.NewMemoryStore(32, time.Hour), services.NewCatalogEnricher(), nil)
	router, err := SetupRouter(cfg, svc, nil, "test")
	require.NoError(t, err)
	return router
}

func do(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthAndMetrics(t *testing.T) {
	r := newRouter(t, &config.Config{AuthMode: config.AuthModeNone})

	w := do(t, r, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy","cache":{"backend":"memory"}}`, w.Body.String())

	do(t, r, http.MethodPost, "/api/v1/guides", gin.H{"root": "C", "scale": "Major"})

	w = do(t, r, http.MethodGet, "/api/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Version string `json:"version"`
		Cache   struct {
			Backend string `json:"backend"`
			Size    int    `json:"size"`
		} `json:"cache"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "test", body.Version)
	assert.Equal(t, "memory", body.Cache.Backend)
	assert.Equal(t, 1, body.Cache.Size)
}

func TestGuides(t *testing.T) {
	r := newRouter(t, &config.Config{AuthMode: config.AuthModeNone})

	w := do(t, r, http.MethodPost, "/api/v1/guides", gin.H{"root": "E", "scale": "Harmonic Minor"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))

	var guide map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &guide))
	assert.Equal(t, "E", guide["rootNote"])
	assert.Equal(t, "Harmonic Minor", guide["scaleName"])
	assert.Contains(t, guide, "diagramData")
	assert.Contains(t, guide, "overview")
	assert.Contains(t, guide, "modeSpotlight")
	assert.NotContains(t, guide, "licks")

	data := guide["diagramData"].(map[string]any)
	notes := data["scaleNotes"].([]any)
	first := notes[0].(map[string]any)
	assert.Equal(t, "E", first["noteName"])
	assert.Equal(t, "R", first["degree"])

	w = do(t, r, http.MethodPost, "/api/v1/guides", gin.H{"root": "E", "scale": "harmonic minor"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "HIT", w.Header().Get("X-Cache"))
}

func TestGuides_BadRequests(t *testing.T) {
	r := newRouter(t, &config.Config{AuthMode: config.AuthModeNone})

	tests := []struct {
		name string
		path string
		body any
	}{
		{"missing scale", "/api/v1/guides", gin.H{"root": "C"}},
		{"unknown scale", "/api/v1/guides", gin.H{"root": "C", "scale": "Nonexistent"}},
		{"unknown note", "/api/v1/guides", gin.H{"root": "X", "scale": "Major"}},
		{"interval out of range", "/api/v1/harmonize", gin.H{"root": "C", "scale": "Major", "interval": 9}},
		{"reversed window", "/api/v1/diagram", gin.H{"root": "C", "scale": "Major", "start_fret": 9, "end_fret": 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "Invalid request")
		})
	}
}

func TestHarmonize(t *testing.T) {
	r := newRouter(t, &config.Config{AuthMode: config.AuthModeNone})

	w := do(t, r, http.MethodPost, "/api/v1/harmonize", gin.H{"root": "C", "scale": "Major"})
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Interval int `json:"interval"`
		Tab      struct {
			StringCount int `json:"stringCount"`
			Columns     []struct {
				Kind    string `json:"kind"`
				Entries []struct {
					String int `json:"string"`
					Value  any `json:"value"`
				} `json:"entries"`
			} `json:"columns"`
		} `json:"tab"`
		Text string `json:"text"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Interval)
	assert.Equal(t, 7, body.Tab.StringCount)
	require.NotEmpty(t, body.Tab.Columns)

	first := body.Tab.Columns[0]
	assert.Equal(t, "notes", first.Kind)
	require.Len(t, first.Entries, 1)
	assert.Equal(t, 6, first.Entries[0].String)
	assert.Equal(t, float64(1), first.Entries[0].Value)

	last := body.Tab.Columns[len(body.Tab.Columns)-1]
	assert.Equal(t, "bar", last.Kind)
	assert.Len(t, last.Entries, 7)
	assert.Equal(t, "|", last.Entries[0].Value)
	assert.NotEmpty(t, body.Text)
}

func TestDiagram(t *testing.T) {
	r := newRouter(t, &config.Config{AuthMode: config.AuthModeNone})

	w := do(t, r, http.MethodPost, "/api/v1/diagram", gin.H{"root": "A", "scale": "Minor Pentatonic", "start_fret": 5, "end_fret": 8})
	require.Equal(t, http.StatusOK, w.Code)

	var geometry theory.Geometry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &geometry))
	assert.Equal(t, 5, geometry.StartFret)
	assert.Equal(t, 8, geometry.EndFret)
	assert.False(t, geometry.FullNeck)
	assert.Equal(t, theory.PositionFretWidth, geometry.FretWidth)
	assert.NotEmpty(t, geometry.Points)

	w = do(t, r, http.MethodPost, "/api/v1/diagram", gin.H{"root": "A", "scale": "Minor Pentatonic"})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &geometry))
	assert.True(t, geometry.FullNeck)
}

func TestListings(t *testing.T) {
	r := newRouter(t, &config.Config{AuthMode: config.AuthModeNone})

	w := do(t, r, http.MethodGet, "/api/v1/scales", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var scales struct {
		Scales []string `json:"scales"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &scales))
	assert.Contains(t, scales.Scales, "Major")
	assert.Contains(t, scales.Scales, "Phrygian Dominant")

	w = do(t, r, http.MethodGet, "/api/v1/instruments", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var instruments struct {
		Active      string `json:"active"`
		Instruments []struct {
			Name   string   `json:"name"`
			Frets  int      `json:"frets"`
			Tuning []string `json:"tuning"`
		} `json:"instruments"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &instruments))
	assert.Equal(t, "guitar-7", instruments.Active)
	assert.NotEmpty(t, instruments.Instruments)
}

func TestGatewayModeRequiresHeaders(t *testing.T) {
	r := newRouter(t, &config.Config{AuthMode: config.AuthModeGateway})

	w := do(t, r, http.MethodGet, "/api/v1/scales", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSetupRouter_RejectsBadAuthConfig(t *testing.T) {
	svc := services.NewGuideService(theory.DefaultInstrument(), nil, nil, nil)
	_, err := SetupRouter(&config.Config{AuthMode: config.AuthModeJWT}, svc, nil, "test")
	assert.Error(t, err)
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Conceptual-Machines/fretboard-api/internal/logger"
	"github.com/Conceptual-Machines/fretboard-api/internal/services"
	"github.com/Conceptual-Machines/fretboard-api/internal/theory"
)

type GuideHandler struct {
	service *services.GuideService
}

func NewGuideHandler(service *services.GuideService) *GuideHandler {
	return &GuideHandler{service: service}
}

type GuideRequest struct {
	Root  string `json:"root" binding:"required"`
	Scale string `json:"scale" binding:"required"`
}

type HarmonizeRequest struct {
	Root     string `json:"root" binding:"required"`
	Scale    string `json:"scale" binding:"required"`
	Interval *int   `json:"interval"` // defaults to diatonic thirds
}

type DiagramRequest struct {
	Root      string `json:"root" binding:"required"`
	Scale     string `json:"scale" binding:"required"`
	StartFret int    `json:"start_fret"`
	EndFret   int    `json:"end_fret"`
}

type HarmonizeResponse struct {
	Root     string      `json:"root"`
	Scale    string      `json:"scale"`
	Interval int         `json:"interval"`
	Tab      *theory.Tab `json:"tab"`
	Text     string      `json:"text"`
}

// Generate returns the full scale guide
func (h *GuideHandler) Generate(c *gin.Context) {
	var req GuideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidRequest, "message": err.Error()})
		return
	}

	guide, err := h.service.Generate(c.Request.Context(), req.Root, req.Scale)
	if err != nil {
		h.fail(c, "Guide generation failed", err)
		return
	}

	if guide.CacheHit {
		c.Header("X-Cache", "HIT")
	} else {
		c.Header("X-Cache", "MISS")
	}
	c.JSON(http.StatusOK, guide)
}

// Harmonize returns the interval-harmonized tab for a scale
func (h *GuideHandler) Harmonize(c *gin.Context) {
	var req HarmonizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidRequest, "message": err.Error()})
		return
	}

	interval := theory.DefaultHarmonyInterval
	if req.Interval != nil {
		interval = *req.Interval
	}

	tab, err := h.service.Harmonize(c.Request.Context(), req.Root, req.Scale, interval)
	if err != nil {
		h.fail(c, "Harmonization failed", err)
		return
	}

	c.JSON(http.StatusOK, HarmonizeResponse{
		Root:     req.Root,
		Scale:    req.Scale,
		Interval: interval,
		Tab:      tab,
		Text:     tab.Render(h.service.Instrument().StringNames),
	})
}

// Diagram returns the pixel layout for a fret window
func (h *GuideHandler) Diagram(c *gin.Context) {
	req := DiagramRequest{StartFret: fullNeckStartFret, EndFret: fullNeckEndFret}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidRequest, "message": err.Error()})
		return
	}

	geometry, err := h.service.Diagram(c.Request.Context(), req.Root, req.Scale, req.StartFret, req.EndFret)
	if err != nil {
		h.fail(c, "Diagram layout failed", err)
		return
	}

	c.JSON(http.StatusOK, geometry)
}

// ListScales returns the supported scale names
func (h *GuideHandler) ListScales(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"scales": h.service.ListScales()})
}

// ListInstruments returns the instrument presets and the one in use
func (h *GuideHandler) ListInstruments(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"active":      h.service.Instrument().Name,
		"instruments": theory.Instruments(),
	})
}

// fail maps caller mistakes to 400 and everything else to 500
func (h *GuideHandler) fail(c *gin.Context, msg string, err error) {
	if errors.Is(err, services.ErrInvalidInput) {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidRequest, "message": err.Error()})
		return
	}

	logger.Error(msg, err, logger.WithContext(c))
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":      errInternal,
		"request_id": c.GetString("request_id"),
	})
}

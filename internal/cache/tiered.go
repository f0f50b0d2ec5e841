package cache

import (
	"context"

	"github.com/Conceptual-Machines/fretboard-api/internal/logger"
	"github.com/Conceptual-Machines/fretboard-api/internal/models"
)

// Tiered serves from a fast in-process front and falls back to a shared backend.
// Backend failures degrade to misses so a broken backend never fails a request.
type Tiered struct {
	front   *MemoryStore
	backend Store
}

// NewTiered layers front over backend
func NewTiered(front *MemoryStore, backend Store) *Tiered {
	return &Tiered{front: front, backend: backend}
}

func (t *Tiered) Name() string {
	return t.backend.Name()
}

func (t *Tiered) Get(ctx context.Context, key string) (*models.ScaleGuide, bool, error) {
	if guide, ok, _ := t.front.Get(ctx, key); ok {
		return guide, true, nil
	}

	guide, ok, err := t.backend.Get(ctx, key)
	if err != nil {
		logger.Warn("Cache backend read failed", logger.Fields{
			"cache_backend": t.backend.Name(),
			"guide_key":     key,
			"error":         err.Error(),
		})
		return nil, false, nil
	}
	if !ok {
		return nil, false, nil
	}

	_ = t.front.Set(ctx, key, guide)
	return guide, true, nil
}

func (t *Tiered) Set(ctx context.Context, key string, guide *models.ScaleGuide) error {
	_ = t.front.Set(ctx, key, guide)
	if err := t.backend.Set(ctx, key, guide); err != nil {
		logger.Warn("Cache backend write failed", logger.Fields{
			"cache_backend": t.backend.Name(),
			"guide_key":     key,
			"error":         err.Error(),
		})
	}
	return nil
}

// Len reports the size of the in-process front
func (t *Tiered) Len() int {
	return t.front.Len()
}

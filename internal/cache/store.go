// Package cache stores finished scale guides keyed by (root, scale).
package cache

import (
	"context"
	"errors"
	"strings"

	"github.com/Conceptual-Machines/fretboard-api/internal/models"
)

// ErrUnknownBackend is returned for a backend name that has no implementation
var ErrUnknownBackend = errors.New("unknown cache backend")

// Backend names
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Store is a guide cache. A miss is (nil, false, nil); errors are reserved for
// backend failures.
type Store interface {
	Get(ctx context.Context, key string) (*models.ScaleGuide, bool, error)
	Set(ctx context.Context, key string, guide *models.ScaleGuide) error
	Name() string
}

// Sizer is implemented by stores that can report how many guides they hold
type Sizer interface {
	Len() int
}

// Key builds the cache key for a root note and scale name
func Key(root, scale string) string {
	return strings.ToUpper(root) + "|" + scale
}

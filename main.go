package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Conceptual-Machines/fretboard-api/internal/api"
	"github.com/Conceptual-Machines/fretboard-api/internal/cache"
	"github.com/Conceptual-Machines/fretboard-api/internal/config"
	"github.com/Conceptual-Machines/fretboard-api/internal/database"
	"github.com/Conceptual-Machines/fretboard-api/internal/logger"
	"github.com/Conceptual-Machines/fretboard-api/internal/metrics"
	"github.com/Conceptual-Machines/fretboard-api/internal/services"
	"github.com/Conceptual-Machines/fretboard-api/internal/theory"
)

const (
	sentryFlushTimeout    = 2 * time.Second
	environmentProduction = "production"
	startupTimeout        = 10 * time.Second
)

// releaseVersion is set via ldflags during build
var releaseVersion = "dev"

// GetVersion returns the current release version
func GetVersion() string {
	return releaseVersion
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	if err := logger.Init(logger.Options{
		Environment: cfg.Environment,
		Level:       cfg.LogLevel,
		FilePath:    cfg.LogFile,
	}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// Initialize Sentry
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.Environment,
			Release:          "fretboard-api@" + releaseVersion,
			EnableTracing:    true,
			TracesSampleRate: 1.0,
			Debug:            cfg.Environment != environmentProduction,
			BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
				if event.Request != nil {
					event.Request.Headers = filterSensitiveHeaders(event.Request.Headers)
				}
				return event
			},
		}); err != nil {
			logger.Warn("Failed to initialize Sentry", logger.Fields{"error": err.Error()})
		} else {
			logger.Info("✅ Sentry initialized", logger.Fields{"release": releaseVersion})
			defer sentry.Flush(sentryFlushTimeout)
		}
	} else {
		logger.Warn("⚠️  Sentry not configured (SENTRY_DSN not set)", nil)
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	instrument, err := loadInstrument(cfg)
	if err != nil {
		fatal("Failed to load instrument", err)
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		fatal("Failed to initialize guide cache", err)
	}

	cloudwatch, err := metrics.NewClient(ctx, cfg.Environment)
	if err != nil {
		fatal("Failed to initialize CloudWatch metrics", err)
	}
	recorder := metrics.Multi{metrics.NewSentryMetrics(cfg.SentryDSN != ""), cloudwatch}

	var enricher services.Enricher = services.NoopEnricher{}
	if cfg.CatalogEnabled {
		enricher = services.NewCatalogEnricher()
	}

	svc := services.NewGuideService(instrument, store, enricher, recorder)

	if cfg.Environment == environmentProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	router, err := api.SetupRouter(cfg, svc, recorder, GetVersion())
	if err != nil {
		fatal("Failed to set up router", err)
	}

	logger.Info("🚀 Starting server", logger.Fields{
		"port":          cfg.Port,
		"instrument":    instrument.Name,
		"cache_backend": store.Name(),
		"auth_mode":     cfg.AuthMode,
	})
	if err := router.Run(":" + cfg.Port); err != nil {
		fatal("Failed to start server", err)
	}
}

func loadInstrument(cfg *config.Config) (theory.Instrument, error) {
	instrument, err := theory.LookupInstrument(cfg.Instrument)
	if err != nil {
		return theory.Instrument{}, err
	}
	if cfg.FretCount > 0 {
		instrument.Frets = cfg.FretCount
	}
	return instrument, nil
}

// buildStore picks the cache backend. Shared backends get an in-process front.
func buildStore(ctx context.Context, cfg *config.Config) (cache.Store, error) {
	front := cache.NewMemoryStore(cfg.CacheCapacity, cfg.CacheTTL)

	switch cfg.CacheBackend {
	case cache.BackendMemory, "":
		return front, nil
	case cache.BackendRedis:
		redisStore, err := cache.NewRedisStore(ctx, cfg.RedisURL, cfg.CacheTTL)
		if err != nil {
			return nil, err
		}
		return cache.NewTiered(front, redisStore), nil
	case cache.BackendPostgres:
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(db); err != nil {
			return nil, err
		}
		return cache.NewTiered(front, cache.NewPostgresStore(db, cfg.CacheTTL)), nil
	default:
		return nil, cache.ErrUnknownBackend
	}
}

func fatal(msg string, err error) {
	sentry.CaptureException(err)
	sentry.Flush(sentryFlushTimeout)
	logger.Error(msg, err, nil)
	_ = logger.Sync()
	log.Fatalf("%s: %v", msg, err)
}

func filterSensitiveHeaders(headers map[string]string) map[string]string {
	filtered := make(map[string]string)
	sensitiveKeys := map[string]bool{
		"authorization": true,
		"cookie":        true,
		"x-api-key":     true,
	}

	for k, v := range headers {
		if sensitiveKeys[strings.ToLower(k)] {
			filtered[k] = "[REDACTED]"
		} else {
			filtered[k] = v
		}
	}
	return filtered
}

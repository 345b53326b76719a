package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/laundrydesk/laundrydesk/internal/dependencies/clock"
	"github.com/laundrydesk/laundrydesk/internal/dependencies/random"
	"github.com/laundrydesk/laundrydesk/internal/notify"
	"github.com/laundrydesk/laundrydesk/internal/services/dispatch"
	"github.com/laundrydesk/laundrydesk/internal/services/order"
	"github.com/laundrydesk/laundrydesk/internal/services/session"
	"github.com/laundrydesk/laundrydesk/internal/services/staff"
	"github.com/laundrydesk/laundrydesk/internal/storage"
	filestorage "github.com/laundrydesk/laundrydesk/internal/storage/file"
	"github.com/laundrydesk/laundrydesk/internal/storage/memory"
	redisstorage "github.com/laundrydesk/laundrydesk/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeFile   = "file"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock    clock.Clock
	Random   random.Random
	Notifier notify.Notifier

	// Services
	SessionService  *session.Service
	StaffService    *staff.Service
	OrderService    *order.Service
	DispatchService *dispatch.Service
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// Notifier receives user-facing notices (optional)
	// If nil, notices go to the logger
	Notifier notify.Notifier
	// StorageType selects the storage backend ("memory", "file" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// DataDir is the directory for file storage (required if StorageType is "file")
	DataDir string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired. The session
// service is restored from the persisted snapshot before New returns.
func New(ctx context.Context, cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeFile:
		if cfg.DataDir == "" {
			return nil, errors.New("DataDir required when StorageType is file")
		}
		fileStore, err := filestorage.New(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		store = fileStore
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'file' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	notifier := cfg.Notifier
	if notifier == nil {
		notifier = notify.NewSlogNotifier(logger)
	}

	app := newWithDependencies(store, clk, rnd, notifier, logger)

	if err := app.SessionService.Restore(ctx); err != nil {
		return nil, err
	}
	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, notifier notify.Notifier, logger *slog.Logger) *App {
	// Create services
	sessionService := session.New(store, notifier, logger)
	staffService := staff.New(store, clk)
	orderService := order.New(store, staffService, clk, rnd, notifier)
	dispatchService := dispatch.New(store, orderService, staffService, clk, notifier)

	return &App{
		Storage:         store,
		Clock:           clk,
		Random:          rnd,
		Notifier:        notifier,
		SessionService:  sessionService,
		StaffService:    staffService,
		OrderService:    orderService,
		DispatchService: dispatchService,
	}
}

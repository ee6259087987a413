// Package sitekit maintains the content configuration of a bilingual
// corporate website: the navigation menu forest, slides bound to pages,
// investor documents kept in a fixed taxonomy, and business lines.
//
// Basic usage:
//
//	client, err := sitekit.New(sitekit.WithSQLite("site.db"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	report, err := client.Classifier.Run(ctx, service.ClassifyParams{DryRun: true})
package sitekit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/helixml/sitekit/application/service"
	"github.com/helixml/sitekit/domain/business"
	"github.com/helixml/sitekit/domain/migration"
	"github.com/helixml/sitekit/domain/taxonomy"
	"github.com/helixml/sitekit/infrastructure/persistence"
	"github.com/helixml/sitekit/infrastructure/seed"
	"github.com/helixml/sitekit/internal/database"
	"github.com/helixml/sitekit/internal/metrics"
)

// ErrNoDatabase is returned by New when no database option was given.
var ErrNoDatabase = errors.New("sitekit: no database configured")

// ErrClientClosed is returned when using a closed client.
var ErrClientClosed = service.ErrClientClosed

// Client is the main entry point for the sitekit library.
//
// Access services via struct fields:
//
//	client.Navigation.Tree(ctx, navigation.LocationHeader)
//	client.Slides.ForPage(ctx, "/business/energy")
//	client.Classifier.Run(ctx, service.ClassifyParams{})
type Client struct {
	Navigation    *service.Navigation
	Slides        *service.Slides
	Classifier    *service.Classifier
	Documents     *service.Documents
	BusinessLines *service.BusinessLines
	Migrations    *service.Migrations

	db      database.Database
	metrics *metrics.Metrics
	logger  *slog.Logger
	closed  atomic.Bool
	mu      sync.Mutex
}

// New opens the database, brings the schema up to date and wires the
// services.
func New(opts ...Option) (*Client, error) {
	cfg := newClientConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.dbURL == "" {
		return nil, ErrNoDatabase
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	registry, err := loadRegistry(cfg)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	db, err := database.NewDatabase(ctx, cfg.dbURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	pool := cfg.pool
	if err := db.ConfigurePool(pool.MaxOpen(), pool.MaxIdle(), pool.MaxLifetime()); err != nil {
		errClose := db.Close()
		return nil, errors.Join(fmt.Errorf("configure pool: %w", err), errClose)
	}
	if err := persistence.AutoMigrate(db); err != nil {
		errClose := db.Close()
		return nil, errors.Join(fmt.Errorf("auto migrate: %w", err), errClose)
	}

	details := make(map[business.Kind]business.DetailStore, len(business.Kinds()))
	for _, kind := range business.Kinds() {
		details[kind] = persistence.NewDetailStore(db, kind)
	}

	client := &Client{
		Navigation:    service.NewNavigation(persistence.NewNavigationStore(db), logger),
		Slides:        service.NewSlides(persistence.NewSlideStore(db), logger),
		Classifier:    service.NewClassifier(persistence.NewDocumentStore(db), registry, logger),
		Documents:     service.NewDocuments(persistence.NewDocumentStore(db), registry, logger),
		BusinessLines: service.NewBusinessLines(persistence.NewBusinessLineStore(db), details, logger),
		Migrations:    service.NewMigrations(persistence.NewMigrationStore(db), logger),
		db:            db,
		metrics:       cfg.metrics,
		logger:        logger,
	}

	logger.Debug("sitekit client ready",
		slog.Bool("postgres", db.IsPostgres()),
		slog.Int("taxonomy_codes", len(registry.Codes())),
	)
	return client, nil
}

func loadRegistry(cfg *clientConfig) (*taxonomy.Registry, error) {
	switch {
	case cfg.registry != nil:
		return cfg.registry, nil
	case cfg.rulesFile != "":
		r, err := taxonomy.LoadFile(cfg.rulesFile)
		if err != nil {
			return nil, fmt.Errorf("load rules %s: %w", cfg.rulesFile, err)
		}
		return r, nil
	default:
		r, err := taxonomy.Default()
		if err != nil {
			return nil, fmt.Errorf("load embedded rules: %w", err)
		}
		return r, nil
	}
}

// Seed applies seed files through the migration ledger, in order. Files
// already applied with the same content are skipped.
func (c *Client) Seed(ctx context.Context, seeds ...seed.Seed) (service.Report, error) {
	if c.closed.Load() {
		return service.NewReport("migrations.apply"), ErrClientClosed
	}
	svc := seed.Services{
		Navigation:    c.Navigation,
		Slides:        c.Slides,
		Documents:     c.Documents,
		BusinessLines: c.BusinessLines,
		Logger:        c.logger,
	}
	migrations := make([]migration.Migration, len(seeds))
	for i, s := range seeds {
		migrations[i] = s.Migration(svc)
	}
	report, err := c.Migrations.Apply(ctx, migrations...)
	report.Record(c.metrics)
	return report, err
}

// Classify runs the document classifier and records its counts.
func (c *Client) Classify(ctx context.Context, params service.ClassifyParams) (service.ClassifyReport, error) {
	if c.closed.Load() {
		return service.ClassifyReport{}, ErrClientClosed
	}
	report, err := c.Classifier.Run(ctx, params)
	report.Record(c.metrics)
	return report, err
}

// Metrics returns the metrics the client records to, which may be nil.
func (c *Client) Metrics() *metrics.Metrics {
	return c.metrics
}

// Logger returns the client's logger.
func (c *Client) Logger() *slog.Logger {
	return c.logger
}

// Close releases the database. Closing twice returns ErrClientClosed.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return ErrClientClosed
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	c.logger.Debug("sitekit client closed")
	return nil
}

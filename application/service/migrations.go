package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/helixml/sitekit/domain/migration"
	"github.com/helixml/sitekit/domain/repository"
)

// Migrations runs versioned maintenance operations through the ledger.
type Migrations struct {
	repository.Collection[migration.Applied]
	store  migration.Store
	logger *slog.Logger
}

// NewMigrations creates a new Migrations service.
func NewMigrations(store migration.Store, logger *slog.Logger) *Migrations {
	return &Migrations{
		Collection: repository.NewCollection[migration.Applied](store),
		store:      store,
		logger:     logger,
	}
}

// Apply runs migrations in the given order. A version already in the ledger
// with the same checksum is skipped; with a different checksum the run stops
// with ErrConflict. A migration is recorded only after its body succeeds,
// and a failing body stops the run.
func (s *Migrations) Apply(ctx context.Context, migrations ...migration.Migration) (Report, error) {
	report := NewReport("migrations.apply")
	for _, m := range migrations {
		applied, err := s.store.FindOne(ctx, migration.WithVersion(m.Version))
		switch {
		case err == nil:
			if applied.Checksum() != m.Checksum {
				return report, fmt.Errorf("migration %s: %w: checksum %s was applied, now %s",
					m.Version, ErrConflict, short(applied.Checksum()), short(m.Checksum))
			}
			report.Skipped++
			s.logger.DebugContext(ctx, "migration already applied", slog.String("version", m.Version))
			continue
		case !isNotFound(err):
			return report, storeError("read ledger", err)
		}

		s.logger.InfoContext(ctx, "applying migration",
			slog.String("version", m.Version),
			slog.String("description", m.Description),
		)
		if m.Up != nil {
			if err := m.Up(ctx); err != nil {
				report.Fail(m.Version, err)
				return report, fmt.Errorf("apply migration %s: %w", m.Version, err)
			}
		}
		if _, err := s.store.Create(ctx, migration.NewApplied(m)); err != nil {
			return report, storeError("record migration "+m.Version, err)
		}
		report.Inserted++
	}
	return report, nil
}

// Applied lists the ledger in application order.
func (s *Migrations) Applied(ctx context.Context) ([]migration.Applied, error) {
	applied, err := s.store.Find(ctx, migration.WithLedgerOrder()...)
	if err != nil {
		return nil, storeError("read ledger", err)
	}
	return applied, nil
}

func short(checksum string) string {
	if len(checksum) > 12 {
		return checksum[:12]
	}
	return checksum
}

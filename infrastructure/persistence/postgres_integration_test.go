//go:build integration

package persistence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/helixml/sitekit/domain/bilingual"
	"github.com/helixml/sitekit/domain/business"
	"github.com/helixml/sitekit/domain/navigation"
	"github.com/helixml/sitekit/infrastructure/persistence"
	"github.com/helixml/sitekit/internal/database"
)

func newPostgres(t *testing.T) database.Database {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("sitekit"),
		tcpostgres.WithUsername("sitekit"),
		tcpostgres.WithPassword("sitekit"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(container) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get postgres connection string: %v", err)
	}

	db, err := database.NewDatabase(ctx, dsn)
	if err != nil {
		t.Fatalf("failed to open postgres: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestPostgres_MigrateTwiceAndCascade(t *testing.T) {
	ctx := context.Background()
	db := newPostgres(t)
	require.True(t, db.IsPostgres())

	require.NoError(t, persistence.AutoMigrate(db))
	require.NoError(t, persistence.AutoMigrate(db))

	lines := persistence.NewBusinessLineStore(db)
	stats := persistence.NewDetailStore(db, business.KindStats)

	line, err := lines.Create(ctx, business.NewLine(business.LineParams{Slug: "energy", Name: bilingual.New("Energi", "Energy")}))
	require.NoError(t, err)
	require.NoError(t, stats.CreateAll(ctx, []business.Detail{
		business.NewDetail(line.ID(), business.KindStats, business.DetailContent{Title: bilingual.New("MW", "MW"), Value: "450"}, 0),
	}))

	require.NoError(t, lines.Delete(ctx, line))

	n, err := stats.Count(ctx, business.WithLine(line.ID()))
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestPostgres_NavigationAtomic(t *testing.T) {
	ctx := context.Background()
	db := newPostgres(t)
	require.NoError(t, persistence.AutoMigrate(db))
	store := persistence.NewNavigationStore(db)

	err := store.Atomic(ctx, func(tx navigation.Store) error {
		root, err := tx.Create(ctx, navigation.NewMenuItem(bilingual.New("Bisnis", "Business"), "", navigation.LocationHeader))
		if err != nil {
			return err
		}
		id := root.ID()
		_, err = tx.Create(ctx, navigation.NewMenuItem(bilingual.New("Energi", "Energy"), "/business/energy", navigation.LocationHeader).WithParent(&id))
		return err
	})
	require.NoError(t, err)

	items, err := store.Find(ctx, navigation.WithSiblingOrder()...)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

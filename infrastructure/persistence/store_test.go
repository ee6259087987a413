package persistence_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixml/sitekit/domain/bilingual"
	"github.com/helixml/sitekit/domain/business"
	"github.com/helixml/sitekit/domain/document"
	"github.com/helixml/sitekit/domain/migration"
	"github.com/helixml/sitekit/domain/navigation"
	"github.com/helixml/sitekit/domain/repository"
	"github.com/helixml/sitekit/domain/slide"
	"github.com/helixml/sitekit/infrastructure/persistence"
	"github.com/helixml/sitekit/internal/database"
	"github.com/helixml/sitekit/internal/testdb"
)

func TestNavigationStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewNavigationStore(testdb.New(t))

	root, err := store.Create(ctx, navigation.NewMenuItem(bilingual.New("Tentang Kami", "About Us"), "", navigation.LocationHeader))
	require.NoError(t, err)
	parentID := root.ID()
	child := navigation.NewMenuItem(bilingual.New("Sejarah", "History"), "/about/history", navigation.LocationHeader).
		WithParent(&parentID).
		WithSortOrder(2)
	_, err = store.Create(ctx, child)
	require.NoError(t, err)

	roots, err := store.Find(ctx, navigation.WithParent(nil))
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, navigation.PathPlaceholder, roots[0].Path())
	assert.Equal(t, "About Us", roots[0].Label().Secondary())
	assert.True(t, roots[0].IsRoot())

	children, err := store.Find(ctx, navigation.WithGroup(navigation.NewGroup(&parentID, navigation.LocationHeader))...)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, 2, children[0].SortOrder())
	assert.True(t, children[0].IsChildOf(parentID))
	assert.True(t, children[0].IsActive())
}

func TestNavigationStore_SaveInactive(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewNavigationStore(testdb.New(t))

	item, err := store.Create(ctx, navigation.NewMenuItem(bilingual.New("Karir", "Careers"), "/careers", navigation.LocationFooter))
	require.NoError(t, err)

	_, err = store.Save(ctx, item.Deactivate())
	require.NoError(t, err)

	got, err := store.FindOne(ctx, repository.WithID(item.ID()))
	require.NoError(t, err)
	assert.False(t, got.IsActive())
}

func TestNavigationStore_AtomicRollsBack(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewNavigationStore(testdb.New(t))
	boom := errors.New("boom")

	err := store.Atomic(ctx, func(tx navigation.Store) error {
		if _, err := tx.Create(ctx, navigation.NewMenuItem(bilingual.New("A", "A"), "/a", navigation.LocationHeader)); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSlideStore_BindingFilters(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewSlideStore(testdb.New(t))

	bound := slide.NewSlide(slide.Content{
		Title:    bilingual.New("Energi", "Energy"),
		MediaURL: "https://cdn.example.com/energy.mp4",
	}).BoundTo("/business/energy")
	legacy := slide.NewSlide(slide.Content{
		Title:        bilingual.New("Tambang", "Mining"),
		MediaURL:     "https://cdn.example.com/mining.jpg",
		SecondaryCTA: slide.NewCTA(bilingual.New("Lihat", "View"), "/business/mining"),
	})
	for _, s := range []slide.Slide{bound, legacy} {
		_, err := store.Create(ctx, s)
		require.NoError(t, err)
	}

	got, err := store.FindOne(ctx, slide.WithPageBinding("/business/energy"))
	require.NoError(t, err)
	assert.Equal(t, slide.MediaVideo, got.MediaType())
	require.NotNil(t, got.PageBinding())

	unbound, err := store.Find(ctx, slide.WithUnbound(), slide.WithSecondaryLink("/business/mining"))
	require.NoError(t, err)
	require.Len(t, unbound, 1)
	assert.Equal(t, legacy.ID(), unbound[0].ID())
	assert.Nil(t, unbound[0].PageBinding())
	assert.Equal(t, "View", unbound[0].SecondaryCTA().Text().Secondary())
}

func TestSlideStore_LegacyRowWithoutMediaType(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	testdb.Exec(t, db, `INSERT INTO hero_slides (id, title_primary, media_url, media_type, sort_order, is_active, created_at, updated_at)
		VALUES ('s-1', 'Lama', 'https://cdn.example.com/clip.webm?v=2', '', 0, true, '2023-01-01 00:00:00', '2023-01-01 00:00:00')`)

	got, err := persistence.NewSlideStore(db).FindOne(ctx, repository.WithID("s-1"))
	require.NoError(t, err)
	assert.Equal(t, slide.MediaVideo, got.MediaType())
}

func TestDocumentStore_QuarterRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewDocumentStore(testdb.New(t))
	q := 3

	withQuarter := document.NewDocument(document.Params{
		Title:        bilingual.New("Laporan Keuangan Q3 2023", "Financial Statements Q3 2023"),
		DocumentType: "financial_report",
		Year:         2023,
		Quarter:      &q,
		PublishedAt:  time.Date(2023, 10, 30, 0, 0, 0, 0, time.UTC),
		FileURL:      "https://cdn.example.com/fs-q3-2023.pdf",
	})
	annual := document.NewDocument(document.Params{
		Title:        bilingual.New("Laporan Tahunan 2023", "Annual Report 2023"),
		DocumentType: "annual_report",
		Year:         2023,
		PublishedAt:  time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC),
		FileURL:      "https://cdn.example.com/ar-2023.pdf",
	})
	for _, d := range []document.Document{withQuarter, annual} {
		_, err := store.Create(ctx, d)
		require.NoError(t, err)
	}

	docs, err := store.Find(ctx, append([]repository.Option{document.WithYear(2023)}, document.WithPublicationOrder()...)...)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, annual.ID(), docs[0].ID())
	assert.Nil(t, docs[0].Quarter())
	require.NotNil(t, docs[1].Quarter())
	assert.Equal(t, 3, *docs[1].Quarter())

	n, err := store.Count(ctx, document.WithTypeIn([]string{"annual_report", "prospectus"}))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestDetailStore_TablesAreSeparate(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	lines := persistence.NewBusinessLineStore(db)
	features := persistence.NewDetailStore(db, business.KindFeatures)
	stats := persistence.NewDetailStore(db, business.KindStats)

	line, err := lines.Create(ctx, business.NewLine(business.LineParams{
		Slug:     "energy",
		Name:     bilingual.New("Energi", "Energy"),
		PagePath: "/business/energy",
	}))
	require.NoError(t, err)

	require.NoError(t, features.CreateAll(ctx, []business.Detail{
		business.NewDetail(line.ID(), business.KindFeatures, business.DetailContent{Title: bilingual.New("Satu", "One")}, 0),
		business.NewDetail(line.ID(), business.KindFeatures, business.DetailContent{Title: bilingual.New("Dua", "Two")}, 1),
	}))
	require.NoError(t, stats.CreateAll(ctx, []business.Detail{
		business.NewDetail(line.ID(), business.KindStats, business.DetailContent{Title: bilingual.New("MW", "MW"), Value: "450"}, 0),
	}))

	got, err := features.Find(ctx, business.WithLine(line.ID()), repository.WithOrderAsc("sort_order"))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, business.KindFeatures, got[0].Kind())
	assert.Equal(t, "Two", got[1].Title().Secondary())

	deleted, err := features.DeleteBy(ctx, business.WithLine(line.ID()))
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	remaining, err := stats.Count(ctx, business.WithLine(line.ID()))
	require.NoError(t, err)
	assert.Equal(t, int64(1), remaining)
}

func TestMigrationStore_Ledger(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewMigrationStore(testdb.New(t))

	_, err := store.Create(ctx, migration.NewApplied(migration.Migration{
		Version:     "2024-06-menus",
		Description: "initial menus",
		Checksum:    migration.Checksum([]byte("menus")),
	}))
	require.NoError(t, err)

	got, err := store.FindOne(ctx, migration.WithVersion("2024-06-menus"))
	require.NoError(t, err)
	assert.Equal(t, migration.Checksum([]byte("menus")), got.Checksum())

	_, err = store.FindOne(ctx, migration.WithVersion("missing"))
	assert.ErrorIs(t, err, database.ErrNotFound)
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixml/sitekit/domain/bilingual"
	"github.com/helixml/sitekit/domain/document"
	"github.com/helixml/sitekit/domain/taxonomy"
	"github.com/helixml/sitekit/infrastructure/persistence"
	"github.com/helixml/sitekit/internal/testdb"
)

func TestDocuments_EnsureByFileURL(t *testing.T) {
	ctx := context.Background()
	svc := NewDocuments(persistence.NewDocumentStore(testdb.New(t)), defaultRegistry(t), discardLogger())
	params := document.Params{
		Title:        bilingual.New("Prospektus Obligasi 2024", "Bond Prospectus 2024"),
		DocumentType: "prospectus",
		Year:         2024,
		PublishedAt:  time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		FileURL:      "https://cdn.example.com/prospectus-2024.pdf",
	}

	first, created, err := svc.Ensure(ctx, document.NewDocument(params))
	require.NoError(t, err)
	assert.True(t, created)

	params.Title = bilingual.New("Judul Lain", "Other Title")
	again, created, err := svc.Ensure(ctx, document.NewDocument(params))
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID(), again.ID())
	assert.Equal(t, "Bond Prospectus 2024", again.Title().Secondary())

	all, err := svc.Find(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestDocuments_EnsureRejectsUnknownType(t *testing.T) {
	ctx := context.Background()
	svc := NewDocuments(persistence.NewDocumentStore(testdb.New(t)), defaultRegistry(t), discardLogger())

	_, created, err := svc.Ensure(ctx, newDocument("Laporan Lain", "Other Report", "bogus_code", 2023, nil))
	require.ErrorIs(t, err, taxonomy.ErrUnknownCode)
	assert.False(t, created)

	all, err := svc.Find(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	_, created, err = svc.Ensure(ctx, newDocument("Laporan Lain", "Other Report", taxonomy.CodeOther, 2023, nil))
	require.NoError(t, err)
	assert.True(t, created)
}

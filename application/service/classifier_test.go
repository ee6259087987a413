package service

//go:generate mockgen -destination=mocks/document_store.go -package=mocks -mock_names=Store=MockDocumentStore github.com/helixml/sitekit/domain/document Store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/helixml/sitekit/application/service/mocks"
	"github.com/helixml/sitekit/domain/bilingual"
	"github.com/helixml/sitekit/domain/document"
	"github.com/helixml/sitekit/domain/repository"
	"github.com/helixml/sitekit/domain/taxonomy"
	"github.com/helixml/sitekit/infrastructure/persistence"
	"github.com/helixml/sitekit/internal/testdb"
)

func newDocument(primary, secondary, code string, year int, quarter *int) document.Document {
	return document.NewDocument(document.Params{
		Title:        bilingual.New(primary, secondary),
		DocumentType: code,
		Year:         year,
		Quarter:      quarter,
		PublishedAt:  time.Date(year, 6, 1, 0, 0, 0, 0, time.UTC),
		FileURL:      "https://cdn.example.com/" + primary + ".pdf",
	})
}

func defaultRegistry(t *testing.T) *taxonomy.Registry {
	t.Helper()
	reg, err := taxonomy.Default()
	require.NoError(t, err)
	return reg
}

type ClassifierSuite struct {
	suite.Suite
	ctx     context.Context
	store   persistence.DocumentStore
	service *Classifier

	notice, promo, unknown, canonical document.Document
}

func TestClassifierSuite(t *testing.T) {
	suite.Run(t, new(ClassifierSuite))
}

func (s *ClassifierSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = persistence.NewDocumentStore(testdb.New(s.T()))
	s.service = NewClassifier(s.store, defaultRegistry(s.T()), discardLogger())

	s.notice = newDocument("Pemanggilan Rapat Umum Pemegang Saham Tahunan Tahun Buku 2023", "", taxonomy.CodeOther, 2024, nil)
	s.promo = newDocument("Perseroan Meraih Penghargaan Top CSR 2023", "", taxonomy.CodePressRelease, 2023, nil)
	s.unknown = newDocument("Struktur Grup Perusahaan", "Group Structure", "newsletter", 2022, nil)
	s.canonical = newDocument("Laporan Keuangan Q3 2023", "Financial Statements Q3 2023", taxonomy.CodeFinancialReport, 2023, ptr(3))
	for _, d := range []document.Document{s.notice, s.promo, s.unknown, s.canonical} {
		_, err := s.store.Create(s.ctx, d)
		s.Require().NoError(err)
	}
}

func (s *ClassifierSuite) load(id string) document.Document {
	d, err := s.store.FindOne(s.ctx, repository.WithID(id))
	s.Require().NoError(err)
	return d
}

func (s *ClassifierSuite) TestDryRunWritesNothing() {
	report, err := s.service.Run(s.ctx, ClassifyParams{DryRun: true, PurgePromotional: true})
	s.Require().NoError(err)

	s.Equal(1, report.Updated)
	s.Equal(1, report.Deleted)
	s.Equal(2, report.Skipped)
	s.Equal(taxonomy.CodeOther, s.load(s.notice.ID()).Type())

	count, err := s.store.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(4), count)
}

func (s *ClassifierSuite) TestRun() {
	report, err := s.service.Run(s.ctx, ClassifyParams{})
	s.Require().NoError(err)

	s.Equal(1, report.Updated)
	s.Equal(3, report.Skipped)
	s.Zero(report.Deleted)
	s.Equal([]string{s.unknown.ID()}, report.Unclassified)
	s.Equal([]string{s.notice.ID()}, report.YearConflicts)

	got := s.load(s.notice.ID())
	s.Equal(taxonomy.CodeRUPSAnnual, got.Type())
	s.Equal("Pemanggilan RUPS Tahunan 2024", got.Title().Primary())
	s.Equal(2024, got.Year())

	s.Run("second run changes nothing", func() {
		again, err := s.service.Run(s.ctx, ClassifyParams{})
		s.Require().NoError(err)
		s.Zero(again.Updated)
		s.Equal(4, again.Skipped)
		s.Empty(again.YearConflicts)
	})
}

func (s *ClassifierSuite) TestAmbiguousMeetingKindIsReported() {
	mixed := newDocument("Risalah RUPS Tahunan dan Luar Biasa 2023", "", taxonomy.CodeRUPSReport, 2023, nil)
	_, err := s.store.Create(s.ctx, mixed)
	s.Require().NoError(err)

	report, err := s.service.Run(s.ctx, ClassifyParams{Types: []string{taxonomy.CodeRUPSReport}})
	s.Require().NoError(err)

	s.Equal([]string{mixed.ID()}, report.AmbiguousModifiers)
	s.Equal(1, report.Skipped)
	s.Equal(taxonomy.CodeRUPSReport, s.load(mixed.ID()).Type())
}

func (s *ClassifierSuite) TestPurgePromotional() {
	report, err := s.service.Run(s.ctx, ClassifyParams{PurgePromotional: true, Types: []string{taxonomy.CodePressRelease}})
	s.Require().NoError(err)

	s.Equal(1, report.Deleted)
	s.Equal(1, report.Total())

	exists, err := s.store.Exists(s.ctx, repository.WithID(s.promo.ID()))
	s.Require().NoError(err)
	s.False(exists)
}

func (s *ClassifierSuite) TestPreview() {
	d := s.service.Preview(bilingual.New("Rencana Pemecahan Saham (Stock Split)", ""), taxonomy.CodeOther, 2024, nil)
	s.Equal(taxonomy.CodeCorporateAction, d.Code)
	s.Equal(taxonomy.ActionReclassify, d.Action)
}

func TestClassifier_FindFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockDocumentStore(ctrl)
	store.EXPECT().Find(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused"))

	svc := NewClassifier(store, defaultRegistry(t), discardLogger())
	_, err := svc.Run(context.Background(), ClassifyParams{})

	assert.ErrorIs(t, err, ErrStore)
}

func TestClassifier_SaveFailureContinues(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockDocumentStore(ctrl)
	first := newDocument("Rencana Pemecahan Saham", "", taxonomy.CodeOther, 2024, nil)
	second := newDocument("Pembagian Dividen Final", "", taxonomy.CodeOther, 2024, nil)

	store.EXPECT().Find(gomock.Any(), gomock.Any()).Return([]document.Document{first, second}, nil)
	store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(document.Document{}, errors.New("database is locked")).Times(1)
	store.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, d document.Document) (document.Document, error) {
			assert.Equal(t, taxonomy.CodeCorporateAction, d.Type())
			return d, nil
		},
	).Times(1)

	svc := NewClassifier(store, defaultRegistry(t), discardLogger())
	report, err := svc.Run(context.Background(), ClassifyParams{})

	require.NoError(t, err)
	assert.Equal(t, 1, report.Updated)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, first.ID(), report.Failures[0].ID)
	assert.Contains(t, report.Failures[0].Reason, "database is locked")
}

func TestClassifier_DeleteFailureIsReported(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockDocumentStore(ctrl)
	promo := newDocument("Perseroan Meraih Penghargaan", "", taxonomy.CodePressRelease, 2023, nil)

	store.EXPECT().Find(gomock.Any(), gomock.Any()).Return([]document.Document{promo}, nil)
	store.EXPECT().Delete(gomock.Any(), promo).Return(repository.ErrNotFound)

	svc := NewClassifier(store, defaultRegistry(t), discardLogger())
	report, err := svc.Run(context.Background(), ClassifyParams{PurgePromotional: true})

	require.NoError(t, err)
	assert.Zero(t, report.Deleted)
	assert.Equal(t, 1, report.Failed)
}

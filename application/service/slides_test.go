package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/helixml/sitekit/domain/bilingual"
	"github.com/helixml/sitekit/domain/repository"
	"github.com/helixml/sitekit/domain/slide"
	"github.com/helixml/sitekit/infrastructure/persistence"
	"github.com/helixml/sitekit/internal/testdb"
)

type SlidesSuite struct {
	suite.Suite
	ctx     context.Context
	store   persistence.SlideStore
	service *Slides
}

func TestSlidesSuite(t *testing.T) {
	suite.Run(t, new(SlidesSuite))
}

func (s *SlidesSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = persistence.NewSlideStore(testdb.New(s.T()))
	s.service = NewSlides(s.store, discardLogger())
}

func newSlide(title, primaryLink, secondaryLink string) slide.Slide {
	return slide.NewSlide(slide.Content{
		Title:        bilingual.New(title, title+" EN"),
		MediaURL:     "https://cdn.example.com/" + title + ".jpg",
		PrimaryCTA:   slide.NewCTA(bilingual.New("Selengkapnya", "Learn more"), primaryLink),
		SecondaryCTA: slide.NewCTA(bilingual.New("Lihat", "View"), secondaryLink),
	})
}

func (s *SlidesSuite) create(sl slide.Slide) slide.Slide {
	created, err := s.store.Create(s.ctx, sl)
	s.Require().NoError(err)
	return created
}

func (s *SlidesSuite) TestUpsertForPage() {
	s.Run("inserts once", func() {
		first, created, err := s.service.UpsertForPage(s.ctx, "/business/energy", newSlide("Energi", "", ""), false)
		s.Require().NoError(err)
		s.True(created)
		s.Require().NotNil(first.PageBinding())
		s.Equal("/business/energy", *first.PageBinding())

		again, created, err := s.service.UpsertForPage(s.ctx, "/business/energy", newSlide("Energi", "", ""), false)
		s.Require().NoError(err)
		s.False(created)
		s.Equal(first.ID(), again.ID())
	})

	s.Run("title matching adds a second slide", func() {
		second, created, err := s.service.UpsertForPage(s.ctx, "/business/energy", newSlide("Tenaga", "", ""), true)
		s.Require().NoError(err)
		s.True(created)
		s.Equal(1, second.SortOrder())
	})

	s.Run("several matches are ambiguous", func() {
		_, _, err := s.service.UpsertForPage(s.ctx, "/business/energy", newSlide("Lain", "", ""), false)
		s.ErrorIs(err, ErrAmbiguousBinding)
	})

	s.Run("legacy slide counts as bound", func() {
		legacy := s.create(newSlide("Tambang", "", "/business/mining"))
		got, created, err := s.service.UpsertForPage(s.ctx, "/business/mining", newSlide("Tambang", "", ""), true)
		s.Require().NoError(err)
		s.False(created)
		s.Equal(legacy.ID(), got.ID())
	})

	s.Run("invalid page path", func() {
		_, _, err := s.service.UpsertForPage(s.ctx, "https://example.com", newSlide("X", "", ""), false)
		s.Error(err)
	})
}

func (s *SlidesSuite) TestUpsertForPage_AmbiguousLegacyRow() {
	s.create(newSlide("Campur", "https://shop.example.com", "/business/retail"))

	_, _, err := s.service.UpsertForPage(s.ctx, "/business/retail", newSlide("Baru", "", ""), false)
	s.ErrorIs(err, ErrAmbiguousBinding)
}

func (s *SlidesSuite) TestReplaceForPage() {
	home := s.create(newSlide("Beranda", "/contact", ""))
	s.create(newSlide("Lama", "", "/business/energy"))
	s.create(newSlide("Explicit", "", "").BoundTo("/business/energy"))
	other := s.create(newSlide("Other", "", "").BoundTo("/business/mining"))

	replaced, err := s.service.ReplaceForPage(s.ctx, "/business/energy", []slide.Slide{
		newSlide("Satu", "", ""),
		newSlide("Dua", "", ""),
	})
	s.Require().NoError(err)
	s.Require().Len(replaced, 2)
	s.Equal(0, replaced[0].SortOrder())
	s.Equal(1, replaced[1].SortOrder())

	page, err := s.service.ForPage(s.ctx, "/business/energy")
	s.Require().NoError(err)
	s.Require().Len(page, 2)
	s.Equal("Satu", page[0].Title().Primary())
	s.Equal("Dua", page[1].Title().Primary())

	for _, id := range []string{home.ID(), other.ID()} {
		exists, err := s.store.Exists(s.ctx, repository.WithID(id))
		s.Require().NoError(err)
		s.True(exists)
	}

	s.Run("empty list clears the page", func() {
		_, err := s.service.ReplaceForPage(s.ctx, "/business/energy", nil)
		s.Require().NoError(err)
		page, err := s.service.ForPage(s.ctx, "/business/energy")
		s.Require().NoError(err)
		s.Empty(page)
	})
}

func (s *SlidesSuite) TestHomeRotation() {
	s.create(newSlide("B", "/about", "").WithSortOrder(1))
	s.create(newSlide("A", "", "https://example.com/promo").WithSortOrder(0))
	s.create(newSlide("Hidden", "", "").Deactivate())
	s.create(newSlide("Page", "", "/business/energy"))
	s.create(newSlide("Ambiguous", "/x", "/business/retail"))

	home, err := s.service.HomeRotation(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(home, 2)
	s.Equal("A", home[0].Title().Primary())
	s.Equal("B", home[1].Title().Primary())
}

func (s *SlidesSuite) TestAuditAndBackfill() {
	s.create(newSlide("Home", "", ""))
	legacy := s.create(newSlide("Legacy", "", "/business/energy"))
	s.create(newSlide("Explicit", "", "").BoundTo("/business/mining"))
	ambiguous := s.create(newSlide("Ambiguous", "/x", "/business/retail"))

	audit, err := s.service.Audit(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, audit.Home)
	s.Equal(2, audit.PageBound)
	s.Equal(1, audit.Legacy)
	s.Equal(map[string]int{"/business/energy": 1, "/business/mining": 1}, audit.Pages)
	s.Require().Len(audit.Ambiguous, 1)
	s.Equal(ambiguous.ID(), audit.Ambiguous[0].ID)

	s.Run("dry run writes nothing", func() {
		report, err := s.service.BackfillBindings(s.ctx, true)
		s.Require().NoError(err)
		s.Equal(1, report.Updated)
		got, err := s.store.FindOne(s.ctx, repository.WithID(legacy.ID()))
		s.Require().NoError(err)
		s.Nil(got.PageBinding())
	})

	s.Run("writes explicit binding", func() {
		report, err := s.service.BackfillBindings(s.ctx, false)
		s.Require().NoError(err)
		s.Equal(1, report.Updated)
		s.Equal(1, report.Skipped)
		s.Equal(1, report.Failed)
		s.Equal(ambiguous.ID(), report.Failures[0].ID)

		got, err := s.store.FindOne(s.ctx, repository.WithID(legacy.ID()))
		s.Require().NoError(err)
		s.Require().NotNil(got.PageBinding())
		s.Equal("/business/energy", *got.PageBinding())
	})

	s.Run("second run is a no-op", func() {
		report, err := s.service.BackfillBindings(s.ctx, false)
		s.Require().NoError(err)
		s.Zero(report.Updated)
	})
}

package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/helixml/sitekit/domain/repository"
	"github.com/helixml/sitekit/domain/slide"
)

// AmbiguousSlide is a slide whose binding needs manual resolution.
type AmbiguousSlide struct {
	ID     string
	Title  string
	Reason string
}

// BindingAudit summarises how slides are bound.
type BindingAudit struct {
	Home      int
	PageBound int
	Legacy    int
	Pages     map[string]int
	Ambiguous []AmbiguousSlide
}

// Slides binds content slides to pages.
type Slides struct {
	repository.Collection[slide.Slide]
	store  slide.Store
	logger *slog.Logger
}

// NewSlides creates a new Slides service.
func NewSlides(store slide.Store, logger *slog.Logger) *Slides {
	return &Slides{
		Collection: repository.NewCollection[slide.Slide](store),
		store:      store,
		logger:     logger,
	}
}

// UpsertForPage makes sure pagePath has a slide like s. Existing slides
// bound to the page (explicitly or through the legacy secondary link) are
// matched, also by primary title when matchTitle is set. One match is
// returned as is; several fail with ErrAmbiguousBinding; none inserts s
// bound to the page after its last slide.
func (s *Slides) UpsertForPage(ctx context.Context, pagePath string, candidate slide.Slide, matchTitle bool) (slide.Slide, bool, error) {
	if !slide.IsPagePath(pagePath) {
		return slide.Slide{}, false, fmt.Errorf("upsert slide: invalid page path %q", pagePath)
	}

	var result slide.Slide
	created := false
	err := s.store.Atomic(ctx, func(tx slide.Store) error {
		bound, err := boundTo(ctx, tx, pagePath)
		if err != nil {
			return err
		}

		matches := bound
		if matchTitle {
			matches = nil
			for _, b := range bound {
				if b.Title().Primary() == candidate.Title().Primary() {
					matches = append(matches, b)
				}
			}
		}

		switch len(matches) {
		case 0:
		case 1:
			result = matches[0]
			return nil
		default:
			return fmt.Errorf("upsert slide for %s: %w: %d slides match", pagePath, ErrAmbiguousBinding, len(matches))
		}

		result, err = tx.Create(ctx, candidate.BoundTo(pagePath).WithSortOrder(nextSlideOrder(bound)))
		if err != nil {
			return storeError("insert slide", err)
		}
		created = true
		return nil
	})
	if err != nil {
		return slide.Slide{}, false, err
	}

	if created {
		s.logger.InfoContext(ctx, "slide inserted",
			slog.String("id", result.ID()),
			slog.String("page", pagePath),
			slog.Int("sort_order", result.SortOrder()),
		)
	}
	return result, created, nil
}

// ReplaceForPage deletes every slide bound to pagePath and inserts slides in
// order, all in one transaction. An empty list leaves the page without
// slides.
func (s *Slides) ReplaceForPage(ctx context.Context, pagePath string, slides []slide.Slide) ([]slide.Slide, error) {
	if !slide.IsPagePath(pagePath) {
		return nil, fmt.Errorf("replace slides: invalid page path %q", pagePath)
	}

	var inserted []slide.Slide
	deleted := int64(0)
	err := s.store.Atomic(ctx, func(tx slide.Store) error {
		bound, err := boundTo(ctx, tx, pagePath)
		if err != nil {
			return err
		}
		if len(bound) > 0 {
			ids := make([]string, len(bound))
			for i, b := range bound {
				ids[i] = b.ID()
			}
			deleted, err = tx.DeleteBy(ctx, slide.WithIDs(ids))
			if err != nil {
				return storeError("delete page slides", err)
			}
		}

		inserted = make([]slide.Slide, 0, len(slides))
		for i, candidate := range slides {
			created, err := tx.Create(ctx, candidate.BoundTo(pagePath).WithSortOrder(i))
			if err != nil {
				return storeError("insert slide", err)
			}
			inserted = append(inserted, created)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "page slides replaced",
		slog.String("page", pagePath),
		slog.Int64("deleted", deleted),
		slog.Int("inserted", len(inserted)),
	)
	return inserted, nil
}

// ForPage returns the active slides bound to pagePath in rotation order.
func (s *Slides) ForPage(ctx context.Context, pagePath string) ([]slide.Slide, error) {
	bound, err := boundTo(ctx, s.store, pagePath)
	if err != nil {
		return nil, err
	}
	return activeOnly(bound), nil
}

// HomeRotation returns the active home-rotation slides in rotation order.
// Slides with an undecidable binding are left out.
func (s *Slides) HomeRotation(ctx context.Context) ([]slide.Slide, error) {
	all, err := s.store.Find(ctx, append(slide.WithRotationOrder(), repository.WithActive(true))...)
	if err != nil {
		return nil, storeError("load slides", err)
	}
	var out []slide.Slide
	for _, sl := range all {
		b, err := slide.ClassifyBinding(sl)
		if err != nil {
			s.logger.WarnContext(ctx, "slide skipped from home rotation", slog.String("id", sl.ID()), slog.String("error", err.Error()))
			continue
		}
		if b.Kind() == slide.HomeRotation {
			out = append(out, sl)
		}
	}
	return out, nil
}

// Audit classifies every slide's binding.
func (s *Slides) Audit(ctx context.Context) (BindingAudit, error) {
	all, err := s.store.Find(ctx, slide.WithRotationOrder()...)
	if err != nil {
		return BindingAudit{}, storeError("load slides", err)
	}

	audit := BindingAudit{Pages: map[string]int{}}
	for _, sl := range all {
		b, err := slide.ClassifyBinding(sl)
		if err != nil {
			audit.Ambiguous = append(audit.Ambiguous, AmbiguousSlide{
				ID:     sl.ID(),
				Title:  sl.Title().String(),
				Reason: err.Error(),
			})
			continue
		}
		switch b.Kind() {
		case slide.HomeRotation:
			audit.Home++
		case slide.PageBound:
			audit.PageBound++
			audit.Pages[b.PagePath()]++
			if b.Legacy() {
				audit.Legacy++
			}
		}
	}
	return audit, nil
}

// BackfillBindings writes the explicit page binding for every slide bound
// only through the legacy secondary link. Ambiguous slides are reported as
// failures. Running it again finds nothing left to update.
func (s *Slides) BackfillBindings(ctx context.Context, dryRun bool) (Report, error) {
	report := NewReport("slides.backfill")
	unbound, err := s.store.Find(ctx, append(slide.WithRotationOrder(), slide.WithUnbound())...)
	if err != nil {
		return report, storeError("load unbound slides", err)
	}

	for _, sl := range unbound {
		b, err := slide.ClassifyBinding(sl)
		if err != nil {
			report.Fail(sl.ID(), err)
			continue
		}
		if b.Kind() != slide.PageBound {
			report.Skipped++
			continue
		}
		if !dryRun {
			if _, err := s.store.Save(ctx, sl.BoundTo(b.PagePath())); err != nil {
				report.Fail(sl.ID(), storeError("save slide", err))
				continue
			}
		}
		report.Updated++
		s.logger.DebugContext(ctx, "slide binding backfilled",
			slog.String("id", sl.ID()),
			slog.String("page", b.PagePath()),
			slog.Bool("dry_run", dryRun),
		)
	}
	return report, nil
}

// boundTo returns the slides bound to pagePath in rotation order: explicit
// bindings plus legacy rows resolved through the secondary link. A legacy
// row with that secondary link that cannot be resolved fails the lookup.
func boundTo(ctx context.Context, store slide.Store, pagePath string) ([]slide.Slide, error) {
	explicit, err := store.Find(ctx, append(slide.WithRotationOrder(), slide.WithPageBinding(pagePath))...)
	if err != nil {
		return nil, storeError("load page slides", err)
	}
	legacy, err := store.Find(ctx, append(slide.WithRotationOrder(), slide.WithUnbound(), slide.WithSecondaryLink(pagePath))...)
	if err != nil {
		return nil, storeError("load legacy page slides", err)
	}

	out := explicit
	for _, sl := range legacy {
		b, err := slide.ClassifyBinding(sl)
		if err != nil {
			return nil, fmt.Errorf("resolve slides for %s: %w", pagePath, err)
		}
		if b.Kind() == slide.PageBound && b.PagePath() == pagePath {
			out = append(out, sl)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SortOrder() != out[j].SortOrder() {
			return out[i].SortOrder() < out[j].SortOrder()
		}
		return out[i].ID() < out[j].ID()
	})
	return out, nil
}

func nextSlideOrder(slides []slide.Slide) int {
	next := 0
	for _, sl := range slides {
		if sl.SortOrder() >= next {
			next = sl.SortOrder() + 1
		}
	}
	return next
}

func activeOnly(slides []slide.Slide) []slide.Slide {
	out := make([]slide.Slide, 0, len(slides))
	for _, sl := range slides {
		if sl.IsActive() {
			out = append(out, sl)
		}
	}
	return out
}

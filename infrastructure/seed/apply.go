package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/helixml/sitekit/application/service"
	"github.com/helixml/sitekit/domain/business"
	"github.com/helixml/sitekit/domain/migration"
	"github.com/helixml/sitekit/domain/navigation"
	"github.com/helixml/sitekit/domain/slide"
)

// Services are the services a seed writes through.
type Services struct {
	Navigation    *service.Navigation
	Slides        *service.Slides
	Documents     *service.Documents
	BusinessLines *service.BusinessLines
	Logger        *slog.Logger
}

// Migration wraps s as a ledger migration. Applying it again with the same
// file content is skipped by the ledger.
func (s Seed) Migration(svc Services) migration.Migration {
	description := s.Description
	if description == "" && s.path != "" {
		description = "seed " + s.path
	}
	return migration.Migration{
		Version:     s.Version,
		Description: description,
		Checksum:    s.checksum,
		Up: func(ctx context.Context) error {
			report, err := s.Apply(ctx, svc)
			svc.logger().InfoContext(ctx, "seed applied", report.LogAttrs()...)
			return err
		},
	}
}

// Apply writes every section of s. A record that fails is counted in the
// report and the run moves on to the next one; the returned error joins
// every record failure so a partly applied seed is never recorded as done.
// Each write is idempotent, so the seed can be run again once fixed.
func (s Seed) Apply(ctx context.Context, svc Services) (service.Report, error) {
	a := &applier{svc: svc, report: service.NewReport("seed." + s.Version)}
	a.menus(ctx, s.Menus)
	a.slides(ctx, s.Slides)
	a.documents(ctx, s.Documents)
	a.businessLines(ctx, s.BusinessLines)
	return a.report, errors.Join(a.errs...)
}

type applier struct {
	svc    Services
	report service.Report
	errs   []error
}

func (a *applier) fail(ctx context.Context, key string, err error) {
	a.report.Fail(key, err)
	a.errs = append(a.errs, fmt.Errorf("%s: %w", key, err))
	a.svc.logger().WarnContext(ctx, "seed record failed",
		slog.String("record", key),
		slog.String("error", err.Error()),
	)
}

func (a *applier) menus(ctx context.Context, groups []MenuGroup) {
	for i, g := range groups {
		key := fmt.Sprintf("menus[%d]", i)
		location, err := navigation.ParseLocation(g.Location)
		if err != nil {
			a.fail(ctx, key, err)
			continue
		}
		var parentID *string
		if g.Under != nil {
			anchor, err := a.svc.Navigation.ResolveAnchor(ctx, service.MenuMatch{
				Label:    g.Under.Label,
				Path:     g.Under.Path,
				Location: location,
			})
			if err != nil {
				a.fail(ctx, key, err)
				continue
			}
			id := anchor.ID()
			parentID = &id
		}
		a.menuItems(ctx, key, parentID, location, g.Items)
	}
}

// menuItems ensures items under parentID. The children of an item that
// fails are not attempted.
func (a *applier) menuItems(ctx context.Context, key string, parentID *string, location navigation.Location, items []MenuItem) {
	for _, item := range items {
		order := -1
		if item.SortOrder != nil {
			order = *item.SortOrder
		}
		itemKey := fmt.Sprintf("%s %q", key, item.Label.ID)
		saved, created, err := a.svc.Navigation.Ensure(ctx, parentID, item.toDomain(location), order)
		if err != nil {
			a.fail(ctx, itemKey, err)
			continue
		}
		if created {
			a.report.Inserted++
		} else {
			a.report.Skipped++
		}
		id := saved.ID()
		a.menuItems(ctx, itemKey, &id, location, item.Children)
	}
}

func (a *applier) slides(ctx context.Context, pages []PageSlides) {
	for _, page := range pages {
		key := "slides " + page.Page
		if page.Mode == ModeReplace {
			candidates := make([]slide.Slide, 0, len(page.Items))
			for _, item := range page.Items {
				candidates = append(candidates, item.toDomain())
			}
			inserted, err := a.svc.Slides.ReplaceForPage(ctx, page.Page, candidates)
			if err != nil {
				a.fail(ctx, key, err)
				continue
			}
			a.report.Inserted += len(inserted)
			continue
		}
		for _, item := range page.Items {
			_, created, err := a.svc.Slides.UpsertForPage(ctx, page.Page, item.toDomain(), page.MatchTitle)
			if err != nil {
				// The page's bindings are unusable for every remaining item.
				a.fail(ctx, key, err)
				break
			}
			if created {
				a.report.Inserted++
			} else {
				a.report.Skipped++
			}
		}
	}
}

func (a *applier) documents(ctx context.Context, docs []Document) {
	for _, d := range docs {
		_, created, err := a.svc.Documents.Ensure(ctx, d.toDomain())
		if err != nil {
			a.fail(ctx, "document "+d.FileURL, err)
			continue
		}
		if created {
			a.report.Inserted++
		} else {
			a.report.Skipped++
		}
	}
}

func (a *applier) businessLines(ctx context.Context, lines []BusinessLine) {
	for _, l := range lines {
		key := "business line " + l.Slug
		line, created, err := a.svc.BusinessLines.Ensure(ctx, l.params())
		if err != nil {
			a.fail(ctx, key, err)
			continue
		}
		if created {
			a.report.Inserted++
		} else {
			a.report.Skipped++
		}
		collections := l.collections()
		for _, kind := range business.Kinds() {
			details := collections[kind]
			if details == nil {
				continue
			}
			items := make([]business.DetailContent, len(*details))
			for i, d := range *details {
				items[i] = d.content()
			}
			if _, err := a.svc.BusinessLines.ReplaceDetails(ctx, line.ID(), kind, items); err != nil {
				a.fail(ctx, fmt.Sprintf("%s %s", key, kind), err)
				continue
			}
			a.report.Updated++
		}
	}
}

func (svc Services) logger() *slog.Logger {
	if svc.Logger == nil {
		return slog.Default()
	}
	return svc.Logger
}

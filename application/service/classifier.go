package service

import (
	"context"
	"log/slog"

	"github.com/helixml/sitekit/domain/bilingual"
	"github.com/helixml/sitekit/domain/document"
	"github.com/helixml/sitekit/domain/taxonomy"
)

// ClassifyParams configures a classification run.
type ClassifyParams struct {
	// DryRun computes decisions without writing.
	DryRun bool
	// PurgePromotional deletes documents matched by a delete rule. Without
	// it they are only reported.
	PurgePromotional bool
	// Types limits the run to documents currently carrying these codes.
	Types []string
}

// ClassifyReport is a Report plus the documents that need a human look.
type ClassifyReport struct {
	Report
	Unclassified       []string
	YearConflicts      []string
	AmbiguousModifiers []string
}

// Classifier normalizes investor documents against the taxonomy.
type Classifier struct {
	store    document.Store
	registry *taxonomy.Registry
	logger   *slog.Logger
}

// NewClassifier creates a new Classifier service.
func NewClassifier(store document.Store, registry *taxonomy.Registry, logger *slog.Logger) *Classifier {
	return &Classifier{store: store, registry: registry, logger: logger}
}

// Registry returns the rule table in use.
func (s *Classifier) Registry() *taxonomy.Registry {
	return s.registry
}

// Preview returns the decision for a document without touching the store.
func (s *Classifier) Preview(title bilingual.Text, code string, year int, quarter *int) taxonomy.Decision {
	return s.registry.Classify(taxonomy.Input{Title: title, Code: code, Year: year, Quarter: quarter})
}

// Run classifies every selected document. Unchanged documents are not
// written, so a second run reports everything as skipped. Per-document
// failures are collected and the run carries on.
func (s *Classifier) Run(ctx context.Context, params ClassifyParams) (ClassifyReport, error) {
	report := ClassifyReport{Report: NewReport("documents.classify")}

	options := document.WithPublicationOrder()
	if len(params.Types) > 0 {
		options = append(options, document.WithTypeIn(params.Types))
	}
	docs, err := s.store.Find(ctx, options...)
	if err != nil {
		return report, storeError("load documents", err)
	}

	for _, doc := range docs {
		in := taxonomy.Input{Title: doc.Title(), Code: doc.Type(), Year: doc.Year(), Quarter: doc.Quarter()}
		decision := s.registry.Classify(in)

		if decision.YearConflict {
			report.YearConflicts = append(report.YearConflicts, doc.ID())
			s.logger.WarnContext(ctx, "document year disagrees with title",
				slog.String("id", doc.ID()),
				slog.Int("year", doc.Year()),
				slog.Int("title_year", decision.InferredYear),
			)
		}

		if decision.AmbiguousModifier {
			report.AmbiguousModifiers = append(report.AmbiguousModifiers, doc.ID())
			s.logger.WarnContext(ctx, "document title names more than one meeting kind",
				slog.String("id", doc.ID()),
				slog.String("rule", decision.Rule),
				slog.String("title", doc.Title().String()),
			)
		}

		switch decision.Action {
		case taxonomy.ActionDelete:
			s.purge(ctx, &report, doc, decision, params)
		case taxonomy.ActionReclassify:
			if !decision.Changes(in) {
				report.Skipped++
				continue
			}
			if !params.DryRun {
				if _, err := s.store.Save(ctx, doc.Reclassify(decision.Code, decision.Title)); err != nil {
					report.Fail(doc.ID(), storeError("save document", err))
					continue
				}
			}
			report.Updated++
			s.logger.DebugContext(ctx, "document reclassified",
				slog.String("id", doc.ID()),
				slog.String("rule", decision.Rule),
				slog.String("from", doc.Type()),
				slog.String("to", decision.Code),
				slog.Bool("retitled", decision.Retitled),
				slog.Bool("dry_run", params.DryRun),
			)
		default:
			if !s.registry.IsKnown(doc.Type()) {
				report.Unclassified = append(report.Unclassified, doc.ID())
				s.logger.WarnContext(ctx, "document has no taxonomy code",
					slog.String("id", doc.ID()),
					slog.String("code", doc.Type()),
					slog.String("title", doc.Title().String()),
				)
			}
			report.Skipped++
		}
	}
	return report, nil
}

func (s *Classifier) purge(ctx context.Context, report *ClassifyReport, doc document.Document, decision taxonomy.Decision, params ClassifyParams) {
	if !params.PurgePromotional {
		report.Skipped++
		s.logger.InfoContext(ctx, "document matches delete rule, kept",
			slog.String("id", doc.ID()),
			slog.String("rule", decision.Rule),
		)
		return
	}
	if !params.DryRun {
		if err := s.store.Delete(ctx, doc); err != nil {
			report.Fail(doc.ID(), storeError("delete document", err))
			return
		}
	}
	report.Deleted++
	s.logger.InfoContext(ctx, "document deleted",
		slog.String("id", doc.ID()),
		slog.String("rule", decision.Rule),
		slog.Bool("dry_run", params.DryRun),
	)
}

package service

import (
	"fmt"
	"log/slog"

	"github.com/helixml/sitekit/internal/metrics"
)

// Failure is one record a batch run could not process.
type Failure struct {
	ID     string
	Reason string
}

// Report summarises a batch run. Batch runs continue past per-record
// failures and collect them here.
type Report struct {
	Operation string
	Inserted  int
	Updated   int
	Skipped   int
	Deleted   int
	Failed    int
	Failures  []Failure
}

// NewReport creates an empty report for operation.
func NewReport(operation string) Report {
	return Report{Operation: operation}
}

// Fail records a failed record.
func (r *Report) Fail(id string, err error) {
	r.Failed++
	r.Failures = append(r.Failures, Failure{ID: id, Reason: err.Error()})
}

// Merge adds other's counts and failures to r.
func (r *Report) Merge(other Report) {
	r.Inserted += other.Inserted
	r.Updated += other.Updated
	r.Skipped += other.Skipped
	r.Deleted += other.Deleted
	r.Failed += other.Failed
	r.Failures = append(r.Failures, other.Failures...)
}

// Total returns the number of records the run looked at.
func (r Report) Total() int {
	return r.Inserted + r.Updated + r.Skipped + r.Deleted + r.Failed
}

// Changed reports whether the run wrote anything.
func (r Report) Changed() bool {
	return r.Inserted+r.Updated+r.Deleted > 0
}

// LogAttrs returns the counts as structured log attributes.
func (r Report) LogAttrs() []any {
	return []any{
		slog.String("operation", r.Operation),
		slog.Int("inserted", r.Inserted),
		slog.Int("updated", r.Updated),
		slog.Int("skipped", r.Skipped),
		slog.Int("deleted", r.Deleted),
		slog.Int("failed", r.Failed),
	}
}

// Record adds the report's counts to m.
func (r Report) Record(m *metrics.Metrics) {
	m.Add(r.Operation, metrics.OutcomeInserted, r.Inserted)
	m.Add(r.Operation, metrics.OutcomeUpdated, r.Updated)
	m.Add(r.Operation, metrics.OutcomeSkipped, r.Skipped)
	m.Add(r.Operation, metrics.OutcomeDeleted, r.Deleted)
	m.Add(r.Operation, metrics.OutcomeFailed, r.Failed)
}

// String returns a one-line summary.
func (r Report) String() string {
	return fmt.Sprintf("%s: inserted=%d updated=%d skipped=%d deleted=%d failed=%d",
		r.Operation, r.Inserted, r.Updated, r.Skipped, r.Deleted, r.Failed)
}

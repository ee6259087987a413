// Package migration models versioned maintenance operations and the ledger
// recording which of them have run.
package migration

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/helixml/sitekit/domain/repository"
)

// Migration is a versioned, re-runnable maintenance operation.
type Migration struct {
	Version     string
	Description string
	Checksum    string
	Up          func(ctx context.Context) error
}

// Checksum returns the hex sha256 of data, for use as Migration.Checksum.
func Checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Applied is a ledger entry for a migration that completed.
type Applied struct {
	version     string
	description string
	checksum    string
	appliedAt   time.Time
}

// NewApplied records m as applied now.
func NewApplied(m Migration) Applied {
	return Applied{
		version:     m.Version,
		description: m.Description,
		checksum:    m.Checksum,
		appliedAt:   time.Now().UTC(),
	}
}

// ReconstructApplied recreates a ledger entry from persistence.
func ReconstructApplied(version, description, checksum string, appliedAt time.Time) Applied {
	return Applied{version: version, description: description, checksum: checksum, appliedAt: appliedAt}
}

// Version returns the migration version.
func (a Applied) Version() string { return a.version }

// Description returns the migration description.
func (a Applied) Description() string { return a.description }

// Checksum returns the checksum recorded when the migration ran.
func (a Applied) Checksum() string { return a.checksum }

// AppliedAt returns when the migration ran.
func (a Applied) AppliedAt() time.Time { return a.appliedAt }

// Store defines persistence for the ledger.
type Store interface {
	repository.Store[Applied]
	Create(ctx context.Context, a Applied) (Applied, error)
}

// WithVersion filters by version.
func WithVersion(version string) repository.Option {
	return repository.WithID(version)
}

// WithLedgerOrder orders by application time, then version.
func WithLedgerOrder() []repository.Option {
	return []repository.Option{repository.WithOrderAsc("applied_at"), repository.WithOrderAsc("id")}
}

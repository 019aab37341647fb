// Package store persists a ledger of completed pipeline runs.
package store

import (
	"context"

	"github.com/sells-group/leadfill-cli/internal/model"
)

// Store defines the persistence interface for the run ledger.
type Store interface {
	// Runs
	RecordRun(ctx context.Context, run *model.Run) error
	GetRun(ctx context.Context, runID string) (*model.Run, error)
	ListRuns(ctx context.Context, limit int) ([]model.Run, error)
	FindRunsByInputs(ctx context.Context, leadsDigest, dealersDigest string) ([]model.Run, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

var _ Store = (*SQLiteStore)(nil)

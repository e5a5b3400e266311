package storage

import (
	"context"

	"github.com/google/uuid"
	"github.com/paulutsch/clembench/pkg/experiment"
	"github.com/paulutsch/clembench/pkg/transcript"
)

// Storage persists episode results and serves static game resources.
// Results are dynamic state (Redis-backed in production); instance
// files are static resources loaded from the data directory.
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// Episode results
	SaveResult(ctx context.Context, result *transcript.Result) error
	LoadResult(ctx context.Context, id uuid.UUID) (*transcript.Result, error)
	ListResultIDs(ctx context.Context) ([]uuid.UUID, error)
	DeleteResult(ctx context.Context, id uuid.UUID) error

	// Static resources (filesystem-backed)
	GetExperiments(gameName string) (*experiment.File, error)
}

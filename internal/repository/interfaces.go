package repository

import (
	"context"

	"github.com/astroplot/orrery/internal/types"
)

// RunRepo is the persistence interface for the run archive.
type RunRepo interface {
	Create(ctx context.Context, run *types.RunResult) error
	GetByID(ctx context.Context, id string) (*types.RunResult, error)
	List(ctx context.Context, command string, limit int) ([]*types.RunResult, error)
	Delete(ctx context.Context, id string) error
	Prune(ctx context.Context, keep int) (int, error)
}

var _ RunRepo = (*SQLiteRunRepo)(nil)

// Package vaccines is the dose inventory.
package vaccines

import (
	"context"

	"github.com/dmitrijs2005/vaxscheduler/internal/scheduler/models"
)

type Repository interface {
	Find(ctx context.Context, name string) (*models.Vaccine, error)
	Create(ctx context.Context, name string, initialDoses int64) error
	Increase(ctx context.Context, name string, amount int64) error
	// TryDecrement removes amount doses only if at least amount are present.
	TryDecrement(ctx context.Context, name string, amount int64) error
	List(ctx context.Context) ([]models.Vaccine, error)
}

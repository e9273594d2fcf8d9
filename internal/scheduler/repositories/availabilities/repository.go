// Package availabilities is the ledger of caregiver slots.
package availabilities

import (
	"context"

	"github.com/dmitrijs2005/vaxscheduler/internal/scheduler/models"
)

type Repository interface {
	Publish(ctx context.Context, caregiver string, date models.Date) error
	ListCaregiversForDate(ctx context.Context, date models.Date) ([]string, error)
	// ClaimOneForDate removes one slot for date and returns its caregiver.
	// The slot of the lexicographically smallest caregiver username is taken.
	ClaimOneForDate(ctx context.Context, date models.Date) (string, error)
}

// Package appointments is the durable record of committed reservations.
package appointments

import (
	"context"

	"github.com/dmitrijs2005/vaxscheduler/internal/scheduler/models"
)

type Repository interface {
	// NextID allocates the next appointment id. Inside a transaction the
	// counter row stays locked until commit or rollback.
	NextID(ctx context.Context) (int64, error)
	Record(ctx context.Context, a *models.Appointment) error
	ListForPatient(ctx context.Context, username string) ([]models.Appointment, error)
	ListForCaregiver(ctx context.Context, username string) ([]models.Appointment, error)
}

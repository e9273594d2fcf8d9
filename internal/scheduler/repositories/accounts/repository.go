// Package accounts stores patient and caregiver credentials.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/vaxscheduler/internal/scheduler/models"
)

type Repository interface {
	Create(ctx context.Context, account *models.Account) error
	Get(ctx context.Context, username string) (*models.Account, error)
	Exists(ctx context.Context, username string) (bool, error)
}

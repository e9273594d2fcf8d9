// Package repomanager opens the scheduler store, applies the embedded goose
// migrations and vends repositories bound to a dbx.DBTX, so the same code
// runs against the pool or inside a transaction.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/vaxscheduler/internal/dbx"
	"github.com/dmitrijs2005/vaxscheduler/internal/scheduler/models"
	"github.com/dmitrijs2005/vaxscheduler/internal/scheduler/repositories/accounts"
	"github.com/dmitrijs2005/vaxscheduler/internal/scheduler/repositories/appointments"
	"github.com/dmitrijs2005/vaxscheduler/internal/scheduler/repositories/availabilities"
	"github.com/dmitrijs2005/vaxscheduler/internal/scheduler/repositories/vaccines"
	"github.com/jmoiron/sqlx"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sqlx.DB) error
	Accounts(db dbx.DBTX, role models.Role) accounts.Repository
	Vaccines(db dbx.DBTX) vaccines.Repository
	Availabilities(db dbx.DBTX) availabilities.Repository
	Appointments(db dbx.DBTX) appointments.Repository
}

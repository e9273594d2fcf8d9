package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/vaxscheduler/internal/common"
	"github.com/dmitrijs2005/vaxscheduler/internal/dbx"
	"github.com/dmitrijs2005/vaxscheduler/internal/scheduler/models"
	"github.com/jmoiron/sqlx"
)

// SQLRepository keeps the accounts of one role in that role's table.
// Patients and caregivers are separate namespaces.
type SQLRepository struct {
	db    dbx.DBTX
	role  models.Role
	table string
}

func NewSQLRepository(db dbx.DBTX, role models.Role) *SQLRepository {
	table := "patients"
	if role == models.RoleCaregiver {
		table = "caregivers"
	}
	return &SQLRepository{db: db, role: role, table: table}
}

func (r *SQLRepository) Create(ctx context.Context, account *models.Account) error {
	query := fmt.Sprintf(`INSERT INTO %s (username, salt, hash) VALUES (?, ?, ?)`, r.table)

	_, err := r.db.ExecContext(ctx, r.db.Rebind(query), account.Username, account.Salt, account.Hash)
	if err != nil {
		return dbx.Wrap(err)
	}

	account.Role = r.role
	return nil
}

func (r *SQLRepository) Get(ctx context.Context, username string) (*models.Account, error) {
	query := fmt.Sprintf(`SELECT username, salt, hash FROM %s WHERE username = ?`, r.table)

	account := &models.Account{}
	err := sqlx.GetContext(ctx, r.db, account, r.db.Rebind(query), username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, dbx.Wrap(err)
	}

	account.Role = r.role
	return account, nil
}

func (r *SQLRepository) Exists(ctx context.Context, username string) (bool, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE username = ?`, r.table)

	var n int64
	if err := sqlx.GetContext(ctx, r.db, &n, r.db.Rebind(query), username); err != nil {
		return false, dbx.Wrap(err)
	}
	return n > 0, nil
}

package availabilities

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

const (
	// PostgreSQL: concurrent claimers skip rows another transaction holds.
	claimQueryPostgres = `DELETE FROM availabilities
WHERE (caregiver_username, slot_date) IN (
	SELECT caregiver_username, slot_date FROM availabilities
	WHERE slot_date = ?
	ORDER BY caregiver_username
	LIMIT 1
	FOR UPDATE SKIP LOCKED
)
RETURNING caregiver_username`

	// SQLite serialises writers, so the plain subquery is enough.
	claimQuerySQLite = `DELETE FROM availabilities
WHERE slot_date = ? AND caregiver_username = (
	SELECT MIN(caregiver_username) FROM availabilities WHERE slot_date = ?
)
RETURNING caregiver_username`
)

type SQLRepository struct {
	db dbx.DBTX
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) Publish(ctx context.Context, caregiver string, date models.Date) error {
	query := `INSERT INTO availabilities (caregiver_username, slot_date) VALUES (?, ?)`

	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), caregiver, date); err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return fmt.Errorf("caregiver %q: %w", caregiver, common.ErrNotFound)
		}
		return dbx.Wrap(err)
	}
	return nil
}

func (r *SQLRepository) ListCaregiversForDate(ctx context.Context, date models.Date) ([]string, error) {
	query := `SELECT caregiver_username FROM availabilities WHERE slot_date = ? ORDER BY caregiver_username`

	var names []string
	if err := sqlx.SelectContext(ctx, r.db, &names, r.db.Rebind(query), date); err != nil {
		return nil, dbx.Wrap(err)
	}
	return names, nil
}

func (r *SQLRepository) ClaimOneForDate(ctx context.Context, date models.Date) (string, error) {
	var row *sqlx.Row
	if r.db.DriverName() == "pgx" {
		row = r.db.QueryRowxContext(ctx, r.db.Rebind(claimQueryPostgres), date)
	} else {
		row = r.db.QueryRowxContext(ctx, r.db.Rebind(claimQuerySQLite), date, date)
	}

	var caregiver string
	if err := row.Scan(&caregiver); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("%w on %s", common.ErrNoAvailability, date)
		}
		return "", dbx.Wrap(err)
	}
	return caregiver, nil
}

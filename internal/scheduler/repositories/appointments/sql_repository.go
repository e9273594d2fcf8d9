package appointments

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

var errCounterMissing = errors.New("appointment id counter row is missing")

type SQLRepository struct {
	db dbx.DBTX
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) NextID(ctx context.Context) (int64, error) {
	query := `UPDATE appointment_ids SET last_id = last_id + 1 WHERE singleton = 1 RETURNING last_id`

	var id int64
	if err := r.db.QueryRowxContext(ctx, query).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("db error: %w", errCounterMissing)
		}
		return 0, dbx.Wrap(err)
	}
	return id, nil
}

func (r *SQLRepository) Record(ctx context.Context, a *models.Appointment) error {
	query := `INSERT INTO appointments (id, caregiver_username, vaccine_name, patient_username, slot_date)
VALUES (?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, r.db.Rebind(query), a.ID, a.Caregiver, a.Vaccine, a.Patient, a.Date)
	if err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return fmt.Errorf("appointment %d references a missing row: %w", a.ID, common.ErrNotFound)
		}
		return dbx.Wrap(err)
	}
	return nil
}

func (r *SQLRepository) ListForPatient(ctx context.Context, username string) ([]models.Appointment, error) {
	return r.list(ctx, "patient_username", username)
}

func (r *SQLRepository) ListForCaregiver(ctx context.Context, username string) ([]models.Appointment, error) {
	return r.list(ctx, "caregiver_username", username)
}

func (r *SQLRepository) list(ctx context.Context, column, username string) ([]models.Appointment, error) {
	query := fmt.Sprintf(`SELECT id, caregiver_username, vaccine_name, patient_username, slot_date
FROM appointments WHERE %s = ? ORDER BY id`, column)

	var out []models.Appointment
	if err := sqlx.SelectContext(ctx, r.db, &out, r.db.Rebind(query), username); err != nil {
		return nil, dbx.Wrap(err)
	}
	return out, nil
}

package vaccines

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

type SQLRepository struct {
	db dbx.DBTX
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) Find(ctx context.Context, name string) (*models.Vaccine, error) {
	query := `SELECT name, doses FROM vaccines WHERE name = ?`

	v := &models.Vaccine{}
	err := sqlx.GetContext(ctx, r.db, v, r.db.Rebind(query), name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, dbx.Wrap(err)
	}
	return v, nil
}

func (r *SQLRepository) Create(ctx context.Context, name string, initialDoses int64) error {
	if name == "" {
		return fmt.Errorf("%w: empty vaccine name", common.ErrInvalidArgument)
	}
	if initialDoses < 0 {
		return fmt.Errorf("%w: negative dose count %d", common.ErrInvalidArgument, initialDoses)
	}

	query := `INSERT INTO vaccines (name, doses) VALUES (?, ?)`
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), name, initialDoses); err != nil {
		return dbx.Wrap(err)
	}
	return nil
}

func (r *SQLRepository) Increase(ctx context.Context, name string, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: dose amount must be positive, got %d", common.ErrInvalidArgument, amount)
	}

	query := `UPDATE vaccines SET doses = doses + ? WHERE name = ?`
	res, err := r.db.ExecContext(ctx, r.db.Rebind(query), amount, name)
	if err != nil {
		return dbx.Wrap(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return dbx.Wrap(err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *SQLRepository) TryDecrement(ctx context.Context, name string, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: dose amount must be positive, got %d", common.ErrInvalidArgument, amount)
	}

	// the guard and the write are one statement, so two decrements can never
	// both observe the same remaining dose
	query := `UPDATE vaccines SET doses = doses - ? WHERE name = ? AND doses >= ?`
	res, err := r.db.ExecContext(ctx, r.db.Rebind(query), amount, name, amount)
	if err != nil {
		return dbx.Wrap(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return dbx.Wrap(err)
	}
	if n > 0 {
		return nil
	}

	v, err := r.Find(ctx, name)
	if err != nil {
		return err
	}
	return &common.InsufficientStockError{Vaccine: name, Available: v.Doses, Requested: amount}
}

func (r *SQLRepository) List(ctx context.Context) ([]models.Vaccine, error) {
	query := `SELECT name, doses FROM vaccines ORDER BY name`

	var out []models.Vaccine
	if err := sqlx.SelectContext(ctx, r.db, &out, query); err != nil {
		return nil, dbx.Wrap(err)
	}
	return out, nil
}

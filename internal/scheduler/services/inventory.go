package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/dmitrijs2005/vaxscheduler/internal/common"
	"github.com/dmitrijs2005/vaxscheduler/internal/dbx"
	"github.com/dmitrijs2005/vaxscheduler/internal/logging"
	"github.com/dmitrijs2005/vaxscheduler/internal/scheduler/models"
	"github.com/dmitrijs2005/vaxscheduler/internal/scheduler/repositories/repomanager"
	"github.com/jmoiron/sqlx"
)

type InventoryService struct {
	db          *sqlx.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewInventoryService(db *sqlx.DB, m repomanager.RepositoryManager, logger logging.Logger) *InventoryService {
	return &InventoryService{db: db, repomanager: m, logger: logger}
}

// ParseAmount accepts a non-negative base-10 integer and nothing else.
func ParseAmount(literal string) (int64, error) {
	n, err := strconv.ParseInt(literal, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: amount %q must be a non-negative integer", common.ErrInvalidArgument, literal)
	}
	return n, nil
}

// AddDoses adds amount doses to vaccine, creating it when it is unknown.
// Adding zero doses to an existing vaccine changes nothing. Caregivers only.
func (s *InventoryService) AddDoses(ctx context.Context, session *Session, vaccine, amountLiteral string) (*models.Vaccine, error) {
	if err := requireRole(session, models.RoleCaregiver); err != nil {
		return nil, err
	}
	if vaccine == "" {
		return nil, fmt.Errorf("%w: empty vaccine name", common.ErrInvalidArgument)
	}
	amount, err := ParseAmount(amountLiteral)
	if err != nil {
		return nil, err
	}

	var result *models.Vaccine
	err = runWithRetry(ctx, s.logger, nil, func(ctx context.Context) error {
		return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			repo := s.repomanager.Vaccines(tx)

			current, err := repo.Find(ctx, vaccine)
			switch {
			case errors.Is(err, common.ErrNotFound):
				err = repo.Create(ctx, vaccine, amount)
			case err == nil && amount > math.MaxInt64-current.Doses:
				err = fmt.Errorf("%w: %d more doses of %s would overflow the stock", common.ErrInvalidArgument, amount, vaccine)
			case err == nil && amount > 0:
				err = repo.Increase(ctx, vaccine, amount)
			}
			if err != nil {
				return err
			}

			result, err = repo.Find(ctx, vaccine)
			return err
		})
	})
	if err != nil {
		s.logger.Warn(ctx, "add doses failed", append(session.LogArgs(), "vaccine", vaccine, "error", err)...)
		return nil, err
	}

	s.logger.Info(ctx, "doses added", append(session.LogArgs(), "vaccine", vaccine, "amount", amount, "doses", result.Doses)...)
	return result, nil
}

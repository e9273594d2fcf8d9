package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/vaxscheduler/internal/common"
	"github.com/dmitrijs2005/vaxscheduler/internal/dbx"
	"github.com/dmitrijs2005/vaxscheduler/internal/logging"
)

// maxAttempts bounds how often one unit of work is run.
const maxAttempts = 2

// shouldRetry reports a lost race: a key collision or a store-side
// serialization failure. Client errors other than the collision are final.
func shouldRetry(err error) bool {
	return common.IsRetryable(err) || dbx.IsTransient(err)
}

// runWithRetry runs fn and, if it lost a race, runs it once more. A second
// lost race is reported as ErrReservationFailed. onRetry may be nil.
func runWithRetry(ctx context.Context, logger logging.Logger, onRetry func(), fn func(ctx context.Context) error) error {
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = fn(ctx)
		if err == nil || !shouldRetry(err) {
			return err
		}
		if ctx.Err() != nil {
			return err
		}
		if attempt < maxAttempts {
			logger.Warn(ctx, "unit of work lost a race, retrying", "attempt", attempt, "error", err)
			if onRetry != nil {
				onRetry()
			}
		}
	}
	if errors.Is(err, common.ErrReservationFailed) {
		return err
	}
	return fmt.Errorf("%w after %d attempts: %v", common.ErrReservationFailed, maxAttempts, err)
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/vaxscheduler/internal/common"
)

// SearchSchedule handles search_caregiver_schedule <date>.
func (a *App) SearchSchedule(ctx context.Context, args []string) error {
	return a.do(ctx, "search_caregiver_schedule", func(ctx context.Context) error {
		if a.session == nil {
			a.println(msgLoginFirst)
			return fmt.Errorf("%w: not logged in", common.ErrAuthFailure)
		}
		if len(args) != 1 {
			a.println(msgTryAgain)
			return errUsage
		}

		sched, err := a.svc.Availability.Search(ctx, a.session, args[0])
		if err != nil {
			if errors.Is(err, common.ErrInvalidArgument) {
				a.println(msgInvalidDate)
			} else {
				a.println(msgTryAgain)
			}
			return err
		}

		a.println("available caregivers:")
		if len(sched.Caregivers) > 0 {
			a.println("|" + strings.Join(sched.Caregivers, "|"))
		}
		a.println("available vaccines & doses:")
		for _, v := range sched.Vaccines {
			a.printf("vaccine name: %s available doses: %d", v.Name, v.Doses)
		}
		return nil
	})
}

// UploadAvailability handles upload_availability <date>.
func (a *App) UploadAvailability(ctx context.Context, args []string) error {
	return a.do(ctx, "upload_availability", func(ctx context.Context) error {
		if !a.session.IsCaregiver() {
			a.println(msgCaregiverFirst)
			return fmt.Errorf("%w: caregiver session required", common.ErrAuthFailure)
		}
		if len(args) != 1 {
			a.println(msgTryAgain)
			return errUsage
		}

		err := a.svc.Availability.Upload(ctx, a.session, args[0])
		switch {
		case err == nil:
			a.println(msgUploaded)
		case errors.Is(err, common.ErrInvalidArgument):
			a.println(msgInvalidDate)
		case errors.Is(err, common.ErrDuplicateKey):
			a.println(msgAlreadyUploaded)
		default:
			a.println(msgUploadFailed)
		}
		return err
	})
}

// AddDoses handles add_doses <vaccine> <amount>.
func (a *App) AddDoses(ctx context.Context, args []string) error {
	return a.do(ctx, "add_doses", func(ctx context.Context) error {
		if !a.session.IsCaregiver() {
			a.println(msgCaregiverFirst)
			return fmt.Errorf("%w: caregiver session required", common.ErrAuthFailure)
		}
		if len(args) != 2 {
			a.println(msgTryAgain)
			return errUsage
		}

		_, err := a.svc.Inventory.AddDoses(ctx, a.session, args[0], args[1])
		switch {
		case err == nil:
			a.println(msgDosesUpdated)
		case errors.Is(err, common.ErrInvalidArgument):
			a.println(msgTryAgain)
		default:
			a.println(msgAddDosesFailed)
		}
		return err
	})
}

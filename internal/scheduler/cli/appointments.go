package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/vaxscheduler/internal/common"
)

// Reserve handles reserve <date> <vaccine>.
func (a *App) Reserve(ctx context.Context, args []string) error {
	return a.do(ctx, "reserve", func(ctx context.Context) error {
		if !a.session.IsPatient() {
			a.println(msgPatientFirst)
			return fmt.Errorf("%w: patient session required", common.ErrAuthFailure)
		}
		if len(args) != 2 {
			a.println(msgTryAgain)
			return errUsage
		}
		date, vaccine := args[0], args[1]

		res, err := a.svc.Reservations.Reserve(ctx, a.session, date, vaccine)
		switch {
		case err == nil:
			a.printf(msgReserved, res.Caregiver)
			a.printf(msgAppointmentID, res.AppointmentID)
		case errors.Is(err, common.ErrInvalidArgument):
			a.println(msgInvalidDate)
		case errors.Is(err, common.ErrNotFound), errors.Is(err, common.ErrInsufficientStock):
			a.printf(msgNotAvailable, vaccine)
		case errors.Is(err, common.ErrNoAvailability):
			a.printf(msgNoCaregiver, date)
		case errors.Is(err, common.ErrReservationFailed):
			a.println(msgReserveRetry)
		default:
			a.println(msgReserveFailed)
		}
		return err
	})
}

// ShowAppointments lists the logged-in identity's appointments ordered by id.
// Patients see the caregiver, caregivers see the patient.
func (a *App) ShowAppointments(ctx context.Context, args []string) error {
	return a.do(ctx, "show_appointments", func(ctx context.Context) error {
		if a.session == nil {
			a.println(msgLoginFirst)
			return fmt.Errorf("%w: not logged in", common.ErrAuthFailure)
		}
		if len(args) != 0 {
			a.println(msgTryAgain)
			return errUsage
		}

		list, err := a.svc.Appointments.Show(ctx, a.session)
		if err != nil {
			a.println(msgTryAgain)
			return err
		}
		if len(list) == 0 {
			a.println(msgNoAppointments)
			return nil
		}

		for _, ap := range list {
			a.println("Appointment details: ")
			if a.session.IsPatient() {
				a.printf("Appointment ID: %d Vaccine Scheduled: %s Appointment Time: %s Caregiver Name: %s",
					ap.ID, ap.Vaccine, ap.Date, ap.Caregiver)
			} else {
				a.printf("Appointment ID: %d Vaccine Scheduled: %s Appointment Time: %s Patient Name: %s",
					ap.ID, ap.Vaccine, ap.Date, ap.Patient)
			}
		}
		return nil
	})
}

// Cancel is not supported yet; it always reports the operation unavailable.
func (a *App) Cancel(ctx context.Context, _ []string) error {
	return a.do(ctx, "cancel", func(ctx context.Context) error {
		a.println(msgNotImplemented)
		return nil
	})
}

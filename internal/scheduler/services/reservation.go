package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/vaxscheduler/internal/common"
	"github.com/dmitrijs2005/vaxscheduler/internal/dbx"
	"github.com/dmitrijs2005/vaxscheduler/internal/logging"
	"github.com/dmitrijs2005/vaxscheduler/internal/scheduler/metrics"
	"github.com/dmitrijs2005/vaxscheduler/internal/scheduler/models"
	"github.com/dmitrijs2005/vaxscheduler/internal/scheduler/notify"
	"github.com/dmitrijs2005/vaxscheduler/internal/scheduler/repositories/repomanager"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ReservationState is the progress of one reservation attempt.
type ReservationState int

const (
	StateValidating ReservationState = iota
	StateReservingStock
	StateClaimingSlot
	StatePersisting
	StateCommitted
	StateFailed
)

func (s ReservationState) String() string {
	switch s {
	case StateValidating:
		return "Validating"
	case StateReservingStock:
		return "ReservingStock"
	case StateClaimingSlot:
		return "ClaimingSlot"
	case StatePersisting:
		return "Persisting"
	case StateCommitted:
		return "Committed"
	case StateFailed:
		return "Failed"
	default:
		return fmt.Sprintf("ReservationState(%d)", int(s))
	}
}

// Reservation is the result of a committed reservation.
type Reservation struct {
	AppointmentID int64
	Caregiver     string
	Vaccine       string
	Date          models.Date
}

// ReservationService books a dose and a caregiver slot for a patient as one
// unit of work: decrement stock, claim a slot, allocate an id and record the
// appointment, all in one transaction.
type ReservationService struct {
	db          *sqlx.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
	metrics     *metrics.Metrics
	publisher   notify.Publisher
	now         func() time.Time
}

func NewReservationService(db *sqlx.DB, m repomanager.RepositoryManager, logger logging.Logger,
	mx *metrics.Metrics, publisher notify.Publisher) *ReservationService {
	if publisher == nil {
		publisher = notify.NopPublisher{}
	}
	return &ReservationService{
		db:          db,
		repomanager: m,
		logger:      logger,
		metrics:     mx,
		publisher:   publisher,
		now:         time.Now,
	}
}

// tracker logs every state transition of one reservation.
type tracker struct {
	logger logging.Logger
	state  ReservationState
}

func (t *tracker) to(ctx context.Context, next ReservationState) {
	t.logger.Debug(ctx, "reservation state", "from", t.state.String(), "to", next.String())
	t.state = next
}

func (t *tracker) fail(ctx context.Context, err error) error {
	t.logger.Info(ctx, "reservation failed", "state", t.state.String(), "error", err)
	t.state = StateFailed
	return err
}

// Reserve books vaccineName on dateLiteral for the patient of session.
//
// Stock is taken before the slot. If no slot can be claimed, or anything
// later fails, the transaction rolls back and the dose is returned. A lost
// race on the appointment id reruns the whole unit once; a second loss
// yields ErrReservationFailed.
func (s *ReservationService) Reserve(ctx context.Context, session *Session, dateLiteral, vaccineName string) (*Reservation, error) {
	start := s.now()
	t := &tracker{logger: s.logger.With(session.LogArgs()...), state: StateValidating}

	res, err := s.reserve(ctx, t, session, dateLiteral, vaccineName)
	s.metrics.ReservationFinished(err, s.now().Sub(start))
	if err != nil {
		return nil, t.fail(ctx, err)
	}

	t.to(ctx, StateCommitted)
	t.logger.Info(ctx, "reservation committed",
		"appointment_id", res.AppointmentID, "caregiver", res.Caregiver,
		"vaccine", res.Vaccine, "date", res.Date.String())

	s.announce(ctx, t.logger, session, res)
	return res, nil
}

func (s *ReservationService) reserve(ctx context.Context, t *tracker, session *Session, dateLiteral, vaccineName string) (*Reservation, error) {
	if err := requireRole(session, models.RolePatient); err != nil {
		return nil, err
	}
	date, err := models.ParseDate(dateLiteral)
	if err != nil {
		return nil, err
	}
	if vaccineName == "" {
		return nil, fmt.Errorf("%w: empty vaccine name", common.ErrInvalidArgument)
	}

	var res *Reservation
	err = runWithRetry(ctx, t.logger, s.metrics.ReservationRetried, func(ctx context.Context) error {
		t.state = StateValidating
		var err error
		res, err = s.reserveOnce(ctx, t, session.Username, date, vaccineName)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *ReservationService) reserveOnce(ctx context.Context, t *tracker, patient string, date models.Date, vaccine string) (*Reservation, error) {
	var res *Reservation

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		t.to(ctx, StateReservingStock)
		if err := s.repomanager.Vaccines(tx).TryDecrement(ctx, vaccine, 1); err != nil {
			return err
		}

		t.to(ctx, StateClaimingSlot)
		caregiver, err := s.repomanager.Availabilities(tx).ClaimOneForDate(ctx, date)
		if err != nil {
			return err
		}

		t.to(ctx, StatePersisting)
		appointments := s.repomanager.Appointments(tx)
		id, err := appointments.NextID(ctx)
		if err != nil {
			return err
		}
		appt := &models.Appointment{
			ID:        id,
			Caregiver: caregiver,
			Vaccine:   vaccine,
			Patient:   patient,
			Date:      date,
		}
		if err := appointments.Record(ctx, appt); err != nil {
			return err
		}

		res = &Reservation{AppointmentID: id, Caregiver: caregiver, Vaccine: vaccine, Date: date}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// announce publishes the booking after commit. A failure is logged and
// counted but never undoes the reservation.
func (s *ReservationService) announce(ctx context.Context, logger logging.Logger, session *Session, res *Reservation) {
	if _, ok := s.publisher.(notify.NopPublisher); ok {
		return
	}
	err := s.publisher.Publish(ctx, notify.AppointmentBooked{
		EventID:       uuid.New(),
		AppointmentID: res.AppointmentID,
		Patient:       session.Username,
		Caregiver:     res.Caregiver,
		Vaccine:       res.Vaccine,
		Date:          res.Date.String(),
		BookedAt:      s.now().UTC(),
	})
	s.metrics.EventPublished(err)
	if err != nil {
		logger.Warn(ctx, "appointment event not published", "appointment_id", res.AppointmentID, "error", err)
	}
}

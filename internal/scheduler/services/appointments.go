package services

import (
	"context"

	"github.com/dmitrijs2005/vaxscheduler/internal/logging"
	"github.com/dmitrijs2005/vaxscheduler/internal/scheduler/models"
	"github.com/dmitrijs2005/vaxscheduler/internal/scheduler/repositories/repomanager"
	"github.com/jmoiron/sqlx"
)

type AppointmentService struct {
	db          *sqlx.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewAppointmentService(db *sqlx.DB, m repomanager.RepositoryManager, logger logging.Logger) *AppointmentService {
	return &AppointmentService{db: db, repomanager: m, logger: logger}
}

// Show returns the appointments of the session's identity ordered by id:
// booked ones for a patient, assigned ones for a caregiver.
func (s *AppointmentService) Show(ctx context.Context, session *Session) ([]models.Appointment, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}

	repo := s.repomanager.Appointments(s.db)
	if session.IsPatient() {
		return repo.ListForPatient(ctx, session.Username)
	}
	return repo.ListForCaregiver(ctx, session.Username)
}

package services

import (
	"context"

	"github.com/dmitrijs2005/vaxscheduler/internal/logging"
	"github.com/dmitrijs2005/vaxscheduler/internal/scheduler/models"
	"github.com/dmitrijs2005/vaxscheduler/internal/scheduler/repositories/repomanager"
	"github.com/jmoiron/sqlx"
)

// Schedule is what search_caregiver_schedule shows for one date.
type Schedule struct {
	Date       models.Date
	Caregivers []string
	Vaccines   []models.Vaccine
}

type AvailabilityService struct {
	db          *sqlx.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewAvailabilityService(db *sqlx.DB, m repomanager.RepositoryManager, logger logging.Logger) *AvailabilityService {
	return &AvailabilityService{db: db, repomanager: m, logger: logger}
}

// Upload publishes the logged-in caregiver's slot for dateLiteral.
func (s *AvailabilityService) Upload(ctx context.Context, session *Session, dateLiteral string) error {
	if err := requireRole(session, models.RoleCaregiver); err != nil {
		return err
	}
	date, err := models.ParseDate(dateLiteral)
	if err != nil {
		return err
	}

	if err := s.repomanager.Availabilities(s.db).Publish(ctx, session.Username, date); err != nil {
		s.logger.Warn(ctx, "upload availability failed", append(session.LogArgs(), "date", date.String(), "error", err)...)
		return err
	}

	s.logger.Info(ctx, "availability uploaded", append(session.LogArgs(), "date", date.String())...)
	return nil
}

// Search lists the caregivers with a slot on dateLiteral and every vaccine
// with its dose count. Any logged-in identity may search.
func (s *AvailabilityService) Search(ctx context.Context, session *Session, dateLiteral string) (*Schedule, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}
	date, err := models.ParseDate(dateLiteral)
	if err != nil {
		return nil, err
	}

	caregivers, err := s.repomanager.Availabilities(s.db).ListCaregiversForDate(ctx, date)
	if err != nil {
		return nil, err
	}
	vaccines, err := s.repomanager.Vaccines(s.db).List(ctx)
	if err != nil {
		return nil, err
	}

	return &Schedule{Date: date, Caregivers: caregivers, Vaccines: vaccines}, nil
}

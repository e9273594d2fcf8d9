// Package services contains the scheduler's business logic. Every operation
// takes the caller's *Session explicitly; a nil session means nobody is
// logged in.
package services

import (
	"fmt"

	"github.com/dmitrijs2005/vaxscheduler/internal/common"
	"github.com/dmitrijs2005/vaxscheduler/internal/scheduler/models"
	"github.com/google/uuid"
)

// Session is an authenticated identity. It is created by a successful login
// and dropped at logout.
type Session struct {
	ID       uuid.UUID
	Username string
	Role     models.Role
}

func NewSession(username string, role models.Role) *Session {
	return &Session{
		ID:       uuid.New(),
		Username: username,
		Role:     role,
	}
}

func (s *Session) IsPatient() bool {
	return s != nil && s.Role == models.RolePatient
}

func (s *Session) IsCaregiver() bool {
	return s != nil && s.Role == models.RoleCaregiver
}

// LogArgs returns the key/value pairs that identify s in log records.
func (s *Session) LogArgs() []any {
	if s == nil {
		return []any{"session_id", "none"}
	}
	return []any{"session_id", s.ID.String(), "username", s.Username, "role", string(s.Role)}
}

func requireSession(s *Session) error {
	if s == nil {
		return fmt.Errorf("%w: not logged in", common.ErrAuthFailure)
	}
	return nil
}

func requireRole(s *Session, role models.Role) error {
	if err := requireSession(s); err != nil {
		return err
	}
	if s.Role != role {
		return fmt.Errorf("%w: %s session required", common.ErrAuthFailure, role)
	}
	return nil
}

package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/vaxscheduler/internal/common"
	"github.com/dmitrijs2005/vaxscheduler/internal/cryptox"
	"github.com/dmitrijs2005/vaxscheduler/internal/logging"
	"github.com/dmitrijs2005/vaxscheduler/internal/scheduler/models"
	"github.com/dmitrijs2005/vaxscheduler/internal/scheduler/repositories/repomanager"
	"github.com/jmoiron/sqlx"
)

// AccountService handles sign-up and login for both roles.
type AccountService struct {
	db          *sqlx.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewAccountService(db *sqlx.DB, m repomanager.RepositoryManager, logger logging.Logger) *AccountService {
	return &AccountService{db: db, repomanager: m, logger: logger}
}

// Register creates an account of the given role. It does not log the new
// identity in.
func (s *AccountService) Register(ctx context.Context, role models.Role, username string, password []byte) error {
	if !role.Valid() {
		return fmt.Errorf("%w: unknown role %q", common.ErrInvalidArgument, role)
	}
	if username == "" {
		return fmt.Errorf("%w: empty username", common.ErrInvalidArgument)
	}

	repo := s.repomanager.Accounts(s.db, role)

	exists, err := repo.Exists(ctx, username)
	if err != nil {
		return fmt.Errorf("error checking username: %w", err)
	}
	if exists {
		return fmt.Errorf("%s %q: %w", role, username, common.ErrDuplicateKey)
	}

	if err := CheckPasswordStrength(password); err != nil {
		return err
	}

	salt := cryptox.NewSalt()
	account := &models.Account{
		Username: username,
		Salt:     salt,
		Hash:     cryptox.HashPassword(password, salt),
	}
	if err := repo.Create(ctx, account); err != nil {
		return fmt.Errorf("error creating %s: %w", role, err)
	}

	s.logger.Info(ctx, "account created", "role", string(role), "username", username)
	return nil
}

// Login checks the credentials and opens a session. Unknown usernames and
// wrong passwords are both reported as ErrAuthFailure.
func (s *AccountService) Login(ctx context.Context, role models.Role, username string, password []byte) (*Session, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", common.ErrInvalidArgument, role)
	}

	account, err := s.repomanager.Accounts(s.db, role).Get(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown %s", common.ErrAuthFailure, role)
		}
		return nil, fmt.Errorf("error loading %s: %w", role, err)
	}

	if !cryptox.VerifyPassword(password, account.Salt, account.Hash) {
		return nil, fmt.Errorf("%w: wrong password", common.ErrAuthFailure)
	}

	session := NewSession(account.Username, role)
	s.logger.Info(ctx, "logged in", session.LogArgs()...)
	return session, nil
}

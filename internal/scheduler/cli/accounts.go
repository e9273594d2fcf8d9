package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/vaxscheduler/internal/common"
	"github.com/dmitrijs2005/vaxscheduler/internal/scheduler/models"
)

func roleTitle(role models.Role) string {
	switch role {
	case models.RolePatient:
		return "Patient"
	case models.RoleCaregiver:
		return "Caregiver"
	default:
		return string(role)
	}
}

// CreateAccount handles create_patient and create_caregiver.
func (a *App) CreateAccount(ctx context.Context, role models.Role, args []string) error {
	return a.do(ctx, "create_"+string(role), func(ctx context.Context) error {
		if a.session != nil {
			a.println(msgAlreadyLoggedIn)
			return fmt.Errorf("%w: already logged in", common.ErrAuthFailure)
		}
		if len(args) != 2 {
			a.println(msgTryAgain)
			return errUsage
		}

		password := []byte(args[1])
		defer common.WipeByteArray(password)

		err := a.svc.Accounts.Register(ctx, role, args[0], password)
		switch {
		case err == nil:
			a.printf(" *** %s account created successfully *** ", roleTitle(role))
		case errors.Is(err, common.ErrDuplicateKey):
			a.println(msgUsernameTaken)
		case errors.Is(err, common.ErrWeakPassword):
			for _, l := range weakPasswordLines {
				a.println(l)
			}
		case errors.Is(err, common.ErrInvalidArgument):
			a.println(msgTryAgain)
		default:
			a.println(msgCreateFailed)
		}
		return err
	})
}

// Login handles login_patient and login_caregiver.
func (a *App) Login(ctx context.Context, role models.Role, args []string) error {
	return a.do(ctx, "login_"+string(role), func(ctx context.Context) error {
		if a.session != nil {
			a.println(msgAlreadyLoggedIn)
			return fmt.Errorf("%w: already logged in", common.ErrAuthFailure)
		}
		if len(args) != 2 {
			a.println(msgTryAgain)
			return errUsage
		}

		password := []byte(args[1])
		defer common.WipeByteArray(password)

		session, err := a.svc.Accounts.Login(ctx, role, args[0], password)
		if err != nil {
			if common.IsClientError(err) {
				a.println(msgTryAgain)
			} else {
				a.println(msgLoginFailed)
			}
			return err
		}

		a.session = session
		a.printf("%s logged in as: %s", roleTitle(role), session.Username)
		return nil
	})
}

func (a *App) Logout(ctx context.Context, _ []string) error {
	return a.do(ctx, "logout", func(ctx context.Context) error {
		if a.session == nil {
			a.println(msgAlreadyOut)
			return fmt.Errorf("%w: not logged in", common.ErrAuthFailure)
		}

		a.logger.Info(ctx, "logged out", a.session.LogArgs()...)
		a.session = nil
		a.println(msgLoggedOut)
		return nil
	})
}

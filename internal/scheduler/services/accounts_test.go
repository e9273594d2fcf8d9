package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/vaxscheduler/internal/common"
	"github.com/dmitrijs2005/vaxscheduler/internal/logging"
	"github.com/dmitrijs2005/vaxscheduler/internal/scheduler/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountService_RegisterAndLogin(t *testing.T) {
	st := newStore(t)
	svc := NewAccountService(st.db, st.rm, logging.NewNop())
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, models.RolePatient, "pat", []byte("Passw0rd!")))

	session, err := svc.Login(ctx, models.RolePatient, "pat", []byte("Passw0rd!"))
	require.NoError(t, err)
	assert.Equal(t, "pat", session.Username)
	assert.True(t, session.IsPatient())
	assert.False(t, session.IsCaregiver())
	assert.NotEqual(t, session.ID.String(), "")

	_, err = svc.Login(ctx, models.RolePatient, "pat", []byte("wrong-Passw0rd!"))
	assert.ErrorIs(t, err, common.ErrAuthFailure)

	_, err = svc.Login(ctx, models.RoleCaregiver, "pat", []byte("Passw0rd!"))
	assert.ErrorIs(t, err, common.ErrAuthFailure, "roles are separate namespaces")

	_, err = svc.Login(ctx, models.RolePatient, "ghost", []byte("Passw0rd!"))
	assert.ErrorIs(t, err, common.ErrAuthFailure)
}

func TestAccountService_RegisterRejects(t *testing.T) {
	st := newStore(t)
	svc := NewAccountService(st.db, st.rm, logging.NewNop())
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, models.RoleCaregiver, "cg1", []byte("Passw0rd!")))

	assert.ErrorIs(t, svc.Register(ctx, models.RoleCaregiver, "cg1", []byte("Other0ne!")), common.ErrDuplicateKey)
	assert.ErrorIs(t, svc.Register(ctx, models.RoleCaregiver, "cg2", []byte("weak")), common.ErrWeakPassword)
	assert.ErrorIs(t, svc.Register(ctx, models.RoleCaregiver, "", []byte("Passw0rd!")), common.ErrInvalidArgument)
	assert.ErrorIs(t, svc.Register(ctx, models.Role("admin"), "x", []byte("Passw0rd!")), common.ErrInvalidArgument)

	_, err := svc.Login(ctx, models.Role("admin"), "x", nil)
	assert.ErrorIs(t, err, common.ErrInvalidArgument)
}

func TestAccountService_StorageFault(t *testing.T) {
	st := newStore(t)
	svc := NewAccountService(st.db, st.rm, logging.NewNop())
	require.NoError(t, st.db.Close())

	err := svc.Register(context.Background(), models.RolePatient, "pat", []byte("Passw0rd!"))
	assert.ErrorIs(t, err, common.ErrStorageUnavailable)

	_, err = svc.Login(context.Background(), models.RolePatient, "pat", []byte("Passw0rd!"))
	assert.ErrorIs(t, err, common.ErrStorageUnavailable)
	assert.NotErrorIs(t, err, common.ErrAuthFailure)
}

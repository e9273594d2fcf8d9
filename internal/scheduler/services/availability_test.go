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

func TestAvailabilityService_Upload(t *testing.T) {
	st := newStore(t)
	svc := NewAvailabilityService(st.db, st.rm, logging.NewNop())
	ctx := context.Background()
	cg := st.seedAccount(t, models.RoleCaregiver, "cg1")
	pat := st.seedAccount(t, models.RolePatient, "pat")

	require.NoError(t, svc.Upload(ctx, cg, "2024-05-01"))
	assert.ErrorIs(t, svc.Upload(ctx, cg, "2024-05-01"), common.ErrDuplicateKey)
	assert.ErrorIs(t, svc.Upload(ctx, cg, "2024-5-1"), common.ErrInvalidArgument)
	assert.ErrorIs(t, svc.Upload(ctx, pat, "2024-05-02"), common.ErrAuthFailure)
	assert.ErrorIs(t, svc.Upload(ctx, nil, "2024-05-02"), common.ErrAuthFailure)
}

func TestAvailabilityService_Search(t *testing.T) {
	st := newStore(t)
	svc := NewAvailabilityService(st.db, st.rm, logging.NewNop())
	ctx := context.Background()
	pat := st.seedAccount(t, models.RolePatient, "pat")
	st.seedAccount(t, models.RoleCaregiver, "zed")
	st.seedAccount(t, models.RoleCaregiver, "amy")
	st.seedSlot(t, "zed", "2024-05-01")
	st.seedSlot(t, "amy", "2024-05-01")
	st.seedSlot(t, "amy", "2024-05-02")
	st.seedVaccine(t, "flu", 2)
	st.seedVaccine(t, "covid", 0)

	sched, err := svc.Search(ctx, pat, "2024-05-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01", sched.Date.String())
	assert.Equal(t, []string{"amy", "zed"}, sched.Caregivers)
	assert.Equal(t, []models.Vaccine{{Name: "covid", Doses: 0}, {Name: "flu", Doses: 2}}, sched.Vaccines)

	sched, err = svc.Search(ctx, pat, "2024-06-01")
	require.NoError(t, err)
	assert.Empty(t, sched.Caregivers)

	_, err = svc.Search(ctx, nil, "2024-05-01")
	assert.ErrorIs(t, err, common.ErrAuthFailure)

	_, err = svc.Search(ctx, pat, "01-05-2024")
	assert.ErrorIs(t, err, common.ErrInvalidArgument)
}

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

func TestAppointmentService_Show(t *testing.T) {
	st := newStore(t)
	pat := st.seedAccount(t, models.RolePatient, "pat")
	other := st.seedAccount(t, models.RolePatient, "other")
	cg := st.seedAccount(t, models.RoleCaregiver, "cg1")
	st.seedSlot(t, "cg1", "2024-05-01")
	st.seedVaccine(t, "flu", 1)

	ctx := context.Background()
	show := NewAppointmentService(st.db, st.rm, logging.NewNop())

	list, err := show.Show(ctx, pat)
	require.NoError(t, err)
	assert.Empty(t, list)

	res, err := newReservationService(st).Reserve(ctx, pat, "2024-05-01", "flu")
	require.NoError(t, err)

	want := models.Appointment{
		ID:        res.AppointmentID,
		Caregiver: "cg1",
		Vaccine:   "flu",
		Patient:   "pat",
		Date:      models.MustParseDate("2024-05-01"),
	}

	list, err = show.Show(ctx, pat)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, want.ID, list[0].ID)
	assert.Equal(t, want.Caregiver, list[0].Caregiver)
	assert.Equal(t, want.Vaccine, list[0].Vaccine)
	assert.True(t, want.Date.Equal(list[0].Date))

	list, err = show.Show(ctx, cg)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "pat", list[0].Patient)

	list, err = show.Show(ctx, other)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = show.Show(ctx, nil)
	assert.ErrorIs(t, err, common.ErrAuthFailure)
}

// A caregiver publishes a slot and stocks one dose; a patient cannot stock
// doses but can book the slot, which then disappears from search.
func TestScheduler_CaregiverStocksPatientBooks(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()
	logger := logging.NewNop()

	acc := NewAccountService(st.db, st.rm, logger)
	require.NoError(t, acc.Register(ctx, models.RoleCaregiver, "cg1", []byte("Passw0rd!")))
	require.NoError(t, acc.Register(ctx, models.RolePatient, "pat", []byte("Passw0rd!")))

	cg, err := acc.Login(ctx, models.RoleCaregiver, "cg1", []byte("Passw0rd!"))
	require.NoError(t, err)
	pat, err := acc.Login(ctx, models.RolePatient, "pat", []byte("Passw0rd!"))
	require.NoError(t, err)

	avail := NewAvailabilityService(st.db, st.rm, logger)
	inv := NewInventoryService(st.db, st.rm, logger)

	require.NoError(t, avail.Upload(ctx, cg, "2024-05-01"))

	_, err = inv.AddDoses(ctx, pat, "flu", "1")
	require.ErrorIs(t, err, common.ErrAuthFailure)

	v, err := inv.AddDoses(ctx, cg, "flu", "1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), v.Doses)

	sched, err := avail.Search(ctx, pat, "2024-05-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"cg1"}, sched.Caregivers)

	res, err := newReservationService(st).Reserve(ctx, pat, "2024-05-01", "flu")
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.AppointmentID)
	assert.Equal(t, "cg1", res.Caregiver)

	sched, err = avail.Search(ctx, pat, "2024-05-01")
	require.NoError(t, err)
	assert.Empty(t, sched.Caregivers)
	require.Len(t, sched.Vaccines, 1)
	assert.Equal(t, int64(0), sched.Vaccines[0].Doses)
}

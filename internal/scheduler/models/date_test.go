package models

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/vaxscheduler/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"2024-05-01", false},
		{"2024-02-29", false},
		{"2023-02-29", true},
		{"2024-13-01", true},
		{"2024-5-1", true},
		{"05/01/2024", true},
		{"2024-05-01T00:00:00Z", true},
		{"", true},
		{"tomorrow", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := ParseDate(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, common.ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.in, d.String())
		})
	}
}

func TestDate_ValueAndScan(t *testing.T) {
	d := MustParseDate("2024-05-01")

	v, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01", v)

	var fromString, fromBytes, fromTime Date
	require.NoError(t, fromString.Scan("2024-05-01"))
	require.NoError(t, fromBytes.Scan([]byte("2024-05-01")))
	require.NoError(t, fromTime.Scan(time.Date(2024, 5, 1, 13, 0, 0, 0, time.FixedZone("X", 3600))))

	assert.True(t, d.Equal(fromString))
	assert.True(t, d.Equal(fromBytes))
	assert.True(t, d.Equal(fromTime))

	var bad Date
	assert.Error(t, bad.Scan(42))
	assert.Error(t, bad.Scan("2024-99-99"))
}

func TestDate_ZeroAndMustParse(t *testing.T) {
	assert.True(t, Date{}.IsZero())
	assert.False(t, MustParseDate("2024-01-01").IsZero())
	assert.Panics(t, func() { MustParseDate("nope") })
}

func TestRole_Valid(t *testing.T) {
	assert.True(t, RolePatient.Valid())
	assert.True(t, RoleCaregiver.Valid())
	assert.False(t, Role("admin").Valid())
}

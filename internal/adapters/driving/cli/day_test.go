package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/timecard-cli/internal/core/domain"
)

func TestDayCmd_Use(t *testing.T) {
	assert.Equal(t, "day [date]", dayCmd.Use)
	assert.Equal(t, "repair [date]", repairCmd.Use)
}

func TestDayCmd_Empty(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "day", testDate)

	require.NoError(t, err)
	assert.Contains(t, out, "Time card 2024-03-04 (Monday)")
	assert.Contains(t, out, "No entries.")
}

func TestDayCmd_ShowsEntriesAndTarget(t *testing.T) {
	s := setupTestServices(t)
	date, err := domain.ParseDay(testDate)
	require.NoError(t, err)
	_, err = s.TimeCard.Append(context.Background(), date, domain.Entry{
		Workorder:   "123456",
		Phase:       "001",
		Hours:       2.5,
		Description: "Boiler repair",
		Action:      domain.ActionWorkComplete,
		TimeCode:    domain.TimeCodeRegular,
	})
	require.NoError(t, err)

	out, err := execute(t, "day", testDate)

	require.NoError(t, err)
	assert.Contains(t, out, "123456")
	assert.Contains(t, out, "Boiler repair")
	assert.Contains(t, out, "Total: 2.5 h (target 8 h)")
}

func TestDayCmd_InvalidDate(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "day", "03/04/2024")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDayCmd_NoService(t *testing.T) {
	SetServices(nil)

	_, err := execute(t, "day")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "time card service not configured")
}

func TestRepairCmd(t *testing.T) {
	setupTestServices(t)
	_, err := execute(t, "defaults", testDate)
	require.NoError(t, err)

	out, err := execute(t, "repair", testDate)

	require.NoError(t, err)
	assert.Contains(t, out, "Renumbered 2 entries.")
}

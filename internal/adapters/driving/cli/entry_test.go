package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/timecard-cli/internal/core/domain"
)

func addTestEntry(t *testing.T, args ...string) {
	t.Helper()
	base := []string{"add", testDate, "-w", "123456", "-p", "1", "-H", "2", "-a", "work-complete", "-d", "Boiler repair"}
	_, err := execute(t, append(base, args...)...)
	require.NoError(t, err)
	resetFlags(rootCmd)
}

func testDay(t *testing.T) domain.TimeCard {
	t.Helper()
	date, err := domain.ParseDay(testDate)
	require.NoError(t, err)
	card, err := timeCardService.Day(context.Background(), date)
	require.NoError(t, err)
	return card
}

func TestAddCmd_Flags(t *testing.T) {
	for _, name := range []string{"workorder", "phase", "hours", "description", "action", "code"} {
		assert.NotNil(t, addCmd.Flags().Lookup(name), name)
		assert.NotNil(t, editCmd.Flags().Lookup(name), name)
	}
	assert.Equal(t, "H", addCmd.Flags().Lookup("hours").Shorthand)
}

func TestAddCmd(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "add", testDate, "-w", "32", "-p", "39", "-H", "0.5", "-a", "overhead", "-d", "BREAK")

	require.NoError(t, err)
	assert.Contains(t, out, "Added 2024-03-04#0")
	card := testDay(t)
	require.Equal(t, 1, card.Len())
	assert.Equal(t, "000032", card.Entries[0].Workorder)
	assert.Equal(t, "039", card.Entries[0].Phase)
	assert.Equal(t, domain.ActionOverhead, card.Entries[0].Action)
	assert.Equal(t, domain.TimeCodeRegular, card.Entries[0].TimeCode)
}

func TestAddCmd_InvalidAction(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "add", testDate, "-w", "32", "-p", "39", "-a", "napping")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, testDay(t).Len())
}

func TestAddCmd_LeaveWithoutWorkorder(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "add", testDate, "-H", "8", "-c", "HOLIDAY")

	require.NoError(t, err)
	card := testDay(t)
	require.Equal(t, 1, card.Len())
	assert.True(t, card.Entries[0].IsLeave())
}

func TestEditCmd_ChangesOnlyGivenFields(t *testing.T) {
	setupTestServices(t)
	addTestEntry(t)

	out, err := execute(t, "edit", testDate, "0", "-H", "3.25")

	require.NoError(t, err)
	assert.Contains(t, out, "Updated 2024-03-04#0")
	e := testDay(t).Entries[0]
	assert.InDelta(t, 3.25, e.Hours, 0.0001)
	assert.Equal(t, "Boiler repair", e.Description)
}

func TestEditCmd_MissingEntry(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "edit", testDate, "4", "-H", "1")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEditCmd_BadLine(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "edit", testDate, "first")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRmCmd_Renumbers(t *testing.T) {
	setupTestServices(t)
	addTestEntry(t)
	addTestEntry(t, "-d", "Second")

	out, err := execute(t, "rm", testDate, "0")

	require.NoError(t, err)
	assert.Contains(t, out, "Removed 2024-03-04#0")
	card := testDay(t)
	require.Equal(t, 1, card.Len())
	assert.Equal(t, 0, card.Entries[0].LineItem)
	assert.Equal(t, "Second", card.Entries[0].Description)
}

func TestRmCmd_DeleteAlias(t *testing.T) {
	setupTestServices(t)
	addTestEntry(t)

	_, err := execute(t, "delete", testDate, "0")

	require.NoError(t, err)
	assert.Equal(t, 0, testDay(t).Len())
}

func TestDefaultsCmd(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "defaults", testDate)

	require.NoError(t, err)
	assert.Contains(t, out, "Time card 2024-03-04")
	assert.Equal(t, 2, testDay(t).Len())
}

func TestCopyCmd(t *testing.T) {
	setupTestServices(t)
	addTestEntry(t)

	out, err := execute(t, "copy", testDate, "0", "2024-03-05")

	require.NoError(t, err)
	assert.Contains(t, out, "Copied to 2024-03-05#0")
	date, err := domain.ParseDay("2024-03-05")
	require.NoError(t, err)
	card, err := timeCardService.Day(context.Background(), date)
	require.NoError(t, err)
	require.Equal(t, 1, card.Len())
	assert.Equal(t, "Boiler repair", card.Entries[0].Description)
	assert.Equal(t, 1, testDay(t).Len())
}

func TestParseEntryKey(t *testing.T) {
	date, line, err := parseEntryKey(testDate, "3")

	require.NoError(t, err)
	assert.Equal(t, testDate, date.Format(domain.DateLayout))
	assert.Equal(t, 3, line)

	_, _, err = parseEntryKey(testDate, "-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/timecard-cli/internal/core/domain"
)

var testDay = time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(filepath.Join(t.TempDir(), "time_cards.db"))
	require.NoError(t, err)
	require.NotNil(t, store)
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func testEntry(line int, workorder string) domain.Entry {
	return domain.Entry{
		WorkDate:    testDay,
		LineItem:    line,
		Workorder:   workorder,
		Phase:       "039",
		Hours:       1.5,
		Description: "work on " + workorder,
		Action:      domain.ActionActiveOngoing,
		TimeCode:    domain.TimeCodeRegular,
	}
}

func lineItems(entries []domain.Entry) []int {
	items := make([]int, len(entries))
	for i, e := range entries {
		items[i] = e.LineItem
	}
	return items
}

func TestNewStore_CreatesDirectoryAndSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "cards.db")

	store, err := NewStore(path)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, path, store.Path())
	_, err = os.Stat(path)
	assert.NoError(t, err)

	var name string
	err = store.db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='records'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "records", name)
}

func TestNewStore_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.db")
	ctx := context.Background()

	store, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, store.EntryStore().Add(ctx, testEntry(0, "000020")))
	require.NoError(t, store.Close())

	store, err = NewStore(path)
	require.NoError(t, err)
	defer store.Close()

	entries, err := store.EntryStore().Day(ctx, testDay)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	var versions int
	require.NoError(t, store.db.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&versions))
	assert.Equal(t, 1, versions)
}

func TestNewStore_OpensExistingRecordsTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE records (work_date DATE, line_item INTEGER, workorder TEXT,
		phase TEXT, hours REAL, description TEXT, action TEXT, time_code TEXT)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO records VALUES ('2024-03-04', 0, '000032', '039', 0.5, 'BREAK', 'OVERHEAD', 'R')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO records VALUES ('2024-03-04', 1, NULL, NULL, 8, NULL, NULL, 'S')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	store, err := NewStore(path)
	require.NoError(t, err)
	defer store.Close()

	entries, err := store.EntryStore().Day(context.Background(), testDay)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "BREAK", entries[0].Description)
	assert.Equal(t, 0.5, entries[0].Hours)
	assert.Equal(t, testDay, entries[0].WorkDate)
	assert.Equal(t, domain.TimeCodeSick, entries[1].TimeCode)
	assert.Empty(t, entries[1].Workorder)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot determine home directory")
	}

	got, err := ExpandHome("~/Documents/time_cards.db")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "Documents", "time_cards.db"), got)

	got, err = ExpandHome("/tmp/x.db")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.db", got)

	got, err = ExpandHome("~other/x.db")
	require.NoError(t, err)
	assert.Equal(t, "~other/x.db", got)
}

func TestEntryStore_RoundTrip(t *testing.T) {
	store := setupTestStore(t).EntryStore()
	ctx := context.Background()

	entries := []domain.Entry{
		testEntry(0, "000020"),
		{WorkDate: testDay, LineItem: 1, Hours: 8, Description: "sick", TimeCode: domain.TimeCodeSick},
	}
	for _, e := range entries {
		require.NoError(t, store.Add(ctx, e))
	}

	for _, e := range entries {
		got, err := store.Get(ctx, e.WorkDate, e.LineItem)
		require.NoError(t, err)
		assert.Equal(t, e, *got)
	}
}

func TestEntryStore_Get_NotFound(t *testing.T) {
	store := setupTestStore(t).EntryStore()

	_, err := store.Get(context.Background(), testDay, 0)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestEntryStore_Add_InsertIfAbsent(t *testing.T) {
	store := setupTestStore(t).EntryStore()
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, testEntry(0, "000020")))
	require.NoError(t, store.Add(ctx, testEntry(0, "000099")))

	n, err := store.Count(ctx, testDay)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := store.Get(ctx, testDay, 0)
	require.NoError(t, err)
	assert.Equal(t, "000020", got.Workorder)
}

func TestEntryStore_Update(t *testing.T) {
	store := setupTestStore(t).EntryStore()
	ctx := context.Background()
	require.NoError(t, store.Add(ctx, testEntry(0, "000020")))

	changed := testEntry(0, "000021")
	changed.Hours = 4
	changed.Action = domain.ActionWorkComplete
	require.NoError(t, store.Update(ctx, changed))

	got, err := store.Get(ctx, testDay, 0)
	require.NoError(t, err)
	assert.Equal(t, changed, *got)
}

func TestEntryStore_Update_MissingKeyIsNoOp(t *testing.T) {
	store := setupTestStore(t).EntryStore()
	ctx := context.Background()

	require.NoError(t, store.Update(ctx, testEntry(3, "000020")))

	n, err := store.Count(ctx, testDay)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestEntryStore_Delete_Renumbers(t *testing.T) {
	store := setupTestStore(t).EntryStore()
	ctx := context.Background()
	for i, wo := range []string{"000001", "000002", "000003"} {
		require.NoError(t, store.Add(ctx, testEntry(i, wo)))
	}
	other := testEntry(1, "000009")
	other.WorkDate = testDay.AddDate(0, 0, 1)
	require.NoError(t, store.Add(ctx, other))

	require.NoError(t, store.Delete(ctx, testDay, 1))

	entries, err := store.Day(ctx, testDay)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, lineItems(entries))
	assert.Equal(t, "000001", entries[0].Workorder)
	assert.Equal(t, "000003", entries[1].Workorder)

	// other days keep their line items
	got, err := store.Get(ctx, other.WorkDate, 1)
	require.NoError(t, err)
	assert.Equal(t, "000009", got.Workorder)
}

func TestEntryStore_LineItemsStayDense(t *testing.T) {
	store := setupTestStore(t).EntryStore()
	ctx := context.Background()

	add := func(wo string) {
		n, err := store.Count(ctx, testDay)
		require.NoError(t, err)
		require.NoError(t, store.Add(ctx, testEntry(n, wo)))
	}
	check := func() {
		entries, err := store.Day(ctx, testDay)
		require.NoError(t, err)
		for i, e := range entries {
			assert.Equal(t, i, e.LineItem)
		}
	}

	add("000001")
	add("000002")
	add("000003")
	check()
	require.NoError(t, store.Delete(ctx, testDay, 0))
	check()
	add("000004")
	check()
	require.NoError(t, store.Delete(ctx, testDay, 2))
	check()
	require.NoError(t, store.Update(ctx, testEntry(1, "000005")))
	check()

	entries, err := store.Day(ctx, testDay)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "000002", entries[0].Workorder)
	assert.Equal(t, "000005", entries[1].Workorder)
}

func TestEntryStore_Renumber_RepairsGapsAndDuplicates(t *testing.T) {
	s := setupTestStore(t)
	store := s.EntryStore()
	ctx := context.Background()
	for _, row := range []struct {
		line int
		wo   string
	}{{2, "000001"}, {5, "000002"}, {2, "000003"}} {
		_, err := s.db.Exec(`INSERT INTO records VALUES ('2024-03-04', ?, ?, '039', 1, '', 'OVERHEAD', 'R')`, row.line, row.wo)
		require.NoError(t, err)
	}

	require.NoError(t, store.Renumber(ctx, testDay))

	entries, err := store.Day(ctx, testDay)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, lineItems(entries))
	assert.Equal(t, "000001", entries[0].Workorder)
	assert.Equal(t, "000003", entries[1].Workorder)
	assert.Equal(t, "000002", entries[2].Workorder)
}

func TestEntryStore_Update_DuplicateKeyChangesOneRow(t *testing.T) {
	s := setupTestStore(t)
	store := s.EntryStore()
	ctx := context.Background()
	for _, row := range []struct {
		line int
		wo   string
	}{{0, "000001"}, {1, "000002"}, {1, "000003"}} {
		_, err := s.db.Exec(`INSERT INTO records VALUES ('2024-03-04', ?, ?, '039', 1, '', 'OVERHEAD', 'R')`, row.line, row.wo)
		require.NoError(t, err)
	}

	require.NoError(t, store.Update(ctx, testEntry(1, "000009")))

	entries, err := store.Day(ctx, testDay)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "000009", entries[1].Workorder)
	assert.Equal(t, "000003", entries[2].Workorder)
}

func TestEntryStore_Find(t *testing.T) {
	store := setupTestStore(t).EntryStore()
	ctx := context.Background()

	a := testEntry(0, "000001")
	a.Description = "Boiler repair"
	b := testEntry(1, "000002")
	b.Description = "100% done_today"
	c := testEntry(0, "000003")
	c.WorkDate = testDay.AddDate(0, 1, 0)
	c.Description = "boiler inspection"
	for _, e := range []domain.Entry{c, a, b} {
		require.NoError(t, store.Add(ctx, e))
	}

	found, err := store.Find(ctx, "boiler", testDay, testDay.AddDate(1, 0, 0))
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "000001", found[0].Workorder)
	assert.Equal(t, "000003", found[1].Workorder)

	found, err = store.Find(ctx, "boiler", testDay, testDay)
	require.NoError(t, err)
	assert.Len(t, found, 1)

	found, err = store.Find(ctx, "0% done_", testDay, testDay)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "000002", found[0].Workorder)

	found, err = store.Find(ctx, "_", testDay, testDay)
	require.NoError(t, err)
	assert.Len(t, found, 1)
}

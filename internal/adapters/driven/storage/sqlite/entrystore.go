package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/timecard-cli/internal/core/domain"
	"github.com/custodia-labs/timecard-cli/internal/core/ports/driven"
)

// entryStore implements driven.EntryStore.
type entryStore struct {
	store *Store
}

var _ driven.EntryStore = (*entryStore)(nil)

const entryColumns = `work_date, line_item, workorder, phase, hours, description, action, time_code`

// Get retrieves the entry at (date, lineItem).
func (s *entryStore) Get(ctx context.Context, date time.Time, lineItem int) (*domain.Entry, error) {
	row := s.store.db.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM records
		WHERE work_date = ? AND line_item = ?
		ORDER BY rowid LIMIT 1`,
		dateKey(date), lineItem,
	)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting entry: %w", err)
	}
	return entry, nil
}

// Add persists the entry unless its key is taken. The check and the insert
// are one statement.
func (s *entryStore) Add(ctx context.Context, entry domain.Entry) error {
	key := dateKey(entry.WorkDate)
	_, err := s.store.db.ExecContext(ctx,
		`INSERT INTO records (`+entryColumns+`)
		SELECT ?, ?, ?, ?, ?, ?, ?, ?
		WHERE NOT EXISTS (SELECT 1 FROM records WHERE work_date = ? AND line_item = ?)`,
		key, entry.LineItem, entry.Workorder, entry.Phase, entry.Hours,
		entry.Description, string(entry.Action), string(entry.TimeCode),
		key, entry.LineItem,
	)
	if err != nil {
		return fmt.Errorf("adding entry: %w", err)
	}
	return nil
}

// Update overwrites the non-key fields of the entry at the same key. If the
// key is stored twice only the first row changes, as Get would return it.
func (s *entryStore) Update(ctx context.Context, entry domain.Entry) error {
	_, err := s.store.db.ExecContext(ctx,
		`UPDATE records
		SET workorder = ?, phase = ?, hours = ?, description = ?, action = ?, time_code = ?
		WHERE rowid = (
			SELECT rowid FROM records WHERE work_date = ? AND line_item = ? ORDER BY rowid LIMIT 1
		)`,
		entry.Workorder, entry.Phase, entry.Hours, entry.Description,
		string(entry.Action), string(entry.TimeCode),
		dateKey(entry.WorkDate), entry.LineItem,
	)
	if err != nil {
		return fmt.Errorf("updating entry: %w", err)
	}
	return nil
}

// Delete removes the entry and renumbers the rest of its date in the same
// transaction.
func (s *entryStore) Delete(ctx context.Context, date time.Time, lineItem int) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	key := dateKey(date)
	res, err := tx.ExecContext(ctx,
		`DELETE FROM records WHERE rowid = (
			SELECT rowid FROM records WHERE work_date = ? AND line_item = ? ORDER BY rowid LIMIT 1
		)`,
		key, lineItem,
	)
	if err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil
	}

	if err := renumber(ctx, tx, key); err != nil {
		return err
	}
	return tx.Commit()
}

// Day returns every entry of date ordered by line item.
func (s *entryStore) Day(ctx context.Context, date time.Time) ([]domain.Entry, error) {
	rows, err := s.store.db.QueryContext(ctx,
		`SELECT `+entryColumns+` FROM records
		WHERE work_date = ?
		ORDER BY line_item, rowid`,
		dateKey(date),
	)
	if err != nil {
		return nil, fmt.Errorf("querying day: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// Count returns the number of entries of date.
func (s *entryStore) Count(ctx context.Context, date time.Time) (int, error) {
	var n int
	err := s.store.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM records WHERE work_date = ?`, dateKey(date),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting entries: %w", err)
	}
	return n, nil
}

// Find returns entries whose description contains text within [from, to].
// Matching is case-insensitive for ASCII, as SQLite's LIKE is.
func (s *entryStore) Find(ctx context.Context, text string, from, to time.Time) ([]domain.Entry, error) {
	rows, err := s.store.db.QueryContext(ctx,
		`SELECT `+entryColumns+` FROM records
		WHERE COALESCE(description, '') LIKE ? ESCAPE '\'
		AND work_date BETWEEN ? AND ?
		ORDER BY work_date, line_item, rowid`,
		"%"+escapeLike(text)+"%", dateKey(from), dateKey(to),
	)
	if err != nil {
		return nil, fmt.Errorf("finding entries: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// Renumber rewrites the line items of date to 0..n-1 in stored order.
func (s *entryStore) Renumber(ctx context.Context, date time.Time) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := renumber(ctx, tx, dateKey(date)); err != nil {
		return err
	}
	return tx.Commit()
}

// Close closes the underlying database.
func (s *entryStore) Close() error {
	return s.store.Close()
}

// renumber assigns line items 0..n-1 to the rows of a date, ordered by
// their current line item then rowid.
func renumber(ctx context.Context, tx *sql.Tx, key string) error {
	rows, err := tx.QueryContext(ctx,
		`SELECT rowid FROM records WHERE work_date = ? ORDER BY line_item, rowid`, key,
	)
	if err != nil {
		return fmt.Errorf("listing day: %w", err)
	}
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("scanning rowid: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("listing day: %w", err)
	}
	rows.Close()

	stmt, err := tx.PrepareContext(ctx, `UPDATE records SET line_item = ? WHERE rowid = ?`)
	if err != nil {
		return fmt.Errorf("preparing renumber: %w", err)
	}
	defer stmt.Close()
	for i, id := range ids {
		if _, err := stmt.ExecContext(ctx, i, id); err != nil {
			return fmt.Errorf("renumbering entry: %w", err)
		}
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*domain.Entry, error) {
	var (
		workDate                                        any
		lineItem                                        sql.NullInt64
		hours                                           sql.NullFloat64
		workorder, phase, description, action, timeCode sql.NullString
	)
	if err := row.Scan(&workDate, &lineItem, &workorder, &phase, &hours, &description, &action, &timeCode); err != nil {
		return nil, err
	}
	date, err := parseDate(workDate)
	if err != nil {
		return nil, err
	}
	return &domain.Entry{
		WorkDate:    date,
		LineItem:    int(lineItem.Int64),
		Workorder:   workorder.String,
		Phase:       phase.String,
		Hours:       hours.Float64,
		Description: description.String,
		Action:      domain.Action(action.String),
		TimeCode:    domain.TimeCode(timeCode.String),
	}, nil
}

func scanEntries(rows *sql.Rows) ([]domain.Entry, error) {
	var entries []domain.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entries: %w", err)
	}
	return entries, nil
}

// dateKey renders the stored form of a work date.
func dateKey(t time.Time) string {
	return domain.Day(t).Format(domain.DateLayout)
}

// parseDate accepts the forms the driver may return for a DATE column.
func parseDate(v any) (time.Time, error) {
	switch d := v.(type) {
	case time.Time:
		return domain.Day(d), nil
	case string:
		return parseDateText(d)
	case []byte:
		return parseDateText(string(d))
	default:
		return time.Time{}, fmt.Errorf("unexpected work_date type %T", v)
	}
}

func parseDateText(s string) (time.Time, error) {
	if len(s) >= len(domain.DateLayout) {
		s = s[:len(domain.DateLayout)]
	}
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing work_date %q: %w", s, err)
	}
	return t, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

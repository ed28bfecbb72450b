package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/hourbook-app/hourbook/internal/domain"
)

const entryColumns = `id, userid, date, tasktype, taskid, subtaskid, description, hours, updated`

// ─── Entry CRUD ─────────────────────────────────────────────────────────────

// CreateEntry inserts a new entry for e.OwnerID and reloads the stored row
// into e (fills ID and the store-assigned Updated timestamp).
func (s *Store) CreateEntry(ctx context.Context, e *domain.TimeEntry) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO timeentry (userid, date, tasktype, taskid, subtaskid, description, hours)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, e.OwnerID, e.Date, e.TaskType, e.TaskID, e.SubTaskID, e.Description, e.Hours)
	if err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("entry id: %w", err)
	}
	return s.reloadEntry(ctx, e, e.OwnerID, id)
}

// UpdateEntry replaces the mutable fields of the row identified by e.ID and
// e.OwnerID and refreshes the updated timestamp. The owner filter makes a
// foreign id indistinguishable from a missing one.
func (s *Store) UpdateEntry(ctx context.Context, e *domain.TimeEntry) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE timeentry
		SET date = ?, tasktype = ?, taskid = ?, subtaskid = ?, description = ?, hours = ?,
		    updated = datetime('now')
		WHERE id = ? AND userid = ?
	`, e.Date, e.TaskType, e.TaskID, e.SubTaskID, e.Description, e.Hours, e.ID, e.OwnerID)
	if err != nil {
		return fmt.Errorf("update entry: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update entry: %w", err)
	}
	if n == 0 {
		return domain.ErrEntryNotFound
	}
	return s.reloadEntry(ctx, e, e.OwnerID, e.ID)
}

// DeleteEntry hard-deletes the owner's entry. No tombstone.
func (s *Store) DeleteEntry(ctx context.Context, ownerID, id int64) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM timeentry WHERE id = ? AND userid = ?
	`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	if n == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}

func (s *Store) reloadEntry(ctx context.Context, e *domain.TimeEntry, ownerID, id int64) error {
	err := s.db.GetContext(ctx, e, `
		SELECT `+entryColumns+` FROM timeentry WHERE id = ? AND userid = ?
	`, id, ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrEntryNotFound
	}
	if err != nil {
		return fmt.Errorf("reload entry: %w", err)
	}
	return nil
}

// ─── Reads ──────────────────────────────────────────────────────────────────

// EntriesByDate returns one date group's entries, newest id first.
func (s *Store) EntriesByDate(ctx context.Context, ownerID int64, date string) ([]domain.TimeEntry, error) {
	entries := []domain.TimeEntry{}
	err := s.db.SelectContext(ctx, &entries, `
		SELECT `+entryColumns+` FROM timeentry
		WHERE userid = ? AND date = ?
		ORDER BY id DESC
	`, ownerID, date)
	if err != nil {
		return nil, fmt.Errorf("select entries by date: %w", err)
	}
	return entries, nil
}

// AllEntries returns every entry for the owner, date DESC then id DESC.
func (s *Store) AllEntries(ctx context.Context, ownerID int64) ([]domain.TimeEntry, error) {
	entries := []domain.TimeEntry{}
	err := s.db.SelectContext(ctx, &entries, `
		SELECT `+entryColumns+` FROM timeentry
		WHERE userid = ?
		ORDER BY date DESC, id DESC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("select entries: %w", err)
	}
	return entries, nil
}

// ─── Date Pagination ────────────────────────────────────────────────────────

// EntriesPage returns the page-th window of distinct dates (most recent
// first) together with every entry belonging to those dates.
//
// Two-phase query: the pagination unit (date) differs from the storage unit
// (row), so the date window is selected first and the rows for those dates
// are fetched second. Both phases plus the total-date count run in one
// transaction so a concurrent write cannot shear the page.
//
// A page past the end returns an empty entry list with the original page and
// limit; that is the normal end-of-data signal, not an error.
func (s *Store) EntriesPage(ctx context.Context, ownerID int64, page, limit int) (*domain.EntriesPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin page read: %w", err)
	}
	defer tx.Rollback()

	result := &domain.EntriesPage{
		Entries: []domain.TimeEntry{},
		Page:    page,
		Limit:   limit,
	}

	// Phase 1: the date window. 0..limit dates; fewer than limit only on
	// the last page.
	dates := []string{}
	err = tx.SelectContext(ctx, &dates, `
		SELECT DISTINCT date FROM timeentry
		WHERE userid = ?
		ORDER BY date DESC
		LIMIT ? OFFSET ?
	`, ownerID, limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("select date window: %w", err)
	}

	// Unfiltered distinct-date count lets the caller compute hasMore.
	err = tx.GetContext(ctx, &result.TotalDates, `
		SELECT COUNT(DISTINCT date) FROM timeentry WHERE userid = ?
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("count dates: %w", err)
	}

	if len(dates) == 0 {
		return result, tx.Commit()
	}

	// Phase 2: every row for the windowed dates. The id tie-break makes
	// repeated identical requests return entries in the same order.
	query, args, err := sqlx.In(`
		SELECT `+entryColumns+` FROM timeentry
		WHERE userid = ? AND date IN (?)
		ORDER BY date DESC, id DESC
	`, ownerID, dates)
	if err != nil {
		return nil, fmt.Errorf("build page query: %w", err)
	}
	if err := tx.SelectContext(ctx, &result.Entries, tx.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("select page entries: %w", err)
	}

	return result, tx.Commit()
}

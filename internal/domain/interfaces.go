package domain

import "context"

// ─── Store Interfaces ───────────────────────────────────────────────────────
// These interfaces define the boundary to the relational store.
// Infrastructure implements them; application and API layers depend on them.
// Every method is scoped to one owner; implementations must attach the owner
// filter to every statement.

// EntryStore is the gateway to persisted time entries.
type EntryStore interface {
	// CreateEntry inserts a new entry and fills ID and Updated.
	CreateEntry(ctx context.Context, e *TimeEntry) error

	// UpdateEntry replaces the mutable fields of the entry identified by
	// e.ID and e.OwnerID, refreshes Updated, and reloads the stored row
	// into e. Returns ErrEntryNotFound when the id does not exist or is
	// owned by someone else.
	UpdateEntry(ctx context.Context, e *TimeEntry) error

	// DeleteEntry hard-deletes. ErrEntryNotFound on missing or foreign ids.
	DeleteEntry(ctx context.Context, ownerID, id int64) error

	// EntriesPage returns the page-th window of distinct dates (most recent
	// first) with every entry belonging to those dates. A page past the end
	// yields an empty entry list, not an error.
	EntriesPage(ctx context.Context, ownerID int64, page, limit int) (*EntriesPage, error)

	// EntriesByDate returns one date group's entries, id-descending.
	EntriesByDate(ctx context.Context, ownerID int64, date string) ([]TimeEntry, error)

	// AllEntries returns every entry for the owner ordered date DESC, id DESC.
	AllEntries(ctx context.Context, ownerID int64) ([]TimeEntry, error)
}

// StatsStore serves the read-only aggregation views. All views are
// independent and safe to run concurrently.
type StatsStore interface {
	StatsByTaskID(ctx context.Context, ownerID int64) (*TaskIDStats, error)
	StatsByTaskType(ctx context.Context, ownerID int64) (*TaskTypeStats, error)
	StatsMonthly(ctx context.Context, ownerID int64) ([]MonthlyStats, error)
	// StatsLast30Days filters to date >= since (YYYY-MM-DD, inclusive).
	StatsLast30Days(ctx context.Context, ownerID int64, since string) (*TaskIDStats, error)
	StatsSummary(ctx context.Context, ownerID int64) (*Summary, error)
}

// UserStore persists principals.
type UserStore interface {
	CreateUser(ctx context.Context, u *User) error
	UserByName(ctx context.Context, name string) (*User, error)
	UserByID(ctx context.Context, id int64) (*User, error)
}

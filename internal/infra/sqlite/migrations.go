package sqlite

import "fmt"

// ─── Schema ─────────────────────────────────────────────────────────────────

// baseMigrations returns the v1 schema statements.
// Each string is a single SQL statement (SQLite executes one at a time).
//
// Note: hours positivity is deliberately NOT a schema constraint. The rule
// lives in domain.ValidateEntry, which every write path must pass through.
func baseMigrations() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS users (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			name          TEXT NOT NULL UNIQUE,
			displayname   TEXT NOT NULL DEFAULT '',
			password_hash TEXT NOT NULL,
			created_at    TEXT NOT NULL DEFAULT (datetime('now'))
		)`,

		`CREATE TABLE IF NOT EXISTS timeentry (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			userid      INTEGER NOT NULL REFERENCES users(id),
			date        TEXT NOT NULL,
			tasktype    TEXT NOT NULL,
			taskid      INTEGER,
			description TEXT NOT NULL DEFAULT '',
			hours       REAL NOT NULL,
			updated     TEXT NOT NULL DEFAULT (datetime('now'))
		)`,

		// (userid, date) is the unit of pagination; both the distinct-date
		// window and the rows-for-dates lookup hit this index.
		`CREATE INDEX IF NOT EXISTS idx_timeentry_user_date ON timeentry(userid, date)`,
	}
}

// Migrate applies the schema. All statements are idempotent; the subtaskid
// column (a later schema revision) is added only when missing.
func (s *Store) Migrate() error {
	for _, stmt := range baseMigrations() {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return s.ensureSubTaskColumn()
}

// ensureSubTaskColumn adds the v2 subtaskid column when upgrading an older
// database. ALTER TABLE ADD COLUMN has no IF NOT EXISTS in SQLite, so the
// table info is probed first.
func (s *Store) ensureSubTaskColumn() error {
	rows, err := s.db.Query(`PRAGMA table_info(timeentry)`)
	if err != nil {
		return fmt.Errorf("inspect timeentry schema: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid        int
			name, typ  string
			notnull    int
			defaultVal any
			pk         int
		)
		if err := rows.Scan(&cid, &name, &typ, &notnull, &defaultVal, &pk); err != nil {
			return err
		}
		if name == "subtaskid" {
			return rows.Err()
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	if _, err := s.db.Exec(`ALTER TABLE timeentry ADD COLUMN subtaskid INTEGER`); err != nil {
		return fmt.Errorf("add subtaskid column: %w", err)
	}
	return nil
}

package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/hourbook-app/hourbook/internal/domain"
)

// ─── Aggregation Views ──────────────────────────────────────────────────────
// Each view runs its bucket query and its denominator query inside one
// transaction, so the percentages cannot drift against the total under
// concurrent writes. Percentages are computed here with a zero-denominator
// guard: when the scope's total hours is 0, every bucket's percentage is 0
// (never NaN, never an error).

// taskBucketCap caps the all-time and trailing-window by-task-id views.
const taskBucketCap = 100

type hoursRow struct {
	Key   int64   `db:"key"`
	Hours float64 `db:"hours"`
}

// StatsByTaskID sums hours per task id (all-time), top 100 by hours
// descending. Entries without a task id are excluded from the buckets but
// included in the denominator.
func (s *Store) StatsByTaskID(ctx context.Context, ownerID int64) (*domain.TaskIDStats, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin stats read: %w", err)
	}
	defer tx.Rollback()

	total, err := scopeTotal(ctx, tx, `SELECT COALESCE(SUM(hours), 0) FROM timeentry WHERE userid = ?`, ownerID)
	if err != nil {
		return nil, err
	}

	rows := []hoursRow{}
	err = tx.SelectContext(ctx, &rows, `
		SELECT taskid AS key, SUM(hours) AS hours
		FROM timeentry
		WHERE userid = ? AND taskid IS NOT NULL
		GROUP BY taskid
		ORDER BY hours DESC
		LIMIT ?
	`, ownerID, taskBucketCap)
	if err != nil {
		return nil, fmt.Errorf("select task id stats: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &domain.TaskIDStats{
		TaskStats:  taskStatsFrom(rows, total),
		TotalHours: total,
	}, nil
}

// StatsByTaskType sums hours per task type (all-time). No cap, and every row
// participates in both numerator and denominator.
func (s *Store) StatsByTaskType(ctx context.Context, ownerID int64) (*domain.TaskTypeStats, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin stats read: %w", err)
	}
	defer tx.Rollback()

	total, err := scopeTotal(ctx, tx, `SELECT COALESCE(SUM(hours), 0) FROM timeentry WHERE userid = ?`, ownerID)
	if err != nil {
		return nil, err
	}

	type typeRow struct {
		TaskType string  `db:"tasktype"`
		Hours    float64 `db:"hours"`
	}
	rows := []typeRow{}
	err = tx.SelectContext(ctx, &rows, `
		SELECT tasktype, SUM(hours) AS hours
		FROM timeentry
		WHERE userid = ?
		GROUP BY tasktype
		ORDER BY hours DESC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("select task type stats: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	stats := make([]domain.TaskTypeStat, 0, len(rows))
	for _, r := range rows {
		stats = append(stats, domain.TaskTypeStat{
			TaskType:   r.TaskType,
			Hours:      r.Hours,
			Percentage: percentage(r.Hours, total),
		})
	}
	return &domain.TaskTypeStats{TaskTypes: stats, TotalHours: total}, nil
}

// StatsMonthly groups hours by (calendar month, task id), excluding entries
// without a task id. Each month is its own 100% scope: the denominator is
// that month's hours, not all-time hours. Months come back most recent first.
func (s *Store) StatsMonthly(ctx context.Context, ownerID int64) ([]domain.MonthlyStats, error) {
	type monthRow struct {
		Month  string  `db:"month"`
		TaskID int64   `db:"taskid"`
		Hours  float64 `db:"hours"`
	}
	rows := []monthRow{}
	err := s.db.SelectContext(ctx, &rows, `
		SELECT strftime('%Y-%m', date) AS month, taskid, SUM(hours) AS hours
		FROM timeentry
		WHERE userid = ? AND taskid IS NOT NULL
		GROUP BY month, taskid
		ORDER BY month DESC, hours DESC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("select monthly stats: %w", err)
	}

	// Reshape into one record per month. Rows arrive month-descending, so
	// grouping by adjacency preserves the sort; the month total is the sum
	// of its own buckets, fixing each month's denominator from the same
	// result set.
	months := []domain.MonthlyStats{}
	for _, r := range rows {
		if n := len(months); n == 0 || months[n-1].Month != r.Month {
			months = append(months, domain.MonthlyStats{Month: r.Month})
		}
		m := &months[len(months)-1]
		m.TotalHours += r.Hours
		m.TaskStats = append(m.TaskStats, domain.TaskStat{TaskID: r.TaskID, Hours: r.Hours})
	}
	for i := range months {
		m := &months[i]
		for j := range m.TaskStats {
			m.TaskStats[j].Percentage = percentage(m.TaskStats[j].Hours, m.TotalHours)
		}
	}
	return months, nil
}

// StatsLast30Days is the by-task-id view restricted to date >= since. The
// denominator is the sum over the filtered window only.
func (s *Store) StatsLast30Days(ctx context.Context, ownerID int64, since string) (*domain.TaskIDStats, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin stats read: %w", err)
	}
	defer tx.Rollback()

	total, err := scopeTotal(ctx, tx,
		`SELECT COALESCE(SUM(hours), 0) FROM timeentry WHERE userid = ? AND date >= ?`,
		ownerID, since)
	if err != nil {
		return nil, err
	}

	rows := []hoursRow{}
	err = tx.SelectContext(ctx, &rows, `
		SELECT taskid AS key, SUM(hours) AS hours
		FROM timeentry
		WHERE userid = ? AND taskid IS NOT NULL AND date >= ?
		GROUP BY taskid
		ORDER BY hours DESC
		LIMIT ?
	`, ownerID, since, taskBucketCap)
	if err != nil {
		return nil, fmt.Errorf("select last 30 days stats: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &domain.TaskIDStats{
		TaskStats:  taskStatsFrom(rows, total),
		TotalHours: total,
	}, nil
}

// StatsSummary returns total hours, distinct days with entries, and the mean
// of per-date totals. The average weights each day equally, not each entry
// row: a day with one 8h entry counts the same as a day with eight 1h rows.
func (s *Store) StatsSummary(ctx context.Context, ownerID int64) (*domain.Summary, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin stats read: %w", err)
	}
	defer tx.Rollback()

	var sum domain.Summary
	err = tx.GetContext(ctx, &sum.TotalHours,
		`SELECT COALESCE(SUM(hours), 0) FROM timeentry WHERE userid = ?`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("sum hours: %w", err)
	}
	err = tx.GetContext(ctx, &sum.TotalDays,
		`SELECT COUNT(DISTINCT date) FROM timeentry WHERE userid = ?`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("count days: %w", err)
	}
	err = tx.GetContext(ctx, &sum.AvgHoursPerDay, `
		SELECT COALESCE(AVG(daily_hours), 0) FROM (
			SELECT SUM(hours) AS daily_hours
			FROM timeentry
			WHERE userid = ?
			GROUP BY date
		)
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("average daily hours: %w", err)
	}

	return &sum, tx.Commit()
}

// ─── Helpers ────────────────────────────────────────────────────────────────

func scopeTotal(ctx context.Context, tx *sqlx.Tx, query string, args ...any) (float64, error) {
	var total float64
	if err := tx.GetContext(ctx, &total, query, args...); err != nil {
		return 0, fmt.Errorf("sum scope hours: %w", err)
	}
	return total, nil
}

func taskStatsFrom(rows []hoursRow, total float64) []domain.TaskStat {
	stats := make([]domain.TaskStat, 0, len(rows))
	for _, r := range rows {
		stats = append(stats, domain.TaskStat{
			TaskID:     r.Key,
			Hours:      r.Hours,
			Percentage: percentage(r.Hours, total),
		})
	}
	return stats
}

func percentage(hours, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return hours / total * 100
}

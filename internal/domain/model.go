// Package domain contains pure business types with ZERO infrastructure imports.
// This is the innermost ring; it depends on nothing outside the standard library.
package domain

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date wire format used everywhere: YYYY-MM-DD.
const DateLayout = "2006-01-02"

// DailyTargetHours is the full-workday threshold used by the daily summary
// indicator. Not persisted; display concern only.
const DailyTargetHours = 7.5

// ─── Time Entries ───────────────────────────────────────────────────────────

// TimeEntry is the unit of record: one logged block of work hours.
// OwnerID is set at creation and immutable; every read and write is scoped
// to it at the store boundary.
type TimeEntry struct {
	ID          int64   `json:"id" db:"id"`
	OwnerID     int64   `json:"userid" db:"userid"`
	Date        string  `json:"date" db:"date"` // YYYY-MM-DD, no time component
	TaskType    string  `json:"tasktype" db:"tasktype"`
	TaskID      *int64  `json:"taskid" db:"taskid"`
	SubTaskID   *int64  `json:"subtaskid" db:"subtaskid"`
	Description string  `json:"description" db:"description"`
	Hours       float64 `json:"hours" db:"hours"`
	Updated     string  `json:"updated" db:"updated"`
}

// EntriesPage is one date-paginated window of a user's entries.
// The pagination unit is the distinct calendar date, not the row: a page
// always contains complete day groups, so the row count varies per page.
type EntriesPage struct {
	Entries    []TimeEntry `json:"entries"`
	TotalDates int         `json:"totalDates"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
}

// HasMore reports whether pages beyond this one exist.
func (p *EntriesPage) HasMore() bool {
	return p.Page*p.Limit < p.TotalDates
}

// DateGroup is all of one owner's entries sharing one calendar date.
// Derived, never stored.
type DateGroup struct {
	Date       string      `json:"date"`
	Entries    []TimeEntry `json:"entries"`
	TotalHours float64     `json:"totalHours"`
}

// MeetsTarget reports whether the day's total reaches the daily target.
func (g *DateGroup) MeetsTarget() bool {
	return g.TotalHours >= DailyTargetHours
}

// MissingHours returns how far the day falls short of the target, never negative.
func (g *DateGroup) MissingHours() float64 {
	if g.TotalHours >= DailyTargetHours {
		return 0
	}
	return DailyTargetHours - g.TotalHours
}

// ─── Statistics ─────────────────────────────────────────────────────────────

// TaskStat is one aggregation bucket keyed by task id.
// Percentage is hours over the total hours of the view's scope × 100,
// defined as 0 when the scope total is 0.
type TaskStat struct {
	TaskID     int64   `json:"taskid"`
	Hours      float64 `json:"hours"`
	Percentage float64 `json:"percentage"`
}

// TaskTypeStat is one aggregation bucket keyed by task type.
type TaskTypeStat struct {
	TaskType   string  `json:"tasktype"`
	Hours      float64 `json:"hours"`
	Percentage float64 `json:"percentage"`
}

// TaskIDStats is the all-time by-task-id view.
type TaskIDStats struct {
	TaskStats  []TaskStat `json:"taskStats"`
	TotalHours float64    `json:"totalHours"`
}

// TaskTypeStats is the all-time by-task-type view.
type TaskTypeStats struct {
	TaskTypes  []TaskTypeStat `json:"taskTypes"`
	TotalHours float64        `json:"totalHours"`
}

// MonthlyStats is one month's by-task-id buckets. Each month is its own
// 100% scope: percentages are computed against that month's hours only.
type MonthlyStats struct {
	Month      string     `json:"month"` // YYYY-MM
	TotalHours float64    `json:"totalHours"`
	TaskStats  []TaskStat `json:"taskStats"`
}

// Last30DaysStats is the trailing-window by-task-id view.
type Last30DaysStats struct {
	TaskStats  []TaskStat `json:"taskStats"`
	TotalHours float64    `json:"totalHours"`
	Period     string     `json:"period"`
}

// Summary holds coarse per-owner totals. AvgHoursPerDay is the mean of
// per-date sums, so a date with many small entries weighs the same as a
// date with one large entry.
type Summary struct {
	TotalHours     float64 `json:"totalHours"`
	TotalDays      int     `json:"totalDays"`
	AvgHoursPerDay float64 `json:"avgHoursPerDay"`
}

// StatsOverview bundles all five views for the combined endpoint.
// The views are queried independently; entries written between two of the
// queries may make them mutually inconsistent. Accepted, not a bug.
type StatsOverview struct {
	ByTaskID   *TaskIDStats     `json:"byTaskId"`
	ByTaskType *TaskTypeStats   `json:"byTaskType"`
	Monthly    []MonthlyStats   `json:"monthly"`
	Last30Days *Last30DaysStats `json:"last30Days"`
	Summary    *Summary         `json:"summary"`
}

// ─── Daily Summary ──────────────────────────────────────────────────────────

// TaskSummary is one (task type, task id) rollup within a single day.
type TaskSummary struct {
	TaskType   string  `json:"taskType"`
	TaskID     *int64  `json:"taskId"`
	TotalHours float64 `json:"totalHours"`
}

// DailySummary is the per-day rollup shown on the summary screen.
type DailySummary struct {
	Date          string        `json:"date"`
	WeekNumber    int           `json:"weekNumber"`
	TotalHours    float64       `json:"totalHours"`
	TaskSummaries []TaskSummary `json:"taskSummaries"`
}

// ─── Users ──────────────────────────────────────────────────────────────────

// User is an authenticated principal. PasswordHash never leaves the server.
type User struct {
	ID           int64  `json:"id" db:"id"`
	Name         string `json:"name" db:"name"`
	DisplayName  string `json:"displayname" db:"displayname"`
	PasswordHash string `json:"-" db:"password_hash"`
	CreatedAt    string `json:"created_at,omitempty" db:"created_at"`
}

// ─── Utilities ──────────────────────────────────────────────────────────────

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return t, nil
}

// GroupByDate folds an ordered entry slice into date groups, preserving
// order. Input must already be sorted date-descending (the pagination
// contract), so members of one date are adjacent.
func GroupByDate(entries []TimeEntry) []DateGroup {
	var groups []DateGroup
	for _, e := range entries {
		if n := len(groups); n > 0 && groups[n-1].Date == e.Date {
			g := &groups[n-1]
			g.Entries = append(g.Entries, e)
			g.TotalHours += e.Hours
			continue
		}
		groups = append(groups, DateGroup{
			Date:       e.Date,
			Entries:    []TimeEntry{e},
			TotalHours: e.Hours,
		})
	}
	return groups
}

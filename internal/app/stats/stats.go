// Package stats is the Aggregator: read-only multi-dimensional views over a
// user's entries. The views are independent and are fanned out concurrently
// for the combined overview with no ordering or cross-view consistency
// guarantee (writes landing between two view queries are an accepted
// eventual-consistency window).
package stats

import (
	"context"
	"sync"
	"time"

	"github.com/hourbook-app/hourbook/internal/domain"
)

// Last30DaysPeriod labels the trailing-window view on the wire.
const Last30DaysPeriod = "Last 30 Days"

// trailingWindowDays is the width of the trailing window.
const trailingWindowDays = 30

// Service computes aggregation views via the stats store.
type Service struct {
	store domain.StatsStore
	now   func() time.Time
}

// NewService creates the aggregator. now is swappable for tests; nil means
// time.Now.
func NewService(store domain.StatsStore, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{store: store, now: now}
}

// ByTaskID is the all-time per-task view (top 100 buckets).
func (s *Service) ByTaskID(ctx context.Context, ownerID int64) (*domain.TaskIDStats, error) {
	return s.store.StatsByTaskID(ctx, ownerID)
}

// ByTaskType is the all-time per-task-type view.
func (s *Service) ByTaskType(ctx context.Context, ownerID int64) (*domain.TaskTypeStats, error) {
	return s.store.StatsByTaskType(ctx, ownerID)
}

// Monthly is the per-month per-task view, months most recent first.
func (s *Service) Monthly(ctx context.Context, ownerID int64) ([]domain.MonthlyStats, error) {
	return s.store.StatsMonthly(ctx, ownerID)
}

// Last30Days is the trailing-window per-task view.
func (s *Service) Last30Days(ctx context.Context, ownerID int64) (*domain.Last30DaysStats, error) {
	since := s.now().AddDate(0, 0, -trailingWindowDays).Format(domain.DateLayout)
	raw, err := s.store.StatsLast30Days(ctx, ownerID, since)
	if err != nil {
		return nil, err
	}
	return &domain.Last30DaysStats{
		TaskStats:  raw.TaskStats,
		TotalHours: raw.TotalHours,
		Period:     Last30DaysPeriod,
	}, nil
}

// Summary returns total hours, distinct days, and mean of daily totals.
func (s *Service) Summary(ctx context.Context, ownerID int64) (*domain.Summary, error) {
	return s.store.StatsSummary(ctx, ownerID)
}

// Overview fans all five views out concurrently and fans them back in.
// The first error wins; partial results are discarded.
func (s *Service) Overview(ctx context.Context, ownerID int64) (*domain.StatsOverview, error) {
	var (
		wg   sync.WaitGroup
		out  domain.StatsOverview
		errs [5]error
	)

	run := func(slot int, f func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[slot] = f()
		}()
	}

	run(0, func() (err error) { out.ByTaskID, err = s.ByTaskID(ctx, ownerID); return })
	run(1, func() (err error) { out.ByTaskType, err = s.ByTaskType(ctx, ownerID); return })
	run(2, func() (err error) { out.Monthly, err = s.Monthly(ctx, ownerID); return })
	run(3, func() (err error) { out.Last30Days, err = s.Last30Days(ctx, ownerID); return })
	run(4, func() (err error) { out.Summary, err = s.Summary(ctx, ownerID); return })
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return &out, nil
}

package sqlite

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hourbook-app/hourbook/internal/domain"
)

const epsilon = 1e-9

func sumTaskPercent(stats []domain.TaskStat) float64 {
	var sum float64
	for _, s := range stats {
		sum += s.Percentage
	}
	return sum
}

// --- by task id ---

func TestStatsByTaskID(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	owner := addUser(t, store, "erin")

	addEntry(t, store, owner, "2024-01-01", "development", ptr(1), 6)
	addEntry(t, store, owner, "2024-01-02", "development", ptr(1), 2)
	addEntry(t, store, owner, "2024-01-02", "review", ptr(2), 4)
	// No task id: excluded from buckets, included in the denominator.
	addEntry(t, store, owner, "2024-01-03", "meeting", nil, 4)

	got, err := store.StatsByTaskID(ctx, owner)
	require.NoError(t, err)

	assert.Equal(t, 16.0, got.TotalHours)
	require.Len(t, got.TaskStats, 2)
	// hours descending
	assert.Equal(t, int64(1), got.TaskStats[0].TaskID)
	assert.Equal(t, 8.0, got.TaskStats[0].Hours)
	assert.InDelta(t, 50.0, got.TaskStats[0].Percentage, epsilon)
	assert.Equal(t, int64(2), got.TaskStats[1].TaskID)
	assert.InDelta(t, 25.0, got.TaskStats[1].Percentage, epsilon)

	// The null-taskid hours keep the bucket percentages from closing at 100.
	assert.InDelta(t, 75.0, sumTaskPercent(got.TaskStats), epsilon)
}

func TestStatsByTaskID_ZeroDenominator(t *testing.T) {
	store := openTestStore(t)
	owner := addUser(t, store, "erin")

	got, err := store.StatsByTaskID(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.TotalHours)
	assert.Empty(t, got.TaskStats)
}

// --- by task type ---

func TestStatsByTaskType_PercentageClosure(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	owner := addUser(t, store, "erin")

	addEntry(t, store, owner, "2024-01-01", "development", ptr(1), 5.25)
	addEntry(t, store, owner, "2024-01-02", "review", nil, 1.75)
	addEntry(t, store, owner, "2024-01-03", "meeting", nil, 3)
	addEntry(t, store, owner, "2024-01-03", "development", nil, 2)

	got, err := store.StatsByTaskType(ctx, owner)
	require.NoError(t, err)

	assert.Equal(t, 12.0, got.TotalHours)
	require.Len(t, got.TaskTypes, 3)
	assert.Equal(t, "development", got.TaskTypes[0].TaskType)
	assert.Equal(t, 7.25, got.TaskTypes[0].Hours)

	// Every row is in both numerator and denominator, so this view closes.
	var sum float64
	for _, s := range got.TaskTypes {
		sum += s.Percentage
	}
	assert.InDelta(t, 100.0, sum, epsilon)
}

// --- monthly ---

func TestStatsMonthly_EachMonthIsItsOwnScope(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	owner := addUser(t, store, "erin")

	addEntry(t, store, owner, "2024-01-10", "dev", ptr(1), 6)
	addEntry(t, store, owner, "2024-01-20", "dev", ptr(2), 2)
	addEntry(t, store, owner, "2024-02-05", "dev", ptr(1), 4)
	addEntry(t, store, owner, "2024-02-06", "dev", ptr(3), 4)

	months, err := store.StatsMonthly(ctx, owner)
	require.NoError(t, err)
	require.Len(t, months, 2)

	// most recent month first
	assert.Equal(t, "2024-02", months[0].Month)
	assert.Equal(t, 8.0, months[0].TotalHours)
	assert.InDelta(t, 100.0, sumTaskPercent(months[0].TaskStats), epsilon)

	assert.Equal(t, "2024-01", months[1].Month)
	assert.Equal(t, 8.0, months[1].TotalHours)
	assert.InDelta(t, 75.0, months[1].TaskStats[0].Percentage, epsilon)
	assert.InDelta(t, 25.0, months[1].TaskStats[1].Percentage, epsilon)
}

func TestStatsMonthly_ChangeIsScopedToOneMonth(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	owner := addUser(t, store, "erin")

	addEntry(t, store, owner, "2024-01-10", "dev", ptr(1), 6)
	jan := addEntry(t, store, owner, "2024-01-20", "dev", ptr(2), 2)
	addEntry(t, store, owner, "2024-02-05", "dev", ptr(1), 4)
	addEntry(t, store, owner, "2024-02-06", "dev", ptr(3), 4)

	before, err := store.StatsMonthly(ctx, owner)
	require.NoError(t, err)

	jan.Hours = 10
	require.NoError(t, store.UpdateEntry(ctx, &jan))

	after, err := store.StatsMonthly(ctx, owner)
	require.NoError(t, err)
	require.Len(t, after, 2)

	// February untouched: same totals, same percentages.
	assert.Equal(t, before[0], after[0])
	// January changed.
	assert.Equal(t, 16.0, after[1].TotalHours)
	assert.InDelta(t, 100.0, sumTaskPercent(after[1].TaskStats), epsilon)
}

// --- last 30 days ---

func TestStatsLast30Days_WindowFilter(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	owner := addUser(t, store, "erin")

	addEntry(t, store, owner, "2024-03-01", "dev", ptr(1), 5) // inside
	addEntry(t, store, owner, "2024-02-10", "dev", ptr(1), 3) // inside (boundary)
	addEntry(t, store, owner, "2024-02-09", "dev", ptr(2), 9) // outside

	got, err := store.StatsLast30Days(ctx, owner, "2024-02-10")
	require.NoError(t, err)

	assert.Equal(t, 8.0, got.TotalHours)
	require.Len(t, got.TaskStats, 1)
	assert.Equal(t, int64(1), got.TaskStats[0].TaskID)
	assert.InDelta(t, 100.0, got.TaskStats[0].Percentage, epsilon)
}

// --- summary ---

func TestStatsSummary(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	owner := addUser(t, store, "erin")

	addEntry(t, store, owner, "2024-01-03", "dev", ptr(1), 3)
	addEntry(t, store, owner, "2024-01-03", "dev", ptr(2), 4)
	addEntry(t, store, owner, "2024-01-01", "meeting", nil, 2)

	got, err := store.StatsSummary(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, 9.0, got.TotalHours)
	assert.Equal(t, 2, got.TotalDays)
	// mean of daily totals: (7+2)/2, not 9/2 weighted by entry count
	assert.InDelta(t, 4.5, got.AvgHoursPerDay, epsilon)
}

func TestStatsSummary_Empty(t *testing.T) {
	store := openTestStore(t)
	owner := addUser(t, store, "erin")

	got, err := store.StatsSummary(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.TotalHours)
	assert.Equal(t, 0, got.TotalDays)
	assert.False(t, math.IsNaN(got.AvgHoursPerDay))
	assert.Equal(t, 0.0, got.AvgHoursPerDay)
}

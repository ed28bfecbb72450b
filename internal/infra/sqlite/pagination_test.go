package sqlite

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- date pagination contract ---

func TestEntriesPage_ConcreteScenario(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	owner := addUser(t, store, "erin")

	// 2024-01-03: two entries (3h + 4h); 2024-01-01: one entry (2h).
	addEntry(t, store, owner, "2024-01-03", "development", ptr(1), 3)
	addEntry(t, store, owner, "2024-01-03", "review", ptr(2), 4)
	addEntry(t, store, owner, "2024-01-01", "meeting", nil, 2)

	page1, err := store.EntriesPage(ctx, owner, 1, 1)
	require.NoError(t, err)
	require.Len(t, page1.Entries, 2)
	for _, e := range page1.Entries {
		assert.Equal(t, "2024-01-03", e.Date)
	}
	assert.Equal(t, 2, page1.TotalDates)
	assert.True(t, page1.HasMore())

	page2, err := store.EntriesPage(ctx, owner, 2, 1)
	require.NoError(t, err)
	require.Len(t, page2.Entries, 1)
	assert.Equal(t, "2024-01-01", page2.Entries[0].Date)
	assert.False(t, page2.HasMore())
}

func TestEntriesPage_BeyondEndIsEmptyNotError(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	owner := addUser(t, store, "erin")
	addEntry(t, store, owner, "2024-01-03", "development", nil, 3)

	page, err := store.EntriesPage(ctx, owner, 7, 5)
	require.NoError(t, err)
	assert.Empty(t, page.Entries)
	assert.Equal(t, 7, page.Page)
	assert.Equal(t, 5, page.Limit)
	assert.Equal(t, 1, page.TotalDates)
}

func TestEntriesPage_ClampsPageAndLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	owner := addUser(t, store, "erin")
	addEntry(t, store, owner, "2024-01-03", "development", nil, 3)

	page, err := store.EntriesPage(ctx, owner, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 1, page.Limit)
	assert.Len(t, page.Entries, 1)
}

func TestEntriesPage_StableOrderWithinDate(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	owner := addUser(t, store, "erin")

	var ids []int64
	for i := 0; i < 4; i++ {
		e := addEntry(t, store, owner, "2024-01-03", "development", nil, 1)
		ids = append(ids, e.ID)
	}

	for run := 0; run < 3; run++ {
		page, err := store.EntriesPage(ctx, owner, 1, 5)
		require.NoError(t, err)
		require.Len(t, page.Entries, 4)
		// id descending within the date
		for i, e := range page.Entries {
			assert.Equal(t, ids[len(ids)-1-i], e.ID)
		}
	}
}

// seedDates inserts a varying number of entries per date across n dates and
// returns the date strings, newest first.
func seedDates(t *testing.T, store *Store, owner int64, n int) []string {
	t.Helper()
	dates := make([]string, 0, n)
	for i := 0; i < n; i++ {
		date := fmt.Sprintf("2024-03-%02d", n-i) // descending
		dates = append(dates, date)
		for j := 0; j <= i%3; j++ {
			addEntry(t, store, owner, date, "development", ptr(int64(j+1)), 1.25)
		}
	}
	return dates
}

func TestEntriesPage_CompleteDayGroups(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	owner := addUser(t, store, "erin")
	seedDates(t, store, owner, 7)

	// Property: no date ever spans two pages, for several page sizes.
	for _, limit := range []int{1, 2, 3, 5} {
		seenDates := map[string]int{} // date → page it appeared on
		seenIDs := map[int64]bool{}
		page := 1
		for {
			resp, err := store.EntriesPage(ctx, owner, page, limit)
			require.NoError(t, err)
			if len(resp.Entries) == 0 {
				break
			}
			for _, e := range resp.Entries {
				if p, ok := seenDates[e.Date]; ok {
					assert.Equal(t, p, page, "date %s split across pages (limit %d)", e.Date, limit)
				}
				seenDates[e.Date] = page
				assert.False(t, seenIDs[e.ID], "entry %d returned twice (limit %d)", e.ID, limit)
				seenIDs[e.ID] = true
			}
			page++
		}
		assert.Len(t, seenDates, 7, "limit %d should surface all 7 dates", limit)
	}
}

func TestEntriesPage_TerminatesAfterCeilNOverL(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	owner := addUser(t, store, "erin")

	const n = 7
	seedDates(t, store, owner, n)

	for _, limit := range []int{1, 2, 3, 7, 10} {
		wantPages := (n + limit - 1) / limit
		page := 1
		nonEmpty := 0
		for {
			resp, err := store.EntriesPage(ctx, owner, page, limit)
			require.NoError(t, err)
			if len(resp.Entries) == 0 {
				break
			}
			nonEmpty++
			page++
		}
		assert.Equal(t, wantPages, nonEmpty, "limit %d", limit)
	}
}

func TestEntriesPage_OtherOwnersInvisible(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	owner := addUser(t, store, "erin")
	other := addUser(t, store, "other")

	addEntry(t, store, owner, "2024-01-03", "development", nil, 3)
	addEntry(t, store, other, "2024-01-04", "development", nil, 8)

	page, err := store.EntriesPage(ctx, owner, 1, 5)
	require.NoError(t, err)
	require.Len(t, page.Entries, 1)
	assert.Equal(t, owner, page.Entries[0].OwnerID)
	assert.Equal(t, 1, page.TotalDates)
}

func TestAllEntries_Ordering(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	owner := addUser(t, store, "erin")

	addEntry(t, store, owner, "2024-01-01", "a", nil, 1)
	addEntry(t, store, owner, "2024-01-05", "b", nil, 1)
	addEntry(t, store, owner, "2024-01-05", "c", nil, 1)

	all, err := store.AllEntries(ctx, owner)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "2024-01-05", all[0].Date)
	assert.Equal(t, "c", all[0].TaskType) // higher id first within date
	assert.Equal(t, "b", all[1].TaskType)
	assert.Equal(t, "2024-01-01", all[2].Date)
}

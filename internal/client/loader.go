package client

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/hourbook-app/hourbook/internal/domain"
)

// Loader incrementally assembles a user's entries from date-paginated
// responses. It keeps an ordered entry list, a seen-id set for O(1)
// duplicate checks, a page cursor, and a "more available" flag.
//
// The seen set belongs to the loader instance; two loaders never share
// identifier state, so independent views (or test harnesses) cannot bleed
// into each other.
//
// At most one load request is in flight at a time; a load triggered while
// one is outstanding is dropped, not queued. A failed request leaves the
// local state exactly as it was and clears the in-flight flag so a retry is
// possible.
type Loader struct {
	client *Client
	limit  int

	inFlight atomic.Bool

	mu      sync.Mutex
	entries []domain.TimeEntry
	seen    map[int64]struct{}
	page    int
	hasMore bool
}

// NewLoader creates a loader fetching limit distinct dates per page.
func NewLoader(c *Client, limit int) *Loader {
	if limit < 1 {
		limit = 5
	}
	return &Loader{
		client: c,
		limit:  limit,
		seen:   map[int64]struct{}{},
	}
}

// Load performs the initial load: page 1 replaces local state wholesale.
// Dropped silently when another load is in flight.
func (l *Loader) Load(ctx context.Context) error {
	if !l.inFlight.CompareAndSwap(false, true) {
		return nil
	}
	defer l.inFlight.Store(false)

	resp, err := l.client.Entries(ctx, 1, l.limit)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries[:0:0], resp.Entries...)
	l.seen = make(map[int64]struct{}, len(resp.Entries))
	for _, e := range resp.Entries {
		l.seen[e.ID] = struct{}{}
	}
	l.page = 1
	l.hasMore = resp.HasMore()
	return nil
}

// LoadMore requests the next page and merges it in. Returns true when new
// entries were appended. Entries already present are filtered out (a date's
// membership can shift between requests); a page that is empty after
// filtering ends pagination even if the server's hasMore said otherwise,
// which keeps a misbehaving server from inducing an infinite loop.
func (l *Loader) LoadMore(ctx context.Context) (bool, error) {
	l.mu.Lock()
	if !l.hasMore {
		l.mu.Unlock()
		return false, nil
	}
	next := l.page + 1
	l.mu.Unlock()

	if !l.inFlight.CompareAndSwap(false, true) {
		return false, nil
	}
	defer l.inFlight.Store(false)

	resp, err := l.client.Entries(ctx, next, l.limit)
	if err != nil {
		return false, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	fresh := resp.Entries[:0:0]
	for _, e := range resp.Entries {
		if _, dup := l.seen[e.ID]; !dup {
			fresh = append(fresh, e)
		}
	}
	if len(fresh) == 0 {
		l.hasMore = false
		return false, nil
	}

	for _, e := range fresh {
		l.seen[e.ID] = struct{}{}
	}
	// Later pages hold strictly older dates, so appending preserves the
	// date DESC, id DESC order.
	l.entries = append(l.entries, fresh...)
	l.page = next
	l.hasMore = resp.HasMore()
	return true, nil
}

// ─── Local Views ────────────────────────────────────────────────────────────

// Entries returns a copy of the loaded entries, date DESC then id DESC.
func (l *Loader) Entries() []domain.TimeEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append(l.entries[:0:0], l.entries...)
}

// DateGroups returns the loaded entries folded into complete day groups.
func (l *Loader) DateGroups() []domain.DateGroup {
	l.mu.Lock()
	defer l.mu.Unlock()
	return domain.GroupByDate(l.entries)
}

// HasMore reports whether another page is believed to exist.
func (l *Loader) HasMore() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.hasMore
}

// Len returns the number of loaded entries.
func (l *Loader) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// ─── Mutations ──────────────────────────────────────────────────────────────
// The pagination cursor is defined over distinct dates, so any mutation that
// changes the set of dates held locally shifts every subsequent page
// boundary. Those mutations discard local state and restart from page 1;
// mutations that keep the date set intact patch in place.

// Create stores a new entry. When its date was already loaded the entry is
// spliced in locally; a new date forces a reload, because the fresh date
// may displace an already-loaded one across a page boundary.
func (l *Loader) Create(ctx context.Context, e *domain.TimeEntry) (*domain.TimeEntry, error) {
	created, err := l.client.CreateEntry(ctx, e)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	if l.dateLoaded(created.Date) {
		l.insert(*created)
		l.mu.Unlock()
		return created, nil
	}
	l.mu.Unlock()

	l.reset()
	return created, l.Load(ctx)
}

// Update replaces an entry's fields. Same-date edits patch in place; an
// edit that moves the entry to another date can both empty its old group
// and introduce a new date, so those reload from page 1.
func (l *Loader) Update(ctx context.Context, e *domain.TimeEntry) (*domain.TimeEntry, error) {
	updated, err := l.client.UpdateEntry(ctx, e)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	idx := l.indexOf(updated.ID)
	if idx < 0 || l.entries[idx].Date != updated.Date {
		l.mu.Unlock()
		l.reset()
		return updated, l.Load(ctx)
	}
	l.entries[idx] = *updated
	l.mu.Unlock()
	return updated, nil
}

// Delete removes an entry. Deleting the last entry of a date collapses that
// date group and shifts the server's page boundaries, so local state is
// discarded and reloaded; otherwise the entry is dropped in place.
func (l *Loader) Delete(ctx context.Context, id int64) error {
	if err := l.client.DeleteEntry(ctx, id); err != nil {
		return err
	}

	l.mu.Lock()
	idx := l.indexOf(id)
	if idx < 0 {
		l.mu.Unlock()
		return nil
	}
	date := l.entries[idx].Date
	if l.dateCount(date) == 1 {
		l.mu.Unlock()
		l.reset()
		return l.Load(ctx)
	}
	l.entries = append(l.entries[:idx], l.entries[idx+1:]...)
	delete(l.seen, id)
	l.mu.Unlock()
	return nil
}

// ─── Internals ──────────────────────────────────────────────────────────────

// reset discards all loaded state.
func (l *Loader) reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
	l.seen = map[int64]struct{}{}
	l.page = 0
	l.hasMore = false
}

func (l *Loader) indexOf(id int64) int {
	for i := range l.entries {
		if l.entries[i].ID == id {
			return i
		}
	}
	return -1
}

func (l *Loader) dateLoaded(date string) bool {
	for i := range l.entries {
		if l.entries[i].Date == date {
			return true
		}
	}
	return false
}

func (l *Loader) dateCount(date string) int {
	n := 0
	for i := range l.entries {
		if l.entries[i].Date == date {
			n++
		}
	}
	return n
}

// insert splices an entry into its date DESC, id DESC position.
func (l *Loader) insert(e domain.TimeEntry) {
	if _, dup := l.seen[e.ID]; dup {
		return
	}
	pos := len(l.entries)
	for i := range l.entries {
		cur := &l.entries[i]
		if cur.Date < e.Date || (cur.Date == e.Date && cur.ID < e.ID) {
			pos = i
			break
		}
	}
	l.entries = append(l.entries, domain.TimeEntry{})
	copy(l.entries[pos+1:], l.entries[pos:])
	l.entries[pos] = e
	l.seen[e.ID] = struct{}{}
}

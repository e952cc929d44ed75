package catalog

import (
	"context"
	"sync"
	"time"
)

// View tracks one browsing session's filter state, current page, and a
// generation token. Every filter change resets the page to 1 and bumps the
// generation; a result committed under a superseded generation is
// discarded so a late fetch for an old filter state never lands.
type View struct {
	mu     sync.Mutex
	filter FilterState
	page   int
	gen    uint64
	last   *Page
}

// NewView returns a view positioned at page 1 with no filters.
func NewView() *View {
	return &View{page: 1}
}

// Apply records the requested filter state and page, returning the page to
// serve and the generation token for this request. A changed filter resets
// the page to 1 regardless of the requested page.
func (v *View) Apply(state FilterState, requestedPage int) (int, uint64) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.filter.Equal(state) {
		v.filter = state
		v.page = 1
		v.gen++
		return v.page, v.gen
	}

	if requestedPage > 0 {
		v.page = requestedPage
	}
	return v.page, v.gen
}

// Commit stores the rendered page if the generation is still current.
// Returns false when a newer filter state superseded this request.
func (v *View) Commit(gen uint64, page Page) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if gen != v.gen {
		return false
	}
	v.last = &page
	return true
}

// Last returns the most recently committed page, if any.
func (v *View) Last() (Page, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.last == nil {
		return Page{}, false
	}
	return *v.last, true
}

type viewEntry struct {
	view     *View
	lastSeen time.Time
}

// Views owns the per-session browse views, evicting idle entries after the
// configured TTL.
type Views struct {
	mu      sync.Mutex
	ttl     time.Duration
	byToken map[string]*viewEntry
}

// NewViews constructs the registry. A non-positive TTL disables eviction.
func NewViews(ttl time.Duration) *Views {
	return &Views{
		ttl:     ttl,
		byToken: make(map[string]*viewEntry),
	}
}

// Get returns the view for the session token, creating it on first touch.
func (vs *Views) Get(token string) *View {
	vs.mu.Lock()
	defer vs.mu.Unlock()

	entry, ok := vs.byToken[token]
	if !ok {
		entry = &viewEntry{view: NewView()}
		vs.byToken[token] = entry
	}
	entry.lastSeen = time.Now()
	return entry.view
}

// Sweep drops views idle past the TTL and reports how many were evicted.
func (vs *Views) Sweep(now time.Time) int {
	vs.mu.Lock()
	defer vs.mu.Unlock()

	if vs.ttl <= 0 {
		return 0
	}
	evicted := 0
	for token, entry := range vs.byToken {
		if now.Sub(entry.lastSeen) > vs.ttl {
			delete(vs.byToken, token)
			evicted++
		}
	}
	return evicted
}

// StartJanitor sweeps on the interval until ctx is cancelled.
func (vs *Views) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				vs.Sweep(now)
			}
		}
	}()
}

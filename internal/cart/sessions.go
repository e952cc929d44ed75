package cart

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shoploft/storefront-backend/pkg/config"
	"github.com/shoploft/storefront-backend/pkg/logger"
)

type sessionEntry struct {
	store    *Store
	lastSeen time.Time
}

// Manager owns the session-token-to-cart map. Carts live in memory only;
// idle sessions are evicted by the janitor after the configured TTL.
type Manager struct {
	mu      sync.Mutex
	ttl     time.Duration
	sweep   time.Duration
	byToken map[string]*sessionEntry
	logg    *logger.Logger
}

// NewManager constructs the cart session manager.
func NewManager(cfg config.CartConfig, logg *logger.Logger) *Manager {
	return &Manager{
		ttl:     cfg.SessionTTL,
		sweep:   cfg.SweepInterval,
		byToken: make(map[string]*sessionEntry),
		logg:    logg,
	}
}

// Mint issues a fresh session token.
func (m *Manager) Mint() string {
	return uuid.NewString()
}

// Cart returns the cart for the token, creating it on first touch.
func (m *Manager) Cart(token string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.byToken[token]
	if !ok {
		entry = &sessionEntry{store: NewStore()}
		m.byToken[token] = entry
	}
	entry.lastSeen = time.Now()
	return entry.store
}

// ActiveSessions reports how many carts are live.
func (m *Manager) ActiveSessions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byToken)
}

// Sweep evicts sessions idle past the TTL and reports how many went.
func (m *Manager) Sweep(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ttl <= 0 {
		return 0
	}
	evicted := 0
	for token, entry := range m.byToken {
		if now.Sub(entry.lastSeen) > m.ttl {
			delete(m.byToken, token)
			evicted++
		}
	}
	return evicted
}

// StartJanitor sweeps on the configured interval until ctx is cancelled.
func (m *Manager) StartJanitor(ctx context.Context) {
	if m.sweep <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(m.sweep)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				if evicted := m.Sweep(now); evicted > 0 && m.logg != nil {
					m.logg.Debug(m.logg.WithField(ctx, "evicted", evicted), "cart sessions evicted")
				}
			}
		}
	}()
}

package cart

import (
	"testing"
	"time"

	"github.com/shoploft/storefront-backend/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *Manager {
	return NewManager(config.CartConfig{
		SessionTTL:    time.Minute,
		SweepInterval: time.Minute,
	}, nil)
}

func TestCartCreatedOnFirstTouch(t *testing.T) {
	mgr := newTestManager()

	token := mgr.Mint()
	first := mgr.Cart(token)
	second := mgr.Cart(token)

	assert.Same(t, first, second)
	assert.Equal(t, 1, mgr.ActiveSessions())
}

func TestSessionsAreIsolated(t *testing.T) {
	mgr := newTestManager()

	cartA := mgr.Cart(mgr.Mint())
	cartB := mgr.Cart(mgr.Mint())

	cartA.AddItem(testProduct(1, "10.00"), 2)

	assert.Equal(t, 2, cartA.ItemCount())
	assert.Equal(t, 0, cartB.ItemCount())
}

func TestMintedTokensAreUnique(t *testing.T) {
	mgr := newTestManager()
	require.NotEqual(t, mgr.Mint(), mgr.Mint())
}

func TestSweepEvictsIdleSessions(t *testing.T) {
	mgr := newTestManager()
	mgr.Cart(mgr.Mint())
	mgr.Cart(mgr.Mint())

	assert.Equal(t, 0, mgr.Sweep(time.Now()))
	assert.Equal(t, 2, mgr.Sweep(time.Now().Add(2*time.Minute)))
	assert.Equal(t, 0, mgr.ActiveSessions())
}

func TestSweepDisabledWithoutTTL(t *testing.T) {
	mgr := NewManager(config.CartConfig{}, nil)
	mgr.Cart(mgr.Mint())

	assert.Equal(t, 0, mgr.Sweep(time.Now().Add(48*time.Hour)))
	assert.Equal(t, 1, mgr.ActiveSessions())
}

package cart

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/shoploft/storefront-backend/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProduct(id int64, price string) catalog.Product {
	return catalog.Product{
		ID:    id,
		Title: "Test Product",
		Price: decimal.RequireFromString(price),
	}
}

func TestAddItemAppends(t *testing.T) {
	store := NewStore()
	store.AddItem(testProduct(1, "10.00"), 2)
	store.AddItem(testProduct(2, "5.50"), 1)

	items := store.Items()
	require.Len(t, items, 2)
	assert.Equal(t, int64(1), items[0].Product.ID)
	assert.Equal(t, int64(2), items[1].Product.ID)
	assert.Equal(t, 3, store.ItemCount())
}

func TestDoubleAddMergesQuantities(t *testing.T) {
	store := NewStore()
	store.AddItem(testProduct(1, "10.00"), 2)
	store.AddItem(testProduct(1, "10.00"), 3)

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestAddItemNonPositiveIsNoOp(t *testing.T) {
	store := NewStore()
	store.AddItem(testProduct(1, "10.00"), 0)
	store.AddItem(testProduct(1, "10.00"), -3)

	assert.Empty(t, store.Items())
	assert.Equal(t, 0, store.ItemCount())
}

func TestUpdateQuantityToZeroRemoves(t *testing.T) {
	store := NewStore()
	store.AddItem(testProduct(1, "10.00"), 2)
	store.AddItem(testProduct(2, "5.00"), 1)

	store.UpdateQuantity(1, 0)

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(2), items[0].Product.ID)
}

func TestUpdateQuantityUnknownIDIsNoOp(t *testing.T) {
	store := NewStore()
	store.AddItem(testProduct(1, "10.00"), 2)

	store.UpdateQuantity(99, 5)

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestRemoveItem(t *testing.T) {
	store := NewStore()
	store.AddItem(testProduct(1, "10.00"), 2)
	store.RemoveItem(1)

	assert.Empty(t, store.Items())
}

func TestClear(t *testing.T) {
	store := NewStore()
	store.AddItem(testProduct(1, "10.00"), 2)
	store.AddItem(testProduct(2, "5.00"), 1)
	store.Clear()

	assert.Empty(t, store.Items())
	assert.True(t, store.Total().IsZero())
}

func TestTotalIsExact(t *testing.T) {
	store := NewStore()
	store.AddItem(testProduct(1, "0.10"), 3)
	store.AddItem(testProduct(2, "19.99"), 2)

	// 0.30 + 39.98 = 40.28, exact under decimal arithmetic.
	assert.Equal(t, "40.28", store.Total().StringFixed(2))
}

func TestSummaryShippingBelowThreshold(t *testing.T) {
	store := NewStore()
	store.AddItem(testProduct(1, "20.00"), 2)

	summary := store.Summarize()
	assert.Equal(t, "40.00", summary.Subtotal.StringFixed(2))
	assert.Equal(t, "5.00", summary.Shipping.StringFixed(2))
	assert.Equal(t, "45.00", summary.Total.StringFixed(2))
	assert.Equal(t, "10.00", summary.FreeShippingRemainder.StringFixed(2))
}

func TestSummaryFreeShippingAtThreshold(t *testing.T) {
	store := NewStore()
	store.AddItem(testProduct(1, "50.00"), 1)

	summary := store.Summarize()
	assert.True(t, summary.Shipping.IsZero())
	assert.Equal(t, "50.00", summary.Total.StringFixed(2))
	assert.True(t, summary.FreeShippingRemainder.IsZero())
}

func TestSummaryEmptyCart(t *testing.T) {
	summary := NewStore().Summarize()
	assert.Equal(t, 0, summary.ItemCount)
	assert.True(t, summary.Subtotal.IsZero())
	assert.True(t, summary.Shipping.IsZero())
	assert.True(t, summary.Total.IsZero())
}

func TestQuantitiesStayPositive(t *testing.T) {
	store := NewStore()
	store.AddItem(testProduct(1, "10.00"), 1)
	store.UpdateQuantity(1, -5)

	assert.Empty(t, store.Items())
}

func TestConcurrentAdds(t *testing.T) {
	store := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.AddItem(testProduct(1, "1.00"), 1)
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, store.ItemCount())
	assert.Equal(t, "50.00", store.Total().StringFixed(2))
}

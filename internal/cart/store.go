package cart

import (
	"sync"

	"github.com/shopspring/decimal"
	"github.com/shoploft/storefront-backend/internal/catalog"
)

var (
	freeShippingThreshold = decimal.RequireFromString("50.00")
	shippingFee           = decimal.RequireFromString("5.00")
)

// Item pairs a catalog product with a positive quantity. A cart holds at
// most one item per product id.
type Item struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Summary is the derived pricing block for a cart.
type Summary struct {
	ItemCount             int             `json:"item_count"`
	Subtotal              decimal.Decimal `json:"subtotal"`
	Shipping              decimal.Decimal `json:"shipping"`
	Total                 decimal.Decimal `json:"total"`
	FreeShippingRemainder decimal.Decimal `json:"free_shipping_remainder"`
}

// Store is one session's shopping cart. Items keep insertion order and
// totals are derived on every read, never cached. All methods are safe for
// concurrent use.
type Store struct {
	mu    sync.Mutex
	items []Item
}

// NewStore returns an empty cart.
func NewStore() *Store {
	return &Store{}
}

// AddItem merges the quantity into an existing line for the product or
// appends a new one. A non-positive quantity is a no-op.
func (s *Store) AddItem(product catalog.Product, quantity int) {
	if quantity <= 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].Product.ID == product.ID {
			s.items[i].Quantity += quantity
			return
		}
	}
	s.items = append(s.items, Item{Product: product, Quantity: quantity})
}

// UpdateQuantity sets the line quantity for the product. A quantity of
// zero or less removes the line; an unknown id is a no-op.
func (s *Store) UpdateQuantity(productID int64, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].Product.ID != productID {
			continue
		}
		if quantity <= 0 {
			s.items = append(s.items[:i], s.items[i+1:]...)
		} else {
			s.items[i].Quantity = quantity
		}
		return
	}
}

// RemoveItem drops the line for the product id, if present.
func (s *Store) RemoveItem(productID int64) {
	s.UpdateQuantity(productID, 0)
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}

// Items returns a copy of the cart lines in insertion order.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]Item, len(s.items))
	copy(items, s.items)
	return items
}

// ItemCount is the sum of all line quantities.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.itemCountLocked()
}

func (s *Store) itemCountLocked() int {
	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// Total is the sum of price times quantity across all lines.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subtotalLocked()
}

func (s *Store) subtotalLocked() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// Summarize derives the cart's pricing block. Shipping is free once the
// subtotal reaches the threshold; an empty cart ships free.
func (s *Store) Summarize() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	subtotal := s.subtotalLocked()
	count := s.itemCountLocked()

	shipping := decimal.Zero
	remainder := decimal.Zero
	if count > 0 && subtotal.LessThan(freeShippingThreshold) {
		shipping = shippingFee
		remainder = freeShippingThreshold.Sub(subtotal)
	}

	return Summary{
		ItemCount:             count,
		Subtotal:              subtotal,
		Shipping:              shipping,
		Total:                 subtotal.Add(shipping),
		FreeShippingRemainder: remainder,
	}
}

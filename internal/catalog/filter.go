package catalog

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/shoploft/storefront-backend/pkg/pagination"
)

// FilterState captures the shopper's active catalog filters. The zero
// value matches everything.
type FilterState struct {
	Query      string
	Categories []string
	PriceMin   *decimal.Decimal
	PriceMax   *decimal.Decimal
}

// Normalize trims the query, dedupes and sorts the category set, and
// clamps negative price bounds to zero. Malformed input never errors;
// an inverted min/max window simply matches nothing.
func (f FilterState) Normalize() FilterState {
	f.Query = strings.TrimSpace(f.Query)

	if len(f.Categories) > 0 {
		seen := make(map[string]struct{}, len(f.Categories))
		categories := make([]string, 0, len(f.Categories))
		for _, category := range f.Categories {
			category = strings.TrimSpace(category)
			if category == "" {
				continue
			}
			if _, ok := seen[category]; ok {
				continue
			}
			seen[category] = struct{}{}
			categories = append(categories, category)
		}
		sort.Strings(categories)
		if len(categories) == 0 {
			categories = nil
		}
		f.Categories = categories
	}

	f.PriceMin = clampBound(f.PriceMin)
	f.PriceMax = clampBound(f.PriceMax)
	return f
}

func clampBound(bound *decimal.Decimal) *decimal.Decimal {
	if bound == nil {
		return nil
	}
	if bound.IsNegative() {
		zero := decimal.Zero
		return &zero
	}
	value := *bound
	return &value
}

// Matches reports whether the product passes every active predicate.
// Predicates AND-compose: title substring (case-insensitive), category
// membership (empty set matches all), and an inclusive price window.
func (f FilterState) Matches(p Product) bool {
	if f.Query != "" && !strings.Contains(strings.ToLower(p.Title), strings.ToLower(f.Query)) {
		return false
	}
	if len(f.Categories) > 0 {
		found := false
		for _, category := range f.Categories {
			if category == p.Category {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.PriceMin != nil && p.Price.LessThan(*f.PriceMin) {
		return false
	}
	if f.PriceMax != nil && p.Price.GreaterThan(*f.PriceMax) {
		return false
	}
	return true
}

// Equal reports whether two normalized filter states select the same
// products. Used to detect filter changes that reset the page.
func (f FilterState) Equal(other FilterState) bool {
	if f.Query != other.Query {
		return false
	}
	if len(f.Categories) != len(other.Categories) {
		return false
	}
	for i := range f.Categories {
		if f.Categories[i] != other.Categories[i] {
			return false
		}
	}
	return boundsEqual(f.PriceMin, other.PriceMin) && boundsEqual(f.PriceMax, other.PriceMax)
}

func boundsEqual(a, b *decimal.Decimal) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// Filter returns the products matching the state, preserving input order.
func Filter(products []Product, state FilterState) []Product {
	matched := make([]Product, 0, len(products))
	for _, p := range products {
		if state.Matches(p) {
			matched = append(matched, p)
		}
	}
	return matched
}

// Page is one rendered slice of the filtered catalog.
type Page struct {
	Items []Product       `json:"items"`
	Meta  pagination.Meta `json:"pagination"`
}

// Paginate slices the filtered products into the requested page using the
// storefront's fixed 12-item grid. Out-of-range pages clamp to the last
// page; zero results produce an explicit empty page.
func Paginate(products []Product, page int) Page {
	start, end, meta := pagination.Window(len(products), pagination.Params{Page: page})
	items := make([]Product, end-start)
	copy(items, products[start:end])
	return Page{Items: items, Meta: meta}
}

package catalog

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bound(value string) *decimal.Decimal {
	d := decimal.RequireFromString(value)
	return &d
}

func TestFilterQueryCaseInsensitive(t *testing.T) {
	products := []Product{
		product(1, "Fjallraven Backpack", "bags", "109.95"),
		product(2, "Mens Cotton Jacket", "men's clothing", "55.99"),
	}

	matched := Filter(products, FilterState{Query: "BACKPACK"})
	require.Len(t, matched, 1)
	assert.Equal(t, int64(1), matched[0].ID)
}

func TestFilterEmptyQueryMatchesAll(t *testing.T) {
	products := []Product{
		product(1, "Backpack", "bags", "109.95"),
		product(2, "Jacket", "men's clothing", "55.99"),
	}

	assert.Len(t, Filter(products, FilterState{}), 2)
}

func TestFilterNoMatchYieldsEmpty(t *testing.T) {
	products := []Product{product(1, "Backpack", "bags", "109.95")}

	matched := Filter(products, FilterState{Query: "xylophone"})
	assert.Empty(t, matched)
}

func TestFilterCategorySet(t *testing.T) {
	products := []Product{
		product(1, "Backpack", "bags", "109.95"),
		product(2, "Jacket", "men's clothing", "55.99"),
		product(3, "Ring", "jewelery", "168.00"),
	}

	matched := Filter(products, FilterState{Categories: []string{"bags", "jewelery"}}.Normalize())
	require.Len(t, matched, 2)
	assert.Equal(t, int64(1), matched[0].ID)
	assert.Equal(t, int64(3), matched[1].ID)
}

func TestFilterPriceWindowInclusive(t *testing.T) {
	products := []Product{
		product(1, "Cheap", "misc", "10"),
		product(2, "Mid", "misc", "60"),
		product(3, "Low Mid", "misc", "25"),
	}

	matched := Filter(products, FilterState{PriceMin: bound("20"), PriceMax: bound("70")})
	require.Len(t, matched, 2)
	assert.Equal(t, int64(2), matched[0].ID)
	assert.Equal(t, int64(3), matched[1].ID)
}

func TestFilterBoundaryPricesIncluded(t *testing.T) {
	products := []Product{
		product(1, "Exactly Min", "misc", "20"),
		product(2, "Exactly Max", "misc", "70"),
	}

	matched := Filter(products, FilterState{PriceMin: bound("20"), PriceMax: bound("70")})
	assert.Len(t, matched, 2)
}

func TestFilterPredicatesANDCompose(t *testing.T) {
	products := []Product{
		product(1, "Gold Ring", "jewelery", "168.00"),
		product(2, "Gold Bracelet", "jewelery", "10.99"),
		product(3, "Gold Jacket", "men's clothing", "168.00"),
	}

	state := FilterState{
		Query:      "gold",
		Categories: []string{"jewelery"},
		PriceMin:   bound("100"),
	}
	matched := Filter(products, state.Normalize())
	require.Len(t, matched, 1)
	assert.Equal(t, int64(1), matched[0].ID)
}

func TestNormalizeClampsNegativeBounds(t *testing.T) {
	state := FilterState{PriceMin: bound("-5"), PriceMax: bound("-1")}.Normalize()
	require.NotNil(t, state.PriceMin)
	require.NotNil(t, state.PriceMax)
	assert.True(t, state.PriceMin.IsZero())
	assert.True(t, state.PriceMax.IsZero())
}

func TestNormalizeDedupesCategories(t *testing.T) {
	state := FilterState{Categories: []string{"bags", " bags ", "", "apparel"}}.Normalize()
	assert.Equal(t, []string{"apparel", "bags"}, state.Categories)
}

func TestInvertedWindowMatchesNothing(t *testing.T) {
	products := []Product{product(1, "Mid", "misc", "50")}

	matched := Filter(products, FilterState{PriceMin: bound("70"), PriceMax: bound("20")})
	assert.Empty(t, matched)
}

func TestPaginateTwentyFiveItems(t *testing.T) {
	products := make([]Product, 0, 25)
	for i := 1; i <= 25; i++ {
		products = append(products, product(int64(i), fmt.Sprintf("Item %d", i), "misc", "10"))
	}

	first := Paginate(products, 1)
	assert.Len(t, first.Items, 12)
	assert.Equal(t, 3, first.Meta.TotalPages)
	assert.Equal(t, 25, first.Meta.TotalItems)

	third := Paginate(products, 3)
	require.Len(t, third.Items, 1)
	assert.Equal(t, int64(25), third.Items[0].ID)

	clamped := Paginate(products, 5)
	assert.Equal(t, 3, clamped.Meta.Page)
	require.Len(t, clamped.Items, 1)
	assert.Equal(t, int64(25), clamped.Items[0].ID)
}

func TestPaginateEmptySet(t *testing.T) {
	page := Paginate(nil, 3)
	assert.Empty(t, page.Items)
	assert.NotNil(t, page.Items)
	assert.Equal(t, 1, page.Meta.Page)
	assert.Equal(t, 0, page.Meta.TotalItems)
	assert.Equal(t, 0, page.Meta.TotalPages)
}

func TestFilterStateEqual(t *testing.T) {
	a := FilterState{Query: "gold", Categories: []string{"bags"}, PriceMin: bound("10")}.Normalize()
	b := FilterState{Query: "gold", Categories: []string{"bags"}, PriceMin: bound("10.00")}.Normalize()
	c := FilterState{Query: "gold", Categories: []string{"bags"}, PriceMin: bound("11")}.Normalize()

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(FilterState{}))
}

package catalog

import (
	"github.com/shopspring/decimal"
	"github.com/shoploft/storefront-backend/pkg/enums"
)

// Rating aggregates shopper feedback for a listing. Admin-authored
// listings carry a zero rating until reviews exist for them.
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// Product is the merged catalog entry served to the storefront. Source
// records provenance and is never mutated after merge.
type Product struct {
	ID          int64               `json:"id"`
	Title       string              `json:"title"`
	Price       decimal.Decimal     `json:"price"`
	Description string              `json:"description"`
	Category    string              `json:"category"`
	Image       string              `json:"image"`
	Rating      Rating              `json:"rating"`
	Source      enums.ProductSource `json:"source"`
}

package catalog

import "github.com/shoploft/storefront-backend/pkg/enums"

// Merge combines admin-authored listings with the external feed into one
// catalog. Admin entries come first so fresh listings surface ahead of the
// feed, each side keeps its relative order, and provenance is tagged on
// every record. Admin entries get a zero rating. The two id spaces are
// assumed disjoint, so no dedup happens here; lookups resolve admin first.
func Merge(external, admin []Product) []Product {
	merged := make([]Product, 0, len(external)+len(admin))

	for _, p := range admin {
		p.Source = enums.ProductSourceAdmin
		p.Rating = Rating{}
		merged = append(merged, p)
	}
	for _, p := range external {
		p.Source = enums.ProductSourceCatalog
		merged = append(merged, p)
	}

	return merged
}

package pagination

// DefaultPageSize matches the storefront's 12-card product grid.
const DefaultPageSize = 12

// Params holds page-number pagination inputs from controllers or services.
type Params struct {
	Page     int
	PageSize int
}

// Meta describes the resolved window that produced a page of results.
type Meta struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// Normalize applies the default page size and floors the page at 1.
func (p Params) Normalize() Params {
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	if p.Page <= 0 {
		p.Page = 1
	}
	return p
}

// TotalPages computes ceil(totalItems / pageSize) with a floor of zero.
func TotalPages(totalItems, pageSize int) int {
	if totalItems <= 0 || pageSize <= 0 {
		return 0
	}
	return (totalItems + pageSize - 1) / pageSize
}

// Window resolves the slice bounds for the requested page over totalItems
// entries. The page is clamped to [1, max(1, totalPages)], so a request
// beyond the last page returns the last page and an empty set yields
// page 1 with an empty window.
func Window(totalItems int, params Params) (start, end int, meta Meta) {
	params = params.Normalize()

	totalPages := TotalPages(totalItems, params.PageSize)
	page := params.Page
	if totalPages == 0 {
		page = 1
	} else if page > totalPages {
		page = totalPages
	}

	start = (page - 1) * params.PageSize
	if start > totalItems {
		start = totalItems
	}
	end = start + params.PageSize
	if end > totalItems {
		end = totalItems
	}

	meta = Meta{
		Page:       page,
		PageSize:   params.PageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
	return start, end, meta
}

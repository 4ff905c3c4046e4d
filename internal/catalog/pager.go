package catalog

import "promohub/pkg/models"

// DefaultPageSize is the storefront grid size.
const DefaultPageSize = 4

// TotalPages is max(1, ceil(n / pageSize)): an empty projection still has
// one (empty) page, so the page counter never reads "0 of 0".
func TotalPages(n, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	pages := (n + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// ClampPage forces page into [1, totalPages]. The visible page must never
// exceed the available pages, e.g. after a filter narrows the projection.
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// PageSlice returns the 1-based page window of items.
func PageSlice(items []models.NormalizedPromotion, page, pageSize int) []models.NormalizedPromotion {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	page = ClampPage(page, TotalPages(len(items), pageSize))

	start := (page - 1) * pageSize
	if start >= len(items) {
		return nil
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

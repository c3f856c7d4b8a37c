package utils

import "math"

func CalculateTotalPages(total int64, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 0
	}
	pages := total / int64(perPage)
	if total%int64(perPage) != 0 {
		pages++
	}
	return int(pages)
}

// CalculateOffset saturates at math.MaxInt instead of wrapping.
func CalculateOffset(page, perPage int) int {
	if page < 1 || perPage <= 0 {
		return 0
	}
	if page-1 > math.MaxInt/perPage {
		return math.MaxInt
	}
	return (page - 1) * perPage
}

// Paginate returns page (1-indexed) of items. Bounds are clipped to the
// slice; a page past the end, or a non-positive page or size, is empty.
func Paginate[T any](items []T, perPage, page int) []T {
	if perPage <= 0 || page < 1 {
		return []T{}
	}
	if page > CalculateTotalPages(int64(len(items)), perPage) {
		return []T{}
	}

	start := CalculateOffset(page, perPage)
	end := len(items)
	if perPage < end-start {
		end = start + perPage
	}

	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}

// ShowControls is false when there is at most one page.
func ShowControls(totalPages int) bool {
	return totalPages > 1
}

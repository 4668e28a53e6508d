package models

// Page is one window of a paginated collection.
type Page[T any] struct {
	Items       []T `json:"items"`
	TotalPages  int `json:"totalPages"`
	CurrentPage int `json:"currentPage"`
}

// Paginate slices items into perPage-sized windows and returns the 1-based
// page. page below 1 is treated as 1; perPage below 1 falls back to
// defaultSize. A page past the end yields no items but keeps TotalPages.
func Paginate[T any](items []T, page, perPage, defaultSize int) Page[T] {
	if perPage < 1 {
		perPage = defaultSize
	}
	if page < 1 {
		page = 1
	}

	total := (len(items) + perPage - 1) / perPage

	start := (page - 1) * perPage
	if start > len(items) {
		start = len(items)
	}
	end := start + perPage
	if end > len(items) {
		end = len(items)
	}

	window := make([]T, end-start)
	copy(window, items[start:end])

	return Page[T]{Items: window, TotalPages: total, CurrentPage: page}
}

package pagination

import "strconv"

// Page is a bounded slice of an ordered sequence plus metadata about its
// position in the sequence.
type Page[T any] struct {
	Items       []T  `json:"items"`
	Number      int  `json:"page"`
	TotalPages  int  `json:"total_pages"`
	HasPrevious bool `json:"has_previous"`
	HasNext     bool `json:"has_next"`
}

// ParsePageNumber turns the raw page query parameter into a page index.
// Anything that is not a positive integer means page 1; a request never
// fails because of a bad page parameter.
func ParsePageNumber(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Paginate slices items into fixed-size pages and returns the requested
// one. Out-of-range page numbers fall back to page 1. The slice is windowed
// in place; given the same input the same page is always returned.
func Paginate[T any](items []T, pageSize, pageNumber int) Page[T] {
	if pageSize < 1 {
		pageSize = 1
	}

	totalPages := (len(items) + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}

	if pageNumber < 1 || pageNumber > totalPages {
		pageNumber = 1
	}

	start := (pageNumber - 1) * pageSize
	end := start + pageSize
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}

	return Page[T]{
		Items:       items[start:end],
		Number:      pageNumber,
		TotalPages:  totalPages,
		HasPrevious: pageNumber > 1,
		HasNext:     pageNumber < totalPages,
	}
}

package chat

import "math"

type Sorting string

const (
	Ascending  Sorting = "asc"
	Descending Sorting = "desc"
)

const (
	DefaultPerPage = 25
	DefaultPage    = 1
)

type Page[T any] struct {
	Items       []T
	Total       int
	PerPage     int
	CurrentPage int
	LastPage    int
}

func NewPage[T any](items []T, total, perPage, currentPage int) Page[T] {
	lastPage := 1
	if perPage > 0 && total > 0 {
		lastPage = (total + perPage - 1) / perPage
	}
	return Page[T]{
		Items:       items,
		Total:       total,
		PerPage:     perPage,
		CurrentPage: currentPage,
		LastPage:    lastPage,
	}
}

// Offset is the number of items skipped before the current page.
// It saturates at math.MaxInt, a page too far to be addressed is simply empty.
func Offset(perPage, page int) int {
	if perPage <= 0 || page <= 1 {
		return 0
	}
	if page-1 > math.MaxInt/perPage {
		return math.MaxInt
	}
	return (page - 1) * perPage
}

// Package service implements the query and update surface over the stores:
// paginated catalog reads, routine tree reads, and the exercise update path.
// The import pipeline never calls into this package.
package service

// Pagination limits mirror the read API contract.
const (
	DefaultPageSize = 10
	MaxPageSize     = 50
)

// normalizePage clamps page to >= 1 and pageSize to 1..MaxPageSize, applying
// the default when pageSize is unset.
func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	switch {
	case pageSize < 1:
		pageSize = DefaultPageSize
	case pageSize > MaxPageSize:
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// totalPages is the page count for total rows at the given size.
func totalPages(total, pageSize int) int {
	if total == 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

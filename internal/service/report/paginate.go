package report

// PerPage is the page size shared by every list in the system.
const PerPage = 25

// Page is one slice of an ordered sequence. Start is the zero-based
// offset of the first item, used to continue row numbering across
// pages. Pages are built fresh on every request and never cached.
type Page[T any] struct {
	Items   []T
	Start   int
	HasNext bool
}

// Paginate slices items for the given 1-based page. Out-of-range pages
// yield an empty slice, never an error, and the result never holds more
// than perPage items.
func Paginate[T any](items []T, page, perPage int) Page[T] {
	start := (page - 1) * perPage
	if start < 0 {
		start = 0
	}

	from, to := start, start+perPage
	if from > len(items) {
		from = len(items)
	}
	if to > len(items) {
		to = len(items)
	}

	return Page[T]{
		Items:   items[from:to],
		Start:   start,
		HasNext: start+perPage < len(items),
	}
}

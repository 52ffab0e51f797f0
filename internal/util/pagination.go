package util

// DefaultPageSize bounds search pages when the caller does not pick one.
const DefaultPageSize = 10

// Calculate turns a 1-based page and size into an offset and a clamped limit.
func Calculate(page, size int) (from, limit int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = DefaultPageSize
	}
	from = (page - 1) * size
	return from, size
}

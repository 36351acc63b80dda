package data

import "strings"

// StatusAll is the zero filter value meaning "no status filter".
const StatusAll Status = ""

// Matches reports whether the book passes the free-text query and the
// status filter. The query matches against title or author,
// case-insensitively; both conditions must hold.
func Matches(b Book, query string, status Status) bool {
	if status != StatusAll && b.Status != status {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(b.Title), q) ||
		strings.Contains(strings.ToLower(b.AuthorName()), q)
}

// Filter returns the books matching the query and status filter,
// preserving order.
func Filter(books []Book, query string, status Status) []Book {
	out := make([]Book, 0, len(books))
	for _, b := range books {
		if Matches(b, query, status) {
			out = append(out, b)
		}
	}
	return out
}

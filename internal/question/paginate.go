package question

// DefaultPageSize is the number of questions shown per page.
const DefaultPageSize = 10

// Paginate returns the 1-indexed page of items. Non-positive page or pageSize fall
// back to 1 and DefaultPageSize. Pages past the end are empty, never an error.
// The returned slice never aliases items.
func Paginate[T any](items []T, page, pageSize int) []T {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	// compare before multiplying so huge pages cannot wrap into range
	if len(items) == 0 || page-1 > (len(items)-1)/pageSize {
		return []T{}
	}
	offset := (page - 1) * pageSize
	end := len(items)
	if len(items)-offset > pageSize {
		end = offset + pageSize
	}

	out := make([]T, end-offset)
	copy(out, items[offset:end])
	return out
}

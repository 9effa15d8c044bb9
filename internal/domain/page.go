package domain

// Pagination bounds for GET /spots. Out-of-range values are clamped back to
// the defaults rather than rejected; only values below 1 are errors.
const (
	DefaultPage = 1
	MaxPage     = 10
	DefaultSize = 20
	MaxSize     = 20
)

// PaginationParams carries page/size values from the HTTP layer to the repo layer.
// Page is 1-indexed.
type PaginationParams struct {
	// Page is the current page number, starting at 1.
	Page int
	// Size is the maximum number of items to return.
	Size int
}

// NewPaginationParams builds a PaginationParams from optional HTTP query params.
// A page or size below 1 is a validation error. A nil page or one above MaxPage
// falls back to DefaultPage; a nil size or one above MaxSize falls back to DefaultSize.
func NewPaginationParams(page, size *int) (PaginationParams, error) {
	fields := map[string]string{}
	if page != nil && *page < 1 {
		fields["page"] = "Page must be greater than or equal to 1"
	}
	if size != nil && *size < 1 {
		fields["size"] = "Size must be greater than or equal to 1"
	}
	if len(fields) > 0 {
		return PaginationParams{}, NewValidationError(fields)
	}

	p := PaginationParams{Page: DefaultPage, Size: DefaultSize}
	if page != nil && *page <= MaxPage {
		p.Page = *page
	}
	if size != nil && *size <= MaxSize {
		p.Size = *size
	}
	return p, nil
}

// Offset returns the zero-based row offset for a SQL OFFSET clause.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Size
}

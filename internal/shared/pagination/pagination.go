package pagination

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Params is the common page request shape shared by every listing operation.
type Params struct {
	Page     int
	PageSize int
}

// Normalize clamps page and page size to usable values.
func (p *Params) Normalize() {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PageSize < 1 || p.PageSize > MaxPageSize {
		p.PageSize = DefaultPageSize
	}
}

// Skip returns the row offset for the current page.
func (p Params) Skip() int {
	return (p.Page - 1) * p.PageSize
}

// IsNext reports whether at least one more matching item exists beyond the
// current page: total > skip + returned.
func IsNext(total, skip, returned int) bool {
	return total > skip+returned
}

// Package pagination implements page/limit offset pagination shared by the
// list endpoints.
package pagination

// Defaults and caps applied when the caller omits or exceeds the query
// parameters.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Params is a normalized page/limit pair.
type Params struct {
	Page  int
	Limit int
}

// Normalize clamps the raw query values into a valid Params.
func Normalize(page, limit int) Params {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Params{Page: page, Limit: limit}
}

// Offset returns the row offset for the current page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// PageInfo is the flat catalog-listing envelope: total, page and limit sit
// beside the data array. Embed it in a page DTO so the fields marshal at the
// top level.
type PageInfo struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

// NewPageInfo records the totals for the given params.
func NewPageInfo(total int64, p Params) PageInfo {
	return PageInfo{Total: total, Page: p.Page, Limit: p.Limit}
}

// Meta describes the order listing's paginated result set.
type Meta struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	LastPage int   `json:"lastPage"`
}

// NewMeta computes the meta block for a total row count under the given
// params. LastPage is at least 1 even for an empty set.
func NewMeta(total int64, p Params) Meta {
	last := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	if last < 1 {
		last = 1
	}
	return Meta{Total: total, Page: p.Page, LastPage: last}
}

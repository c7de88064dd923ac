package page

import "github.com/greenbasket/catalogd/internal/domain/product"

// Pagination defaults applied when a caller omits or exceeds bounds.
const (
	DefaultSize = 20
	MaxSize     = 100
)

// Request is a validated page request.
type Request struct {
	number int
	size   int
}

// NewRequest normalizes page parameters. Negative page numbers become 0,
// a missing or non-positive size becomes defaultSize, and sizes above
// maxSize are clamped, not rejected. Non-positive defaults fall back to
// the package constants.
func NewRequest(number, size, defaultSize, maxSize int) Request {
	if defaultSize <= 0 {
		defaultSize = DefaultSize
	}
	if maxSize <= 0 {
		maxSize = MaxSize
	}
	if number < 0 {
		number = 0
	}
	if size <= 0 {
		size = defaultSize
	}
	if size > maxSize {
		size = maxSize
	}
	return Request{number: number, size: size}
}

// Number returns the zero-based page number.
func (r Request) Number() int { return r.number }

// Size returns the page size.
func (r Request) Size() int { return r.size }

// Offset returns the number of items to skip.
func (r Request) Offset() int { return r.number * r.size }

// Page is one page of product summaries plus totals for the whole match.
// The count and fetch reads behind it are not transactionally linked, so
// TotalItems may be stale relative to Items under concurrent writes.
type Page struct {
	Items      []product.Summary
	Number     int
	Size       int
	TotalItems int
	TotalPages int
}

// New assembles a page, deriving TotalPages = ceil(totalItems/size).
// A page number beyond the last page carries empty items with accurate
// totals; it is not an error.
func New(items []product.Summary, req Request, totalItems int) Page {
	if totalItems < 0 {
		totalItems = 0
	}
	totalPages := 0
	if totalItems > 0 {
		totalPages = (totalItems + req.Size() - 1) / req.Size()
	}
	return Page{
		Items:      items,
		Number:     req.Number(),
		Size:       req.Size(),
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}

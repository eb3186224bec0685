package fractly

type (
	//Paginator exposes page based pagination state attached to a collection
	Paginator interface {
		Total() int
		Count() int
		PerPage() int
		CurrentPage() int
		LastPage() int
		URL(page int) string
	}

	//Cursor exposes cursor based pagination state attached to a collection;
	//cursor values are opaque to this library
	Cursor interface {
		Current() interface{}
		Prev() interface{}
		Next() interface{}
		Count() int
	}
)

type (
	//SlicePaginator pages over an in-memory dataset
	SlicePaginator struct {
		total       int
		perPage     int
		currentPage int
		pageURL     func(page int) string
	}

	//PaginatorOption represents slice paginator option
	PaginatorOption func(p *SlicePaginator)
)

// WithPageURL sets the page link builder
func WithPageURL(pageURL func(page int) string) PaginatorOption {
	return func(p *SlicePaginator) {
		p.pageURL = pageURL
	}
}

// NewSlicePaginator creates a paginator for an in-memory dataset
func NewSlicePaginator(total, perPage, currentPage int, opts ...PaginatorOption) *SlicePaginator {
	if perPage < 1 {
		perPage = 1
	}
	if currentPage < 1 {
		currentPage = 1
	}
	ret := &SlicePaginator{total: total, perPage: perPage, currentPage: currentPage}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Total returns total element count
func (p *SlicePaginator) Total() int {
	return p.total
}

// Count returns element count on the current page
func (p *SlicePaginator) Count() int {
	offset := (p.currentPage - 1) * p.perPage
	remaining := p.total - offset
	if remaining < 0 {
		return 0
	}
	if remaining > p.perPage {
		return p.perPage
	}
	return remaining
}

// PerPage returns page size
func (p *SlicePaginator) PerPage() int {
	return p.perPage
}

// CurrentPage returns current page, 1 based
func (p *SlicePaginator) CurrentPage() int {
	return p.currentPage
}

// LastPage returns the last page number
func (p *SlicePaginator) LastPage() int {
	if p.total == 0 {
		return 1
	}
	return (p.total + p.perPage - 1) / p.perPage
}

// URL returns a link for the supplied page
func (p *SlicePaginator) URL(page int) string {
	if p.pageURL == nil {
		return ""
	}
	return p.pageURL(page)
}

// PageCursor is a value based cursor record
type PageCursor struct {
	current interface{}
	prev    interface{}
	next    interface{}
	count   int
}

// NewPageCursor creates a cursor record
func NewPageCursor(current, prev, next interface{}, count int) *PageCursor {
	return &PageCursor{current: current, prev: prev, next: next, count: count}
}

// Current returns the current cursor value
func (c *PageCursor) Current() interface{} {
	return c.current
}

// Prev returns the previous cursor value
func (c *PageCursor) Prev() interface{} {
	return c.prev
}

// Next returns the next cursor value
func (c *PageCursor) Next() interface{} {
	return c.next
}

// Count returns element count under the current cursor
func (c *PageCursor) Count() int {
	return c.count
}

package pokemon

// DefaultPerPage matches the roster API's default page size.
const DefaultPerPage = 24

// Paginate returns the 1-indexed page of list. Pages outside the list are
// empty; perPage <= 0 falls back to DefaultPerPage.
func Paginate(list []Record, page, perPage int) []Record {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	last := page * perPage
	first := last - perPage
	if first < 0 {
		first = 0
	}
	if last > len(list) {
		last = len(list)
	}
	if first >= last {
		return []Record{}
	}
	return clone(list[first:last])
}

// TotalPages is ceil(n/perPage).
func TotalPages(n, perPage int) int {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if n <= 0 {
		return 0
	}
	return (n + perPage - 1) / perPage
}

// Pager tracks the browser's page position.
type Pager struct {
	Page    int
	PerPage int
	ShowAll bool
}

// NewPager starts at page 1.
func NewPager(perPage int) Pager {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	return Pager{Page: 1, PerPage: perPage}
}

// Slice returns what should be on screen: everything when ShowAll is set,
// otherwise the current page.
func (p Pager) Slice(list []Record) []Record {
	if p.ShowAll {
		return clone(list)
	}
	return Paginate(list, p.Page, p.PerPage)
}

// Next moves forward unless already on the last page of n records.
func (p Pager) Next(n int) Pager {
	if p.Page < TotalPages(n, p.PerPage) {
		p.Page++
	}
	return p
}

// Prev moves back, stopping at page 1.
func (p Pager) Prev() Pager {
	if p.Page > 1 {
		p.Page--
	}
	return p
}

// Clamp pulls Page back into range after the list shrank.
func (p Pager) Clamp(n int) Pager {
	total := TotalPages(n, p.PerPage)
	if p.Page > total {
		p.Page = total
	}
	if p.Page < 1 {
		p.Page = 1
	}
	return p
}

// Window converts limit/offset into a slice of list, the way the roster API
// pages. limit <= 0 uses DefaultPerPage and is capped at maxLimit.
func Window(list []Record, offset, limit, maxLimit int) []Record {
	if limit <= 0 {
		limit = DefaultPerPage
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(list) {
		return []Record{}
	}
	end := offset + limit
	if end > len(list) {
		end = len(list)
	}
	return clone(list[offset:end])
}

package view

import "fmt"

// DefaultPageSize is the number of rows on a list page unless the user picks another size.
const DefaultPageSize = 10

// PageSizes are the sizes the user may choose from.
var PageSizes = []int{10, 20, 50, 100}

// PageInfo describes one page of a filtered list. Start and End are 1-based and inclusive;
// both are 0 when the list is empty.
type PageInfo struct {
	Page     int
	PageSize int
	Pages    int
	Total    int
	Start    int
	End      int
}

// Summary returns the range text shown below the list, e.g. "1-10 of 25 customers".
func (p PageInfo) Summary() string {
	return fmt.Sprintf("%d-%d of %d customers", p.Start, p.End, p.Total)
}

// Paginate cuts one page out of items. Page numbers start at 1 and are clamped to the
// available range; a page size below 1 means DefaultPageSize.
func Paginate[T any](items []T, page, pageSize int) ([]T, PageInfo) {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	total := len(items)
	pages := (total + pageSize - 1) / pageSize
	if pages == 0 {
		pages = 1
	}
	page = min(max(page, 1), pages)
	info := PageInfo{Page: page, PageSize: pageSize, Pages: pages, Total: total}
	if total == 0 {
		return []T{}, info
	}
	from := (page - 1) * pageSize
	to := min(from+pageSize, total)
	info.Start = from + 1
	info.End = to
	return append([]T(nil), items[from:to]...), info
}

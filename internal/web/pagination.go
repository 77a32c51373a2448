package web

import "strconv"

// PageItem is one entry of the numbered part of the pagination control:
// either a page number or an ellipsis.
type PageItem struct {
	Number   int
	Ellipsis bool
	Current  bool
}

// PageItems returns the compact page list shown between First and Last:
// the first page, the current page and the last page, with an ellipsis
// where pages are skipped. Examples:
//
//	PageItems(1, 1)  → 1
//	PageItems(1, 5)  → 1 … 5
//	PageItems(5, 10) → 1 … 5 … 10
func PageItems(current, total int) []PageItem {
	items := []PageItem{{Number: 1, Current: current == 1}}
	if current > 3 {
		items = append(items, PageItem{Ellipsis: true})
	}
	if current > 1 && current < total {
		items = append(items, PageItem{Number: current, Current: true})
	}
	if current < total-2 {
		items = append(items, PageItem{Ellipsis: true})
	}
	if total > 1 {
		items = append(items, PageItem{Number: total, Current: current == total})
	}
	return items
}

// Pagination is the state of the Prev/First/pages/Last/Next control.
//
// Loading renders the control in its in-flight state with every button
// disabled. Server-rendered pages are always idle (HandleAccount passes
// false); static/app.js applies the same disabled state in the browser once
// a navigation starts, so the template and the script agree on how a busy
// control looks.
type Pagination struct {
	Current int
	Total   int
	Items   []PageItem
	Loading bool
}

// NewPagination builds the control for page current of total.
func NewPagination(current, total int, loading bool) Pagination {
	return Pagination{
		Current: current,
		Total:   total,
		Items:   PageItems(current, total),
		Loading: loading,
	}
}

func (p Pagination) PrevDisabled() bool  { return p.Loading || p.Current <= 1 }
func (p Pagination) FirstDisabled() bool { return p.Loading || p.Current <= 1 }
func (p Pagination) NextDisabled() bool  { return p.Loading || p.Current >= p.Total }
func (p Pagination) LastDisabled() bool  { return p.Loading || p.Current >= p.Total }

func (p Pagination) PrevHref() string  { return pageHref(p.Current - 1) }
func (p Pagination) FirstHref() string { return pageHref(1) }
func (p Pagination) NextHref() string  { return pageHref(p.Current + 1) }
func (p Pagination) LastHref() string  { return pageHref(p.Total) }

// Href is the link of a numbered item.
func (p Pagination) Href(item PageItem) string { return pageHref(item.Number) }

func pageHref(page int) string {
	return "/?page=" + strconv.Itoa(page)
}

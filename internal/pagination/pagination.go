// Package pagination sizes topic and post listings. Pages hold 20 items;
// listings with many pages expose a capped navigation window so the web
// layer never renders an arbitrarily long page-link strip.
package pagination

// PageSize is the number of posts (or topics) per page.
const PageSize = 20

// manyPagesThreshold is the page count above which the navigation window
// is capped.
const manyPagesThreshold = 6

// cappedWindow is the fixed number of page links shown for long listings.
const cappedWindow = 4

// PageCount returns ceil(n/PageSize). A count of 0 yields 0; callers must
// treat that as a single empty page for display purposes.
func PageCount(n int64) int {
	if n <= 0 {
		return 0
	}
	return int((n + PageSize - 1) / PageSize)
}

// HasManyPages reports whether the navigation window should be capped.
func HasManyPages(pageCount int) bool {
	return pageCount > manyPagesThreshold
}

// PageRange returns the page numbers to render as navigation links. Long
// listings get the fixed window [1..4] regardless of the true count; this
// is a display hint only and must never gate access to a valid later page.
func PageRange(pageCount int) []int {
	last := pageCount
	if HasManyPages(pageCount) {
		last = cappedWindow
	}
	pages := make([]int, 0, last)
	for p := 1; p <= last; p++ {
		pages = append(pages, p)
	}
	return pages
}

// ReplyDestinationPage returns the page containing a just-created reply,
// given the post count after the insert.
func ReplyDestinationPage(postCountAfterInsert int64) int {
	page := PageCount(postCountAfterInsert)
	if page < 1 {
		page = 1
	}
	return page
}

// ValidPage reports whether page k of a listing with pageCount pages may
// be fetched. Page 1 of an empty listing is always valid.
func ValidPage(k, pageCount int) bool {
	if k == 1 {
		return true
	}
	return k >= 1 && k <= pageCount
}

// Offset returns the row offset for page k of a listing with the given
// page size.
func Offset(k, limit int) int {
	if k < 1 {
		k = 1
	}
	return (k - 1) * limit
}

package models

// Pagination bounds accepted by the post listing.
const (
	DefaultPage  = 1
	DefaultLimit = 6
	MaxLimit     = 100
)

// PostPage is one page of published posts plus the totals needed to render
// a pager.
type PostPage struct {
	Posts       []Post `json:"posts"`
	TotalPosts  int    `json:"totalPosts"`
	TotalPages  int    `json:"totalPages"`
	CurrentPage int    `json:"currentPage"`
}

// EmptyPage returns a page with no posts and zero totals.
func EmptyPage(page int) *PostPage {
	return &PostPage{Posts: []Post{}, CurrentPage: page}
}

// TotalPages returns ceil(total/limit). limit must be positive.
func TotalPages(total, limit int) int {
	if total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// Offset returns the number of rows to skip for a 1-based page. Callers
// must bound page by TotalPages first; (page-1)*limit is not overflow-checked.
func Offset(page, limit int) int {
	return (page - 1) * limit
}

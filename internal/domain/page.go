package domain

// Page carries the paging metadata for a windowed result set.
type Page struct {
	CurrentPage int `json:"current_page"`
	TotalPage   int `json:"total_page"`
	Size        int `json:"size"`
}

// NewPage computes paging metadata for the given 1-based page, page size
// and total number of matching rows. TotalPage is zero when nothing
// matched; an out-of-range CurrentPage is preserved as requested.
func NewPage(current, size int, total int64) Page {
	totalPage := int((total + int64(size) - 1) / int64(size))
	return Page{
		CurrentPage: current,
		TotalPage:   totalPage,
		Size:        size,
	}
}

package pagination

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TotalCountHeader carries the unpaginated row count on list responses.
const TotalCountHeader = "X-Total-Count"

// PageRequest holds pagination parameters parsed from query strings.
type PageRequest struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"pageSize" binding:"omitempty,min=1,max=100"`
}

// Requested reports whether the client asked for a page at all.
func (p PageRequest) Requested() bool {
	return p.Page > 0 || p.PageSize > 0
}

// Defaults fills in default values when page or pageSize are not provided.
func (p *PageRequest) Defaults() {
	if p.Page == 0 {
		p.Page = 1
	}
	if p.PageSize == 0 {
		p.PageSize = 20
	}
}

// Offset returns the SQL OFFSET for the current page.
func (p *PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// TotalPages returns the number of pages needed for totalItems.
func (p PageRequest) TotalPages(totalItems int64) int {
	if p.PageSize <= 0 {
		return 0
	}
	return int(math.Ceil(float64(totalItems) / float64(p.PageSize)))
}

// Paginate returns a GORM scope that applies OFFSET and LIMIT for the given page request.
func Paginate(req PageRequest) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(req.Offset()).Limit(req.PageSize)
	}
}

// First returns a request for the first n rows.
func First(n int) PageRequest {
	return PageRequest{Page: 1, PageSize: n}
}

// SetTotalHeader writes the total row count header.
func SetTotalHeader(c *gin.Context, totalItems int64) {
	c.Header(TotalCountHeader, strconv.FormatInt(totalItems, 10))
}

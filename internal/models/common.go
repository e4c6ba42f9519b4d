package models

// Pagination contains pagination metadata returned alongside list results.
// TotalCount and the page slice come from two separate store calls on the
// same filter, so they can drift under concurrent writes.
type Pagination struct {
	CurrentPage     int   `json:"currentPage"`
	PageSize        int   `json:"pageSize"`
	TotalCount      int64 `json:"totalCount"`
	TotalPages      int   `json:"totalPages"`
	HasNextPage     bool  `json:"hasNextPage"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
}

// NewPagination derives page metadata from a total count and a 1-indexed page.
func NewPagination(total int64, page, pageSize int) *Pagination {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &Pagination{
		CurrentPage:     page,
		PageSize:        pageSize,
		TotalCount:      total,
		TotalPages:      totalPages,
		HasNextPage:     int64(page)*int64(pageSize) < total,
		HasPreviousPage: page > 1,
	}
}

// EmployeePage is a page of employees plus its pagination metadata.
type EmployeePage struct {
	Employees  []Employee  `json:"employees"`
	Pagination *Pagination `json:"pagination"`
}

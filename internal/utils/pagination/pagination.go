package pagination

import (
	"fmt"

	"github.com/finbook/finbook_backend/internal/apperrors"
)

// DefaultPageSize is used when the caller does not specify a size.
const DefaultPageSize = 5

var (
	// ErrInvalidPageSize indicates a negative page size.
	ErrInvalidPageSize = fmt.Errorf("%w: page size must not be negative", apperrors.ErrValidation)
	// ErrInvalidPageNumber indicates a negative page number.
	ErrInvalidPageNumber = fmt.Errorf("%w: page number must not be negative", apperrors.ErrValidation)
)

// Params carries page/offset pagination parameters shared by all list
// endpoints. Tokens are plain page numbers, not opaque cursors: the next
// page is simply page+1 with the caller's filters carried forward.
type Params struct {
	Size int `form:"size,default=5"`
	Page int `form:"page,default=0"`
}

// Validate checks the pagination contract: size >= 0 and page >= 0.
// A size of zero is valid and yields empty pages.
func (p Params) Validate() error {
	if p.Size < 0 {
		return ErrInvalidPageSize
	}
	if p.Page < 0 {
		return ErrInvalidPageNumber
	}
	return nil
}

// Limit returns the LIMIT value for the query.
func (p Params) Limit() int {
	return p.Size
}

// Offset returns the OFFSET value for the query.
func (p Params) Offset() int {
	return p.Page * p.Size
}

// Next returns the page number of the following page.
func (p Params) Next() int {
	return p.Page + 1
}

package pagination_test

import (
	"errors"
	"testing"

	"github.com/finbook/finbook_backend/internal/apperrors"
	"github.com/finbook/finbook_backend/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		params  pagination.Params
		wantErr error
	}{
		{"defaults", pagination.Params{Size: pagination.DefaultPageSize, Page: 0}, nil},
		{"zero size is valid", pagination.Params{Size: 0, Page: 0}, nil},
		{"negative size", pagination.Params{Size: -1, Page: 0}, pagination.ErrInvalidPageSize},
		{"negative page", pagination.Params{Size: 5, Page: -2}, pagination.ErrInvalidPageNumber},
		{"negative size wins over negative page", pagination.Params{Size: -1, Page: -1}, pagination.ErrInvalidPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, apperrors.ErrValidation)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, pagination.Params{Size: 5, Page: 0}.Offset())
	assert.Equal(t, 10, pagination.Params{Size: 5, Page: 2}.Offset())
	assert.Equal(t, 0, pagination.Params{Size: 0, Page: 7}.Offset())
}

func TestNext(t *testing.T) {
	assert.Equal(t, 1, pagination.Params{Size: 5, Page: 0}.Next())
	assert.Equal(t, 4, pagination.Params{Size: 5, Page: 3}.Next())
}

func TestValidationErrorsAreDistinct(t *testing.T) {
	assert.False(t, errors.Is(pagination.ErrInvalidPageSize, pagination.ErrInvalidPageNumber))
}

package employee

import (
	"net/url"
	"strconv"

	errors "github.com/hrtools/employee-directory/internal"
	"github.com/hrtools/employee-directory/internal/core/common/validation"
)

// SearchDTO carries the parsed search request. Filters holds raw values
// keyed by column name; parsing to typed values happens in the query builder
// against the field descriptor table.
type SearchDTO struct {
	SearchStr string
	Filters   map[string]string
	Page      int
	PageSize  int
}

// ParseSearchDTO reads the DTO from query parameters. Page defaults to 1;
// page_size has no default, it is required input.
func ParseSearchDTO(values url.Values) (SearchDTO, *errors.AppError) {
	dto := SearchDTO{
		SearchStr: values.Get("search_str"),
		Filters:   make(map[string]string),
		Page:      1,
	}

	for _, col := range FilterableColumns() {
		if v := values.Get(col); v != "" {
			dto.Filters[col] = v
		}
	}

	if raw := values.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return dto, errors.NewValidationFieldError("page", "page must be an integer", errors.ErrCodeValidationFailed)
		}
		dto.Page = page
	}

	if raw := values.Get("page_size"); raw != "" {
		pageSize, err := strconv.Atoi(raw)
		if err != nil {
			return dto, errors.NewValidationFieldError("page_size", "page_size must be an integer", errors.ErrCodeValidationFailed)
		}
		dto.PageSize = pageSize
	}

	if appErr := dto.Validate(); appErr != nil {
		return dto, appErr
	}
	return dto, nil
}

// Validate rejects bad input before any authorization or query work runs.
func (dto SearchDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("search_str", dto.SearchStr).Required().MaxLength(100)
	v.Field("page", dto.Page).Min(1)
	v.Field("page_size", dto.PageSize).Required().Min(1)
	return v.Validate()
}

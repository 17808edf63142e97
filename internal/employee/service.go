package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hrtools/employee-directory/internal/core/events"
	"github.com/hrtools/employee-directory/internal/department"
	"github.com/hrtools/employee-directory/internal/user"
)

// Repository is the persistence port for directory records. Search and Count
// receive the same normalized search string and predicate set so their row
// universe is identical.
type Repository interface {
	Search(ctx context.Context, searchStr string, preds []Predicate, offset, limit int) ([]*Employee, error)
	Count(ctx context.Context, searchStr string, preds []Predicate) (int64, error)
	DistinctValues(ctx context.Context, column string) ([]string, error)
}

// GrantResolver yields the caller's authorized column set, recomputed per
// request.
type GrantResolver interface {
	ResolveGrant(u *user.User) ([]string, error)
}

// SearchResult is the paginated response envelope. Columns is the manifest
// of authorized column names in department order; every record in Data is
// masked down to exactly that set (plus ungated fields).
type SearchResult struct {
	TotalCount  int64    `json:"total_count"`
	TotalPage   int64    `json:"total_page"`
	CurrentPage int      `json:"current_page"`
	PageSize    int      `json:"page_size"`
	Columns     []string `json:"columns"`
	Data        []Record `json:"data"`
}

type Service struct {
	repo     Repository
	resolver GrantResolver
	events   *events.EventBus
	logger   *slog.Logger
}

func NewService(repo Repository, resolver GrantResolver, bus *events.EventBus, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:     repo,
		resolver: resolver,
		events:   bus,
		logger:   logger,
	}
}

// Search runs the authorization-aware pipeline: resolve grant, build the
// restricted query, count, slice, mask. When the grant resolution fails no
// query is ever executed.
func (s *Service) Search(ctx context.Context, u *user.User, dto SearchDTO) (*SearchResult, error) {
	if appErr := dto.Validate(); appErr != nil {
		return nil, appErr
	}

	authorizedColumns, err := s.resolver.ResolveGrant(u)
	if err != nil {
		if errors.Is(err, department.ErrNoDepartment) || errors.Is(err, department.ErrNoAccess) {
			return nil, err
		}
		return nil, fmt.Errorf("resolve grant: %w", err)
	}

	searchStr := NormalizeSearch(dto.SearchStr)
	preds := BuildPredicates(authorizedColumns, dto.Filters)

	totalCount, err := s.repo.Count(ctx, searchStr, preds)
	if err != nil {
		return nil, fmt.Errorf("count employees: %w", err)
	}

	rows, err := s.repo.Search(ctx, searchStr, preds, Offset(dto.Page, dto.PageSize), dto.PageSize)
	if err != nil {
		return nil, fmt.Errorf("search employees: %w", err)
	}

	data := make([]Record, 0, len(rows))
	for _, e := range rows {
		data = append(data, MaskedRecord(e, authorizedColumns))
	}

	if s.events != nil {
		s.events.Publish(ctx, events.NewSearchExecutedEvent(u.Username, searchStr, totalCount, authorizedColumns))
	}

	return &SearchResult{
		TotalCount:  totalCount,
		TotalPage:   TotalPages(totalCount, dto.PageSize),
		CurrentPage: dto.Page,
		PageSize:    dto.PageSize,
		Columns:     authorizedColumns,
		Data:        data,
	}, nil
}

// FilterOptions returns the distinct values of the caller's authorized
// filterable string columns, for populating filter dropdowns. Columns outside
// the grant are omitted entirely.
func (s *Service) FilterOptions(ctx context.Context, u *user.User) (map[string][]string, error) {
	authorizedColumns, err := s.resolver.ResolveGrant(u)
	if err != nil {
		if errors.Is(err, department.ErrNoDepartment) || errors.Is(err, department.ErrNoAccess) {
			return nil, err
		}
		return nil, fmt.Errorf("resolve grant: %w", err)
	}

	authorized := make(map[string]struct{}, len(authorizedColumns))
	for _, c := range authorizedColumns {
		authorized[c] = struct{}{}
	}

	options := make(map[string][]string)
	for _, fd := range Schema {
		if !fd.Filterable || fd.Kind != FieldString {
			continue
		}
		if _, ok := authorized[fd.Name]; !ok {
			continue
		}
		values, err := s.repo.DistinctValues(ctx, fd.Name)
		if err != nil {
			return nil, fmt.Errorf("distinct %s: %w", fd.Name, err)
		}
		options[fd.Name] = values
	}
	return options, nil
}

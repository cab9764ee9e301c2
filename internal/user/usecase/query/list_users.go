package query

import (
	"github.com/akarpov/online-store/internal/user/domain"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ListUsersQuery represents a paginated account listing
type ListUsersQuery struct {
	Page     int
	PageSize int
}

// ListUsersResult is one page of accounts plus the total count.
type ListUsersResult struct {
	Items    []domain.User `json:"items"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}

// ListUsersHandler handles the admin account listing
type ListUsersHandler struct {
	users domain.UserRepository
}

func NewListUsersHandler(users domain.UserRepository) *ListUsersHandler {
	return &ListUsersHandler{users: users}
}

func (h *ListUsersHandler) Handle(q ListUsersQuery) (*ListUsersResult, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = defaultPageSize
	}
	if q.PageSize > maxPageSize {
		q.PageSize = maxPageSize
	}

	total, err := h.users.Count()
	if err != nil {
		return nil, err
	}

	items, err := h.users.FindAll(q.PageSize, (q.Page-1)*q.PageSize)
	if err != nil {
		return nil, err
	}

	return &ListUsersResult{
		Items:    items,
		Total:    total,
		Page:     q.Page,
		PageSize: q.PageSize,
	}, nil
}

package query

import (
	"github.com/akarpov/online-store/internal/user/domain"
)

// GetUserQuery represents a profile lookup
type GetUserQuery struct {
	UserID uint
}

// GetUserHandler handles profile lookups
type GetUserHandler struct {
	users domain.UserRepository
}

func NewGetUserHandler(users domain.UserRepository) *GetUserHandler {
	return &GetUserHandler{users: users}
}

func (h *GetUserHandler) Handle(q GetUserQuery) (*domain.User, error) {
	user, err := h.users.FindByID(q.UserID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

package command

import (
	"fmt"
	"strings"

	"github.com/akarpov/online-store/internal/user/domain"
	"github.com/akarpov/online-store/pkg/auth"
)

// RegisterUserCommand represents the intent to create an account
type RegisterUserCommand struct {
	Username string
	Email    string
	Password string
	Role     string
}

// RegisterUserHandler handles account registration
type RegisterUserHandler struct {
	users domain.UserRepository
}

func NewRegisterUserHandler(users domain.UserRepository) *RegisterUserHandler {
	return &RegisterUserHandler{users: users}
}

// Handle executes the registration command. New accounts default to the
// customer role; admin accounts are never created through this path.
func (h *RegisterUserHandler) Handle(cmd RegisterUserCommand) (*domain.User, error) {
	username := strings.TrimSpace(cmd.Username)
	email := strings.TrimSpace(strings.ToLower(cmd.Email))

	if username == "" {
		return nil, fmt.Errorf("%w: username is required", domain.ErrInvalidAccount)
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: a valid email is required", domain.ErrInvalidAccount)
	}
	if len(cmd.Password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", domain.ErrInvalidAccount)
	}

	role := cmd.Role
	switch role {
	case "", domain.RoleUser:
		role = domain.RoleUser
	case domain.RoleSeller:
	default:
		return nil, fmt.Errorf("%w: role must be user or seller", domain.ErrInvalidAccount)
	}

	if existing, err := h.users.FindByUsername(username); err == nil && existing != nil {
		return nil, domain.ErrUsernameTaken
	}
	if existing, err := h.users.FindByEmail(email); err == nil && existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hashed, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username: username,
		Email:    email,
		Password: hashed,
		Role:     role,
		IsActive: true,
	}

	if err := h.users.Create(user); err != nil {
		return nil, err
	}

	return h.users.FindByID(user.ID)
}

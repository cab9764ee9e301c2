package command

import (
	"strings"

	"github.com/akarpov/online-store/internal/user/domain"
	"github.com/akarpov/online-store/pkg/auth"
)

// LoginUserCommand represents a credential check
type LoginUserCommand struct {
	Username string
	Password string
}

// LoginResult carries the signed token and the account it belongs to.
type LoginResult struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// LoginUserHandler handles credential verification and token issuance
type LoginUserHandler struct {
	users domain.UserRepository
}

func NewLoginUserHandler(users domain.UserRepository) *LoginUserHandler {
	return &LoginUserHandler{users: users}
}

// Handle verifies the credentials. Unknown usernames and wrong passwords
// produce the same error so the endpoint does not leak which one failed.
func (h *LoginUserHandler) Handle(cmd LoginUserCommand) (*LoginResult, error) {
	user, err := h.users.FindByUsername(strings.TrimSpace(cmd.Username))
	if err != nil || user == nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.Password, cmd.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, domain.ErrAccountDisabled
	}

	token, err := auth.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, User: user}, nil
}

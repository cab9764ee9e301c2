package command_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akarpov/online-store/internal/user/domain"
	"github.com/akarpov/online-store/internal/user/usecase/command"
	"github.com/akarpov/online-store/pkg/auth"
)

type memUsers struct {
	items  map[uint]domain.User
	nextID uint
}

func newMemUsers() *memUsers {
	return &memUsers{items: make(map[uint]domain.User), nextID: 1}
}

func (m *memUsers) Create(u *domain.User) error {
	u.ID = m.nextID
	m.nextID++
	m.items[u.ID] = *u
	return nil
}

func (m *memUsers) FindByID(id uint) (*domain.User, error) {
	u, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("record not found")
	}
	return &u, nil
}

func (m *memUsers) FindByUsername(username string) (*domain.User, error) {
	for _, u := range m.items {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, fmt.Errorf("record not found")
}

func (m *memUsers) FindByEmail(email string) (*domain.User, error) {
	for _, u := range m.items {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, fmt.Errorf("record not found")
}

func (m *memUsers) FindAll(_, _ int) ([]domain.User, error) {
	return nil, nil
}

func (m *memUsers) Update(u *domain.User) error {
	m.items[u.ID] = *u
	return nil
}

func (m *memUsers) Count() (int64, error) {
	return int64(len(m.items)), nil
}

func register(t *testing.T, users *memUsers, username, role string) *domain.User {
	t.Helper()
	h := command.NewRegisterUserHandler(users)
	u, err := h.Handle(command.RegisterUserCommand{
		Username: username,
		Email:    username + "@example.com",
		Password: "hunter2hunter2",
		Role:     role,
	})
	require.NoError(t, err)
	return u
}

func TestRegisterUser(t *testing.T) {
	users := newMemUsers()

	u := register(t, users, "gopher", "")
	assert.NotZero(t, u.ID)
	assert.Equal(t, domain.RoleUser, u.Role)
	assert.True(t, u.IsActive)

	// The stored password is hashed.
	stored, err := users.FindByID(u.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2hunter2", stored.Password)
}

func TestRegisterUser_SellerRole(t *testing.T) {
	users := newMemUsers()
	u := register(t, users, "merchant", domain.RoleSeller)
	assert.Equal(t, domain.RoleSeller, u.Role)
	assert.True(t, u.IsSeller())
	assert.False(t, u.IsAdmin())
}

func TestRegisterUser_Validation(t *testing.T) {
	users := newMemUsers()
	h := command.NewRegisterUserHandler(users)

	cases := []command.RegisterUserCommand{
		{Username: "", Email: "a@b.c", Password: "longenough"},
		{Username: "x", Email: "not-an-email", Password: "longenough"},
		{Username: "x", Email: "a@b.c", Password: "short"},
		{Username: "x", Email: "a@b.c", Password: "longenough", Role: "admin"},
	}
	for _, cmd := range cases {
		_, err := h.Handle(cmd)
		assert.ErrorIs(t, err, domain.ErrInvalidAccount)
	}
}

func TestRegisterUser_DuplicateUsername(t *testing.T) {
	users := newMemUsers()
	register(t, users, "gopher", "")

	h := command.NewRegisterUserHandler(users)
	_, err := h.Handle(command.RegisterUserCommand{
		Username: "gopher",
		Email:    "other@example.com",
		Password: "hunter2hunter2",
	})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestRegisterUser_DuplicateEmail(t *testing.T) {
	users := newMemUsers()
	register(t, users, "gopher", "")

	h := command.NewRegisterUserHandler(users)
	_, err := h.Handle(command.RegisterUserCommand{
		Username: "other",
		Email:    "gopher@example.com",
		Password: "hunter2hunter2",
	})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestLoginUser(t *testing.T) {
	auth.Configure("unit-test-secret", time.Minute)

	users := newMemUsers()
	register(t, users, "gopher", "")

	h := command.NewLoginUserHandler(users)
	result, err := h.Handle(command.LoginUserCommand{Username: "gopher", Password: "hunter2hunter2"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "gopher", result.User.Username)

	claims, err := auth.ValidateToken(result.Token)
	require.NoError(t, err)
	assert.EqualValues(t, result.User.ID, claims.UserID)
}

func TestLoginUser_BadCredentials(t *testing.T) {
	users := newMemUsers()
	register(t, users, "gopher", "")

	h := command.NewLoginUserHandler(users)

	_, err := h.Handle(command.LoginUserCommand{Username: "gopher", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	// Unknown usernames fail with the same error.
	_, err = h.Handle(command.LoginUserCommand{Username: "nobody", Password: "hunter2hunter2"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginUser_DisabledAccount(t *testing.T) {
	users := newMemUsers()
	u := register(t, users, "gopher", "")

	stored, _ := users.FindByID(u.ID)
	stored.IsActive = false
	require.NoError(t, users.Update(stored))

	h := command.NewLoginUserHandler(users)
	_, err := h.Handle(command.LoginUserCommand{Username: "gopher", Password: "hunter2hunter2"})
	assert.ErrorIs(t, err, domain.ErrAccountDisabled)
}

package command

import (
	"errors"
	"strings"

	"github.com/akarpov/online-store/internal/category/domain"
)

// ErrInvalidName is returned for blank category names.
var ErrInvalidName = errors.New("category name is required")

// CreateCategoryCommand represents the intent to create a category
type CreateCategoryCommand struct {
	Name string
}

// CreateCategoryHandler handles category creation
type CreateCategoryHandler struct {
	categories domain.CategoryRepository
}

func NewCreateCategoryHandler(categories domain.CategoryRepository) *CreateCategoryHandler {
	return &CreateCategoryHandler{categories: categories}
}

func (h *CreateCategoryHandler) Handle(cmd CreateCategoryCommand) (*domain.Category, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return nil, ErrInvalidName
	}

	category := &domain.Category{
		Name:     name,
		IsActive: true,
	}

	if err := h.categories.Create(category); err != nil {
		return nil, err
	}

	return h.categories.FindByID(category.ID)
}

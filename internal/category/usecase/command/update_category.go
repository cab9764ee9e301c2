package command

import (
	"strings"

	"github.com/akarpov/online-store/internal/category/domain"
)

// UpdateCategoryCommand represents a category rename
type UpdateCategoryCommand struct {
	CategoryID uint
	Name       string
}

// UpdateCategoryHandler handles category updates
type UpdateCategoryHandler struct {
	categories domain.CategoryRepository
}

func NewUpdateCategoryHandler(categories domain.CategoryRepository) *UpdateCategoryHandler {
	return &UpdateCategoryHandler{categories: categories}
}

func (h *UpdateCategoryHandler) Handle(cmd UpdateCategoryCommand) (*domain.Category, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return nil, ErrInvalidName
	}

	category, err := h.categories.FindActiveByID(cmd.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrCategoryNotFound
	}

	category.Name = name
	if err := h.categories.Update(category); err != nil {
		return nil, err
	}

	return h.categories.FindByID(category.ID)
}

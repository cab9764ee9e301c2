package command

import (
	"github.com/akarpov/online-store/internal/category/domain"
)

// DeleteCategoryCommand represents a category deactivation
type DeleteCategoryCommand struct {
	CategoryID uint
}

// DeleteCategoryHandler handles category deactivation. Products of a
// deactivated category keep their association; they simply can no longer be
// created or moved into it.
type DeleteCategoryHandler struct {
	categories domain.CategoryRepository
}

func NewDeleteCategoryHandler(categories domain.CategoryRepository) *DeleteCategoryHandler {
	return &DeleteCategoryHandler{categories: categories}
}

func (h *DeleteCategoryHandler) Handle(cmd DeleteCategoryCommand) (*domain.Category, error) {
	category, err := h.categories.FindActiveByID(cmd.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrCategoryNotFound
	}

	if err := h.categories.Deactivate(category.ID); err != nil {
		return nil, err
	}

	return h.categories.FindByID(category.ID)
}

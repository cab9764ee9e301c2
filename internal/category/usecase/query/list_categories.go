package query

import (
	"github.com/akarpov/online-store/internal/category/domain"
)

// ListCategoriesQuery represents the public category listing
type ListCategoriesQuery struct{}

// ListCategoriesHandler handles the category listing
type ListCategoriesHandler struct {
	categories domain.CategoryRepository
}

func NewListCategoriesHandler(categories domain.CategoryRepository) *ListCategoriesHandler {
	return &ListCategoriesHandler{categories: categories}
}

func (h *ListCategoriesHandler) Handle(_ ListCategoriesQuery) ([]domain.Category, error) {
	return h.categories.FindAllActive()
}

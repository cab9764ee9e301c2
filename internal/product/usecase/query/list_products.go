package query

import (
	"fmt"

	"github.com/akarpov/online-store/internal/product/domain"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ListProductsQuery represents the catalog listing query. Optional filters
// are pointers; nil means "not supplied".
type ListProductsQuery struct {
	Page       int
	PageSize   int
	CategoryID *uint
	MinPrice   *float64
	MaxPrice   *float64
	InStock    *bool
	SellerID   *uint
}

// ListProductsHandler handles list products query
type ListProductsHandler struct {
	products domain.ProductRepository
}

// NewListProductsHandler creates a new list products handler
func NewListProductsHandler(products domain.ProductRepository) *ListProductsHandler {
	return &ListProductsHandler{products: products}
}

// Handle executes the listing. An inverted price range fails before any
// query is issued. The total is counted under the same filter as the page,
// so it is independent of the pagination window.
func (h *ListProductsHandler) Handle(q ListProductsQuery) (*domain.ListResult, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = defaultPageSize
	}
	if q.PageSize > maxPageSize {
		q.PageSize = maxPageSize
	}

	if q.MinPrice != nil && q.MaxPrice != nil && *q.MinPrice > *q.MaxPrice {
		return nil, domain.ErrInvalidPriceRange
	}

	filter := domain.Filter{
		CategoryID: q.CategoryID,
		MinPrice:   q.MinPrice,
		MaxPrice:   q.MaxPrice,
		InStock:    q.InStock,
		SellerID:   q.SellerID,
	}

	total, err := h.products.CountActive(filter)
	if err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	offset := (q.Page - 1) * q.PageSize
	items, err := h.products.FindActive(filter, q.PageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	return &domain.ListResult{
		Items:    items,
		Total:    total,
		Page:     q.Page,
		PageSize: q.PageSize,
	}, nil
}

package command

import (
	"fmt"

	categorydomain "github.com/akarpov/online-store/internal/category/domain"
	"github.com/akarpov/online-store/internal/product/domain"
)

// CreateProductCommand represents the command to create a new product
type CreateProductCommand struct {
	SellerID    uint
	Name        string
	Description string
	Price       float64
	Stock       int
	CategoryID  uint
}

// CreateProductHandler handles product creation command
type CreateProductHandler struct {
	products   domain.ProductRepository
	categories categorydomain.CategoryRepository
}

// NewCreateProductHandler creates a new create product handler
func NewCreateProductHandler(products domain.ProductRepository, categories categorydomain.CategoryRepository) *CreateProductHandler {
	return &CreateProductHandler{products: products, categories: categories}
}

// Handle executes the create product command. The referenced category must
// exist and be active; the new product is owned by the acting seller and
// starts active.
func (h *CreateProductHandler) Handle(cmd CreateProductCommand) (*domain.Product, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("product name is required")
	}
	if cmd.Price < 0 {
		return nil, fmt.Errorf("price cannot be negative")
	}
	if cmd.Stock < 0 {
		return nil, fmt.Errorf("stock cannot be negative")
	}

	category, err := h.categories.FindActiveByID(cmd.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("load category: %w", err)
	}
	if err := domain.CanCreate(category); err != nil {
		return nil, err
	}

	product := &domain.Product{
		Name:        cmd.Name,
		Description: cmd.Description,
		Price:       cmd.Price,
		Stock:       cmd.Stock,
		CategoryID:  cmd.CategoryID,
		SellerID:    cmd.SellerID,
		IsActive:    true,
	}

	if err := h.products.Create(product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	// Return the persisted state, not the submitted values.
	created, err := h.products.FindByID(product.ID)
	if err != nil {
		return nil, fmt.Errorf("reload product: %w", err)
	}
	return created, nil
}

package command

import (
	"fmt"

	categorydomain "github.com/akarpov/online-store/internal/category/domain"
	"github.com/akarpov/online-store/internal/product/domain"
)

// UpdateProductCommand represents the command to update a product
type UpdateProductCommand struct {
	SellerID    uint
	ProductID   uint
	Name        string
	Description string
	Price       float64
	Stock       int
	CategoryID  uint
}

// UpdateProductHandler handles product update command
type UpdateProductHandler struct {
	products   domain.ProductRepository
	categories categorydomain.CategoryRepository
}

// NewUpdateProductHandler creates a new update product handler
func NewUpdateProductHandler(products domain.ProductRepository, categories categorydomain.CategoryRepository) *UpdateProductHandler {
	return &UpdateProductHandler{products: products, categories: categories}
}

// Handle executes the update product command. The checks run in the order
// the API reports them: active product, then ownership, then the product's
// current category. No write is issued if any check fails.
func (h *UpdateProductHandler) Handle(cmd UpdateProductCommand) (*domain.Product, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("product name is required")
	}
	if cmd.Price < 0 {
		return nil, fmt.Errorf("price cannot be negative")
	}
	if cmd.Stock < 0 {
		return nil, fmt.Errorf("stock cannot be negative")
	}

	product, err := h.products.FindActiveByID(cmd.ProductID)
	if err != nil {
		return nil, fmt.Errorf("load product: %w", err)
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	category, err := h.categories.FindActiveByID(product.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("load category: %w", err)
	}
	if err := domain.CanMutate(product, category, cmd.SellerID); err != nil {
		return nil, err
	}

	product.Name = cmd.Name
	product.Description = cmd.Description
	product.Price = cmd.Price
	product.Stock = cmd.Stock
	product.CategoryID = cmd.CategoryID

	if err := h.products.Update(product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	updated, err := h.products.FindByID(product.ID)
	if err != nil {
		return nil, fmt.Errorf("reload product: %w", err)
	}
	return updated, nil
}

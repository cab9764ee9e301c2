package command

import (
	"fmt"

	"github.com/akarpov/online-store/internal/product/domain"
)

// DeleteProductCommand represents the command to soft-delete a product
type DeleteProductCommand struct {
	SellerID  uint
	ProductID uint
}

// DeleteProductHandler handles product soft-deletion command
type DeleteProductHandler struct {
	products domain.ProductRepository
}

// NewDeleteProductHandler creates a new delete product handler
func NewDeleteProductHandler(products domain.ProductRepository) *DeleteProductHandler {
	return &DeleteProductHandler{products: products}
}

// Handle executes the soft delete. Only the owning seller may withdraw an
// active product; a second delete finds no active row and reports not found.
// The category is deliberately not checked here.
func (h *DeleteProductHandler) Handle(cmd DeleteProductCommand) (*domain.Product, error) {
	product, err := h.products.FindActiveByID(cmd.ProductID)
	if err != nil {
		return nil, fmt.Errorf("load product: %w", err)
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	if err := domain.CanDeactivate(product, cmd.SellerID); err != nil {
		return nil, err
	}

	if err := h.products.Deactivate(cmd.ProductID); err != nil {
		return nil, fmt.Errorf("failed to deactivate product: %w", err)
	}

	// The active scope no longer sees the row; read it back unscoped.
	deleted, err := h.products.FindByID(cmd.ProductID)
	if err != nil {
		return nil, fmt.Errorf("reload product: %w", err)
	}
	return deleted, nil
}

package command

import (
	"github.com/akarpov/online-store/internal/cart/domain"
	productdomain "github.com/akarpov/online-store/internal/product/domain"
)

// AddItemCommand represents adding a product to the cart
type AddItemCommand struct {
	UserID    uint
	ProductID uint
	Quantity  int
}

// AddItemHandler handles cart additions
type AddItemHandler struct {
	cart     domain.CartRepository
	products productdomain.ProductRepository
}

func NewAddItemHandler(cart domain.CartRepository, products productdomain.ProductRepository) *AddItemHandler {
	return &AddItemHandler{cart: cart, products: products}
}

// Handle adds a product line. Adding a product already in the cart raises its
// quantity instead of creating a second line. Stock is only reserved at
// checkout, but the requested quantity must be available right now.
func (h *AddItemHandler) Handle(cmd AddItemCommand) (*domain.CartItem, error) {
	if cmd.Quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}

	product, err := h.products.FindActiveByID(cmd.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, productdomain.ErrProductNotFound
	}

	existing, err := h.cart.FindItem(cmd.UserID, cmd.ProductID)
	if err != nil {
		return nil, err
	}

	wanted := cmd.Quantity
	if existing != nil {
		wanted += existing.Quantity
	}
	if wanted > product.Stock {
		return nil, domain.ErrOutOfStock
	}

	if existing != nil {
		existing.Quantity = wanted
		if err := h.cart.Update(existing); err != nil {
			return nil, err
		}
		return h.cart.FindItem(cmd.UserID, cmd.ProductID)
	}

	item := &domain.CartItem{
		UserID:    cmd.UserID,
		ProductID: cmd.ProductID,
		Quantity:  cmd.Quantity,
	}
	if err := h.cart.Create(item); err != nil {
		return nil, err
	}

	return h.cart.FindItem(cmd.UserID, cmd.ProductID)
}

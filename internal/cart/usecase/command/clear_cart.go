package command

import (
	"github.com/akarpov/online-store/internal/cart/domain"
)

// ClearCartCommand represents emptying the cart
type ClearCartCommand struct {
	UserID uint
}

// ClearCartHandler handles emptying the cart
type ClearCartHandler struct {
	cart domain.CartRepository
}

func NewClearCartHandler(cart domain.CartRepository) *ClearCartHandler {
	return &ClearCartHandler{cart: cart}
}

func (h *ClearCartHandler) Handle(cmd ClearCartCommand) error {
	return h.cart.Clear(cmd.UserID)
}

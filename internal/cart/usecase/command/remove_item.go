package command

import (
	"github.com/akarpov/online-store/internal/cart/domain"
)

// RemoveItemCommand represents removing a product line from the cart
type RemoveItemCommand struct {
	UserID    uint
	ProductID uint
}

// RemoveItemHandler handles cart line removal
type RemoveItemHandler struct {
	cart domain.CartRepository
}

func NewRemoveItemHandler(cart domain.CartRepository) *RemoveItemHandler {
	return &RemoveItemHandler{cart: cart}
}

func (h *RemoveItemHandler) Handle(cmd RemoveItemCommand) error {
	item, err := h.cart.FindItem(cmd.UserID, cmd.ProductID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrItemNotFound
	}

	return h.cart.Delete(item.ID)
}

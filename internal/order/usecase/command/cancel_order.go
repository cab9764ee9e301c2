package command

import (
	"github.com/akarpov/online-store/internal/order/domain"
	productdomain "github.com/akarpov/online-store/internal/product/domain"
)

// CancelOrderCommand represents cancelling a pending order
type CancelOrderCommand struct {
	UserID  uint
	OrderID uint
}

// CancelOrderHandler cancels a pending order and returns its stock.
type CancelOrderHandler struct {
	orders   domain.OrderRepository
	products productdomain.ProductRepository
}

func NewCancelOrderHandler(orders domain.OrderRepository, products productdomain.ProductRepository) *CancelOrderHandler {
	return &CancelOrderHandler{orders: orders, products: products}
}

func (h *CancelOrderHandler) Handle(cmd CancelOrderCommand) (*domain.Order, error) {
	order, err := h.orders.FindByID(cmd.OrderID)
	if err != nil {
		return nil, domain.ErrOrderNotFound
	}
	if order.UserID != cmd.UserID {
		return nil, domain.ErrNotOrderOwner
	}
	if order.Status != domain.StatusPending {
		return nil, domain.ErrNotCancellable
	}

	if err := h.orders.UpdateStatus(order.ID, domain.StatusCancelled); err != nil {
		return nil, err
	}

	// Returned stock uses the unscoped lookup: a product deactivated after
	// purchase still gets its units back.
	for _, item := range order.Items {
		product, err := h.products.FindByID(item.ProductID)
		if err != nil {
			continue
		}
		if err := h.products.UpdateStock(product.ID, product.Stock+item.Quantity); err != nil {
			return nil, err
		}
	}

	return h.orders.FindByID(order.ID)
}

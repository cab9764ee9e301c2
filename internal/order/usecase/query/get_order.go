package query

import (
	"github.com/akarpov/online-store/internal/order/domain"
)

// GetOrderQuery represents an order lookup
type GetOrderQuery struct {
	UserID  uint
	OrderID uint
	IsAdmin bool
}

// GetOrderHandler handles order lookups. Customers see their own orders;
// admins see all of them.
type GetOrderHandler struct {
	orders domain.OrderRepository
}

func NewGetOrderHandler(orders domain.OrderRepository) *GetOrderHandler {
	return &GetOrderHandler{orders: orders}
}

func (h *GetOrderHandler) Handle(q GetOrderQuery) (*domain.Order, error) {
	order, err := h.orders.FindByID(q.OrderID)
	if err != nil {
		return nil, domain.ErrOrderNotFound
	}
	if order.UserID != q.UserID && !q.IsAdmin {
		return nil, domain.ErrNotOrderOwner
	}
	return order, nil
}

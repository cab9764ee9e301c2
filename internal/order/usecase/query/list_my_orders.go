package query

import (
	"github.com/akarpov/online-store/internal/order/domain"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ListMyOrdersQuery represents the order history listing
type ListMyOrdersQuery struct {
	UserID   uint
	Page     int
	PageSize int
}

// ListMyOrdersHandler handles the order history listing
type ListMyOrdersHandler struct {
	orders domain.OrderRepository
}

func NewListMyOrdersHandler(orders domain.OrderRepository) *ListMyOrdersHandler {
	return &ListMyOrdersHandler{orders: orders}
}

func (h *ListMyOrdersHandler) Handle(q ListMyOrdersQuery) ([]domain.Order, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = defaultPageSize
	}
	if q.PageSize > maxPageSize {
		q.PageSize = maxPageSize
	}

	return h.orders.FindByUser(q.UserID, q.PageSize, (q.Page-1)*q.PageSize)
}

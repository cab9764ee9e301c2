package command

import (
	"github.com/google/uuid"

	cartdomain "github.com/akarpov/online-store/internal/cart/domain"
	"github.com/akarpov/online-store/internal/order/domain"
	productdomain "github.com/akarpov/online-store/internal/product/domain"
)

// CreateOrderCommand represents checkout of the user's cart
type CreateOrderCommand struct {
	UserID uint
}

// CreateOrderHandler turns the cart into a pending order: it freezes current
// prices into order lines, decrements stock and empties the cart.
type CreateOrderHandler struct {
	orders   domain.OrderRepository
	cart     cartdomain.CartRepository
	products productdomain.ProductRepository
}

func NewCreateOrderHandler(
	orders domain.OrderRepository,
	cart cartdomain.CartRepository,
	products productdomain.ProductRepository,
) *CreateOrderHandler {
	return &CreateOrderHandler{orders: orders, cart: cart, products: products}
}

func (h *CreateOrderHandler) Handle(cmd CreateOrderCommand) (*domain.Order, error) {
	items, err := h.cart.FindByUser(cmd.UserID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, cartdomain.ErrEmptyCart
	}

	// First pass validates every line before anything is written, so a
	// failing line leaves stock untouched.
	products := make(map[uint]*productdomain.Product, len(items))
	for _, item := range items {
		product, err := h.products.FindActiveByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, productdomain.ErrProductNotFound
		}
		if item.Quantity > product.Stock {
			return nil, domain.ErrInsufficientStock
		}
		products[item.ProductID] = product
	}

	order := &domain.Order{
		Number: "ORD-" + uuid.New().String(),
		UserID: cmd.UserID,
		Status: domain.StatusPending,
	}
	for _, item := range items {
		product := products[item.ProductID]
		order.Items = append(order.Items, domain.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     product.Price,
		})
		order.Total += product.Price * float64(item.Quantity)
	}

	if err := h.orders.Create(order); err != nil {
		return nil, err
	}

	for _, item := range items {
		product := products[item.ProductID]
		if err := h.products.UpdateStock(product.ID, product.Stock-item.Quantity); err != nil {
			return nil, err
		}
	}

	if err := h.cart.Clear(cmd.UserID); err != nil {
		return nil, err
	}

	return h.orders.FindByID(order.ID)
}

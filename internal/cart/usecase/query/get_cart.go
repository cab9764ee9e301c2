package query

import (
	"github.com/akarpov/online-store/internal/cart/domain"
	productdomain "github.com/akarpov/online-store/internal/product/domain"
)

// GetCartQuery represents the cart view for a user
type GetCartQuery struct {
	UserID uint
}

// CartLine is a cart row joined with the current product state.
type CartLine struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	LineTotal float64 `json:"line_total"`
	Available bool    `json:"available"`
}

// CartView is the whole cart with the running total. Lines whose product has
// been deactivated since they were added stay visible but are flagged
// unavailable and excluded from the total.
type CartView struct {
	Items []CartLine `json:"items"`
	Total float64    `json:"total"`
}

// GetCartHandler handles the cart view
type GetCartHandler struct {
	cart     domain.CartRepository
	products productdomain.ProductRepository
}

func NewGetCartHandler(cart domain.CartRepository, products productdomain.ProductRepository) *GetCartHandler {
	return &GetCartHandler{cart: cart, products: products}
}

func (h *GetCartHandler) Handle(q GetCartQuery) (*CartView, error) {
	items, err := h.cart.FindByUser(q.UserID)
	if err != nil {
		return nil, err
	}

	view := &CartView{Items: make([]CartLine, 0, len(items))}
	for _, item := range items {
		product, err := h.products.FindActiveByID(item.ProductID)
		if err != nil {
			return nil, err
		}

		line := CartLine{ProductID: item.ProductID, Quantity: item.Quantity}
		if product != nil {
			line.Name = product.Name
			line.Price = product.Price
			line.LineTotal = product.Price * float64(item.Quantity)
			line.Available = true
			view.Total += line.LineTotal
		}
		view.Items = append(view.Items, line)
	}

	return view, nil
}

package query_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akarpov/online-store/internal/cart/domain"
	"github.com/akarpov/online-store/internal/cart/usecase/query"
	productdomain "github.com/akarpov/online-store/internal/product/domain"
)

type memCart struct {
	items []domain.CartItem
}

func (m *memCart) FindByUser(userID uint) ([]domain.CartItem, error) {
	var out []domain.CartItem
	for _, item := range m.items {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *memCart) FindItem(userID, productID uint) (*domain.CartItem, error) {
	for _, item := range m.items {
		if item.UserID == userID && item.ProductID == productID {
			item := item
			return &item, nil
		}
	}
	return nil, nil
}

func (m *memCart) Create(item *domain.CartItem) error {
	m.items = append(m.items, *item)
	return nil
}

func (m *memCart) Update(_ *domain.CartItem) error { return nil }
func (m *memCart) Delete(_ uint) error             { return nil }
func (m *memCart) Clear(_ uint) error              { return nil }

type memProducts struct {
	items map[uint]productdomain.Product
}

func (m *memProducts) Create(p *productdomain.Product) error {
	m.items[p.ID] = *p
	return nil
}

func (m *memProducts) FindByID(id uint) (*productdomain.Product, error) {
	p, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("record not found")
	}
	return &p, nil
}

func (m *memProducts) FindActiveByID(id uint) (*productdomain.Product, error) {
	p, ok := m.items[id]
	if !ok || !p.IsActive {
		return nil, nil
	}
	return &p, nil
}

func (m *memProducts) FindActive(_ productdomain.Filter, _, _ int) ([]productdomain.Product, error) {
	return nil, nil
}

func (m *memProducts) FindActiveByCategory(_ uint) ([]productdomain.Product, error) {
	return nil, nil
}

func (m *memProducts) CountActive(_ productdomain.Filter) (int64, error) { return 0, nil }
func (m *memProducts) Update(_ *productdomain.Product) error             { return nil }
func (m *memProducts) Deactivate(_ uint) error                           { return nil }
func (m *memProducts) UpdateStock(_ uint, _ int) error                   { return nil }

func TestGetCart(t *testing.T) {
	cart := &memCart{items: []domain.CartItem{
		{ID: 1, UserID: 3, ProductID: 1, Quantity: 2},
		{ID: 2, UserID: 3, ProductID: 2, Quantity: 1},
	}}
	products := &memProducts{items: map[uint]productdomain.Product{
		1: {ID: 1, Name: "Keyboard", Price: 50, Stock: 5, IsActive: true},
		2: {ID: 2, Name: "Mouse", Price: 20, Stock: 5, IsActive: true},
	}}

	h := query.NewGetCartHandler(cart, products)
	view, err := h.Handle(query.GetCartQuery{UserID: 3})
	require.NoError(t, err)

	assert.Len(t, view.Items, 2)
	assert.Equal(t, 120.0, view.Total)
}

// Lines whose product has been withdrawn remain visible but carry no price
// and are excluded from the total.
func TestGetCart_UnavailableLines(t *testing.T) {
	cart := &memCart{items: []domain.CartItem{
		{ID: 1, UserID: 3, ProductID: 1, Quantity: 2},
		{ID: 2, UserID: 3, ProductID: 2, Quantity: 1},
	}}
	products := &memProducts{items: map[uint]productdomain.Product{
		1: {ID: 1, Name: "Keyboard", Price: 50, Stock: 5, IsActive: true},
		2: {ID: 2, Name: "Mouse", Price: 20, Stock: 5, IsActive: false},
	}}

	h := query.NewGetCartHandler(cart, products)
	view, err := h.Handle(query.GetCartQuery{UserID: 3})
	require.NoError(t, err)

	require.Len(t, view.Items, 2)
	assert.Equal(t, 100.0, view.Total)

	for _, line := range view.Items {
		if line.ProductID == 2 {
			assert.False(t, line.Available)
			assert.Zero(t, line.LineTotal)
		} else {
			assert.True(t, line.Available)
		}
	}
}

func TestGetCart_Empty(t *testing.T) {
	cart := &memCart{}
	products := &memProducts{items: map[uint]productdomain.Product{}}

	h := query.NewGetCartHandler(cart, products)
	view, err := h.Handle(query.GetCartQuery{UserID: 3})
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Zero(t, view.Total)
}

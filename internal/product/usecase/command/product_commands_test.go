package command_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	categorydomain "github.com/akarpov/online-store/internal/category/domain"
	"github.com/akarpov/online-store/internal/product/domain"
	"github.com/akarpov/online-store/internal/product/usecase/command"
)

type memProducts struct {
	items  map[uint]domain.Product
	nextID uint
}

func newMemProducts() *memProducts {
	return &memProducts{items: make(map[uint]domain.Product), nextID: 1}
}

func (m *memProducts) Create(p *domain.Product) error {
	p.ID = m.nextID
	m.nextID++
	m.items[p.ID] = *p
	return nil
}

func (m *memProducts) FindByID(id uint) (*domain.Product, error) {
	p, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("record not found")
	}
	return &p, nil
}

func (m *memProducts) FindActiveByID(id uint) (*domain.Product, error) {
	p, ok := m.items[id]
	if !ok || !p.IsActive {
		return nil, nil
	}
	return &p, nil
}

func (m *memProducts) FindActive(_ domain.Filter, _, _ int) ([]domain.Product, error) {
	return nil, nil
}

func (m *memProducts) FindActiveByCategory(_ uint) ([]domain.Product, error) {
	return nil, nil
}

func (m *memProducts) CountActive(_ domain.Filter) (int64, error) {
	return 0, nil
}

func (m *memProducts) Update(p *domain.Product) error {
	if _, ok := m.items[p.ID]; !ok {
		return fmt.Errorf("record not found")
	}
	m.items[p.ID] = *p
	return nil
}

func (m *memProducts) Deactivate(id uint) error {
	p, ok := m.items[id]
	if !ok {
		return fmt.Errorf("record not found")
	}
	p.IsActive = false
	m.items[id] = p
	return nil
}

func (m *memProducts) UpdateStock(id uint, stock int) error {
	p := m.items[id]
	p.Stock = stock
	m.items[id] = p
	return nil
}

type memCategories struct {
	items map[uint]categorydomain.Category
}

func newMemCategories(items ...categorydomain.Category) *memCategories {
	m := &memCategories{items: make(map[uint]categorydomain.Category)}
	for _, c := range items {
		m.items[c.ID] = c
	}
	return m
}

func (m *memCategories) Create(c *categorydomain.Category) error {
	m.items[c.ID] = *c
	return nil
}

func (m *memCategories) FindByID(id uint) (*categorydomain.Category, error) {
	c, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("record not found")
	}
	return &c, nil
}

func (m *memCategories) FindActiveByID(id uint) (*categorydomain.Category, error) {
	c, ok := m.items[id]
	if !ok || !c.IsActive {
		return nil, nil
	}
	return &c, nil
}

func (m *memCategories) FindAllActive() ([]categorydomain.Category, error) {
	return nil, nil
}

func (m *memCategories) Update(c *categorydomain.Category) error {
	m.items[c.ID] = *c
	return nil
}

func (m *memCategories) Deactivate(id uint) error {
	c := m.items[id]
	c.IsActive = false
	m.items[id] = c
	return nil
}

func fixtures() (*memProducts, *memCategories) {
	products := newMemProducts()
	categories := newMemCategories(
		categorydomain.Category{ID: 1, Name: "Books", IsActive: true},
		categorydomain.Category{ID: 2, Name: "Retired", IsActive: false},
	)
	return products, categories
}

func seedProduct(t *testing.T, products *memProducts, categories *memCategories, sellerID uint) *domain.Product {
	t.Helper()
	h := command.NewCreateProductHandler(products, categories)
	p, err := h.Handle(command.CreateProductCommand{
		SellerID:   sellerID,
		Name:       "The Go Programming Language",
		Price:      39.99,
		Stock:      12,
		CategoryID: 1,
	})
	require.NoError(t, err)
	return p
}

func TestCreateProduct(t *testing.T) {
	products, categories := fixtures()

	p := seedProduct(t, products, categories, 7)
	assert.NotZero(t, p.ID)
	assert.True(t, p.IsActive)
	assert.EqualValues(t, 7, p.SellerID)
	assert.Equal(t, 39.99, p.Price)
}

func TestCreateProduct_RejectsBadPayload(t *testing.T) {
	products, categories := fixtures()
	h := command.NewCreateProductHandler(products, categories)

	_, err := h.Handle(command.CreateProductCommand{SellerID: 7, Price: 10, CategoryID: 1})
	assert.Error(t, err)

	_, err = h.Handle(command.CreateProductCommand{SellerID: 7, Name: "x", Price: -1, CategoryID: 1})
	assert.Error(t, err)

	_, err = h.Handle(command.CreateProductCommand{SellerID: 7, Name: "x", Price: 1, Stock: -5, CategoryID: 1})
	assert.Error(t, err)
}

func TestCreateProduct_InactiveCategory(t *testing.T) {
	products, categories := fixtures()
	h := command.NewCreateProductHandler(products, categories)

	_, err := h.Handle(command.CreateProductCommand{
		SellerID: 7, Name: "x", Price: 1, CategoryID: 2,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)

	_, err = h.Handle(command.CreateProductCommand{
		SellerID: 7, Name: "x", Price: 1, CategoryID: 99,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)

	assert.Empty(t, products.items)
}

func TestUpdateProduct(t *testing.T) {
	products, categories := fixtures()
	p := seedProduct(t, products, categories, 7)

	h := command.NewUpdateProductHandler(products, categories)
	updated, err := h.Handle(command.UpdateProductCommand{
		SellerID:   7,
		ProductID:  p.ID,
		Name:       "Renamed",
		Price:      45,
		Stock:      3,
		CategoryID: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, 45.0, updated.Price)
	assert.Equal(t, 3, updated.Stock)
}

func TestUpdateProduct_NotOwner(t *testing.T) {
	products, categories := fixtures()
	p := seedProduct(t, products, categories, 7)

	h := command.NewUpdateProductHandler(products, categories)
	_, err := h.Handle(command.UpdateProductCommand{
		SellerID: 8, ProductID: p.ID, Name: "Hijacked", Price: 1, CategoryID: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotOwner)

	// Nothing was written.
	current, _ := products.FindByID(p.ID)
	assert.Equal(t, "The Go Programming Language", current.Name)
}

func TestUpdateProduct_MissingProduct(t *testing.T) {
	products, categories := fixtures()
	h := command.NewUpdateProductHandler(products, categories)

	_, err := h.Handle(command.UpdateProductCommand{
		SellerID: 7, ProductID: 123, Name: "x", Price: 1, CategoryID: 1,
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

// Updating a product parked under a retired category fails on the category
// check even when the payload would move it to a live one.
func TestUpdateProduct_RetiredCurrentCategory(t *testing.T) {
	products, categories := fixtures()
	p := seedProduct(t, products, categories, 7)

	categories.Deactivate(1)

	h := command.NewUpdateProductHandler(products, categories)
	_, err := h.Handle(command.UpdateProductCommand{
		SellerID: 7, ProductID: p.ID, Name: "x", Price: 1, CategoryID: 3,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)
}

func TestDeleteProduct(t *testing.T) {
	products, categories := fixtures()
	p := seedProduct(t, products, categories, 7)

	h := command.NewDeleteProductHandler(products)
	deleted, err := h.Handle(command.DeleteProductCommand{SellerID: 7, ProductID: p.ID})
	require.NoError(t, err)

	// Soft delete: the row survives with the flag cleared.
	assert.EqualValues(t, p.ID, deleted.ID)
	assert.False(t, deleted.IsActive)

	row, err := products.FindByID(p.ID)
	require.NoError(t, err)
	assert.False(t, row.IsActive)
}

func TestDeleteProduct_SecondDeleteNotFound(t *testing.T) {
	products, categories := fixtures()
	p := seedProduct(t, products, categories, 7)

	h := command.NewDeleteProductHandler(products)
	_, err := h.Handle(command.DeleteProductCommand{SellerID: 7, ProductID: p.ID})
	require.NoError(t, err)

	_, err = h.Handle(command.DeleteProductCommand{SellerID: 7, ProductID: p.ID})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestDeleteProduct_NotOwner(t *testing.T) {
	products, categories := fixtures()
	p := seedProduct(t, products, categories, 7)

	h := command.NewDeleteProductHandler(products)
	_, err := h.Handle(command.DeleteProductCommand{SellerID: 9, ProductID: p.ID})
	assert.ErrorIs(t, err, domain.ErrNotOwner)
}

// The soft delete skips the category check, so withdrawal still works after
// the category was retired.
func TestDeleteProduct_RetiredCategory(t *testing.T) {
	products, categories := fixtures()
	p := seedProduct(t, products, categories, 7)

	categories.Deactivate(1)

	h := command.NewDeleteProductHandler(products)
	deleted, err := h.Handle(command.DeleteProductCommand{SellerID: 7, ProductID: p.ID})
	require.NoError(t, err)
	assert.False(t, deleted.IsActive)
}

package query_test

import (
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akarpov/online-store/internal/product/domain"
	"github.com/akarpov/online-store/internal/product/usecase/query"
)

// memProducts is an in-memory ProductRepository with the same filter
// semantics as the SQL implementation: listings see active rows only and
// price bounds are inclusive.
type memProducts struct {
	items map[uint]domain.Product
	calls int
}

func newMemProducts(items ...domain.Product) *memProducts {
	m := &memProducts{items: make(map[uint]domain.Product)}
	for _, p := range items {
		m.items[p.ID] = p
	}
	return m
}

func (m *memProducts) matches(p domain.Product, f domain.Filter) bool {
	if !p.IsActive {
		return false
	}
	if f.CategoryID != nil && p.CategoryID != *f.CategoryID {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if f.InStock != nil && *f.InStock && p.Stock <= 0 {
		return false
	}
	if f.SellerID != nil && p.SellerID != *f.SellerID {
		return false
	}
	return true
}

func (m *memProducts) active(f domain.Filter) []domain.Product {
	var out []domain.Product
	for _, p := range m.items {
		if m.matches(p, f) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memProducts) Create(p *domain.Product) error {
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

func (m *memProducts) FindActive(f domain.Filter, limit, offset int) ([]domain.Product, error) {
	m.calls++
	all := m.active(f)
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (m *memProducts) FindActiveByCategory(categoryID uint) ([]domain.Product, error) {
	return m.active(domain.Filter{CategoryID: &categoryID}), nil
}

func (m *memProducts) CountActive(f domain.Filter) (int64, error) {
	m.calls++
	return int64(len(m.active(f))), nil
}

func (m *memProducts) Update(p *domain.Product) error {
	m.items[p.ID] = *p
	return nil
}

func (m *memProducts) Deactivate(id uint) error {
	p := m.items[id]
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

func catalog(n int) []domain.Product {
	items := make([]domain.Product, 0, n)
	for i := 1; i <= n; i++ {
		items = append(items, domain.Product{
			ID:         uint(i),
			Name:       fmt.Sprintf("Product %d", i),
			Price:      float64(i * 10),
			Stock:      i % 3,
			CategoryID: uint(i%2 + 1),
			SellerID:   uint(i%4 + 1),
			IsActive:   true,
		})
	}
	return items
}

func ptr[T any](v T) *T { return &v }

func TestListProducts_Pagination(t *testing.T) {
	repo := newMemProducts(catalog(25)...)
	h := query.NewListProductsHandler(repo)

	page1, err := h.Handle(query.ListProductsQuery{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, page1.Items, 10)
	assert.EqualValues(t, 25, page1.Total)

	page2, err := h.Handle(query.ListProductsQuery{Page: 2, PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, page2.Items, 10)

	page3, err := h.Handle(query.ListProductsQuery{Page: 3, PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, page3.Items, 5)
	assert.EqualValues(t, 25, page3.Total)

	// Pages do not overlap and keep ascending order.
	assert.EqualValues(t, 1, page1.Items[0].ID)
	assert.EqualValues(t, 10, page1.Items[9].ID)
	assert.EqualValues(t, 11, page2.Items[0].ID)
	assert.EqualValues(t, 25, page3.Items[4].ID)
}

func TestListProducts_PageBeyondEnd(t *testing.T) {
	repo := newMemProducts(catalog(5)...)
	h := query.NewListProductsHandler(repo)

	result, err := h.Handle(query.ListProductsQuery{Page: 4, PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, result.Items)
	assert.EqualValues(t, 5, result.Total)
}

func TestListProducts_ClampsPaging(t *testing.T) {
	repo := newMemProducts(catalog(3)...)
	h := query.NewListProductsHandler(repo)

	result, err := h.Handle(query.ListProductsQuery{Page: -2, PageSize: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 20, result.PageSize)

	result, err = h.Handle(query.ListProductsQuery{PageSize: 5000})
	require.NoError(t, err)
	assert.Equal(t, 100, result.PageSize)
}

func TestListProducts_InvalidPriceRange(t *testing.T) {
	repo := newMemProducts(catalog(5)...)
	h := query.NewListProductsHandler(repo)

	_, err := h.Handle(query.ListProductsQuery{MinPrice: ptr(50.0), MaxPrice: ptr(10.0)})
	assert.ErrorIs(t, err, domain.ErrInvalidPriceRange)

	// The inverted range is rejected before any repository access.
	assert.Zero(t, repo.calls)
}

func TestListProducts_EqualPriceBoundsAllowed(t *testing.T) {
	repo := newMemProducts(catalog(5)...)
	h := query.NewListProductsHandler(repo)

	result, err := h.Handle(query.ListProductsQuery{MinPrice: ptr(30.0), MaxPrice: ptr(30.0)})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, 30.0, result.Items[0].Price)
}

// A product priced exactly at the lower bound is part of the result. This
// pins the >= comparison on min_price.
func TestListProducts_MinPriceInclusive(t *testing.T) {
	repo := newMemProducts(catalog(5)...)
	h := query.NewListProductsHandler(repo)

	result, err := h.Handle(query.ListProductsQuery{MinPrice: ptr(20.0)})
	require.NoError(t, err)
	require.NotEmpty(t, result.Items)
	assert.Equal(t, 20.0, result.Items[0].Price)
	assert.EqualValues(t, 4, result.Total)
}

func TestListProducts_FiltersCombineWithAnd(t *testing.T) {
	repo := newMemProducts(catalog(25)...)
	h := query.NewListProductsHandler(repo)

	result, err := h.Handle(query.ListProductsQuery{
		CategoryID: ptr(uint(1)),
		MinPrice:   ptr(40.0),
		MaxPrice:   ptr(200.0),
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Items)
	for _, p := range result.Items {
		assert.EqualValues(t, 1, p.CategoryID)
		assert.GreaterOrEqual(t, p.Price, 40.0)
		assert.LessOrEqual(t, p.Price, 200.0)
	}
	assert.EqualValues(t, len(result.Items), result.Total)
}

func TestListProducts_ExcludesInactive(t *testing.T) {
	items := catalog(10)
	items[2].IsActive = false
	items[7].IsActive = false
	repo := newMemProducts(items...)
	h := query.NewListProductsHandler(repo)

	result, err := h.Handle(query.ListProductsQuery{})
	require.NoError(t, err)
	assert.Len(t, result.Items, 8)
	assert.EqualValues(t, 8, result.Total)
	for _, p := range result.Items {
		assert.True(t, p.IsActive)
	}
}

func TestListProducts_InStockFilter(t *testing.T) {
	repo := newMemProducts(catalog(9)...)
	h := query.NewListProductsHandler(repo)

	result, err := h.Handle(query.ListProductsQuery{InStock: ptr(true)})
	require.NoError(t, err)
	require.NotEmpty(t, result.Items)
	for _, p := range result.Items {
		assert.Greater(t, p.Stock, 0)
	}
}

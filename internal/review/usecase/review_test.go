package usecase_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	productdomain "github.com/akarpov/online-store/internal/product/domain"
	"github.com/akarpov/online-store/internal/review/domain"
	"github.com/akarpov/online-store/internal/review/usecase/command"
	"github.com/akarpov/online-store/internal/review/usecase/query"
	userdomain "github.com/akarpov/online-store/internal/user/domain"
)

type memReviews struct {
	items  map[uint]domain.Review
	nextID uint
}

func newMemReviews() *memReviews {
	return &memReviews{items: make(map[uint]domain.Review), nextID: 1}
}

func (m *memReviews) Create(r *domain.Review) error {
	r.ID = m.nextID
	m.nextID++
	m.items[r.ID] = *r
	return nil
}

func (m *memReviews) FindByID(id uint) (*domain.Review, error) {
	r, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("record not found")
	}
	return &r, nil
}

func (m *memReviews) FindByProduct(productID uint) ([]domain.Review, error) {
	var out []domain.Review
	for _, r := range m.items {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memReviews) AverageRating(productID uint) (float64, error) {
	sum, n := 0, 0
	for _, r := range m.items {
		if r.ProductID == productID {
			sum += r.Rating
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return float64(sum) / float64(n), nil
}

func (m *memReviews) Delete(id uint) error {
	delete(m.items, id)
	return nil
}

type memProducts struct {
	items map[uint]productdomain.Product
}

func newMemProducts(items ...productdomain.Product) *memProducts {
	m := &memProducts{items: make(map[uint]productdomain.Product)}
	for _, p := range items {
		m.items[p.ID] = p
	}
	return m
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

func (m *memProducts) CountActive(_ productdomain.Filter) (int64, error) {
	return 0, nil
}

func (m *memProducts) Update(p *productdomain.Product) error {
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

func reviewFixtures() (*memReviews, *memProducts) {
	reviews := newMemReviews()
	products := newMemProducts(productdomain.Product{ID: 1, Name: "Keyboard", Price: 49.90, Stock: 5, IsActive: true})
	return reviews, products
}

func TestAddReview(t *testing.T) {
	reviews, products := reviewFixtures()
	h := command.NewAddReviewHandler(reviews, products)

	r, err := h.Handle(command.AddReviewCommand{UserID: 3, ProductID: 1, Rating: 4, Comment: "  solid  "})
	require.NoError(t, err)
	assert.Equal(t, 4, r.Rating)
	assert.Equal(t, "solid", r.Comment)
}

func TestAddReview_RatingBounds(t *testing.T) {
	reviews, products := reviewFixtures()
	h := command.NewAddReviewHandler(reviews, products)

	for _, rating := range []int{0, 6, -1} {
		_, err := h.Handle(command.AddReviewCommand{UserID: 3, ProductID: 1, Rating: rating})
		assert.ErrorIs(t, err, domain.ErrInvalidRating)
	}

	for _, rating := range []int{1, 5} {
		_, err := h.Handle(command.AddReviewCommand{UserID: 3, ProductID: 1, Rating: rating})
		assert.NoError(t, err)
	}
}

func TestAddReview_InactiveProduct(t *testing.T) {
	reviews, products := reviewFixtures()
	require.NoError(t, products.Deactivate(1))

	h := command.NewAddReviewHandler(reviews, products)
	_, err := h.Handle(command.AddReviewCommand{UserID: 3, ProductID: 1, Rating: 4})
	assert.ErrorIs(t, err, productdomain.ErrProductNotFound)
}

func TestListByProduct_AverageRating(t *testing.T) {
	reviews, products := reviewFixtures()
	add := command.NewAddReviewHandler(reviews, products)
	for _, rating := range []int{5, 4, 3} {
		_, err := add.Handle(command.AddReviewCommand{UserID: 3, ProductID: 1, Rating: rating})
		require.NoError(t, err)
	}

	h := query.NewListByProductHandler(reviews, products)
	result, err := h.Handle(query.ListByProductQuery{ProductID: 1})
	require.NoError(t, err)
	assert.Len(t, result.Items, 3)
	assert.InDelta(t, 4.0, result.AverageRating, 0.001)
}

func TestListByProduct_Empty(t *testing.T) {
	reviews, products := reviewFixtures()
	h := query.NewListByProductHandler(reviews, products)

	result, err := h.Handle(query.ListByProductQuery{ProductID: 1})
	require.NoError(t, err)
	assert.Empty(t, result.Items)
	assert.Zero(t, result.AverageRating)
}

func TestDeleteReview_AuthorOrAdmin(t *testing.T) {
	reviews, products := reviewFixtures()
	add := command.NewAddReviewHandler(reviews, products)
	r, err := add.Handle(command.AddReviewCommand{UserID: 3, ProductID: 1, Rating: 4})
	require.NoError(t, err)

	del := command.NewDeleteReviewHandler(reviews)

	stranger := &userdomain.User{ID: 4, Role: userdomain.RoleUser}
	assert.ErrorIs(t, del.Handle(command.DeleteReviewCommand{Actor: stranger, ReviewID: r.ID}), domain.ErrNotAuthor)

	author := &userdomain.User{ID: 3, Role: userdomain.RoleUser}
	require.NoError(t, del.Handle(command.DeleteReviewCommand{Actor: author, ReviewID: r.ID}))

	// Admins can remove anyone's review.
	r2, err := add.Handle(command.AddReviewCommand{UserID: 3, ProductID: 1, Rating: 2})
	require.NoError(t, err)
	admin := &userdomain.User{ID: 99, Role: userdomain.RoleAdmin}
	require.NoError(t, del.Handle(command.DeleteReviewCommand{Actor: admin, ReviewID: r2.ID}))

	assert.ErrorIs(t, del.Handle(command.DeleteReviewCommand{Actor: admin, ReviewID: r2.ID}), domain.ErrReviewNotFound)
}

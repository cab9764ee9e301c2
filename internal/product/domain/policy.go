package domain

import categorydomain "github.com/akarpov/online-store/internal/category/domain"

// The mutation policy is a pure decision layer shared by create, update and
// delete. It never touches storage; callers fetch the rows first.

// CanCreate reports whether a product may be created under the category.
func CanCreate(category *categorydomain.Category) error {
	if category == nil || !category.IsActive {
		return ErrInvalidCategory
	}
	return nil
}

// CanMutate reports whether actorID may update the product under its current
// category. Each failure keeps its own kind: missing/inactive product,
// missing/inactive category, or foreign ownership.
func CanMutate(product *Product, category *categorydomain.Category, actorID uint) error {
	if product == nil || !product.IsActive {
		return ErrProductNotFound
	}
	if product.SellerID != actorID {
		return ErrNotOwner
	}
	if category == nil || !category.IsActive {
		return ErrInvalidCategory
	}
	return nil
}

// CanDeactivate is the soft-delete variant of CanMutate: the product's
// category is not consulted, a product under a retired category can still be
// withdrawn by its seller.
func CanDeactivate(product *Product, actorID uint) error {
	if product == nil || !product.IsActive {
		return ErrProductNotFound
	}
	if product.SellerID != actorID {
		return ErrNotOwner
	}
	return nil
}

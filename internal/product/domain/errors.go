package domain

import "errors"

// Business outcomes of catalog operations. Handlers map each one to its own
// status code; they are never collapsed into a generic failure.
var (
	// ErrInvalidPriceRange: min_price exceeds max_price. Rejected before any
	// query is issued.
	ErrInvalidPriceRange = errors.New("min_price cannot be higher than max_price")

	// ErrInvalidCategory: referenced category is missing or inactive at
	// create/update time.
	ErrInvalidCategory = errors.New("category not found or inactive")

	// ErrProductNotFound: product is missing or inactive.
	ErrProductNotFound = errors.New("product not found or inactive")

	// ErrCategoryNotFound: category is missing or inactive at read time. A
	// product whose category is gone is unavailable even though its row exists.
	ErrCategoryNotFound = errors.New("category not found or inactive")

	// ErrNotOwner: acting user is not the product's seller.
	ErrNotOwner = errors.New("only the owning seller can modify this product")
)

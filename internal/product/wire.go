//go:build wireinject
// +build wireinject

package product

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	producthttp "github.com/akarpov/online-store/internal/product/delivery/http"
)

// InitializeHTTPHandler initializes the catalog HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB) (*producthttp.ProductHandler, error) {
	wire.Build(
		RepositorySet,
		UsecaseSet,
		producthttp.NewProductHandlerWithDI,
	)
	return nil, nil
}

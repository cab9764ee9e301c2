package product

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	categorydomain "github.com/akarpov/online-store/internal/category/domain"
	categoryrepository "github.com/akarpov/online-store/internal/category/repository"
	"github.com/akarpov/online-store/internal/product/domain"
	"github.com/akarpov/online-store/internal/product/repository"
	"github.com/akarpov/online-store/internal/product/usecase/command"
	"github.com/akarpov/online-store/internal/product/usecase/query"
	userdomain "github.com/akarpov/online-store/internal/user/domain"
	userrepository "github.com/akarpov/online-store/internal/user/repository"
)

// ProvideProductRepository provides the product repository
func ProvideProductRepository(db *gorm.DB) domain.ProductRepository {
	return repository.NewGormProductRepository(db)
}

// ProvideCategoryRepository provides the category repository
func ProvideCategoryRepository(db *gorm.DB) categorydomain.CategoryRepository {
	return categoryrepository.NewGormCategoryRepository(db)
}

// ProvideUserRepository provides the user repository used by auth middleware
func ProvideUserRepository(db *gorm.DB) userdomain.UserRepository {
	return userrepository.NewGormUserRepository(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideProductRepository,
	ProvideCategoryRepository,
	ProvideUserRepository,
)

var UsecaseSet = wire.NewSet(
	command.NewCreateProductHandler,
	command.NewUpdateProductHandler,
	command.NewDeleteProductHandler,
	query.NewGetProductHandler,
	query.NewListProductsHandler,
	query.NewListByCategoryHandler,
)

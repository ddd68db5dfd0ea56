package product

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
)

type UseCase interface {
	Compose(ctx context.Context, input *dto.ComposeProductInput) (*model.Product, error)
	FixedAttributesForModel(ctx context.Context, modelID int64) ([]model.AttributeValue, error)
	AttributesForNewProduct(ctx context.Context, categoryID, modelID int64) ([]model.Attribute, error)

	Filter(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, error)
	FindByID(ctx context.Context, id int64) (*model.Product, error)
	FindAll(ctx context.Context) ([]model.Product, error)
	FindByCategory(ctx context.Context, categoryID int64) ([]model.Product, error)
	FindByBrand(ctx context.Context, brandID int64) ([]model.Product, error)
	FindByModel(ctx context.Context, modelID int64) ([]model.Product, error)
	FindSaleProducts(ctx context.Context) ([]model.Product, error)
	Search(ctx context.Context, query string) ([]model.Product, error)

	// FindOne is FindByID plus a view recorded for the caller's identity.
	FindOne(ctx context.Context, id int64) (*model.Product, error)
	FindPopular(ctx context.Context, limit int) ([]model.Product, error)
	FindLastViewed(ctx context.Context) ([]model.Product, error)

	Update(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error)
	Remove(ctx context.Context, id int64) error
}

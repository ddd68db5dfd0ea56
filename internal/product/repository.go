package product

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, product *model.Product) error
	CreateInfo(ctx context.Context, info *model.ProductInfo) error
	FindByID(ctx context.Context, id int64) (*model.Product, error)
	// FindDetail loads the product together with its category, brand, model
	// and stock summaries.
	FindDetail(ctx context.Context, id int64) (*model.Product, error)
	FindByIDs(ctx context.Context, ids []int64) ([]model.Product, error)
	FindAll(ctx context.Context) ([]model.Product, error)
	// Filter applies brand and price and returns every product having at
	// least one of the attribute conditions. Callers narrow the result.
	Filter(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, error)
	FindByCategory(ctx context.Context, categoryID int64) ([]model.Product, error)
	FindByBrand(ctx context.Context, brandID int64) ([]model.Product, error)
	FindByModel(ctx context.Context, modelID int64) ([]model.Product, error)
	FindByModels(ctx context.Context, modelIDs []int64) ([]model.Product, error)
	FindByNameLike(ctx context.Context, fragment string) ([]model.Product, error)

	FindInfosByProductIDs(ctx context.Context, productIDs []int64) ([]model.ProductInfo, error)
	FindMediaByProductID(ctx context.Context, productID int64) ([]model.ProductMedia, error)

	CountByModel(ctx context.Context, modelID int64) (int, error)
	// FindReferenceInstance returns the id of the model's product with the
	// most attribute values, lowest id first on ties. Zero when none exists.
	FindReferenceInstance(ctx context.Context, modelID int64) (int64, error)
	FindFixedInfos(ctx context.Context, productID int64) ([]model.AttributeValue, error)
	// LockModel takes a row lock on the model for the current transaction.
	LockModel(ctx context.Context, modelID int64) error

	UpdatePrice(ctx context.Context, id int64, price decimal.Decimal) error
	Delete(ctx context.Context, id int64) error
}

// NameMatcher finds products whose name contains fragment, case-insensitively.
type NameMatcher interface {
	MatchName(ctx context.Context, fragment string) ([]model.Product, error)
}

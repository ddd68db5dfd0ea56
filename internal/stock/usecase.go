package stock

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

// UseCase is the stock collaborator consumed by the product use cases.
type UseCase interface {
	Initialize(ctx context.Context, productID, quantity int64) error
	RemoveForProduct(ctx context.Context, productID int64) error
	GetProductStock(ctx context.Context, productID int64) (*model.Stock, error)
	SetQuantity(ctx context.Context, productID, quantity int64) error
}

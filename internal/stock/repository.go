package stock

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, s *model.Stock) error
	GetByProduct(ctx context.Context, productID int64) (*model.Stock, error)
	UpdateQuantity(ctx context.Context, productID, quantity int64) (bool, error)
	DeleteByProduct(ctx context.Context, productID int64) error
}

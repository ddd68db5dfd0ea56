package productmodel

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, m *model.ProductModel) error
	FindByID(ctx context.Context, id int64) (*model.ProductModel, error)
	FindByBrand(ctx context.Context, brandID int64) ([]model.ProductModel, error)
}

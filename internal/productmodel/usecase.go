package productmodel

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/productmodel/dto"
)

type UseCase interface {
	CreateModel(ctx context.Context, input *dto.CreateModelInput) (*model.ProductModel, error)
	GetModel(ctx context.Context, id int64) (*model.ProductModel, error)
	ListByBrand(ctx context.Context, brandID int64) ([]model.ProductModel, error)
}

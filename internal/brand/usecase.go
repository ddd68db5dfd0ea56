package brand

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type UseCase interface {
	CreateBrand(ctx context.Context, name string) (*model.Brand, error)
	GetBrand(ctx context.Context, id int64) (*model.Brand, error)
	ListBrands(ctx context.Context) ([]model.Brand, error)
}

package brand

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, brand *model.Brand) error
	FindByID(ctx context.Context, id int64) (*model.Brand, error)
	FindAll(ctx context.Context) ([]model.Brand, error)
}

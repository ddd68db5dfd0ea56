package attribute

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, attr *model.Attribute) error
	FindByID(ctx context.Context, id int64) (*model.Attribute, error)
	// FindByCategory lists the attributes of a category. With changeableOnly
	// set, fixed attributes are left out.
	FindByCategory(ctx context.Context, categoryID int64, changeableOnly bool) ([]model.Attribute, error)
}

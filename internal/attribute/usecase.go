package attribute

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/attribute/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

// UseCase is the attribute catalog: attribute definitions per category and
// their fixed/changeable flag.
type UseCase interface {
	CreateAttribute(ctx context.Context, input *dto.CreateAttributeInput) (*model.Attribute, error)
	// AttributesForCategory returns every attribute of the category for the
	// first product of a model, and only the changeable ones when the model
	// already has an instance (its fixed values are inherited).
	AttributesForCategory(ctx context.Context, categoryID int64, existingModelHasInstance bool) ([]model.Attribute, error)
	IsChangeable(ctx context.Context, attributeID int64) (bool, error)
}

package productview

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, view *model.ProductView) error
	// MostViewed returns view counts, highest first.
	MostViewed(ctx context.Context, limit int) ([]model.ViewCount, error)
	// LastViewedProductIDs returns distinct product ids, most recent view first.
	LastViewedProductIDs(ctx context.Context, userID string, limit int) ([]int64, error)
}

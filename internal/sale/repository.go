package sale

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, s *model.Sale) error
	// RefreshActive flips is_active so it matches [starts_at, ends_at) at now
	// and returns how many rows changed.
	RefreshActive(ctx context.Context, now time.Time) (int64, error)
	FindActive(ctx context.Context) ([]model.Sale, error)
}

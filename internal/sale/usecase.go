package sale

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/sale/dto"
)

type UseCase interface {
	CreateSale(ctx context.Context, input *dto.CreateSaleInput) (*model.Sale, error)
	RefreshActiveSales(ctx context.Context) error
	ActiveModelIDs(ctx context.Context) ([]int64, error)
}

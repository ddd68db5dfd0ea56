package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/sale"
	"github.com/fekuna/omnipos-catalog-service/internal/sale/dto"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type saleUseCase struct {
	repo   sale.Repository
	logger logger.ZapLogger
	now    func() time.Time
}

func NewSaleUseCase(repo sale.Repository, log logger.ZapLogger) sale.UseCase {
	return &saleUseCase{
		repo:   repo,
		logger: log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (uc *saleUseCase) CreateSale(ctx context.Context, input *dto.CreateSaleInput) (*model.Sale, error) {
	if input.ModelID <= 0 {
		return nil, apperror.InvalidArgument("invalid model id")
	}
	if !input.EndsAt.After(input.StartsAt) {
		return nil, apperror.InvalidArgument("sale must end after it starts")
	}
	if input.DiscountPercent.LessThanOrEqual(decimal.Zero) || input.DiscountPercent.GreaterThan(decimal.NewFromInt(100)) {
		return nil, apperror.InvalidArgument("discount must be within (0, 100]")
	}

	now := uc.now()
	s := &model.Sale{
		BaseModel:       model.BaseModel{CreatedAt: now},
		ModelID:         input.ModelID,
		DiscountPercent: input.DiscountPercent,
		StartsAt:        input.StartsAt.UTC(),
		EndsAt:          input.EndsAt.UTC(),
		IsActive:        !now.Before(input.StartsAt) && now.Before(input.EndsAt),
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		uc.logger.Error("failed to create sale", zap.Int64("model_id", input.ModelID), zap.Error(err))
		return nil, apperror.Internal("failed to create sale", err)
	}
	return s, nil
}

func (uc *saleUseCase) RefreshActiveSales(ctx context.Context) error {
	changed, err := uc.repo.RefreshActive(ctx, uc.now())
	if err != nil {
		return fmt.Errorf("refresh active sales: %w", err)
	}
	if changed > 0 {
		uc.logger.Info("active sales refreshed", zap.Int64("changed", changed))
	}
	return nil
}

func (uc *saleUseCase) ActiveModelIDs(ctx context.Context) ([]int64, error) {
	sales, err := uc.repo.FindActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("find active sales: %w", err)
	}
	seen := make(map[int64]bool, len(sales))
	ids := make([]int64, 0, len(sales))
	for _, s := range sales {
		if !seen[s.ModelID] {
			seen[s.ModelID] = true
			ids = append(ids, s.ModelID)
		}
	}
	return ids, nil
}

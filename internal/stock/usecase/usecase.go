package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/stock"
	"go.uber.org/zap"
)

var ErrNegativeQuantity = errors.New("stock quantity must not be negative")

type stockUseCase struct {
	repo   stock.Repository
	logger logger.ZapLogger
}

func NewStockUseCase(repo stock.Repository, log logger.ZapLogger) stock.UseCase {
	return &stockUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *stockUseCase) Initialize(ctx context.Context, productID, quantity int64) error {
	if quantity < 0 {
		return ErrNegativeQuantity
	}
	s := &model.Stock{
		ProductID: productID,
		Quantity:  quantity,
		UpdatedAt: time.Now().UTC(),
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return fmt.Errorf("create stock for product %d: %w", productID, err)
	}
	uc.logger.Debug("stock initialized", zap.Int64("product_id", productID), zap.Int64("quantity", quantity))
	return nil
}

func (uc *stockUseCase) RemoveForProduct(ctx context.Context, productID int64) error {
	if err := uc.repo.DeleteByProduct(ctx, productID); err != nil {
		return fmt.Errorf("delete stock for product %d: %w", productID, err)
	}
	return nil
}

func (uc *stockUseCase) GetProductStock(ctx context.Context, productID int64) (*model.Stock, error) {
	s, err := uc.repo.GetByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		// A product without a stock row has nothing on hand.
		return &model.Stock{ProductID: productID}, nil
	}
	return s, nil
}

func (uc *stockUseCase) SetQuantity(ctx context.Context, productID, quantity int64) error {
	if quantity < 0 {
		return ErrNegativeQuantity
	}
	updated, err := uc.repo.UpdateQuantity(ctx, productID, quantity)
	if err != nil {
		return fmt.Errorf("update stock for product %d: %w", productID, err)
	}
	if !updated {
		return uc.Initialize(ctx, productID, quantity)
	}
	return nil
}

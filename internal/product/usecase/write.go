package usecase

import (
	"context"
	"errors"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/database"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
	"go.uber.org/zap"
)

// Update changes price and stock quantity. The name is set at composition
// and never recomputed here.
func (uc *productUseCase) Update(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	if input.ID <= 0 {
		return nil, apperror.InvalidArgument("invalid product id")
	}
	if input.Price != nil && input.Price.IsNegative() {
		return nil, apperror.InvalidArgument("price must not be negative")
	}
	if input.Quantity != nil && *input.Quantity < 0 {
		return nil, apperror.InvalidArgument("quantity must not be negative")
	}

	p, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		uc.logger.Error("failed to load product", zap.Int64("product_id", input.ID), zap.Error(err))
		return nil, apperror.Internal("failed to update product", err)
	}
	if p == nil {
		return nil, apperror.NotFound("product not found")
	}

	err = database.WithTx(ctx, uc.db, func(ctx context.Context) error {
		if input.Price != nil {
			if err := uc.repo.UpdatePrice(ctx, p.ID, *input.Price); err != nil {
				return err
			}
			p.Price = *input.Price
		}
		if input.Quantity != nil {
			if err := uc.stock.SetQuantity(ctx, p.ID, *input.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		uc.logger.Error("failed to update product", zap.Int64("product_id", input.ID), zap.Error(err))
		return nil, apperror.Internal("failed to update product", err)
	}

	uc.afterWrite(EventProductUpdated, p)
	return uc.FindByID(ctx, p.ID)
}

// Remove deletes the stock record first and the product after it, in one
// transaction. Any failure leaves both in place.
func (uc *productUseCase) Remove(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperror.InvalidArgument("invalid product id")
	}
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		uc.logger.Error("failed to load product", zap.Int64("product_id", id), zap.Error(err))
		return apperror.Internal("failed to remove product", err)
	}
	if p == nil {
		return apperror.NotFound("product not found")
	}

	err = database.WithTx(ctx, uc.db, func(ctx context.Context) error {
		if err := uc.stock.RemoveForProduct(ctx, id); err != nil {
			uc.logger.Error("failed to remove stock", zap.Int64("product_id", id), zap.Error(err))
			return apperror.Internal("failed to remove product stock", err)
		}
		if err := uc.repo.Delete(ctx, id); err != nil {
			uc.logger.Error("failed to delete product", zap.Int64("product_id", id), zap.Error(err))
			return apperror.Internal("failed to remove product", err)
		}
		return nil
	})
	if err != nil {
		var appErr *apperror.Error
		if errors.As(err, &appErr) {
			return appErr
		}
		uc.logger.Error("failed to remove product", zap.Int64("product_id", id), zap.Error(err))
		return apperror.Internal("failed to remove product", err)
	}

	uc.afterWrite(EventProductRemoved, p)
	return nil
}

package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/brand"
	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/productmodel"
	"github.com/fekuna/omnipos-catalog-service/internal/productmodel/dto"
	"go.uber.org/zap"
)

type modelUseCase struct {
	repo   productmodel.Repository
	brands brand.Repository
	logger logger.ZapLogger
}

func NewModelUseCase(repo productmodel.Repository, brands brand.Repository, log logger.ZapLogger) productmodel.UseCase {
	return &modelUseCase{repo: repo, brands: brands, logger: log}
}

func (uc *modelUseCase) CreateModel(ctx context.Context, input *dto.CreateModelInput) (*model.ProductModel, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.InvalidArgument("model name is required")
	}

	if input.BrandID != nil {
		b, err := uc.brands.FindByID(ctx, *input.BrandID)
		if err != nil {
			uc.logger.Error("failed to load brand", zap.Int64("brand_id", *input.BrandID), zap.Error(err))
			return nil, apperror.Internal("failed to load brand", err)
		}
		if b == nil {
			return nil, apperror.NotFound("brand not found")
		}
	}

	m := &model.ProductModel{
		BaseModel: model.BaseModel{CreatedAt: time.Now().UTC()},
		Name:      name,
		BrandID:   input.BrandID,
	}
	if err := uc.repo.Create(ctx, m); err != nil {
		uc.logger.Error("failed to create model", zap.Error(err))
		return nil, apperror.Internal("failed to create model", err)
	}
	return m, nil
}

func (uc *modelUseCase) GetModel(ctx context.Context, id int64) (*model.ProductModel, error) {
	if id <= 0 {
		return nil, apperror.InvalidArgument("invalid model id")
	}
	m, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		uc.logger.Error("failed to load model", zap.Int64("model_id", id), zap.Error(err))
		return nil, apperror.Internal("failed to load model", err)
	}
	if m == nil {
		return nil, apperror.NotFound("model not found")
	}
	return m, nil
}

func (uc *modelUseCase) ListByBrand(ctx context.Context, brandID int64) ([]model.ProductModel, error) {
	if brandID <= 0 {
		return nil, apperror.InvalidArgument("invalid brand id")
	}
	models, err := uc.repo.FindByBrand(ctx, brandID)
	if err != nil {
		uc.logger.Error("failed to list models", zap.Int64("brand_id", brandID), zap.Error(err))
		return nil, apperror.Internal("failed to list models", err)
	}
	return models, nil
}

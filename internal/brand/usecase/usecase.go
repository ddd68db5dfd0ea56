package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/brand"
	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"go.uber.org/zap"
)

type brandUseCase struct {
	repo   brand.Repository
	logger logger.ZapLogger
}

func NewBrandUseCase(repo brand.Repository, log logger.ZapLogger) brand.UseCase {
	return &brandUseCase{repo: repo, logger: log}
}

func (uc *brandUseCase) CreateBrand(ctx context.Context, name string) (*model.Brand, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.InvalidArgument("brand name is required")
	}

	b := &model.Brand{BaseModel: model.BaseModel{CreatedAt: time.Now().UTC()}, Name: name}
	if err := uc.repo.Create(ctx, b); err != nil {
		uc.logger.Error("failed to create brand", zap.Error(err))
		return nil, apperror.Internal("failed to create brand", err)
	}
	return b, nil
}

func (uc *brandUseCase) GetBrand(ctx context.Context, id int64) (*model.Brand, error) {
	if id <= 0 {
		return nil, apperror.InvalidArgument("invalid brand id")
	}
	b, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		uc.logger.Error("failed to load brand", zap.Int64("brand_id", id), zap.Error(err))
		return nil, apperror.Internal("failed to load brand", err)
	}
	if b == nil {
		return nil, apperror.NotFound("brand not found")
	}
	return b, nil
}

func (uc *brandUseCase) ListBrands(ctx context.Context) ([]model.Brand, error) {
	brands, err := uc.repo.FindAll(ctx)
	if err != nil {
		uc.logger.Error("failed to list brands", zap.Error(err))
		return nil, apperror.Internal("failed to list brands", err)
	}
	return brands, nil
}

package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/attribute"
	"github.com/fekuna/omnipos-catalog-service/internal/attribute/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/category"
	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"go.uber.org/zap"
)

type attributeUseCase struct {
	repo       attribute.Repository
	categories category.Repository
	logger     logger.ZapLogger
}

func NewAttributeUseCase(repo attribute.Repository, categories category.Repository, log logger.ZapLogger) attribute.UseCase {
	return &attributeUseCase{
		repo:       repo,
		categories: categories,
		logger:     log,
	}
}

func (uc *attributeUseCase) CreateAttribute(ctx context.Context, input *dto.CreateAttributeInput) (*model.Attribute, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.InvalidArgument("attribute name is required")
	}
	if err := uc.ensureCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	a := &model.Attribute{
		BaseModel:    model.BaseModel{CreatedAt: time.Now().UTC()},
		CategoryID:   input.CategoryID,
		Name:         name,
		IsChangeable: input.IsChangeable,
	}
	if err := uc.repo.Create(ctx, a); err != nil {
		uc.logger.Error("failed to create attribute", zap.Error(err))
		return nil, apperror.Internal("failed to create attribute", err)
	}
	return a, nil
}

func (uc *attributeUseCase) AttributesForCategory(ctx context.Context, categoryID int64, existingModelHasInstance bool) ([]model.Attribute, error) {
	if err := uc.ensureCategory(ctx, categoryID); err != nil {
		return nil, err
	}

	attrs, err := uc.repo.FindByCategory(ctx, categoryID, existingModelHasInstance)
	if err != nil {
		uc.logger.Error("failed to list attributes", zap.Int64("category_id", categoryID), zap.Error(err))
		return nil, apperror.Internal("failed to list attributes", err)
	}
	return attrs, nil
}

func (uc *attributeUseCase) IsChangeable(ctx context.Context, attributeID int64) (bool, error) {
	a, err := uc.repo.FindByID(ctx, attributeID)
	if err != nil {
		uc.logger.Error("failed to load attribute", zap.Int64("attribute_id", attributeID), zap.Error(err))
		return false, apperror.Internal("failed to load attribute", err)
	}
	if a == nil {
		return false, apperror.NotFound("attribute not found")
	}
	return a.IsChangeable, nil
}

func (uc *attributeUseCase) ensureCategory(ctx context.Context, categoryID int64) error {
	if categoryID <= 0 {
		return apperror.InvalidArgument("invalid category id")
	}
	cat, err := uc.categories.FindByID(ctx, categoryID)
	if err != nil {
		uc.logger.Error("failed to load category", zap.Int64("category_id", categoryID), zap.Error(err))
		return apperror.Internal("failed to load category", err)
	}
	if cat == nil {
		return apperror.NotFound("category not found")
	}
	return nil
}

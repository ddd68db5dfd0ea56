package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/database"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
	"go.uber.org/zap"
)

func modelLockKey(modelID int64) string {
	return fmt.Sprintf("catalog:lock:model:%d", modelID)
}

func (uc *productUseCase) Compose(ctx context.Context, input *dto.ComposeProductInput) (*model.Product, error) {
	if input.CategoryID <= 0 || input.BrandID <= 0 || input.ModelID <= 0 {
		return nil, apperror.InvalidArgument("category, brand and model ids must be positive")
	}
	if input.Price.IsNegative() {
		return nil, apperror.InvalidArgument("price must not be negative")
	}
	if input.Quantity < 0 {
		return nil, apperror.InvalidArgument("quantity must not be negative")
	}

	cat, err := uc.categories.FindByID(ctx, input.CategoryID)
	if err != nil {
		uc.logger.Error("failed to load category", zap.Int64("category_id", input.CategoryID), zap.Error(err))
		return nil, apperror.Internal("failed to load category", err)
	}
	if cat == nil {
		return nil, apperror.NotFound("category not found")
	}
	b, err := uc.brands.FindByID(ctx, input.BrandID)
	if err != nil {
		uc.logger.Error("failed to load brand", zap.Int64("brand_id", input.BrandID), zap.Error(err))
		return nil, apperror.Internal("failed to load brand", err)
	}
	if b == nil {
		return nil, apperror.NotFound("brand not found")
	}
	m, err := uc.models.FindByID(ctx, input.ModelID)
	if err != nil {
		uc.logger.Error("failed to load model", zap.Int64("model_id", input.ModelID), zap.Error(err))
		return nil, apperror.Internal("failed to load model", err)
	}
	if m == nil {
		return nil, apperror.NotFound("model not found")
	}
	if cat.IsRoot() {
		return nil, apperror.InvalidArgument("root category not allowed on a product")
	}

	unlock, err := uc.locker.Lock(ctx, modelLockKey(input.ModelID))
	if err != nil {
		uc.logger.Error("failed to lock model", zap.Int64("model_id", input.ModelID), zap.Error(err))
		return nil, apperror.Internal("failed to lock product model", err)
	}
	defer unlock()

	p := &model.Product{
		BaseModel:  model.BaseModel{CreatedAt: time.Now().UTC()},
		Name:       fmt.Sprintf("%s %s %s", cat.Name, b.Name, m.Name),
		CategoryID: cat.ID,
		BrandID:    b.ID,
		ModelID:    m.ID,
		Price:      input.Price,
	}

	stockInitialized := false
	err = database.WithTx(ctx, uc.db, func(ctx context.Context) error {
		if err := uc.repo.LockModel(ctx, m.ID); err != nil {
			return apperror.Internal("failed to lock product model", err)
		}
		instances, err := uc.repo.CountByModel(ctx, m.ID)
		if err != nil {
			return apperror.Internal("failed to count model instances", err)
		}
		inherited, err := uc.fixedAttributesForModel(ctx, m.ID)
		if err != nil {
			return err
		}
		supplied, err := uc.suppliedAttributes(ctx, input.Attributes, instances > 0)
		if err != nil {
			return err
		}

		if err := uc.repo.Create(ctx, p); err != nil {
			return apperror.Internal("failed to create product", err)
		}
		if err := uc.stock.Initialize(ctx, p.ID, input.Quantity); err != nil {
			return apperror.Internal("failed to initialize stock", err)
		}
		stockInitialized = true

		p.Infos = make([]model.ProductInfo, 0, len(inherited)+len(supplied))
		taken := make(map[int64]bool, len(inherited))
		for _, v := range inherited {
			changeable, err := uc.attributes.IsChangeable(ctx, v.AttributeID)
			if err != nil {
				return err
			}
			if changeable {
				// Flag flipped since the reference instance was written.
				continue
			}
			info := model.ProductInfo{ProductID: p.ID, AttributeID: v.AttributeID, AttributeValue: v.AttributeValue, ShowInMain: v.ShowInMain}
			if err := uc.repo.CreateInfo(ctx, &info); err != nil {
				return apperror.Internal("failed to save product attributes", err)
			}
			taken[v.AttributeID] = true
			p.Infos = append(p.Infos, info)
		}
		for _, v := range supplied {
			if taken[v.AttributeID] {
				continue
			}
			info := model.ProductInfo{ProductID: p.ID, AttributeID: v.AttributeID, AttributeValue: v.AttributeValue}
			if err := uc.repo.CreateInfo(ctx, &info); err != nil {
				return apperror.Internal("failed to save product attributes", err)
			}
			p.Infos = append(p.Infos, info)
		}
		return nil
	})
	if err != nil {
		if stockInitialized {
			uc.compensateStock(p.ID)
		}
		var appErr *apperror.Error
		if !errors.As(err, &appErr) {
			appErr = apperror.Internal("failed to create product", err)
		}
		if appErr.Kind == apperror.KindInternal {
			uc.logger.Error("failed to compose product",
				zap.Int64("model_id", input.ModelID),
				zap.Int64("category_id", input.CategoryID),
				zap.Error(err),
			)
		}
		return nil, appErr
	}

	productsComposed.Inc()
	uc.afterWrite(EventProductComposed, p)
	return p, nil
}

// compensateStock removes the stock row of a product whose transaction did
// not commit, for stock implementations that do not share the transaction.
func (uc *productUseCase) compensateStock(productID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := uc.stock.RemoveForProduct(ctx, productID); err != nil {
		uc.logger.Error("failed to compensate stock after aborted compose",
			zap.Int64("product_id", productID),
			zap.Error(err),
		)
	}
}

// suppliedAttributes validates the caller's values in attribute id order.
// Once a model has an instance its fixed values come from inheritance only.
func (uc *productUseCase) suppliedAttributes(ctx context.Context, values map[int64]string, modelHasInstance bool) ([]model.AttributeValue, error) {
	ids := make([]int64, 0, len(values))
	for id := range values {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]model.AttributeValue, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return nil, apperror.InvalidArgument("invalid attribute id")
		}
		changeable, err := uc.attributes.IsChangeable(ctx, id)
		if err != nil {
			return nil, err
		}
		if modelHasInstance && !changeable {
			uc.logger.Warn("ignoring value for inherited attribute", zap.Int64("attribute_id", id))
			continue
		}
		out = append(out, model.AttributeValue{AttributeID: id, AttributeValue: values[id]})
	}
	return out, nil
}

func (uc *productUseCase) FixedAttributesForModel(ctx context.Context, modelID int64) ([]model.AttributeValue, error) {
	if modelID <= 0 {
		return nil, apperror.InvalidArgument("invalid model id")
	}
	return uc.fixedAttributesForModel(ctx, modelID)
}

func (uc *productUseCase) fixedAttributesForModel(ctx context.Context, modelID int64) ([]model.AttributeValue, error) {
	refID, err := uc.repo.FindReferenceInstance(ctx, modelID)
	if err != nil {
		uc.logger.Error("failed to find reference instance", zap.Int64("model_id", modelID), zap.Error(err))
		return nil, apperror.Internal("failed to load model attributes", err)
	}
	if refID == 0 {
		return []model.AttributeValue{}, nil
	}
	values, err := uc.repo.FindFixedInfos(ctx, refID)
	if err != nil {
		uc.logger.Error("failed to load fixed attributes",
			zap.Int64("model_id", modelID),
			zap.Int64("product_id", refID),
			zap.Error(err),
		)
		return nil, apperror.Internal("failed to load model attributes", err)
	}
	return values, nil
}

func (uc *productUseCase) AttributesForNewProduct(ctx context.Context, categoryID, modelID int64) ([]model.Attribute, error) {
	if modelID <= 0 {
		return nil, apperror.InvalidArgument("invalid model id")
	}
	count, err := uc.repo.CountByModel(ctx, modelID)
	if err != nil {
		uc.logger.Error("failed to count model instances", zap.Int64("model_id", modelID), zap.Error(err))
		return nil, apperror.Internal("failed to load attributes", err)
	}
	return uc.attributes.AttributesForCategory(ctx, categoryID, count > 0)
}

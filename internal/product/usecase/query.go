package usecase

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
	"go.uber.org/zap"
)

func (uc *productUseCase) Filter(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, error) {
	if filters == nil {
		filters = &dto.ProductFilters{}
	}
	if filters.BrandID != nil && *filters.BrandID <= 0 {
		return nil, apperror.InvalidArgument("invalid brand id")
	}
	if filters.MinPrice != nil && filters.MaxPrice != nil && filters.MinPrice.GreaterThan(*filters.MaxPrice) {
		return nil, apperror.InvalidArgument("min price is greater than max price")
	}
	if err := uc.refreshSales(ctx); err != nil {
		return nil, err
	}

	conds := dedupeConditions(filters.Attributes)
	normalized := *filters
	normalized.Attributes = conds

	cacheKey, err := uc.generateCacheKey("filter", normalized)
	if err != nil {
		cacheKey = ""
	}
	if cached, ok := uc.cachedList(ctx, cacheKey); ok {
		return cached, nil
	}

	candidates, err := uc.repo.Filter(ctx, &normalized)
	if err != nil {
		uc.logger.Error("failed to filter products", zap.Error(err))
		return nil, apperror.Internal("failed to filter products", err)
	}
	if err := uc.attachInfos(ctx, candidates); err != nil {
		uc.logger.Error("failed to load product attributes", zap.Error(err))
		return nil, apperror.Internal("failed to filter products", err)
	}

	result := candidates
	if len(conds) > 0 {
		result = make([]model.Product, 0, len(candidates))
		for _, p := range candidates {
			if matchesAll(p.Infos, conds) {
				result = append(result, p)
			}
		}
	}

	uc.storeList(ctx, cacheKey, result)
	return result, nil
}

func dedupeConditions(conds []dto.AttributeCondition) []dto.AttributeCondition {
	seen := make(map[dto.AttributeCondition]bool, len(conds))
	out := make([]dto.AttributeCondition, 0, len(conds))
	for _, c := range conds {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

// matchesAll reports whether infos hold a row for every condition.
func matchesAll(infos []model.ProductInfo, conds []dto.AttributeCondition) bool {
	matched := make(map[dto.AttributeCondition]bool, len(conds))
	for _, info := range infos {
		c := dto.AttributeCondition{AttributeID: info.AttributeID, AttributeValue: info.AttributeValue}
		matched[c] = true
	}
	for _, c := range conds {
		if !matched[c] {
			return false
		}
	}
	return true
}

func (uc *productUseCase) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	if id <= 0 {
		return nil, apperror.InvalidArgument("invalid product id")
	}
	if err := uc.refreshSales(ctx); err != nil {
		return nil, err
	}

	key := uc.productCacheKey(id)
	if uc.cache != nil {
		var cached model.Product
		found, err := uc.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			uc.logger.Warn("failed to read product cache", zap.Int64("product_id", id), zap.Error(err))
		} else if found {
			return &cached, nil
		}
	}

	// Concurrent misses for one id share a single load.
	v, err, _ := uc.loads.Do(key, func() (interface{}, error) {
		return uc.loadDetail(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	loaded := *v.(*model.Product)
	p := &loaded

	if uc.cache != nil {
		if err := uc.cache.SetJSON(ctx, key, p, uc.opts.CacheTTL); err != nil {
			uc.logger.Warn("failed to cache product", zap.Int64("product_id", id), zap.Error(err))
		}
	}
	return p, nil
}

func (uc *productUseCase) loadDetail(ctx context.Context, id int64) (*model.Product, error) {
	p, err := uc.repo.FindDetail(ctx, id)
	if err != nil {
		uc.logger.Error("failed to load product", zap.Int64("product_id", id), zap.Error(err))
		return nil, apperror.Internal("failed to load product", err)
	}
	if p == nil {
		return nil, apperror.NotFound("product not found")
	}

	one := []model.Product{*p}
	if err := uc.attachInfos(ctx, one); err != nil {
		uc.logger.Error("failed to load product attributes", zap.Int64("product_id", id), zap.Error(err))
		return nil, apperror.Internal("failed to load product", err)
	}
	p.Infos = one[0].Infos

	media, err := uc.repo.FindMediaByProductID(ctx, id)
	if err != nil {
		uc.logger.Error("failed to load product media", zap.Int64("product_id", id), zap.Error(err))
		return nil, apperror.Internal("failed to load product", err)
	}
	for i := range media {
		uc.signMedia(ctx, &media[i])
	}
	p.Media = media
	return p, nil
}

func (uc *productUseCase) signMedia(ctx context.Context, m *model.ProductMedia) {
	if uc.media == nil {
		return
	}
	url, err := uc.media.URL(ctx, m.ObjectKey)
	if err != nil {
		uc.logger.Warn("failed to sign media url", zap.String("object_key", m.ObjectKey), zap.Error(err))
		return
	}
	m.URL = url
}

func (uc *productUseCase) FindAll(ctx context.Context) ([]model.Product, error) {
	if err := uc.refreshSales(ctx); err != nil {
		return nil, err
	}
	return uc.list(ctx, "failed to list products", func() ([]model.Product, error) {
		return uc.repo.FindAll(ctx)
	})
}

func (uc *productUseCase) FindByCategory(ctx context.Context, categoryID int64) ([]model.Product, error) {
	if categoryID <= 0 {
		return nil, apperror.InvalidArgument("invalid category id")
	}
	return uc.list(ctx, "failed to list products by category", func() ([]model.Product, error) {
		return uc.repo.FindByCategory(ctx, categoryID)
	})
}

func (uc *productUseCase) FindByBrand(ctx context.Context, brandID int64) ([]model.Product, error) {
	if brandID <= 0 {
		return nil, apperror.InvalidArgument("invalid brand id")
	}
	return uc.list(ctx, "failed to list products by brand", func() ([]model.Product, error) {
		return uc.repo.FindByBrand(ctx, brandID)
	})
}

func (uc *productUseCase) FindByModel(ctx context.Context, modelID int64) ([]model.Product, error) {
	if modelID <= 0 {
		return nil, apperror.InvalidArgument("invalid model id")
	}
	return uc.list(ctx, "failed to list products by model", func() ([]model.Product, error) {
		return uc.repo.FindByModel(ctx, modelID)
	})
}

func (uc *productUseCase) FindSaleProducts(ctx context.Context) ([]model.Product, error) {
	if err := uc.refreshSales(ctx); err != nil {
		return nil, err
	}
	modelIDs, err := uc.sales.ActiveModelIDs(ctx)
	if err != nil {
		uc.logger.Error("failed to load active sales", zap.Error(err))
		return nil, apperror.Internal("failed to load sale products", err)
	}
	return uc.list(ctx, "failed to load sale products", func() ([]model.Product, error) {
		return uc.repo.FindByModels(ctx, modelIDs)
	})
}

// list runs load and attaches attribute values, mapping failures to msg.
func (uc *productUseCase) list(ctx context.Context, msg string, load func() ([]model.Product, error)) ([]model.Product, error) {
	products, err := load()
	if err != nil {
		uc.logger.Error(msg, zap.Error(err))
		return nil, apperror.Internal(msg, err)
	}
	if err := uc.attachInfos(ctx, products); err != nil {
		uc.logger.Error(msg, zap.Error(err))
		return nil, apperror.Internal(msg, err)
	}
	return products, nil
}

package usecase

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"go.uber.org/zap"
)

const (
	defaultPopularLimit = 10
	maxPopularLimit     = 100
	lastViewedLimit     = 10
)

func (uc *productUseCase) FindOne(ctx context.Context, id int64) (*model.Product, error) {
	p, err := uc.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	userID := uc.resolveUser(ctx)
	if userID == "" {
		return p, nil
	}
	view := &model.ProductView{ProductID: p.ID, UserID: userID, ViewedAt: time.Now().UTC()}
	if err := uc.views.Create(ctx, view); err != nil {
		uc.logger.Error("failed to record product view",
			zap.Int64("product_id", p.ID),
			zap.String("user_id", userID),
			zap.Error(err),
		)
	}
	return p, nil
}

func (uc *productUseCase) FindPopular(ctx context.Context, limit int) ([]model.Product, error) {
	if limit <= 0 {
		limit = defaultPopularLimit
	}
	if limit > maxPopularLimit {
		limit = maxPopularLimit
	}
	if err := uc.refreshSales(ctx); err != nil {
		return nil, err
	}

	counts, err := uc.views.MostViewed(ctx, limit)
	if err != nil {
		uc.logger.Error("failed to load view counts", zap.Error(err))
		return nil, apperror.Internal("failed to load popular products", err)
	}
	ids := make([]int64, len(counts))
	for i, c := range counts {
		ids[i] = c.ProductID
	}
	return uc.loadInOrder(ctx, ids, "failed to load popular products")
}

func (uc *productUseCase) FindLastViewed(ctx context.Context) ([]model.Product, error) {
	userID := uc.resolveUser(ctx)
	if userID == "" {
		return []model.Product{}, nil
	}
	if err := uc.refreshSales(ctx); err != nil {
		return nil, err
	}

	ids, err := uc.views.LastViewedProductIDs(ctx, userID, lastViewedLimit)
	if err != nil {
		uc.logger.Error("failed to load last viewed products", zap.String("user_id", userID), zap.Error(err))
		return nil, apperror.Internal("failed to load last viewed products", err)
	}
	return uc.loadInOrder(ctx, ids, "failed to load last viewed products")
}

func (uc *productUseCase) resolveUser(ctx context.Context) string {
	if uc.identity == nil {
		return ""
	}
	userID, err := uc.identity.Resolve(ctx)
	if err != nil {
		uc.logger.Warn("failed to resolve user identity", zap.Error(err))
		return ""
	}
	return userID
}

// loadInOrder fetches products by id and returns them in the order of ids.
func (uc *productUseCase) loadInOrder(ctx context.Context, ids []int64, msg string) ([]model.Product, error) {
	products, err := uc.list(ctx, msg, func() ([]model.Product, error) {
		return uc.repo.FindByIDs(ctx, ids)
	})
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	ordered := make([]model.Product, 0, len(products))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered, nil
}

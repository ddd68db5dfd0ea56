package usecase

import (
	"context"
	"strings"
	"unicode"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"go.uber.org/zap"
)

// Search matches product names in stages and returns the first non-empty
// result: the whole query, then each word, then the query trimmed one rune
// from each end down to a single rune. An empty remainder is never matched.
func (uc *productUseCase) Search(ctx context.Context, query string) ([]model.Product, error) {
	if err := uc.refreshSales(ctx); err != nil {
		return nil, err
	}

	products, stage, err := uc.degradingSearch(ctx, query)
	if err != nil {
		if ctx.Err() != nil {
			return nil, apperror.Internal("search cancelled", err)
		}
		uc.logger.Error("failed to search products", zap.String("query", query), zap.Error(err))
		return nil, apperror.Internal("failed to search products", err)
	}
	searchStageTotal.WithLabelValues(stage).Inc()

	if err := uc.attachInfos(ctx, products); err != nil {
		uc.logger.Error("failed to load product attributes", zap.Error(err))
		return nil, apperror.Internal("failed to search products", err)
	}
	return products, nil
}

func (uc *productUseCase) degradingSearch(ctx context.Context, query string) ([]model.Product, string, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return []model.Product{}, stageNone, nil
	}

	found, err := uc.matcher.MatchName(ctx, q)
	if err != nil {
		return nil, "", err
	}
	if len(found) > 0 {
		return found, stageExact, nil
	}

	if strings.IndexFunc(q, unicode.IsSpace) >= 0 {
		seen := map[int64]bool{}
		union := []model.Product{}
		for _, word := range strings.Fields(q) {
			matches, err := uc.matcher.MatchName(ctx, word)
			if err != nil {
				return nil, "", err
			}
			for _, p := range matches {
				if !seen[p.ID] {
					seen[p.ID] = true
					union = append(union, p)
				}
			}
		}
		if len(union) > 0 {
			return union, stageWords, nil
		}
	}

	runes := []rune(q)
	for len(runes) >= 3 {
		if err := ctx.Err(); err != nil {
			return nil, "", err
		}
		runes = runes[1 : len(runes)-1]
		found, err := uc.matcher.MatchName(ctx, string(runes))
		if err != nil {
			return nil, "", err
		}
		if len(found) > 0 {
			return found, stageTrimmed, nil
		}
	}
	return []model.Product{}, stageNone, nil
}

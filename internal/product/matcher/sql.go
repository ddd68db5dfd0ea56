// Package matcher provides the name lookups behind the degrading product search.
package matcher

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product"
)

// SQLMatcher runs a LIKE query against the products table.
type SQLMatcher struct {
	repo product.Repository
}

func NewSQLMatcher(repo product.Repository) *SQLMatcher {
	return &SQLMatcher{repo: repo}
}

func (m *SQLMatcher) MatchName(ctx context.Context, fragment string) ([]model.Product, error) {
	return m.repo.FindByNameLike(ctx, fragment)
}

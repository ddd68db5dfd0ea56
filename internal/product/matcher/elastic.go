package matcher

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product"
	"github.com/fekuna/omnipos-catalog-service/internal/search"
)

const maxHits = 500

// Searcher is satisfied by search.Client.
type Searcher interface {
	Search(ctx context.Context, index string, query map[string]interface{}) (*search.SearchResponse, error)
}

// ElasticMatcher finds ids with a case-insensitive wildcard on name.keyword
// and loads the rows from the repository, so results match the SQL matcher.
type ElasticMatcher struct {
	es    Searcher
	index string
	repo  product.Repository
}

func NewElasticMatcher(es Searcher, index string, repo product.Repository) *ElasticMatcher {
	return &ElasticMatcher{es: es, index: index, repo: repo}
}

var wildcardEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`)

func (m *ElasticMatcher) MatchName(ctx context.Context, fragment string) ([]model.Product, error) {
	q := map[string]interface{}{
		"query": map[string]interface{}{
			"wildcard": map[string]interface{}{
				"name.keyword": map[string]interface{}{
					"value":            "*" + wildcardEscaper.Replace(fragment) + "*",
					"case_insensitive": true,
				},
			},
		},
		"_source": false,
		"size":    maxHits,
	}

	res, err := m.es.Search(ctx, m.index, q)
	if err != nil {
		return nil, fmt.Errorf("elastic name match: %w", err)
	}

	ids := make([]int64, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		id, err := strconv.ParseInt(hit.ID, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return m.repo.FindByIDs(ctx, ids)
}

package matcher

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/fekuna/omnipos-catalog-service/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearcher struct {
	body  string
	err   error
	query map[string]interface{}
}

func (f *fakeSearcher) Search(_ context.Context, _ string, query map[string]interface{}) (*search.SearchResponse, error) {
	f.query = query
	if f.err != nil {
		return nil, f.err
	}
	var res search.SearchResponse
	if err := json.Unmarshal([]byte(f.body), &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func TestElasticMatcher_LoadsHitsFromRepository(t *testing.T) {
	repo, ids := seedRepo(t)
	es := &fakeSearcher{body: `{"hits":{"total":{"value":2},"hits":[{"_id":"` + itoa(ids[1]) + `"},{"_id":"bogus"}]}}`}

	m := NewElasticMatcher(es, "catalog_products", repo)
	got, err := m.MatchName(context.Background(), "gal*axy")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, ids[1], got[0].ID)

	wildcard := es.query["query"].(map[string]interface{})["wildcard"].(map[string]interface{})["name.keyword"].(map[string]interface{})
	assert.Equal(t, `*gal\*axy*`, wildcard["value"])
	assert.Equal(t, true, wildcard["case_insensitive"])
}

func TestElasticMatcher_SearchError(t *testing.T) {
	repo, _ := seedRepo(t)
	m := NewElasticMatcher(&fakeSearcher{err: errors.New("cluster down")}, "catalog_products", repo)
	_, err := m.MatchName(context.Background(), "x")
	assert.Error(t, err)
}

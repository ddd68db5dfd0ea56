package matcher

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/product/repository"
	"github.com/fekuna/omnipos-catalog-service/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func itoa(id int64) string { return strconv.FormatInt(id, 10) }

func seedRepo(t *testing.T) (*repository.PGRepository, []int64) {
	t.Helper()
	db := testutil.NewDB(t)
	now := time.Now().UTC()
	var catID, brandID, modelID int64
	require.NoError(t, db.QueryRowx(`INSERT INTO categories (name, created_at) VALUES ('Phones', ?) RETURNING id`, now).Scan(&catID))
	require.NoError(t, db.QueryRowx(`INSERT INTO brands (name, created_at) VALUES ('Samsung', ?) RETURNING id`, now).Scan(&brandID))
	require.NoError(t, db.QueryRowx(`INSERT INTO product_models (name, created_at) VALUES ('Galaxy', ?) RETURNING id`, now).Scan(&modelID))

	names := []string{"Phones Samsung Galaxy A54", "Phones Samsung 100%_Pro"}
	ids := make([]int64, len(names))
	for i, name := range names {
		require.NoError(t, db.QueryRowx(
			`INSERT INTO products (name, category_id, brand_id, model_id, price, created_at) VALUES (?, ?, ?, ?, '1.00', ?) RETURNING id`,
			name, catID, brandID, modelID, now,
		).Scan(&ids[i]))
	}
	return repository.NewPGRepository(db), ids
}

func TestSQLMatcher(t *testing.T) {
	repo, ids := seedRepo(t)
	m := NewSQLMatcher(repo)
	ctx := context.Background()

	got, err := m.MatchName(ctx, "sAmSuNg")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = m.MatchName(ctx, "100%_")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, ids[1], got[0].ID)

	got, err = m.MatchName(ctx, "%")
	require.NoError(t, err)
	require.Len(t, got, 1)

	got, err = m.MatchName(ctx, "iphone")
	require.NoError(t, err)
	assert.Empty(t, got)
}

package usecase

import (
	"context"
	"testing"

	"github.com/fekuna/omnipos-catalog-service/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViews(t *testing.T) {
	f := newFixture(t)

	a := f.compose(t, f.c.samsung, f.c.galaxy, 100, nil)
	b := f.compose(t, f.c.apple, f.c.iphone, 200, nil)

	alice := auth.WithIdentity(context.Background(), auth.Identity{AnonymousID: "anon-alice"})
	token, err := auth.NewJWTResolver("test-secret").GenerateToken("17", nil)
	require.NoError(t, err)
	bob := auth.WithIdentity(context.Background(), auth.Identity{AccessToken: token})

	for _, id := range []int64{a.ID, b.ID, a.ID} {
		_, err := f.uc.FindOne(alice, id)
		require.NoError(t, err)
	}
	_, err = f.uc.FindOne(bob, b.ID)
	require.NoError(t, err)
	_, err = f.uc.FindOne(bob, b.ID)
	require.NoError(t, err)
	_, err = f.uc.FindOne(bob, b.ID)
	require.NoError(t, err)

	var bobViews int
	require.NoError(t, f.db.Get(&bobViews, `SELECT count(*) FROM product_views WHERE user_id = ?`, "17"))
	assert.Equal(t, 3, bobViews)

	last, err := f.uc.FindLastViewed(alice)
	require.NoError(t, err)
	assert.Equal(t, []int64{a.ID, b.ID}, productIDs(last))

	popular, err := f.uc.FindPopular(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, []int64{b.ID, a.ID}, productIDs(popular))

	popular, err = f.uc.FindPopular(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{b.ID}, productIDs(popular))

	// Unknown callers get nothing and record nothing.
	before := f.count(t, "product_views")
	_, err = f.uc.FindOne(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, before, f.count(t, "product_views"))
	last, err = f.uc.FindLastViewed(context.Background())
	require.NoError(t, err)
	assert.Empty(t, last)
}

func TestFindOne_InvalidTokenRecordsAnonymousView(t *testing.T) {
	f := newFixture(t)
	p := f.compose(t, f.c.samsung, f.c.galaxy, 100, nil)

	ctx := auth.WithIdentity(context.Background(), auth.Identity{AccessToken: "garbage", AnonymousID: "anon-1"})
	_, err := f.uc.FindOne(ctx, p.ID)
	require.NoError(t, err)

	var views int
	require.NoError(t, f.db.Get(&views, `SELECT count(*) FROM product_views WHERE user_id = ?`, "anon-1"))
	assert.Equal(t, 1, views)

	last, err := f.uc.FindLastViewed(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{p.ID}, productIDs(last))
}

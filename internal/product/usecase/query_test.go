package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
	saledto "github.com/fekuna/omnipos-catalog-service/internal/sale/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestFilter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := f.compose(t, f.c.samsung, f.c.galaxy, 100, map[int64]string{f.c.color: "black", f.c.storage: "128"})
	b := f.compose(t, f.c.samsung, f.c.galaxy, 200, map[int64]string{f.c.color: "black", f.c.storage: "256"})
	c := f.compose(t, f.c.apple, f.c.iphone, 150, map[int64]string{f.c.color: "black", f.c.storage: "128"})

	black := dto.AttributeCondition{AttributeID: f.c.color, AttributeValue: "black"}
	storage128 := dto.AttributeCondition{AttributeID: f.c.storage, AttributeValue: "128"}

	tests := []struct {
		name    string
		filters dto.ProductFilters
		want    []int64
	}{
		{"no filters", dto.ProductFilters{}, []int64{a.ID, b.ID, c.ID}},
		{"brand only", dto.ProductFilters{BrandID: &f.c.samsung}, []int64{a.ID, b.ID}},
		{"inclusive price range", dto.ProductFilters{MinPrice: decPtr(100), MaxPrice: decPtr(150)}, []int64{a.ID, c.ID}},
		{"min price only", dto.ProductFilters{MinPrice: decPtr(150)}, []int64{b.ID, c.ID}},
		{"single condition", dto.ProductFilters{Attributes: []dto.AttributeCondition{black}}, []int64{a.ID, b.ID, c.ID}},
		{"every condition must hold", dto.ProductFilters{Attributes: []dto.AttributeCondition{black, storage128}}, []int64{a.ID, c.ID}},
		{"conditions and brand", dto.ProductFilters{BrandID: &f.c.samsung, Attributes: []dto.AttributeCondition{black, storage128}}, []int64{a.ID}},
		{"duplicated condition", dto.ProductFilters{Attributes: []dto.AttributeCondition{storage128, storage128}}, []int64{a.ID, c.ID}},
		{"conflicting values", dto.ProductFilters{Attributes: []dto.AttributeCondition{storage128, {AttributeID: f.c.storage, AttributeValue: "256"}}}, []int64{}},
		{"no match", dto.ProductFilters{Attributes: []dto.AttributeCondition{{AttributeID: f.c.color, AttributeValue: "white"}}}, []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.uc.Filter(ctx, &tt.filters)
			require.NoError(t, err)
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, productIDs(got))
		})
	}

	got, err := f.uc.Filter(ctx, &dto.ProductFilters{Attributes: []dto.AttributeCondition{storage128}})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Len(t, got[0].Infos, 2)
}

func TestFilter_InvalidArguments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Filter(ctx, &dto.ProductFilters{MinPrice: decPtr(10), MaxPrice: decPtr(5)})
	assert.True(t, apperror.Is(err, apperror.KindInvalidArgument))

	zero := int64(0)
	_, err = f.uc.Filter(ctx, &dto.ProductFilters{BrandID: &zero})
	assert.True(t, apperror.Is(err, apperror.KindInvalidArgument))
}

func TestFindByID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p := f.compose(t, f.c.samsung, f.c.galaxy, 999, map[int64]string{f.c.screen: "6.4", f.c.color: "black"})
	_, err := f.db.Exec(`INSERT INTO product_media (product_id, object_key, position) VALUES (?, ?, ?), (?, ?, ?)`,
		p.ID, "galaxy/back.jpg", 2, p.ID, "galaxy/front.jpg", 1)
	require.NoError(t, err)

	first, err := f.uc.FindByID(ctx, p.ID)
	require.NoError(t, err)
	second, err := f.uc.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	require.NotNil(t, first.Category)
	assert.Equal(t, "Phones", first.Category.Name)
	assert.False(t, first.Category.IsRoot())
	require.NotNil(t, first.Brand)
	assert.Equal(t, "Samsung", first.Brand.Name)
	require.NotNil(t, first.Model)
	assert.Equal(t, "Galaxy A54", first.Model.Name)
	assert.Len(t, first.Infos, 2)
	require.Len(t, first.Media, 2)
	assert.Equal(t, "https://media.test/galaxy/front.jpg", first.Media[0].URL)

	_, err = f.uc.FindByID(ctx, 999)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
	_, err = f.uc.FindByID(ctx, 0)
	assert.True(t, apperror.Is(err, apperror.KindInvalidArgument))
}

func TestFindByRelations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	galaxy := f.compose(t, f.c.samsung, f.c.galaxy, 100, nil)
	iphone := f.compose(t, f.c.apple, f.c.iphone, 200, nil)

	byBrand, err := f.uc.FindByBrand(ctx, f.c.apple)
	require.NoError(t, err)
	assert.Equal(t, []int64{iphone.ID}, productIDs(byBrand))

	byModel, err := f.uc.FindByModel(ctx, f.c.galaxy)
	require.NoError(t, err)
	assert.Equal(t, []int64{galaxy.ID}, productIDs(byModel))

	byCategory, err := f.uc.FindByCategory(ctx, f.c.phones)
	require.NoError(t, err)
	assert.Equal(t, []int64{galaxy.ID, iphone.ID}, productIDs(byCategory))

	all, err := f.uc.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	for _, find := range []func(context.Context, int64) ([]model.Product, error){f.uc.FindByBrand, f.uc.FindByModel, f.uc.FindByCategory} {
		_, err := find(ctx, 0)
		assert.True(t, apperror.Is(err, apperror.KindInvalidArgument))
		_, err = find(ctx, -4)
		assert.True(t, apperror.Is(err, apperror.KindInvalidArgument))
	}
}

func TestFindSaleProducts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	galaxy := f.compose(t, f.c.samsung, f.c.galaxy, 100, nil)
	f.compose(t, f.c.apple, f.c.iphone, 200, nil)

	_, err := f.sales.CreateSale(ctx, &saledto.CreateSaleInput{
		ModelID:         f.c.galaxy,
		DiscountPercent: decimal.NewFromInt(15),
		StartsAt:        time.Now().Add(-time.Hour),
		EndsAt:          time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	got, err := f.uc.FindSaleProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{galaxy.ID}, productIDs(got))
}

type failingSales struct {
	refreshes int
}

func (s *failingSales) CreateSale(context.Context, *saledto.CreateSaleInput) (*model.Sale, error) {
	return nil, nil
}

func (s *failingSales) RefreshActiveSales(context.Context) error {
	s.refreshes++
	return errors.New("sales table locked")
}

func (s *failingSales) ActiveModelIDs(context.Context) ([]int64, error) { return nil, nil }

func TestRefreshSaleOnRead(t *testing.T) {
	ctx := context.Background()

	sales := &failingSales{}
	f := newFixtureWithOptions(t, Options{RefreshSaleOnRead: true}, sales)
	p := f.compose(t, f.c.samsung, f.c.galaxy, 100, nil)

	_, err := f.uc.FindByID(ctx, p.ID)
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindInternal))
	assert.Equal(t, "an error occurred while setting the sale", err.Error())
	_, err = f.uc.Search(ctx, "galaxy")
	assert.True(t, apperror.Is(err, apperror.KindInternal))
	assert.Equal(t, 2, sales.refreshes)

	// Without the switch reads never touch the sale refresh.
	quiet := &failingSales{}
	f = newFixtureWithOptions(t, Options{}, quiet)
	p = f.compose(t, f.c.samsung, f.c.galaxy, 100, nil)
	_, err = f.uc.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Zero(t, quiet.refreshes)
}

func TestUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p := f.compose(t, f.c.samsung, f.c.galaxy, 100, nil)
	qty := int64(42)
	got, err := f.uc.Update(ctx, &dto.UpdateProductInput{ID: p.ID, Price: decPtr(120), Quantity: &qty})
	require.NoError(t, err)

	assert.Equal(t, p.Name, got.Name)
	assert.True(t, got.Price.Equal(decimal.NewFromInt(120)))
	assert.Equal(t, int64(42), got.Stock.Quantity)
	assert.Contains(t, f.events.types(), EventProductUpdated)

	_, err = f.uc.Update(ctx, &dto.UpdateProductInput{ID: 999, Price: decPtr(1)})
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
	_, err = f.uc.Update(ctx, &dto.UpdateProductInput{ID: p.ID, Price: decPtr(-1)})
	assert.True(t, apperror.Is(err, apperror.KindInvalidArgument))
}

func TestRemove(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p := f.compose(t, f.c.samsung, f.c.galaxy, 100, map[int64]string{f.c.color: "black"})

	f.stock.failRemove = true
	err := f.uc.Remove(ctx, p.ID)
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindInternal))
	assert.Equal(t, 1, f.count(t, "products"))
	assert.Equal(t, 1, f.count(t, "product_infos"))
	assert.Equal(t, 1, f.count(t, "stocks"))

	f.stock.failRemove = false
	require.NoError(t, f.uc.Remove(ctx, p.ID))
	assert.Equal(t, 0, f.count(t, "products"))
	assert.Equal(t, 0, f.count(t, "product_infos"))
	assert.Equal(t, 0, f.count(t, "stocks"))
	assert.Contains(t, f.events.types(), EventProductRemoved)

	_, err = f.uc.FindByID(ctx, p.ID)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
	err = f.uc.Remove(ctx, p.ID)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

type failingDeleteRepo struct {
	product.Repository
}

func (r *failingDeleteRepo) Delete(context.Context, int64) error {
	return errors.New("delete failed")
}

func TestRemove_DeleteFailureKeepsStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p := f.compose(t, f.c.samsung, f.c.galaxy, 100, map[int64]string{f.c.color: "black"})
	f.uc.repo = &failingDeleteRepo{Repository: f.repo}

	err := f.uc.Remove(ctx, p.ID)
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindInternal))
	assert.Equal(t, 1, f.count(t, "products"))
	assert.Equal(t, 1, f.count(t, "stocks"))
	assert.NotContains(t, f.events.types(), EventProductRemoved)

	f.uc.repo = f.repo
	require.NoError(t, f.uc.Remove(ctx, p.ID))
	assert.Equal(t, 0, f.count(t, "products"))
	assert.Equal(t, 0, f.count(t, "stocks"))
}

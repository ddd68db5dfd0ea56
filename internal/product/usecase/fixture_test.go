package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/fekuna/omnipos-catalog-service/internal/attribute"
	attrdto "github.com/fekuna/omnipos-catalog-service/internal/attribute/dto"
	attrrepo "github.com/fekuna/omnipos-catalog-service/internal/attribute/repository"
	attruc "github.com/fekuna/omnipos-catalog-service/internal/attribute/usecase"
	"github.com/fekuna/omnipos-catalog-service/internal/auth"
	brandrepo "github.com/fekuna/omnipos-catalog-service/internal/brand/repository"
	brandusecase "github.com/fekuna/omnipos-catalog-service/internal/brand/usecase"
	catdto "github.com/fekuna/omnipos-catalog-service/internal/category/dto"
	catrepo "github.com/fekuna/omnipos-catalog-service/internal/category/repository"
	catuc "github.com/fekuna/omnipos-catalog-service/internal/category/usecase"
	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/product/matcher"
	"github.com/fekuna/omnipos-catalog-service/internal/product/repository"
	pmdto "github.com/fekuna/omnipos-catalog-service/internal/productmodel/dto"
	pmrepo "github.com/fekuna/omnipos-catalog-service/internal/productmodel/repository"
	pmuc "github.com/fekuna/omnipos-catalog-service/internal/productmodel/usecase"
	viewrepo "github.com/fekuna/omnipos-catalog-service/internal/productview/repository"
	"github.com/fekuna/omnipos-catalog-service/internal/sale"
	salerepo "github.com/fekuna/omnipos-catalog-service/internal/sale/repository"
	saleuc "github.com/fekuna/omnipos-catalog-service/internal/sale/usecase"
	"github.com/fekuna/omnipos-catalog-service/internal/stock"
	stockrepo "github.com/fekuna/omnipos-catalog-service/internal/stock/repository"
	stockuc "github.com/fekuna/omnipos-catalog-service/internal/stock/usecase"
	"github.com/fekuna/omnipos-catalog-service/internal/testutil"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// flakyStock fails on demand and otherwise delegates to the real stock use case.
type flakyStock struct {
	stock.UseCase
	failInit   bool
	failRemove bool
}

func (s *flakyStock) Initialize(ctx context.Context, productID, quantity int64) error {
	if s.failInit {
		return errors.New("stock service unavailable")
	}
	return s.UseCase.Initialize(ctx, productID, quantity)
}

func (s *flakyStock) RemoveForProduct(ctx context.Context, productID int64) error {
	if s.failRemove {
		return errors.New("stock service unavailable")
	}
	return s.UseCase.RemoveForProduct(ctx, productID)
}

type recordedEvents struct {
	mu     sync.Mutex
	events []ProductEvent
}

func (r *recordedEvents) Publish(_ context.Context, _ string, value interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, value.(ProductEvent))
	return nil
}

func (r *recordedEvents) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.EventType
	}
	return out
}

type prefixSigner struct{}

func (prefixSigner) URL(_ context.Context, objectKey string) (string, error) {
	return "https://media.test/" + objectKey, nil
}

type catalog struct {
	phones    int64
	laptops   int64
	root      int64
	samsung   int64
	apple     int64
	galaxy    int64
	iphone    int64
	screen    int64 // fixed
	cpu       int64 // fixed
	color     int64 // changeable
	storage   int64 // changeable
	laptopRAM int64
}

type fixture struct {
	db     *sqlx.DB
	uc     *productUseCase
	repo   *repository.PGRepository
	stock  *flakyStock
	sales  sale.UseCase
	events *recordedEvents
	attrs  attribute.UseCase
	c      catalog
}

func newFixture(t *testing.T) *fixture {
	return newFixtureWithOptions(t, Options{}, nil)
}

func newFixtureWithOptions(t *testing.T, opts Options, sales sale.UseCase) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	log := logger.NewNop()

	categories := catrepo.NewPGRepository(db)
	brands := brandrepo.NewPGRepository(db)
	models := pmrepo.NewPGRepository(db)
	attrs := attruc.NewAttributeUseCase(attrrepo.NewPGRepository(db), categories, log)
	st := &flakyStock{UseCase: stockuc.NewStockUseCase(stockrepo.NewPGRepository(db), log)}
	if sales == nil {
		sales = saleuc.NewSaleUseCase(salerepo.NewPGRepository(db), log)
	}
	repo := repository.NewPGRepository(db)
	events := &recordedEvents{}

	uc := NewProductUseCase(Dependencies{
		DB:         db,
		Repo:       repo,
		Categories: categories,
		Brands:     brands,
		Models:     models,
		Attributes: attrs,
		Stock:      st,
		Sales:      sales,
		Views:      viewrepo.NewPGRepository(db),
		Identity:   auth.NewJWTResolver("test-secret"),
		Matcher:    matcher.NewSQLMatcher(repo),
		Media:      prefixSigner{},
		Events:     events,
	}, opts, log).(*productUseCase)

	f := &fixture{db: db, uc: uc, repo: repo, stock: st, sales: sales, events: events, attrs: attrs}
	f.c = seedCatalog(t, db, attrs)
	return f
}

func seedCatalog(t *testing.T, db *sqlx.DB, attrs attribute.UseCase) catalog {
	t.Helper()
	ctx := context.Background()
	log := logger.NewNop()
	cats := catuc.NewCategoryUseCase(catrepo.NewPGRepository(db), log)
	brands := brandusecase.NewBrandUseCase(brandrepo.NewPGRepository(db), log)
	models := pmuc.NewModelUseCase(pmrepo.NewPGRepository(db), brandrepo.NewPGRepository(db), log)

	var c catalog
	root, err := cats.CreateCategory(ctx, &catdto.CreateCategoryInput{Name: "Electronics"})
	require.NoError(t, err)
	c.root = root.ID
	phones, err := cats.CreateCategory(ctx, &catdto.CreateCategoryInput{Name: "Phones", ParentCategoryID: &root.ID})
	require.NoError(t, err)
	c.phones = phones.ID
	laptops, err := cats.CreateCategory(ctx, &catdto.CreateCategoryInput{Name: "Laptops", ParentCategoryID: &root.ID})
	require.NoError(t, err)
	c.laptops = laptops.ID

	samsung, err := brands.CreateBrand(ctx, "Samsung")
	require.NoError(t, err)
	c.samsung = samsung.ID
	apple, err := brands.CreateBrand(ctx, "Apple")
	require.NoError(t, err)
	c.apple = apple.ID

	galaxy, err := models.CreateModel(ctx, &pmdto.CreateModelInput{Name: "Galaxy A54", BrandID: &samsung.ID})
	require.NoError(t, err)
	c.galaxy = galaxy.ID
	iphone, err := models.CreateModel(ctx, &pmdto.CreateModelInput{Name: "iPhone 15", BrandID: &apple.ID})
	require.NoError(t, err)
	c.iphone = iphone.ID

	newAttr := func(category int64, name string, changeable bool) int64 {
		a, err := attrs.CreateAttribute(ctx, &attrdto.CreateAttributeInput{CategoryID: category, Name: name, IsChangeable: changeable})
		require.NoError(t, err)
		return a.ID
	}
	c.screen = newAttr(c.phones, "Screen size", false)
	c.cpu = newAttr(c.phones, "CPU", false)
	c.color = newAttr(c.phones, "Color", true)
	c.storage = newAttr(c.phones, "Storage", true)
	c.laptopRAM = newAttr(c.laptops, "RAM", true)
	return c
}

func (f *fixture) compose(t *testing.T, brandID, modelID int64, price int64, attrs map[int64]string) *model.Product {
	t.Helper()
	p, err := f.uc.Compose(context.Background(), &dto.ComposeProductInput{
		CategoryID: f.c.phones,
		BrandID:    brandID,
		ModelID:    modelID,
		Price:      decimal.NewFromInt(price),
		Quantity:   5,
		Attributes: attrs,
	})
	require.NoError(t, err)
	return p
}

func (f *fixture) count(t *testing.T, table string) int {
	t.Helper()
	var n int
	require.NoError(t, f.db.Get(&n, "SELECT count(*) FROM "+table))
	return n
}

func infoValues(p *model.Product) map[int64]string {
	out := make(map[int64]string, len(p.Infos))
	for _, info := range p.Infos {
		out[info.AttributeID] = info.AttributeValue
	}
	return out
}

func productIDs(products []model.Product) []int64 {
	ids := make([]int64, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}

package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/attribute"
	"github.com/fekuna/omnipos-catalog-service/internal/auth"
	"github.com/fekuna/omnipos-catalog-service/internal/brand"
	"github.com/fekuna/omnipos-catalog-service/internal/cache"
	"github.com/fekuna/omnipos-catalog-service/internal/category"
	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product"
	"github.com/fekuna/omnipos-catalog-service/internal/productmodel"
	"github.com/fekuna/omnipos-catalog-service/internal/productview"
	"github.com/fekuna/omnipos-catalog-service/internal/sale"
	"github.com/fekuna/omnipos-catalog-service/internal/search"
	"github.com/fekuna/omnipos-catalog-service/internal/stock"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	productCacheKeyPrefix = "catalog:product:"
	listCacheKeyPrefix    = "catalog:products:"
)

// EventPublisher is satisfied by broker.KafkaProducer.
type EventPublisher interface {
	Publish(ctx context.Context, key string, value interface{}) error
}

// URLSigner turns a stored media object key into a URL clients can fetch.
type URLSigner interface {
	URL(ctx context.Context, objectKey string) (string, error)
}

// Dependencies wires the product use case. Cache, ES, Media and Events are
// optional and may be left nil.
type Dependencies struct {
	DB         *sqlx.DB
	Repo       product.Repository
	Categories category.Repository
	Brands     brand.Repository
	Models     productmodel.Repository
	Attributes attribute.UseCase
	Stock      stock.UseCase
	Sales      sale.UseCase
	Views      productview.Repository
	Identity   auth.Resolver
	Matcher    product.NameMatcher
	Locker     cache.Locker

	Cache  *cache.RedisClient
	ES     *search.Client
	Media  URLSigner
	Events EventPublisher
}

type Options struct {
	CacheTTL    time.Duration
	SearchIndex string
	// RefreshSaleOnRead refreshes active sales before each read and fails
	// the read when that refresh fails.
	RefreshSaleOnRead bool
}

type productUseCase struct {
	db         *sqlx.DB
	repo       product.Repository
	categories category.Repository
	brands     brand.Repository
	models     productmodel.Repository
	attributes attribute.UseCase
	stock      stock.UseCase
	sales      sale.UseCase
	views      productview.Repository
	identity   auth.Resolver
	matcher    product.NameMatcher
	locker     cache.Locker
	cache      *cache.RedisClient
	es         *search.Client
	media      URLSigner
	events     EventPublisher
	opts       Options
	logger     logger.ZapLogger

	loads singleflight.Group
}

func NewProductUseCase(deps Dependencies, opts Options, log logger.ZapLogger) product.UseCase {
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 5 * time.Minute
	}
	if opts.SearchIndex == "" {
		opts.SearchIndex = "catalog_products"
	}
	locker := deps.Locker
	if locker == nil {
		locker = cache.NewLocalLocker()
	}
	return &productUseCase{
		db:         deps.DB,
		repo:       deps.Repo,
		categories: deps.Categories,
		brands:     deps.Brands,
		models:     deps.Models,
		attributes: deps.Attributes,
		stock:      deps.Stock,
		sales:      deps.Sales,
		views:      deps.Views,
		identity:   deps.Identity,
		matcher:    deps.Matcher,
		locker:     locker,
		cache:      deps.Cache,
		es:         deps.ES,
		media:      deps.Media,
		events:     deps.Events,
		opts:       opts,
		logger:     log,
	}
}

// refreshSales runs ahead of reads only when the legacy read-path refresh is enabled.
func (uc *productUseCase) refreshSales(ctx context.Context) error {
	if !uc.opts.RefreshSaleOnRead {
		return nil
	}
	if err := uc.sales.RefreshActiveSales(ctx); err != nil {
		uc.logger.Error("failed to refresh sales before read", zap.Error(err))
		return apperror.Internal("an error occurred while setting the sale", err)
	}
	return nil
}

// attachInfos loads the attribute values of every product in one query.
func (uc *productUseCase) attachInfos(ctx context.Context, products []model.Product) error {
	if len(products) == 0 {
		return nil
	}
	ids := make([]int64, len(products))
	for i := range products {
		ids[i] = products[i].ID
	}
	infos, err := uc.repo.FindInfosByProductIDs(ctx, ids)
	if err != nil {
		return err
	}
	byProduct := make(map[int64][]model.ProductInfo, len(products))
	for _, info := range infos {
		byProduct[info.ProductID] = append(byProduct[info.ProductID], info)
	}
	for i := range products {
		products[i].Infos = byProduct[products[i].ID]
		if products[i].Infos == nil {
			products[i].Infos = []model.ProductInfo{}
		}
	}
	return nil
}

func (uc *productUseCase) productCacheKey(id int64) string {
	return productCacheKeyPrefix + strconv.FormatInt(id, 10)
}

func (uc *productUseCase) generateCacheKey(kind string, v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	hash := md5.Sum(data)
	return fmt.Sprintf("%s%s:%x", listCacheKeyPrefix, kind, hash), nil
}

func (uc *productUseCase) cachedList(ctx context.Context, key string) ([]model.Product, bool) {
	if uc.cache == nil || key == "" {
		return nil, false
	}
	var products []model.Product
	found, err := uc.cache.GetJSON(ctx, key, &products)
	if err != nil {
		uc.logger.Warn("failed to read product list cache", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return products, found
}

func (uc *productUseCase) storeList(ctx context.Context, key string, products []model.Product) {
	if uc.cache == nil || key == "" {
		return
	}
	if err := uc.cache.SetJSON(ctx, key, products, uc.opts.CacheTTL); err != nil {
		uc.logger.Warn("failed to cache product list", zap.String("key", key), zap.Error(err))
	}
}

func (uc *productUseCase) invalidateProductCache(ctx context.Context, id int64) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Client.Del(ctx, uc.productCacheKey(id)).Err(); err != nil {
		uc.logger.Error("failed to invalidate product cache", zap.Int64("product_id", id), zap.Error(err))
	}
	if err := uc.cache.DeletePattern(ctx, listCacheKeyPrefix+"*"); err != nil {
		uc.logger.Error("failed to invalidate product list cache", zap.Error(err))
	}
}

type productDocument struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	CategoryID int64  `json:"category_id"`
	BrandID    int64  `json:"brand_id"`
	ModelID    int64  `json:"model_id"`
	Price      string `json:"price"`
}

const productIndexMapping = `{
	"mappings": {
		"properties": {
			"id": { "type": "long" },
			"name": { "type": "text", "fields": { "keyword": { "type": "keyword" } } },
			"category_id": { "type": "long" },
			"brand_id": { "type": "long" },
			"model_id": { "type": "long" },
			"price": { "type": "scaled_float", "scaling_factor": 100 }
		}
	}
}`

func (uc *productUseCase) syncToElastic(ctx context.Context, p *model.Product) {
	if uc.es == nil {
		return
	}
	if err := uc.es.CreateIndex(ctx, uc.opts.SearchIndex, productIndexMapping); err != nil {
		uc.logger.Error("failed to ensure product index", zap.Error(err))
		return
	}
	doc := productDocument{
		ID:         p.ID,
		Name:       p.Name,
		CategoryID: p.CategoryID,
		BrandID:    p.BrandID,
		ModelID:    p.ModelID,
		Price:      p.Price.StringFixed(2),
	}
	if err := uc.es.Index(ctx, uc.opts.SearchIndex, strconv.FormatInt(p.ID, 10), doc); err != nil {
		uc.logger.Error("failed to index product", zap.Int64("product_id", p.ID), zap.Error(err))
	}
}

func (uc *productUseCase) removeFromElastic(ctx context.Context, id int64) {
	if uc.es == nil {
		return
	}
	if err := uc.es.Delete(ctx, uc.opts.SearchIndex, strconv.FormatInt(id, 10)); err != nil {
		uc.logger.Error("failed to remove product from index", zap.Int64("product_id", id), zap.Error(err))
	}
}

type ProductEvent struct {
	EventType string    `json:"event_type"`
	ProductID int64     `json:"product_id"`
	ModelID   int64     `json:"model_id"`
	Name      string    `json:"name,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func (uc *productUseCase) publish(ctx context.Context, eventType string, p *model.Product) {
	if uc.events == nil {
		return
	}
	event := ProductEvent{
		EventType: eventType,
		ProductID: p.ID,
		ModelID:   p.ModelID,
		Name:      p.Name,
		Timestamp: time.Now().UTC(),
	}
	if err := uc.events.Publish(ctx, strconv.FormatInt(p.ID, 10), event); err != nil {
		uc.logger.Error("failed to publish product event",
			zap.String("event_type", eventType),
			zap.Int64("product_id", p.ID),
			zap.Error(err),
		)
	}
}

// afterWrite runs the best-effort side effects of a committed write.
func (uc *productUseCase) afterWrite(eventType string, p *model.Product) {
	ctx := context.Background()
	uc.invalidateProductCache(ctx, p.ID)
	if eventType == EventProductRemoved {
		go uc.removeFromElastic(ctx, p.ID)
	} else {
		go uc.syncToElastic(ctx, p)
	}
	uc.publish(ctx, eventType, p)
}

const (
	EventProductComposed = "ProductComposed"
	EventProductUpdated  = "ProductUpdated"
	EventProductRemoved  = "ProductRemoved"
)

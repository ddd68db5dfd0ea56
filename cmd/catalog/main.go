package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fekuna/omnipos-catalog-service/config"
	"github.com/fekuna/omnipos-catalog-service/internal/auth"
	"github.com/fekuna/omnipos-catalog-service/internal/broker"
	"github.com/fekuna/omnipos-catalog-service/internal/cache"
	"github.com/fekuna/omnipos-catalog-service/internal/database"
	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"github.com/fekuna/omnipos-catalog-service/internal/media"
	"github.com/fekuna/omnipos-catalog-service/internal/product"
	"github.com/fekuna/omnipos-catalog-service/internal/search"
	"github.com/fekuna/omnipos-catalog-service/internal/server"

	attrH "github.com/fekuna/omnipos-catalog-service/internal/attribute/handler"
	attrRepoPkg "github.com/fekuna/omnipos-catalog-service/internal/attribute/repository"
	attrUCPkg "github.com/fekuna/omnipos-catalog-service/internal/attribute/usecase"

	brandH "github.com/fekuna/omnipos-catalog-service/internal/brand/handler"
	brandRepoPkg "github.com/fekuna/omnipos-catalog-service/internal/brand/repository"
	brandUCPkg "github.com/fekuna/omnipos-catalog-service/internal/brand/usecase"

	catH "github.com/fekuna/omnipos-catalog-service/internal/category/handler"
	catRepoPkg "github.com/fekuna/omnipos-catalog-service/internal/category/repository"
	catUCPkg "github.com/fekuna/omnipos-catalog-service/internal/category/usecase"

	modelH "github.com/fekuna/omnipos-catalog-service/internal/productmodel/handler"
	modelRepoPkg "github.com/fekuna/omnipos-catalog-service/internal/productmodel/repository"
	modelUCPkg "github.com/fekuna/omnipos-catalog-service/internal/productmodel/usecase"

	prodH "github.com/fekuna/omnipos-catalog-service/internal/product/handler"
	prodMatcherPkg "github.com/fekuna/omnipos-catalog-service/internal/product/matcher"
	prodRepoPkg "github.com/fekuna/omnipos-catalog-service/internal/product/repository"
	prodUCPkg "github.com/fekuna/omnipos-catalog-service/internal/product/usecase"

	viewRepoPkg "github.com/fekuna/omnipos-catalog-service/internal/productview/repository"

	saleH "github.com/fekuna/omnipos-catalog-service/internal/sale/handler"
	saleListenerPkg "github.com/fekuna/omnipos-catalog-service/internal/sale/listener"
	saleRepoPkg "github.com/fekuna/omnipos-catalog-service/internal/sale/repository"
	saleSchedulerPkg "github.com/fekuna/omnipos-catalog-service/internal/sale/scheduler"
	saleUCPkg "github.com/fekuna/omnipos-catalog-service/internal/sale/usecase"

	stockRepoPkg "github.com/fekuna/omnipos-catalog-service/internal/stock/repository"
	stockUCPkg "github.com/fekuna/omnipos-catalog-service/internal/stock/usecase"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.Server.AppEnv == "dev" || cfg.Server.AppEnv == "development" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = cfg.Logger.Encoding
	}
	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Connect to Database
	db, err := database.NewPostgres(&database.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Postgres.AutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			appLogger.Fatal("Could not migrate database", zap.Error(err))
		}
	}

	// 4. Initialize Repositories
	catRepo := catRepoPkg.NewPGRepository(db)
	brandRepo := brandRepoPkg.NewPGRepository(db)
	modelRepo := modelRepoPkg.NewPGRepository(db)
	attrRepo := attrRepoPkg.NewPGRepository(db)
	stockRepo := stockRepoPkg.NewPGRepository(db)
	saleRepo := saleRepoPkg.NewPGRepository(db)
	viewRepo := viewRepoPkg.NewPGRepository(db)
	prodRepo := prodRepoPkg.NewPGRepository(db)

	// 5. Initialize Redis
	var redisClient *cache.RedisClient
	var locker cache.Locker = cache.NewLocalLocker()
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(&cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			appLogger.Fatal("Could not connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		locker = cache.NewRedisLocker(redisClient, cfg.Redis.LockTTL)
		appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
	}

	// 6. Initialize Elasticsearch
	var esClient *search.Client
	if cfg.Elastic.Enabled {
		esClient, err = search.NewClient(&search.Config{
			Addresses: cfg.Elastic.Addresses,
			Username:  cfg.Elastic.Username,
			Password:  cfg.Elastic.Password,
		})
		if err != nil {
			appLogger.Warn("Could not connect to Elasticsearch (search falls back to SQL)", zap.Error(err))
			esClient = nil
		} else {
			appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
		}
	}

	// 7. Initialize use cases
	catUC := catUCPkg.NewCategoryUseCase(catRepo, appLogger)
	brandUC := brandUCPkg.NewBrandUseCase(brandRepo, appLogger)
	modelUC := modelUCPkg.NewModelUseCase(modelRepo, brandRepo, appLogger)
	attrUC := attrUCPkg.NewAttributeUseCase(attrRepo, catRepo, appLogger)
	stockUC := stockUCPkg.NewStockUseCase(stockRepo, appLogger)
	saleUC := saleUCPkg.NewSaleUseCase(saleRepo, appLogger)

	var matcher product.NameMatcher = prodMatcherPkg.NewSQLMatcher(prodRepo)
	if strings.EqualFold(cfg.Search.Backend, "elastic") && esClient != nil {
		matcher = prodMatcherPkg.NewElasticMatcher(esClient, cfg.Elastic.Index, prodRepo)
	}

	deps := prodUCPkg.Dependencies{
		DB:         db,
		Repo:       prodRepo,
		Categories: catRepo,
		Brands:     brandRepo,
		Models:     modelRepo,
		Attributes: attrUC,
		Stock:      stockUC,
		Sales:      saleUC,
		Views:      viewRepo,
		Identity:   auth.NewJWTResolver(cfg.JWT.SecretKey),
		Matcher:    matcher,
		Locker:     locker,
		Cache:      redisClient,
		ES:         esClient,
	}

	if cfg.Minio.Enabled {
		signer, err := media.NewMinioSigner(&media.Config{
			Endpoint:  cfg.Minio.Endpoint,
			AccessKey: cfg.Minio.AccessKey,
			SecretKey: cfg.Minio.SecretKey,
			Bucket:    cfg.Minio.Bucket,
			Region:    cfg.Minio.Region,
			UseSSL:    cfg.Minio.UseSSL,
			URLExpiry: cfg.Minio.URLExpiry,
		})
		if err != nil {
			appLogger.Fatal("Could not create MinIO client", zap.Error(err))
		}
		deps.Media = signer
	}

	var saleConsumer *broker.KafkaConsumer
	if cfg.Kafka.Enabled {
		producer := broker.NewProducer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.ProductEventTopic,
		})
		defer producer.Close()
		deps.Events = producer

		saleConsumer = broker.NewConsumer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.SaleEventTopic,
			GroupID: cfg.Kafka.GroupID,
		})
		defer saleConsumer.Close()
		appLogger.Info("Connected to Kafka", zap.Strings("brokers", cfg.Kafka.Brokers))
	}

	prodUC := prodUCPkg.NewProductUseCase(deps, prodUCPkg.Options{
		CacheTTL:          cfg.Redis.CacheTTL,
		SearchIndex:       cfg.Elastic.Index,
		RefreshSaleOnRead: cfg.Sale.RefreshOnRead,
	}, appLogger)

	// 8. Background workers
	scheduler := saleSchedulerPkg.NewScheduler(saleUC, cfg.Sale.RefreshInterval, appLogger)

	// 9. Handlers and servers
	router := server.NewRouter(db, appLogger,
		catH.NewCategoryHandler(catUC, appLogger),
		brandH.NewBrandHandler(brandUC, appLogger),
		modelH.NewModelHandler(modelUC, appLogger),
		attrH.NewAttributeHandler(attrUC, appLogger),
		prodH.NewProductHandler(prodUC, appLogger),
		saleH.NewSaleHandler(saleUC, scheduler, appLogger),
	)
	httpServer := server.NewHTTPServer(listenAddr(cfg.Server.HTTPPort), router)
	grpcServer, healthServer := server.NewGRPCServer()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		scheduler.Start(gctx)
		return nil
	})
	if saleConsumer != nil {
		listener := saleListenerPkg.NewSaleListener(saleConsumer, scheduler, appLogger)
		g.Go(func() error {
			listener.Start(gctx)
			return nil
		})
	}
	g.Go(func() error {
		server.WatchHealth(gctx, db, healthServer, 10*time.Second, appLogger)
		return nil
	})

	g.Go(func() error {
		appLogger.Info("Starting HTTP server", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		lis, err := net.Listen("tcp", listenAddr(cfg.Server.GRPCPort))
		if err != nil {
			return err
		}
		appLogger.Info("Starting gRPC server", zap.String("addr", lis.Addr().String()))
		return grpcServer.Serve(lis)
	})

	// Graceful Shutdown
	g.Go(func() error {
		<-gctx.Done()
		appLogger.Info("Shutting down servers...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		grpcServer.GracefulStop()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		appLogger.Error("Server stopped with error", zap.Error(err))
		return
	}
	appLogger.Info("Server stopped")
}

func listenAddr(port string) string {
	if !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	redisclient "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pradeepit93/srienippagam-menu/internal/router"
	"github.com/pradeepit93/srienippagam-menu/pkg/cart"
	"github.com/pradeepit93/srienippagam-menu/pkg/catalog"
	"github.com/pradeepit93/srienippagam-menu/pkg/events"
	"github.com/pradeepit93/srienippagam-menu/pkg/global"
	"github.com/pradeepit93/srienippagam-menu/pkg/images"
	"github.com/pradeepit93/srienippagam-menu/pkg/metrics"
	"github.com/pradeepit93/srienippagam-menu/pkg/models"
	"github.com/pradeepit93/srienippagam-menu/pkg/mongo"
	"github.com/pradeepit93/srienippagam-menu/pkg/redis"
)

func main() {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	cfg := global.LoadConfig()
	logger, err := global.InitLogger(cfg.IsProduction())
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
}

func run(cfg *global.Config) error {
	ctx := context.Background()
	registry := metrics.NewRegistry()

	source, closeSource, err := catalogSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSource()

	carts, cacheClient, closeStore, err := cartStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	if cacheClient != nil && cfg.CatalogCache > 0 {
		source = redis.CachedSource{Inner: source, Client: cacheClient, TTL: cfg.CatalogCache}
	}

	catalogService := catalog.NewService(source, cfg.CatalogTimeout,
		catalog.WithLoadHook(func(c *catalog.Catalog, err error) {
			products := 0
			if c != nil {
				products = c.Len()
			}
			registry.ObserveCatalogLoad(err, products)
		}))

	// a failed first load is served as "unavailable" until POST /api/catalog/reload succeeds
	if err := catalogService.Reload(ctx); err != nil {
		global.Logger.Warn("Starting without a catalog", zap.Error(err))
	}

	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.OrderEventBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.OrderEventBrokers, cfg.OrderEventTopic)
		global.Logger.Info("Publishing order events",
			zap.Strings("brokers", cfg.OrderEventBrokers), zap.String("topic", cfg.OrderEventTopic))
	}
	defer publisher.Close()

	pool := &images.Pool{
		Resolver:    images.StaticResolver{BaseURL: cfg.ImageBaseURL},
		Placeholder: cfg.ImagePlaceholder,
		Limit:       cfg.ImageConcurrency,
		OnFailure:   func(models.Product, error) { registry.ImageFailures.Inc() },
	}

	server := router.NewServer(cfg, catalogService, carts, pool, publisher, registry)
	server.InitEngine()
	server.InitializeRoutes()

	global.Logger.Info("Server is running", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	if err := server.Run(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to run server: %w", err)
	}
	return nil
}

func catalogSource(ctx context.Context, cfg *global.Config) (catalog.Source, func(), error) {
	noop := func() {}

	switch cfg.CatalogSource {
	case global.SourceSeed:
		return catalog.SeedSource{}, noop, nil
	case global.SourceFile:
		return catalog.FileSource{Path: cfg.CatalogPath}, noop, nil
	case global.SourceHTTP:
		if cfg.CatalogURL == "" {
			return nil, noop, fmt.Errorf("CATALOG_URL is required for the http catalog source")
		}
		return catalog.HTTPSource{URL: cfg.CatalogURL, Client: &http.Client{Timeout: cfg.CatalogTimeout}}, noop, nil
	case global.SourceMongo:
		return mongoSource(ctx, cfg)
	default:
		return nil, noop, fmt.Errorf("unknown CATALOG_SOURCE %q", cfg.CatalogSource)
	}
}

// mongoSource connects, ensures indexes and seeds an empty collection with
// the built-in catalog.
func mongoSource(ctx context.Context, cfg *global.Config) (catalog.Source, func(), error) {
	if cfg.MongoURI == "" {
		return nil, func() {}, fmt.Errorf("MONGODB_URI is required for the mongo catalog source")
	}

	connectCtx, cancel := context.WithTimeout(ctx, cfg.CatalogTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, cfg.MongoURI)
	if err != nil {
		return nil, func() {}, err
	}
	closeClient := func() {
		ctx, cancel := global.GetDefaultTimer()
		defer cancel()
		_ = client.Disconnect(ctx)
	}

	db := client.Database(cfg.MongoDatabase)
	if err := mongo.EnsureIndexes(connectCtx, db); err != nil {
		closeClient()
		return nil, func() {}, fmt.Errorf("failed to ensure indexes: %w", err)
	}

	collection := db.Collection(mongo.ProductsCollection)
	if _, err := mongo.SeedProducts(connectCtx, collection, catalog.SeedProducts()); err != nil {
		global.Logger.Warn("Could not seed products collection", zap.Error(err))
	}
	return mongo.ProductSource{Collection: collection}, closeClient, nil
}

// cartStore picks Redis when REDIS_ADDRESS is set and process memory otherwise.
// The Redis client is also returned for the catalog cache.
func cartStore(ctx context.Context, cfg *global.Config) (cart.Store, *redisclient.Client, func(), error) {
	if cfg.RedisAddress == "" {
		store := cart.NewMemoryStore(cfg.CartTTL)
		stop := make(chan struct{})
		go sweepCarts(store, cfg.CartTTL, stop)
		global.Logger.Info("Using in-memory cart store")
		return store, nil, func() { close(stop) }, nil
	}

	client, err := redis.NewClient(ctx, cfg.RedisAddress, cfg.RedisPassword)
	if err != nil {
		return nil, nil, func() {}, err
	}
	global.Logger.Info("Using Redis cart store", zap.String("address", cfg.RedisAddress))
	return redis.NewCartStore(client, cfg.CartTTL), client, func() { client.Close() }, nil
}

func sweepCarts(store *cart.MemoryStore, every time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if n := store.Sweep(); n > 0 {
				global.Logger.Debug("Swept expired carts", zap.Int("carts", n))
			}
		case <-stop:
			return
		}
	}
}

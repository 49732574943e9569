package container

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"storefront/catalogpage/internal/classifier"
	"storefront/catalogpage/internal/client"
	"storefront/catalogpage/internal/config"
	"storefront/catalogpage/internal/giftcard"
	"storefront/catalogpage/internal/httpserver"
	"storefront/catalogpage/internal/repository"
	"storefront/catalogpage/internal/resolver"
	"storefront/catalogpage/internal/storefront"
	"storefront/catalogpage/internal/urlid"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Container holds all initialized components
type Container struct {
	Config      *config.Config
	Catalog     client.CatalogClient
	Templates   repository.TemplateRepository
	Contents    repository.ContentRepository
	Storefronts storefront.Provider
	Step        *resolver.Step
	Server      *httpserver.Server

	db    *pgxpool.Pool
	redis *redis.Client
}

// New creates a new container with all dependencies initialized
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	container := &Container{
		Config: cfg,
	}

	db, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}
	container.db = db

	if err := db.Ping(ctx); err != nil {
		container.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info("✅ Connected to PostgreSQL successfully")

	container.Templates = repository.NewTemplateRepository(db)
	container.Contents = repository.NewContentRepository(db)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.Database,
	})
	container.redis = rdb

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		container.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Info("✅ Connected to Redis successfully")

	container.Storefronts = storefront.NewRedisProvider(rdb, cfg.Redis.KeyPrefix, cfg.Server.Site, cfg.Storefront)
	container.Catalog = client.NewCatalogClient(cfg.Catalog)

	step, err := resolver.NewStep(resolver.Dependencies{
		Classifier:  classifier.NewClassifier(container.Templates, cfg.Templates.CategoryPageID, cfg.Templates.ProductPageID),
		Extractor:   urlid.NewExtractor(urlid.SegmentCodec{}),
		GiftCards:   giftcard.NewDetector(),
		Search:      container.Catalog,
		Storefronts: container.Storefronts,
	})
	if err != nil {
		container.Close()
		return nil, err
	}
	container.Step = step

	container.Server = httpserver.New(cfg.Server, container.Contents, step)

	return container, nil
}

// Run serves HTTP until ctx is cancelled, then shuts the server down
func (c *Container) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return c.Server.ListenAndServe()
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info("🛑 Shutting down HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(),
			time.Duration(c.Config.Server.ShutdownTimeout)*time.Second)
		defer cancel()

		return c.Server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	log.Info("Shutting down container...")

	if c.Catalog != nil {
		if err := c.Catalog.Close(); err != nil {
			log.Warnf("⚠️ Failed to close catalog client: %v", err)
		}
	}
	if c.db != nil {
		c.db.Close()
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			log.Warnf("⚠️ Failed to close Redis client: %v", err)
		}
	}

	log.Info("Container shut down successfully")
	return nil
}

package dependency_injection

import (
	"context"

	"ocr-translate-api/cmd/configs"
	"ocr-translate-api/internal/handlers"
	"ocr-translate-api/internal/repositories"
	"ocr-translate-api/internal/services"
	"ocr-translate-api/pkg/imaging"
	"ocr-translate-api/pkg/memorydb"
	"ocr-translate-api/pkg/objectstore"
	"ocr-translate-api/pkg/ocr"
	"ocr-translate-api/pkg/ocr/tesseract"
	"ocr-translate-api/pkg/postgres"
	"ocr-translate-api/pkg/translator"

	fylogger "github.com/FyersDev/trading-logger-go"
)

type Container struct {
	Config        *configs.Config
	DB            *postgres.DB
	RedisClient   *memorydb.RedisClient
	ObjectStore   *objectstore.Client
	OCREngine     ocr.Engine
	Translator    translator.Translator
	HealthService *services.HealthService
	Repositories  *repositories.Repositories
	Handlers      *handlers.Handlers
	Services      *services.Services
}

func NewContainer(ctx context.Context, config *configs.Config) (*Container, error) {
	// Initialize database client
	db, err := postgres.NewPostgresClient(ctx, config)
	if err != nil {
		fylogger.ErrorLog(ctx, "Failed to initialize database", err, nil)
		return nil, err
	}

	repos := repositories.NewRepositories(db)
	if err := repos.CreateSchema(ctx); err != nil {
		fylogger.ErrorLog(ctx, "Failed to initialize database schema", err, nil)
		db.Close()
		return nil, err
	}

	// Object store, bucket is created on first start
	store := objectstore.NewClient(config.Storage)
	if err := store.EnsureBucket(ctx); err != nil {
		fylogger.ErrorLog(ctx, "Failed to initialize object store bucket", err, map[string]interface{}{
			"host":   config.Storage.Host,
			"bucket": config.Storage.Bucket,
		})
		db.Close()
		return nil, err
	}

	// Redis only backs the translation cache, so it is optional
	var redisClient *memorydb.RedisClient
	if config.MemoryDBRedisURL != "" {
		redisClient, err = memorydb.NewRedisClient(ctx, config)
		if err != nil {
			fylogger.ErrorLog(ctx, "Failed to initialize redis client, translation cache disabled", err, nil)
			redisClient = nil
		}
	}

	engine := tesseract.NewEngine(config.OCR)

	httpTranslator := translator.NewClient(config.Translator, nil)
	var tr translator.Translator = httpTranslator
	if redisClient != nil {
		tr = translator.NewCachedTranslator(httpTranslator, redisClient, config.TranslationCacheTTL, httpTranslator.SourceLang(), httpTranslator.TargetLang())
	}

	var redisPinger services.Pinger
	if redisClient != nil {
		redisPinger = redisClient
	}
	healthService := services.NewHealthService(db, store, redisPinger)

	baseService := services.NewBaseService(repos.Job, repos.Text, store, engine, tr)
	service := services.NewServices(baseService, healthService, imaging.Limits{
		MaxSide:   config.OCR.MaxSide,
		MaxPixels: config.OCR.MaxPixels,
	})

	fylogger.InfoLog(ctx, "Container initialized", map[string]interface{}{
		"bucket":            store.Bucket(),
		"ocr_engine":        engine.Name(),
		"translation_cache": redisClient != nil,
	})

	return &Container{
		Config:        config,
		DB:            db,
		RedisClient:   redisClient,
		ObjectStore:   store,
		OCREngine:     engine,
		Translator:    tr,
		HealthService: healthService,
		Repositories:  repos,
		Handlers:      handlers.NewHandlers(service),
		Services:      service,
	}, nil
}

func (c *Container) Close() {
	if c.DB != nil {
		c.DB.Close()
	}
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}
}

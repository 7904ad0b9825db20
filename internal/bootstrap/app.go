package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"resume-matcher/internal/documents"
	"resume-matcher/internal/insights"
	"resume-matcher/internal/matching"
	"resume-matcher/internal/semantic"
	"resume-matcher/internal/semantic/cache"
	"resume-matcher/internal/semantic/gemini"
	"resume-matcher/internal/semantic/openai"
	"resume-matcher/internal/services/health"
	"resume-matcher/internal/shared/config"
	"resume-matcher/internal/shared/server"
	"resume-matcher/internal/shared/storage/db"
	"resume-matcher/internal/shared/storage/object"
	localstore "resume-matcher/internal/shared/storage/object/local"
	s3store "resume-matcher/internal/shared/storage/object/s3"
	"resume-matcher/internal/shared/telemetry"
)

// App holds shared dependencies and the HTTP router.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Redis  *redis.Client
	Store  object.Reader

	Semantic     semantic.Provider
	SemanticName string

	DocumentsRepo documents.Repo
	MatchRepo     matching.Repo

	DocumentsService *documents.Service
	MatchService     *matching.Service
	InsightsService  *insights.Service
}

// Build prepares shared dependencies and wires the router.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	provider, name, err := BuildSemantic(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:       cfg,
		DB:           sqlDB,
		Store:        store,
		Semantic:     provider,
		SemanticName: name,
	}
	app.Redis = buildRedis(ctx, cfg)
	if app.Redis != nil {
		app.Semantic = cache.New(app.Semantic, app.Redis, cfg.SemanticCacheTTL)
		app.SemanticName = name + "+cache"
	}

	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          cfg,
		DocumentHandler: documents.NewHandler(app.DocumentsService),
		MatchHandler:    matching.NewHandler(app.MatchService, cfg.BatchMaxPairs),
		InsightsHandler: insights.NewHandler(app.InsightsService),
		Health:          app.health().Status,
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":          cfg.Env,
		"object_store": cfg.ObjectStoreType,
		"semantic":     app.SemanticName,
		"database":     app.DB != nil,
	})
	return app, nil
}

// Close releases the database and cache connections.
func (a *App) Close() error {
	var errs []error
	if a.Redis != nil {
		errs = append(errs, a.Redis.Close())
	}
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}
	return errors.Join(errs...)
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Info("bootstrap.memory_repos", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromConfig(db.DefaultServerOptions(), cfg.DBPool))
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Error("bootstrap.memory_repos", map[string]any{"reason": "database connect failed", "error": err.Error()})
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.Reader, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

// BuildSemantic selects the configured semantic provider, wrapped with one retry.
// Without a usable configuration it returns the placeholder, which makes every
// match run lexical only.
func BuildSemantic(ctx context.Context, cfg config.Config) (semantic.Provider, string, error) {
	var (
		base semantic.Provider
		err  error
	)
	switch cfg.SemanticProvider {
	case "openai":
		base, err = openai.New(cfg.OpenAIAPIKey, cfg.SemanticModel)
	case "gemini":
		base, err = gemini.New(ctx, cfg.GeminiAPIKey, cfg.SemanticModel)
	default:
		return semantic.Placeholder{}, "none", nil
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Error("bootstrap.semantic_disabled", map[string]any{
				"provider": cfg.SemanticProvider,
				"error":    err.Error(),
			})
			return semantic.Placeholder{}, "none", nil
		}
		return nil, "", fmt.Errorf("semantic provider %s: %w", cfg.SemanticProvider, err)
	}
	return semantic.WithRetry(base), cfg.SemanticProvider, nil
}

// buildRedis returns nil when no cache is configured or it cannot be reached.
func buildRedis(ctx context.Context, cfg config.Config) *redis.Client {
	if strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil
	}
	client, err := cache.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		telemetry.Error("bootstrap.cache_disabled", map[string]any{
			"addr":  cfg.RedisAddr,
			"error": err.Error(),
		})
		return nil
	}
	return client
}

func buildServices(app *App) {
	if app.DB != nil {
		app.DocumentsRepo = &documents.PGRepo{DB: app.DB}
		app.MatchRepo = &matching.PGRepo{DB: app.DB}
	} else {
		app.DocumentsRepo = documents.NewMemoryRepo()
		app.MatchRepo = matching.NewMemoryRepo()
	}

	app.DocumentsService = &documents.Service{Store: app.Store, Repo: app.DocumentsRepo}
	app.MatchService = &matching.Service{
		Repo:            app.MatchRepo,
		Docs:            app.DocumentsRepo,
		Processor:       app.DocumentsService,
		AutoProcess:     app.Config.MatchAutoProcess,
		Semantic:        app.Semantic,
		SemanticTimeout: app.Config.SemanticTimeout,
	}
	app.InsightsService = &insights.Service{
		Records: app.MatchService,
		Aggregator: insights.NewAggregator(
			app.Config.InsightsSeniorThreshold,
			app.Config.InsightsTargetedThreshold,
			app.DocumentsRepo,
		),
	}
}

// health probes the database and cache. Both report disabled when not configured.
func (a *App) health() *health.Service {
	checks := map[string]health.Check{"database": nil, "cache": nil}
	if a.DB != nil {
		checks["database"] = a.DB.PingContext
	}
	if a.Redis != nil {
		checks["cache"] = func(ctx context.Context) error { return a.Redis.Ping(ctx).Err() }
	}
	return health.NewService(checks, map[string]any{"semantic": a.SemanticName})
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local", "test":
		return true
	default:
		return false
	}
}

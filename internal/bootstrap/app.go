package bootstrap

import (
	"context"
	"database/sql"
	"strings"

	"github.com/redis/go-redis/v9"

	"dinewise-backend/internal/catalog"
	"dinewise-backend/internal/llm"
	"dinewise-backend/internal/llm/groq"
	"dinewise-backend/internal/recs"
	"dinewise-backend/internal/shared/config"
	"dinewise-backend/internal/shared/storage/db"
	"dinewise-backend/internal/shared/telemetry"
)

// App holds shared dependencies for the API process.
type App struct {
	Config      config.Config
	DB          *sql.DB
	Redis       *redis.Client
	CatalogRepo catalog.Repo
	Writer      catalog.Writer
	LLM         llm.Client
	RecsService *recs.Service
	RecsHandler *recs.Handler
}

// Build prepares shared dependencies without wiring routes. Postgres and
// Redis are optional: without a DATABASE_URL the catalog runs in memory,
// without a Redis address vocabularies are read straight from the repo.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB := buildDB(ctx, cfg)

	var repo catalog.Repo
	var writer catalog.Writer
	if sqlDB != nil {
		pg := &catalog.PGRepo{DB: sqlDB}
		repo = pg
		writer = pg
	} else {
		mem := catalog.NewMemoryRepo()
		repo = mem
		writer = mem
	}

	redisClient := buildRedis(ctx, cfg)
	if redisClient != nil {
		repo = catalog.NewVocabCache(repo, redisClient, cfg.VocabCacheTTL)
	}

	client := buildLLM(cfg)
	svc := recs.NewService(repo, client, cfg.Engine, cfg.LLMTimeout)

	return &App{
		Config:      cfg,
		DB:          sqlDB,
		Redis:       redisClient,
		CatalogRepo: repo,
		Writer:      writer,
		LLM:         client,
		RecsService: svc,
		RecsHandler: recs.NewHandler(svc),
	}, nil
}

func buildDB(ctx context.Context, cfg config.Config) *sql.DB {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		telemetry.Info("bootstrap.catalog_memory", nil)
		return nil
	}
	conn, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		telemetry.Warn("bootstrap.db_unavailable", map[string]any{"error": err.Error()})
		return nil
	}
	if err := db.RunMigrations(ctx, conn); err != nil {
		telemetry.Warn("bootstrap.migrations_failed", map[string]any{"error": err.Error()})
		conn.Close()
		return nil
	}
	return conn
}

func buildRedis(ctx context.Context, cfg config.Config) *redis.Client {
	if strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		telemetry.Warn("bootstrap.redis_unavailable", map[string]any{"error": err.Error()})
		client.Close()
		return nil
	}
	return client
}

func buildLLM(cfg config.Config) llm.Client {
	if strings.TrimSpace(cfg.LLMAPIKey) == "" {
		telemetry.Info("bootstrap.llm_disabled", nil)
		return llm.PlaceholderClient{}
	}
	client, err := groq.NewClient(cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMBaseURL, cfg.LLMTimeout)
	if err != nil {
		telemetry.Warn("bootstrap.llm_misconfigured", map[string]any{"error": err.Error()})
		return llm.PlaceholderClient{}
	}
	return client
}

package app

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"
	"github.com/openai/openai-go/v3"

	"quote-api/internal/cache"
	"quote-api/internal/config"
	"quote-api/internal/events"
	"quote-api/internal/inference"
	"quote-api/internal/logger"
	"quote-api/internal/retry"
	"quote-api/internal/store"
)

// Deps bundles common runtime dependencies for the service.
type Deps struct {
	Config    config.Config
	Log       *slog.Logger
	Store     store.Store
	Cache     cache.Cache
	Events    events.Publisher
	Inference inference.Client
}

// Build loads env, config, and shared components.
func Build() (Deps, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Deps{}, fmt.Errorf("failed to load environment variables: %w", err)
	}
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	st, err := buildStore(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize store: %w", err)
	}
	client, err := buildInference(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize inference client: %w", err)
	}
	c, err := buildCache(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize cache: %w", err)
	}
	pub, err := buildEvents(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize events publisher: %w", err)
	}
	return Deps{
		Config:    cfg,
		Log:       log,
		Store:     st,
		Cache:     c,
		Events:    pub,
		Inference: client,
	}, nil
}

func buildStore(cfg config.Config, log *slog.Logger) (store.Store, error) {
	switch cfg.StoreProvider {
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required when STORE_PROVIDER=postgres")
		}
		// The database may still be starting; retry the initial connection.
		const attempts = 5
		var (
			db  *store.PostgresStore
			err error
		)
		for attempt := 0; attempt < attempts; attempt++ {
			db, err = store.NewPostgres(cfg.DatabaseURL)
			if err == nil {
				break
			}
			if attempt < attempts-1 {
				delay := retry.ExponentialBackoff(attempt, 500*time.Millisecond)
				log.Warn("postgres not ready, retrying", "err", err, "delay", delay)
				time.Sleep(delay)
			}
		}
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Postgres: %w", err)
		}
		log.Info("using Postgres store")
		return db, nil
	default:
		return nil, fmt.Errorf("invalid STORE_PROVIDER: %s (valid option: postgres)", cfg.StoreProvider)
	}
}

func buildInference(cfg config.Config, log *slog.Logger) (inference.Client, error) {
	switch cfg.InferenceProvider {
	case "llamacpp":
		client, err := inference.NewLlamaClient(cfg.LlamaCppURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize llama.cpp client: %w", err)
		}
		log.Info("using llama.cpp inference client", "url", cfg.LlamaCppURL)
		return client, nil
	case "openai":
		client, err := inference.NewOpenAIClient(cfg.InferenceAPIKey, cfg.LlamaCppURL, openai.ChatModel(cfg.LLMModel))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize OpenAI client: %w", err)
		}
		log.Info("using OpenAI-compatible inference client", "model", cfg.LLMModel)
		return client, nil
	default:
		return nil, fmt.Errorf("invalid INFERENCE_PROVIDER: %s (valid options: llamacpp, openai)", cfg.InferenceProvider)
	}
}

func buildCache(cfg config.Config, log *slog.Logger) (cache.Cache, error) {
	switch cfg.CacheProvider {
	case "redis":
		c, err := cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Warn("redis unavailable, falling back to no-op cache", "err", err)
			return cache.NewNoOpCache(), nil
		}
		log.Info("using Redis cache", "addr", cfg.RedisAddr)
		return c, nil
	case "none":
		return cache.NewNoOpCache(), nil
	default:
		return nil, fmt.Errorf("invalid CACHE_PROVIDER: %s (valid options: redis, none)", cfg.CacheProvider)
	}
}

func buildEvents(cfg config.Config, log *slog.Logger) (events.Publisher, error) {
	switch cfg.EventsProvider {
	case "nats":
		if cfg.NatsURL == "" {
			return nil, fmt.Errorf("NATS_URL is required when EVENTS_PROVIDER=nats")
		}
		nc, err := nats.Connect(cfg.NatsURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to NATS: %w", err)
		}
		log.Info("publishing quote events to NATS")
		return events.NewNATS(log, nc), nil
	case "none":
		return events.NewNoOpPublisher(), nil
	default:
		return nil, fmt.Errorf("invalid EVENTS_PROVIDER: %s (valid options: nats, none)", cfg.EventsProvider)
	}
}

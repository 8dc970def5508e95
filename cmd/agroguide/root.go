package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/agroguide/agroguide/internal/config"
	"github.com/agroguide/agroguide/internal/db/redis"
	"github.com/agroguide/agroguide/internal/domain"
	logpkg "github.com/agroguide/agroguide/internal/logger"
	"github.com/agroguide/agroguide/internal/metrics"
	"github.com/agroguide/agroguide/internal/repository/embcache"
	openaiTransport "github.com/agroguide/agroguide/internal/transport/openai"
	"github.com/agroguide/agroguide/internal/usecase/answer"
	"github.com/agroguide/agroguide/internal/usecase/retrieve"
	"github.com/agroguide/agroguide/internal/version"
)

var rootCmd = &cobra.Command{
	Use:          "agroguide",
	Short:        "Crop advisory over an indexed agronomy corpus",
	SilenceUsage: true, // don't print usage on operational errors
	Version:      fmt.Sprintf("%s (commit %s, built %s)", version.Version, version.Commit, version.Date),
	Long: `AgroGuide ingests plain-text crop guides, indexes them with embedding
vectors, and answers farming questions grounded in that corpus.`,
}

// app is the shared composition root for all subcommands.
type app struct {
	cfg    config.Config
	logger *zap.Logger
	close  []func()
}

func newApp() (*app, error) {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	// Register capability metrics explicitly (no init()).
	metrics.Register()

	logger.Debug("Configuration loaded",
		zap.String("env", env),
		zap.String("index_dir", cfg.Index.Dir),
		zap.String("embedding_model", cfg.Embedding.Model),
		zap.Bool("generation_enabled", cfg.Generation.Enabled),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
	)

	a := &app{cfg: cfg, logger: logger}
	a.close = append(a.close, func() { _ = logger.Sync() })
	return a, nil
}

func (a *app) shutdown() {
	for i := len(a.close) - 1; i >= 0; i-- {
		a.close[i]()
	}
}

// embedder assembles the decorator chain: OpenAI base, then the Redis cache
// when enabled. The cache is outermost so hits skip the provider entirely.
func (a *app) embedder(ctx context.Context) (domain.Embedder, error) {
	base := openaiTransport.NewEmbedder(&openaiTransport.EmbedderConfig{
		APIKey:     a.cfg.Embedding.APIKey,
		BaseURL:    a.cfg.Embedding.BaseURL,
		Model:      a.cfg.Embedding.Model,
		Dimensions: a.cfg.Embedding.Dimensions,
		Logger:     a.logger,
	})
	if !a.cfg.Cache.Enabled {
		return base, nil
	}

	store, err := redis.NewStore(redis.Config{
		Addrs:    a.cfg.Cache.Addrs,
		Password: a.cfg.Cache.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("connect embedding cache: %w", err)
	}
	if err := store.Ping(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("embedding cache not ready: %w", err)
	}
	a.close = append(a.close, store.Close)

	ttl := time.Duration(a.cfg.Cache.TTLHours) * time.Hour
	return embcache.New(base, store, ttl, metrics.EmbeddingCacheTotal, a.logger), nil
}

// assistant opens the index and wires the full answering pipeline.
func (a *app) assistant(ctx context.Context) (*answer.Service, error) {
	emb, err := a.embedder(ctx)
	if err != nil {
		return nil, err
	}

	retriever, err := retrieve.Open(a.cfg.Index.Dir, emb, a.logger)
	if err != nil {
		return nil, err
	}

	var gen answer.Generator
	if a.cfg.Generation.Enabled {
		gen = openaiTransport.NewGenerator(&openaiTransport.GeneratorConfig{
			APIKey:      a.cfg.Generation.APIKey,
			BaseURL:     a.cfg.Generation.BaseURL,
			Model:       a.cfg.Generation.Model,
			Temperature: a.cfg.Generation.Temperature,
			MaxTokens:   a.cfg.Generation.MaxTokens,
			Logger:      a.logger,
		})
	}

	genTimeout := time.Duration(a.cfg.Generation.TimeoutSec) * time.Second
	return answer.New(retriever, gen, genTimeout, a.logger), nil
}

// Package shared wires the application's composition root: from a loaded
// config, bring up telemetry, register the identifier schema, build the
// external service clients and the credibility-cache they share, and
// assemble the batch coordinator and HTTP handler on top of them. The
// serve command builds its running pipeline here; the doctor command
// checks the same Config separately, without building a pipeline.
package shared

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/coinform/credserve/internal/api/handler"
	"github.com/coinform/credserve/internal/cache"
	"github.com/coinform/credserve/internal/config"
	"github.com/coinform/credserve/internal/engine"
	"github.com/coinform/credserve/internal/registry"
	"github.com/coinform/credserve/internal/svcclient"
	"github.com/coinform/credserve/pkg/logger"
	"github.com/coinform/credserve/pkg/telemetry"
)

// Pipeline bundles every long-lived component the composition root builds,
// so a caller (the serve command, or a test) can reach any layer without
// reconstructing it.
type Pipeline struct {
	Cfg         *config.Config
	Cache       cache.Cache
	Janitor     *cache.Janitor
	Registry    *registry.Registry
	Coordinator *engine.Coordinator
	Handler     *handler.Handler
	Telemetry   *telemetry.Telemetry
}

// Init builds a Pipeline from a loaded, validated Config: type registry,
// telemetry, cache, service clients, coordinator, and HTTP handler, in that
// order. The caller owns Shutdown of the returned Pipeline, which also shuts
// down its Telemetry.
func Init(ctx context.Context, cfg *config.Config) (*Pipeline, error) {
	reg := registry.New()
	if err := registry.RegisterDefaults(reg); err != nil {
		return nil, fmt.Errorf("shared: registering default types: %w", err)
	}

	telem, err := telemetry.New(cfg.Telemetry)
	if err != nil {
		return nil, fmt.Errorf("shared: initializing telemetry: %w", err)
	}

	c, err := cache.New(ctx, cache.Options{
		RedisAddr:     cfg.Cache.RedisAddr,
		RedisPassword: cfg.Cache.RedisPassword,
		RedisDB:       cfg.Cache.RedisDB,
		SQLitePath:    cfg.Cache.SQLitePath,
	})
	if err != nil {
		return nil, fmt.Errorf("shared: initializing cache: %w", err)
	}

	var janitor *cache.Janitor
	if sqliteCache, ok := c.(*cache.SQLiteCache); ok {
		janitor = cache.NewJanitor(sqliteCache)
		if err := janitor.Start(); err != nil {
			return nil, fmt.Errorf("shared: starting cache janitor: %w", err)
		}
	}

	var simAuth *svcclient.BasicAuth
	if cfg.Services.ClaimSearchAuth.Enabled() {
		simAuth = &svcclient.BasicAuth{
			User:     cfg.Services.ClaimSearchAuth.User,
			Password: cfg.Services.ClaimSearchAuth.Password,
		}
	}
	simClient := svcclient.NewSimilarityClient(cfg.Services.ClaimSearchURL, simAuth)

	var worthClient *svcclient.WorthinessClient
	if cfg.Services.WorthinessURL != "" {
		worthClient = svcclient.NewWorthinessClient(cfg.Services.WorthinessURL)
	} else {
		logger.Warn("shared: no worthiness_url configured, check-worthiness pre-filter disabled")
	}

	var webClient *svcclient.WebsiteCredibilityClient
	if cfg.Services.MisinfoMeURL != "" {
		webClient = svcclient.NewWebsiteCredibilityClient(cfg.Services.MisinfoMeURL, c)
	} else {
		logger.Warn("shared: no misinfome_url configured, website credibility falls back to a neutral default")
	}

	engineCfg := engine.ConfigFromPipeline(cfg.Pipeline, cfg.Services.ClaimSearchURL)
	coord := engine.NewCoordinator(engineCfg, simClient, worthClient, webClient)

	h := handler.New(coord, reg)

	logger.Info("shared: pipeline initialized",
		zap.String("claim_search_url", cfg.Services.ClaimSearchURL),
		zap.Bool("worthiness_enabled", worthClient != nil && cfg.Pipeline.WorthinessReviewEnabled),
		zap.Bool("website_credibility_enabled", webClient != nil),
		zap.Int("registered_types", reg.Count()),
	)

	return &Pipeline{
		Cfg:         cfg,
		Cache:       c,
		Janitor:     janitor,
		Registry:    reg,
		Coordinator: coord,
		Handler:     h,
		Telemetry:   telem,
	}, nil
}

// Shutdown releases the pipeline's long-lived resources: the cache
// janitor, the credibility cache connection, and the telemetry exporters.
func (p *Pipeline) Shutdown(ctx context.Context) error {
	var errs []error
	if p.Janitor != nil {
		p.Janitor.Stop()
	}
	if err := p.Cache.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing cache: %w", err))
	}
	if p.Telemetry != nil {
		if err := p.Telemetry.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutting down telemetry: %w", err))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("shared: shutdown: %v", errs)
}

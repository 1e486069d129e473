package app

import (
	"fmt"

	"github.com/abdulachik/ghtrending/internal/config"
	"github.com/abdulachik/ghtrending/internal/metrics"
	"github.com/abdulachik/ghtrending/internal/trending"
	"github.com/abdulachik/ghtrending/internal/web"
)

// App is the main application container holding all dependencies.
type App struct {
	Config    *config.Config
	Fetcher   *trending.HTTPFetcher
	Extractor *trending.Extractor
	Service   *trending.Service
}

// New creates a new application instance with all dependencies wired up.
func New(cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	fetcher := trending.NewHTTPFetcher(trending.FetcherConfig{
		BaseURL: cfg.BaseURL,
	})

	// Entry links share the fetch origin so mirrors stay self-consistent.
	extractor := trending.NewExtractor(trending.ExtractorConfig{
		Origin: fetcher.BaseURL(),
	})

	service := trending.NewService(trending.ServiceConfig{
		Fetcher:   fetcher,
		Extractor: extractor,
		Observer:  metrics.NewRecorder(),
	})

	return &App{
		Config:    cfg,
		Fetcher:   fetcher,
		Extractor: extractor,
		Service:   service,
	}, nil
}

// Server builds the web server on top of the trending service.
func (a *App) Server() *web.Server {
	return web.New(web.Config{
		Service:            a.Service,
		CORSAllowedOrigins: a.Config.CORSAllowedOrigins,
	})
}

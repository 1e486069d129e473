package trending

import (
	"context"
	"log/slog"
	"time"
)

// Observation summarises one GetTrendingData call.
type Observation struct {
	Since    TimeRange
	Outcome  Failure
	Duration time.Duration
	Kept     int
	Rejected int
}

// Observer receives an Observation after every call.
type Observer interface {
	Observe(Observation)
}

// Service runs fetch then extraction and returns a uniform envelope.
type Service struct {
	fetcher   Fetcher
	extractor *Extractor
	observer  Observer
}

// ServiceConfig holds service configuration.
type ServiceConfig struct {
	Fetcher   Fetcher
	Extractor *Extractor
	Observer  Observer
}

// NewService creates a new service. A nil extractor means the defaults.
func NewService(cfg ServiceConfig) *Service {
	extractor := cfg.Extractor
	if extractor == nil {
		extractor = NewExtractor(ExtractorConfig{})
	}

	return &Service{
		fetcher:   cfg.Fetcher,
		extractor: extractor,
		observer:  cfg.Observer,
	}
}

// GetTrendingData fetches and extracts one page. Failures are reported in
// the returned envelope, never as a panic or error return.
//
// Every block being rejected still produces a successful, empty envelope.
func (s *Service) GetTrendingData(ctx context.Context, since TimeRange) Result {
	start := time.Now()
	obs := Observation{Since: since}
	defer func() {
		obs.Duration = time.Since(start)
		if s.observer != nil {
			s.observer.Observe(obs)
		}
	}()

	markup, err := s.fetcher.Fetch(ctx, since)
	if err != nil {
		slog.Warn("trending fetch failed", "since", since, "error", err)
		obs.Outcome = FailureTransport
		return Failed(FailureTransport, FetchFailedMessage, err)
	}

	candidates, err := s.extractor.ExtractAll(markup)
	if err != nil {
		slog.Warn("no trending entries found", "since", since, "error", err)
		obs.Outcome = FailureStructuralDrift
		return Failed(FailureStructuralDrift, NoEntriesMessage, err)
	}

	entries := make([]*Entry, 0, len(candidates))
	for _, entry := range candidates {
		if entry == nil {
			obs.Rejected++
			continue
		}
		entries = append(entries, entry)
	}
	obs.Kept = len(entries)

	if obs.Rejected > 0 {
		slog.Debug("rejected entry blocks", "since", since, "rejected", obs.Rejected)
	}
	slog.Debug("extracted trending entries", "since", since, "count", len(entries))

	return Succeeded(entries)
}

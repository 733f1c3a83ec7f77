package engine

import (
	"context"
	"fmt"

	"github.com/use-agent/gassafe/models"
)

// Mode names accepted by New.
const (
	ModeLive     = "live"
	ModeDegraded = "degraded"
)

// Strategy is the interface that every scrape strategy must implement.
// Both strategies return the same ScrapeResult shape.
type Strategy interface {
	// Name returns the strategy identifier ("live" or "degraded").
	Name() string

	// Scrape looks up the query. A non-nil error is an infrastructure
	// failure; pipeline failures are reported inside the result.
	Scrape(ctx context.Context, query *models.SearchQuery) (*models.ScrapeResult, error)
}

// New selects the strategy for mode. live may be nil when mode is degraded.
func New(mode string, live LiveFetchFunc) (Strategy, error) {
	switch mode {
	case ModeLive:
		if live == nil {
			return nil, fmt.Errorf("live mode requires a fetch function")
		}
		return NewLiveEngine(live), nil
	case ModeDegraded:
		return NewDegradedEngine(), nil
	default:
		return nil, fmt.Errorf("unknown scrape mode %q (want %q or %q)", mode, ModeLive, ModeDegraded)
	}
}

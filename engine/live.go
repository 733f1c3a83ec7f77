package engine

import (
	"context"
	"fmt"

	"github.com/use-agent/gassafe/models"
)

// LiveFetchFunc is the callback that runs a real browser scrape.
// It is injected from main.go so engine/ never imports scraper/.
type LiveFetchFunc func(ctx context.Context, query *models.SearchQuery) (*models.ScrapeResult, error)

// LiveEngine drives the register through a headless browser.
type LiveEngine struct {
	fetchFunc LiveFetchFunc
}

// NewLiveEngine creates a LiveEngine around fetchFunc.
func NewLiveEngine(fetchFunc LiveFetchFunc) *LiveEngine {
	return &LiveEngine{fetchFunc: fetchFunc}
}

func (e *LiveEngine) Name() string { return ModeLive }

func (e *LiveEngine) Scrape(ctx context.Context, query *models.SearchQuery) (*models.ScrapeResult, error) {
	if e.fetchFunc == nil {
		return nil, fmt.Errorf("%s: fetchFunc not configured", ModeLive)
	}
	return e.fetchFunc(ctx, query)
}

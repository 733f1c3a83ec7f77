package scraper

import (
	"context"
	"errors"
	"log/slog"

	"github.com/use-agent/gassafe/config"
	"github.com/use-agent/gassafe/models"
)

// Selectors describes the register's search form and result containers.
type Selectors struct {
	SearchInput  string
	SearchButton string
	Results      string
	NoResults    string
}

// DefaultSelectors matches the find-an-engineer page.
func DefaultSelectors() Selectors {
	return Selectors{
		SearchInput:  "#txtSearch",
		SearchButton: "#btnSearch",
		Results:      ".search-results",
		NoResults:    ".no-results",
	}
}

// NoResultsMessage accompanies an empty, successful result.
const NoResultsMessage = "No results found"

// Searcher drives the search form on an already acquired page.
type Searcher struct {
	cfg       config.ScraperConfig
	selectors Selectors
}

// NewSearcher creates a Searcher for the configured target page.
func NewSearcher(cfg config.ScraperConfig, selectors Selectors) *Searcher {
	return &Searcher{cfg: cfg, selectors: selectors}
}

// Search runs one lookup for term on page.
//
// Steps, each bounded by its own deadline and never retried:
//
//  1. Navigate          – target URL, NavigationTimeout on deadline
//  2. Fill + submit     – search input and button, SelectorTimeout on deadline
//  3. Terminal race     – results vs no-results, SelectorTimeout on deadline
//  4. Extract           – only when results are present
//
// Failures are returned as *models.ScrapeError; no-results is a success.
func (s *Searcher) Search(ctx context.Context, page Page, term string) (*models.ScrapeResult, error) {
	// ── 1. Navigate ───────────────────────────────────────────────────
	slog.Debug("scrape state", "state", "navigating", "url", s.cfg.TargetURL)
	navCtx, cancel := context.WithTimeout(ctx, s.cfg.NavigationTimeout)
	err := page.Navigate(navCtx, s.cfg.TargetURL)
	cancel()
	if err != nil {
		return nil, categorizeError(err, models.ErrCodeNavigationTimeout, models.ErrCodeNavigation,
			"navigation to the register failed")
	}

	// ── 2. Fill + submit ──────────────────────────────────────────────
	formCtx, cancel := context.WithTimeout(ctx, s.cfg.InputTimeout)
	err = page.Input(formCtx, s.selectors.SearchInput, term)
	if err == nil {
		err = page.Click(formCtx, s.selectors.SearchButton)
	}
	cancel()
	if err != nil {
		return nil, categorizeError(err, models.ErrCodeSelectorTimeout, models.ErrCodeExtraction,
			"search form not available")
	}
	slog.Debug("scrape state", "state", "search_submitted")

	// ── 3. Terminal race ──────────────────────────────────────────────
	waitCtx, cancel := context.WithTimeout(ctx, s.cfg.ResultTimeout)
	matched, err := page.WaitFirst(waitCtx, s.selectors.NoResults, s.selectors.Results)
	cancel()
	if err != nil {
		return nil, categorizeError(err, models.ErrCodeSelectorTimeout, models.ErrCodeExtraction,
			"timed out waiting for search results")
	}

	if matched == s.selectors.NoResults {
		slog.Debug("scrape state", "state", "no_results")
		res := models.NewScrapeResult(nil)
		res.Message = NoResultsMessage
		return res, nil
	}

	// ── 4. Extract ────────────────────────────────────────────────────
	htmlCtx, cancel := context.WithTimeout(ctx, s.cfg.ResultTimeout)
	rawHTML, err := page.HTML(htmlCtx)
	cancel()
	if err != nil {
		return nil, categorizeError(err, models.ErrCodeSelectorTimeout, models.ErrCodeExtraction,
			"failed to read results page")
	}

	records, err := ExtractHTML(rawHTML)
	if err != nil {
		return nil, err
	}
	slog.Debug("scrape state", "state", "results_extracted", "count", len(records))
	return models.NewScrapeResult(records), nil
}

// categorizeError wraps raw errors into typed ScrapeErrors: a deadline maps to
// timeoutCode, anything else to failCode.
func categorizeError(err error, timeoutCode, failCode, msg string) *models.ScrapeError {
	var se *models.ScrapeError
	if errors.As(err, &se) {
		return se
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return models.NewScrapeError(timeoutCode, msg, err)
	}
	return models.NewScrapeError(failCode, msg, err)
}

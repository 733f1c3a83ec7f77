package scraper

import (
	"context"
	"errors"
	"log/slog"

	"github.com/use-agent/gassafe/models"
)

// Scraper runs register lookups, one browser session per call.
// It is safe for concurrent use.
type Scraper struct {
	sessions *SessionManager
	searcher *Searcher
}

// NewScraper wires a session pool to a searcher.
func NewScraper(sessions *SessionManager, searcher *Searcher) *Scraper {
	return &Scraper{sessions: sessions, searcher: searcher}
}

// Stats returns a snapshot of the session pool.
func (s *Scraper) Stats() models.PoolStats {
	return s.sessions.Stats()
}

// Scrape looks up the query's effective term on the register.
//
// Pipeline failures (timeouts, navigation, unexpected markup) come back as a
// ScrapeResult with Success=false and a nil error. A non-nil error means the
// infrastructure failed: the pool was exhausted or the browser did not start.
//
// Queueing for a session honours ctx cancellation. Once a session is held the
// search runs detached from ctx and is bounded only by its own deadlines.
func (s *Scraper) Scrape(ctx context.Context, query *models.SearchQuery) (*models.ScrapeResult, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	term := query.EffectiveTerm()

	// ── 1. Acquire session ────────────────────────────────────────────
	sess, err := s.sessions.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	// ── 2. CRITICAL DEFER: release on every path ─────────────────────
	defer func() {
		if closeErr := sess.Close(); closeErr != nil {
			slog.Warn("cleanup: browser session close failed", "error", closeErr)
		}
		slog.Debug("scrape state", "state", "session_released")
	}()
	slog.Debug("scrape state", "state", "session_acquired", "term", term)

	// ── 3. Search ─────────────────────────────────────────────────────
	result, err := s.searcher.Search(context.WithoutCancel(ctx), sess.Page(), term)
	if err != nil {
		if !models.IsScrapeFailure(err) {
			return nil, err
		}
		slog.Warn("scrape failed", "term", term, "code", models.ErrorCode(err), "error", err)
		return models.FailedScrapeResult(failureMessage(err)), nil
	}

	return result, nil
}

// failureMessage is the client-facing text for a pipeline failure.
func failureMessage(err error) string {
	var se *models.ScrapeError
	if errors.As(err, &se) {
		return se.Message
	}
	return err.Error()
}

package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/gassafe/engine"
	"github.com/use-agent/gassafe/metrics"
	"github.com/use-agent/gassafe/models"
)

// Scrape returns a handler for POST /api/gas-safe-scrape.
//
// Orchestration flow:
//  1. Parse & validate the query; reject before touching any strategy.
//  2. Strategy.Scrape → ScrapeResult.
//  3. Respond 200 whether or not the result reports success; only
//     infrastructure errors become HTTP errors.
func Scrape(strategy engine.Strategy) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		// ── 1. Parse request ────────────────────────────────────────
		var query models.SearchQuery
		if err := c.ShouldBindJSON(&query); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Success: false,
				Error:   "invalid JSON body: " + err.Error(),
				Code:    models.ErrCodeInvalidInput,
			})
			return
		}
		if err := query.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Success: false,
				Error:   models.MissingTermMessage,
				Code:    models.ErrCodeInvalidInput,
			})
			return
		}

		// ── 2. Scrape ───────────────────────────────────────────────
		slog.Info("scrape requested",
			"request_id", c.GetString("request_id"),
			"strategy", strategy.Name(),
			"term", query.EffectiveTerm(),
		)
		result, err := strategy.Scrape(c.Request.Context(), &query)
		elapsed := time.Since(start).Seconds()

		if err != nil {
			metrics.RecordScrape(strategy.Name(), metrics.OutcomeError, elapsed)
			_ = c.Error(err)
			respondError(c, err)
			return
		}

		// ── 3. Respond ──────────────────────────────────────────────
		metrics.RecordScrape(strategy.Name(), outcome(result), elapsed)
		c.JSON(http.StatusOK, result)
	}
}

func outcome(r *models.ScrapeResult) string {
	switch {
	case !r.Success:
		return metrics.OutcomeFailed
	case r.Count == 0:
		return metrics.OutcomeNoResults
	default:
		return metrics.OutcomeResults
	}
}

// respondError maps an infrastructure error to its HTTP status and writes a
// structured JSON error response. The message is the error's public text;
// wrapped causes are logged, never returned.
func respondError(c *gin.Context, err error) {
	var scrapeErr *models.ScrapeError
	if !errors.As(err, &scrapeErr) {
		scrapeErr = models.NewScrapeError(models.ErrCodeInternal, "unexpected error", err)
	}

	slog.Error("scrape failed",
		"request_id", c.GetString("request_id"),
		"code", scrapeErr.Code,
		"error", err,
	)

	status := mapErrorToStatus(scrapeErr)
	body := models.ErrorResponse{
		Success: false,
		Error:   scrapeErr.Message,
		Code:    scrapeErr.Code,
	}
	if status == http.StatusInternalServerError {
		body.Error = "Internal server error"
		body.Message = scrapeErr.Message
	}
	c.JSON(status, body)
}

// mapErrorToStatus translates error codes to HTTP status codes.
func mapErrorToStatus(e *models.ScrapeError) int {
	switch e.Code {
	case models.ErrCodeInvalidInput:
		return http.StatusBadRequest // 400
	case models.ErrCodeUnauthorized:
		return http.StatusUnauthorized // 401
	case models.ErrCodeRateLimited:
		return http.StatusTooManyRequests // 429
	case models.ErrCodeBrowserBusy:
		return http.StatusServiceUnavailable // 503
	default:
		return http.StatusInternalServerError // 500
	}
}

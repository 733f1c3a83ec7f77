package scraper

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/use-agent/gassafe/config"
	"github.com/ysmood/gson"
)

// Page is the slice of browser behaviour the search flow needs. Every call
// is bounded by ctx; a deadline surfaces as context.DeadlineExceeded.
type Page interface {
	// Navigate loads url and waits for the load event.
	Navigate(ctx context.Context, url string) error

	// Input waits for selector to appear and types text into it.
	Input(ctx context.Context, selector, text string) error

	// Click waits for selector to appear and clicks it.
	Click(ctx context.Context, selector string) error

	// WaitFirst blocks until one of selectors matches and returns it. When
	// several match, the earliest in selectors wins.
	WaitFirst(ctx context.Context, selectors ...string) (string, error)

	// HTML returns the rendered document.
	HTML(ctx context.Context) (string, error)
}

// extraHeaders are sent with every request a session makes.
var extraHeaders = map[string]string{
	"Accept-Language": "en-GB,en;q=0.9",
}

// preparePage applies per-session page settings. All of it must happen
// before the first navigation:
//
//  1. Viewport and user agent
//  2. Extra headers               – Accept-Language
//  3. Stealth injection           – mask navigator.webdriver etc.
//  4. Hijack mount                – block images/fonts/media
//
// The returned router (possibly nil) must be stopped on session close.
func preparePage(page *rod.Page, browserCfg config.BrowserConfig, scraperCfg config.ScraperConfig) *rod.HijackRouter {
	// ── 1. Viewport + UA ──────────────────────────────────────────────
	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             1280,
		Height:            720,
		DeviceScaleFactor: 1,
	}); err != nil {
		slog.Warn("failed to set viewport", "error", err)
	}
	if scraperCfg.UserAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
			UserAgent: scraperCfg.UserAgent,
		}); err != nil {
			slog.Warn("failed to set user agent", "error", err)
		}
	}

	// ── 2. Extra headers ──────────────────────────────────────────────
	_ = proto.NetworkSetExtraHTTPHeaders{
		Headers: toHeadersMap(extraHeaders),
	}.Call(page)

	// ── 3. Stealth injection ──────────────────────────────────────────
	if browserCfg.Stealth {
		if _, err := page.EvalOnNewDocument(stealth.JS); err != nil {
			slog.Warn("stealth injection failed, proceeding without stealth",
				"error", err,
			)
		}
	}

	// ── 4. Resource blocking ──────────────────────────────────────────
	return setupHijack(page, browserCfg.BlockedResourceTypes)
}

// rodPage adapts a rod tab to Page.
type rodPage struct {
	page *rod.Page
}

func (p *rodPage) Navigate(ctx context.Context, url string) error {
	pg := p.page.Context(ctx)
	if err := pg.Navigate(url); err != nil {
		return err
	}
	return pg.WaitLoad()
}

func (p *rodPage) Input(ctx context.Context, selector, text string) error {
	el, err := p.page.Context(ctx).Element(selector)
	if err != nil {
		return fmt.Errorf("element %q not found: %w", selector, err)
	}
	return el.Input(text)
}

func (p *rodPage) Click(ctx context.Context, selector string) error {
	el, err := p.page.Context(ctx).Element(selector)
	if err != nil {
		return fmt.Errorf("element %q not found: %w", selector, err)
	}
	return el.Click(proto.InputMouseButtonLeft, 1)
}

func (p *rodPage) WaitFirst(ctx context.Context, selectors ...string) (string, error) {
	var matched string
	race := p.page.Context(ctx).Race()
	for _, sel := range selectors {
		race = race.Element(sel).Handle(func(*rod.Element) error {
			matched = sel
			return nil
		})
	}
	if _, err := race.Do(); err != nil {
		return "", err
	}
	return matched, nil
}

func (p *rodPage) HTML(ctx context.Context) (string, error) {
	return p.page.Context(ctx).HTML()
}

// toHeadersMap converts a plain string map to the proto.NetworkHeaders type
// (map[string]gson.JSON) required by NetworkSetExtraHTTPHeaders.
func toHeadersMap(headers map[string]string) proto.NetworkHeaders {
	m := make(proto.NetworkHeaders, len(headers))
	for k, v := range headers {
		m[k] = gson.New(v)
	}
	return m
}

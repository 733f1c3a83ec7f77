package scraper

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/use-agent/gassafe/config"
	"github.com/use-agent/gassafe/models"
)

// containerFlags are the Chromium switches needed to run inside a memory
// constrained container without a setuid sandbox or a usable /dev/shm.
var containerFlags = []flags.Flag{
	"disable-setuid-sandbox",
	"disable-gpu",
	"disable-dev-shm-usage",
	"disable-accelerated-2d-canvas",
	"single-process",
	"no-zygote",
	"no-first-run",
	"disable-extensions",
	"disable-background-timer-throttling",
	"disable-renderer-backgrounding",
}

// BrowserAvailable reports whether a browser binary can be found without
// downloading one: either the configured override or one on the system.
func BrowserAvailable(cfg config.BrowserConfig) bool {
	if cfg.BrowserBin != "" {
		return true
	}
	_, has := launcher.LookPath()
	return has
}

// NewRodSessionFactory returns a SessionFactory that launches a dedicated
// Chromium process per session and opens a single configured tab in it.
func NewRodSessionFactory(browserCfg config.BrowserConfig, scraperCfg config.ScraperConfig) SessionFactory {
	return func(ctx context.Context) (Session, error) {
		return launchRodSession(ctx, browserCfg, scraperCfg)
	}
}

// rodSession owns one browser process and the launcher that started it.
type rodSession struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
	router   *rod.HijackRouter
	once     sync.Once
	err      error
}

func launchRodSession(ctx context.Context, browserCfg config.BrowserConfig, scraperCfg config.ScraperConfig) (Session, error) {
	l := launcher.New().
		Headless(browserCfg.Headless).
		NoSandbox(true)

	if browserCfg.BrowserBin != "" {
		l = l.Bin(browserCfg.BrowserBin)
	}
	for _, f := range containerFlags {
		l.Set(f)
	}
	l.Set(flags.Flag("disable-blink-features"), "AutomationControlled")
	l.Delete(flags.Flag("enable-automation"))

	controlURL, err := l.Launch()
	if err != nil {
		abandonLaunch(l)
		return nil, models.NewScrapeError(models.ErrCodeLaunchFailed, "failed to launch browser", err)
	}

	s := &rodSession{launcher: l}

	// The browser's event hub lives as long as the context it connects
	// with, so it must not end with the request.
	browser := rod.New().ControlURL(controlURL).Context(context.WithoutCancel(ctx))
	if err := browser.Connect(); err != nil {
		_ = s.Close()
		return nil, models.NewScrapeError(models.ErrCodeLaunchFailed, "failed to connect to browser", err)
	}
	s.browser = browser

	page, err := s.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = s.Close()
		return nil, models.NewScrapeError(models.ErrCodeLaunchFailed, "failed to open browser tab", err)
	}
	s.page = page
	s.router = preparePage(page, browserCfg, scraperCfg)

	slog.Debug("browser session launched", "controlURL", controlURL, "pid", l.PID())
	return s, nil
}

// abandonLaunch removes what a failed Launch left behind. Cleanup blocks
// until the process exits, so it only runs once a process was started.
func abandonLaunch(l *launcher.Launcher) {
	if l.PID() == 0 {
		_ = os.RemoveAll(l.Get(flags.UserDataDir))
		return
	}
	l.Kill()
	l.Cleanup()
}

func (s *rodSession) Page() Page {
	return &rodPage{page: s.page}
}

// Close stops request interception, closes the browser over CDP and then
// kills the process and removes its profile directory. Each step runs even
// if an earlier one failed.
func (s *rodSession) Close() error {
	s.once.Do(func() {
		if s.router != nil {
			if err := s.router.Stop(); err != nil {
				slog.Debug("cleanup: hijack router stop failed", "error", err)
			}
		}
		if s.browser != nil {
			if err := s.browser.Close(); err != nil {
				slog.Warn("cleanup: browser close failed, killing process", "error", err)
				s.err = err
			}
		}
		s.launcher.Kill()
		s.launcher.Cleanup()
	})
	return s.err
}

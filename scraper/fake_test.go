package scraper

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/use-agent/gassafe/config"
)

// fakePage scripts the outcome of each Page call.
type fakePage struct {
	navErr   error
	inputErr error
	clickErr error
	matched  string
	waitErr  error
	block    bool     // WaitFirst blocks until ctx is done
	present  []string // when set, WaitFirst matches the first of its selectors listed here
	html     string

	mu    sync.Mutex
	typed string
	steps []string
}

func (p *fakePage) record(step string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.steps = append(p.steps, step)
}

func (p *fakePage) Navigate(ctx context.Context, url string) error {
	p.record("navigate")
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.navErr
}

func (p *fakePage) Input(ctx context.Context, selector, text string) error {
	p.record("input")
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	p.typed = text
	p.mu.Unlock()
	return p.inputErr
}

func (p *fakePage) Click(ctx context.Context, selector string) error {
	p.record("click")
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.clickErr
}

func (p *fakePage) WaitFirst(ctx context.Context, selectors ...string) (string, error) {
	p.record("wait")
	if p.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if p.present != nil {
		for _, sel := range selectors {
			for _, have := range p.present {
				if sel == have {
					return sel, nil
				}
			}
		}
		return "", context.DeadlineExceeded
	}
	return p.matched, p.waitErr
}

func (p *fakePage) HTML(ctx context.Context) (string, error) {
	p.record("html")
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return p.html, nil
}

// fakeSession counts Close calls on the underlying browser.
type fakeSession struct {
	page   *fakePage
	closes atomic.Int32
}

func (s *fakeSession) Page() Page { return s.page }

func (s *fakeSession) Close() error {
	s.closes.Add(1)
	return nil
}

// fakeFactory hands out sessions over the same page and counts launches.
type fakeFactory struct {
	page      *fakePage
	launchErr error
	onLaunch  func() // runs after a successful launch

	mu       sync.Mutex
	sessions []*fakeSession
}

func (f *fakeFactory) launch(ctx context.Context) (Session, error) {
	if f.launchErr != nil {
		return nil, f.launchErr
	}
	s := &fakeSession{page: f.page}
	f.mu.Lock()
	f.sessions = append(f.sessions, s)
	f.mu.Unlock()
	if f.onLaunch != nil {
		f.onLaunch()
	}
	return s, nil
}

func (f *fakeFactory) acquired() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sessions)
}

func (f *fakeFactory) released() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, s := range f.sessions {
		n += int(s.closes.Load())
	}
	return n
}

func testScraperConfig() config.ScraperConfig {
	return config.ScraperConfig{
		TargetURL:         "https://register.test/find-an-engineer/",
		NavigationTimeout: time.Second,
		InputTimeout:      time.Second,
		ResultTimeout:     time.Second,
	}
}

var errBoom = errors.New("boom")

package scraper

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/use-agent/gassafe/metrics"
	"github.com/use-agent/gassafe/models"
	"golang.org/x/sync/semaphore"
)

var errPoolFull = errors.New("session pool full")

// Session is one isolated browser process serving a single scrape.
// Close must be called exactly once on every path; further calls are no-ops.
type Session interface {
	Page() Page
	Close() error
}

// SessionFactory starts a new browser session.
type SessionFactory func(ctx context.Context) (Session, error)

// SessionManager hands out browser sessions from a fixed number of permits.
// Requests beyond capacity wait up to poolWait and are then rejected with
// ErrCodeBrowserBusy instead of spawning another browser process.
type SessionManager struct {
	sem      *semaphore.Weighted
	max      int
	poolWait time.Duration
	launch   SessionFactory
	active   atomic.Int32
}

// NewSessionManager creates a manager allowing at most maxSessions
// concurrent browser processes.
func NewSessionManager(maxSessions int, poolWait time.Duration, launch SessionFactory) *SessionManager {
	if maxSessions < 1 {
		maxSessions = 1
	}
	return &SessionManager{
		sem:      semaphore.NewWeighted(int64(maxSessions)),
		max:      maxSessions,
		poolWait: poolWait,
		launch:   launch,
	}
}

// Acquire waits for a free permit and launches a fresh session on it.
// The returned Session releases the permit when closed.
func (m *SessionManager) Acquire(ctx context.Context) (Session, error) {
	waitStart := time.Now()
	err := m.wait(ctx)
	metrics.SessionWait.Observe(time.Since(waitStart).Seconds())

	if err != nil {
		if ctx.Err() != nil {
			return nil, models.NewScrapeError(models.ErrCodeInternal, "request canceled while waiting for a browser session", ctx.Err())
		}
		return nil, models.NewScrapeError(models.ErrCodeBrowserBusy, "all browser sessions are busy, retry later", err)
	}

	sess, err := m.launch(ctx)
	if err != nil {
		m.sem.Release(1)
		var se *models.ScrapeError
		if errors.As(err, &se) {
			return nil, se
		}
		return nil, models.NewScrapeError(models.ErrCodeLaunchFailed, "failed to launch browser", err)
	}

	m.active.Add(1)
	metrics.SessionsActive.Inc()
	slog.Debug("browser session acquired", "active", m.active.Load(), "max", m.max)

	return &pooledSession{Session: sess, release: m.release}, nil
}

// wait takes a permit, queueing for at most poolWait. A non-positive
// poolWait means no queueing at all.
func (m *SessionManager) wait(ctx context.Context) error {
	if m.poolWait <= 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !m.sem.TryAcquire(1) {
			return errPoolFull
		}
		return nil
	}
	waitCtx, cancel := context.WithTimeout(ctx, m.poolWait)
	defer cancel()
	return m.sem.Acquire(waitCtx, 1)
}

func (m *SessionManager) release() {
	m.active.Add(-1)
	metrics.SessionsActive.Dec()
	m.sem.Release(1)
	slog.Debug("browser session released", "active", m.active.Load(), "max", m.max)
}

// Stats returns a snapshot of the pool's current state.
func (m *SessionManager) Stats() models.PoolStats {
	return models.PoolStats{
		MaxSessions:    m.max,
		ActiveSessions: int(m.active.Load()),
	}
}

// pooledSession returns its permit once the underlying session is closed.
type pooledSession struct {
	Session
	release func()
	once    sync.Once
	err     error
}

func (s *pooledSession) Close() error {
	s.once.Do(func() {
		s.err = s.Session.Close()
		s.release()
	})
	return s.err
}

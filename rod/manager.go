package rod

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the default number of page loads before the browser
// is replaced.
const DefaultMaxPages = 75

// ErrManagerClosed is returned by Acquire after Close.
var ErrManagerClosed = errors.New("browser manager is closed")

// session is one launched Chrome process.
type session struct {
	browser  *rod.Browser
	pid      int
	shutdown func() error

	pages    int64
	inFlight int
	retired  bool
}

// BrowserManager owns the Chrome processes behind a Fetcher. Every page load
// holds a Lease on the browser it runs in. After maxPages leases a new
// browser takes over, and the old one is shut down when its last lease is
// released, so requests served concurrently never lose their browser
// mid-load.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	mu       sync.Mutex
	current  *session
	live     map[*session]struct{}
	maxPages int64
	closed   bool
	launch   func() (*session, error)
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithManagerMaxPages sets the number of page loads served by one browser.
func WithManagerMaxPages(n int64) ManagerOption {
	return func(bm *BrowserManager) {
		bm.maxPages = n
	}
}

// NewBrowserManager launches a headless Chrome browser.
// Close must be called when the BrowserManager is no longer needed.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	bm := &BrowserManager{
		maxPages: DefaultMaxPages,
		live:     make(map[*session]struct{}),
		launch:   launchChrome,
	}
	for _, opt := range opts {
		opt(bm)
	}

	s, err := bm.launch()
	if err != nil {
		return nil, err
	}
	bm.current = s
	bm.live[s] = struct{}{}
	return bm, nil
}

// Lease pins a browser for the duration of one page load.
type Lease struct {
	bm   *BrowserManager
	s    *session
	once sync.Once
}

// Browser returns the leased browser.
func (l *Lease) Browser() *rod.Browser {
	return l.s.browser
}

// Release returns the lease. Calling Release more than once has no effect.
func (l *Lease) Release() {
	l.once.Do(func() {
		l.bm.release(l.s)
	})
}

// Acquire leases the current browser, first replacing it if it has served
// maxPages page loads. When a replacement cannot be launched the old
// browser keeps serving.
func (bm *BrowserManager) Acquire() (*Lease, error) {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed {
		return nil, ErrManagerClosed
	}
	if bm.maxPages > 0 && bm.current.pages >= bm.maxPages {
		bm.rotate()
	}

	s := bm.current
	s.pages++
	s.inFlight++
	return &Lease{bm: bm, s: s}, nil
}

// rotate swaps in a fresh browser. Must be called with mu held.
func (bm *BrowserManager) rotate() {
	next, err := bm.launch()
	if err != nil {
		return
	}
	old := bm.current
	bm.current = next
	bm.live[next] = struct{}{}

	old.retired = true
	if old.inFlight == 0 {
		_ = bm.shutdown(old)
	}
}

func (bm *BrowserManager) release(s *session) {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	s.inFlight--
	if s.retired && s.inFlight == 0 {
		_ = bm.shutdown(s)
	}
}

// shutdown stops s if it is still running. Must be called with mu held.
func (bm *BrowserManager) shutdown(s *session) error {
	if _, ok := bm.live[s]; !ok {
		return nil
	}
	delete(bm.live, s)
	return s.shutdown()
}

// Close stops every browser, including those still serving leases.
// Close is safe to call multiple times.
func (bm *BrowserManager) Close() error {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed {
		return nil
	}
	bm.closed = true

	var errs []error
	for s := range bm.live {
		errs = append(errs, bm.shutdown(s))
	}
	return errors.Join(errs...)
}

// LauncherPID returns the process ID of the current browser launcher, or 0
// once the manager is closed.
func (bm *BrowserManager) LauncherPID() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	if bm.closed {
		return 0
	}
	return bm.current.pid
}

// Browsers returns the number of running browsers.
func (bm *BrowserManager) Browsers() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	return len(bm.live)
}

// launchChrome starts a headless browser with stability flags.
func launchChrome() (*session, error) {
	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(true)

	u, err := lnchr.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	return &session{
		browser: browser,
		pid:     lnchr.PID(),
		shutdown: func() error {
			err := browser.Close()
			lnchr.Kill()
			return err
		},
	}, nil
}

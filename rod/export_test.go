package rod

import (
	"errors"
	"sync"
)

// LaunchLog records the browsers started by a manager built with
// WithFakeLauncher.
type LaunchLog struct {
	mu      sync.Mutex
	stopped []bool
	fail    bool
}

// FailLaunches makes subsequent launches fail.
func (l *LaunchLog) FailLaunches() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.fail = true
}

// Launched returns the number of browsers started.
func (l *LaunchLog) Launched() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.stopped)
}

// Stopped reports whether the browser with the given PID was shut down.
func (l *LaunchLog) Stopped(pid int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stopped[pid-1]
}

// WithFakeLauncher replaces Chrome with in-memory browsers numbered from
// PID 1.
func WithFakeLauncher(log *LaunchLog) ManagerOption {
	return func(bm *BrowserManager) {
		bm.launch = func() (*session, error) {
			log.mu.Lock()
			defer log.mu.Unlock()
			if log.fail {
				return nil, errors.New("launch failed")
			}
			log.stopped = append(log.stopped, false)
			pid := len(log.stopped)
			return &session{
				pid: pid,
				shutdown: func() error {
					log.mu.Lock()
					defer log.mu.Unlock()
					log.stopped[pid-1] = true
					return nil
				},
			}, nil
		}
	}
}

// PID returns the launcher PID of the leased browser.
func (l *Lease) PID() int {
	return l.s.pid
}

package panelexport

import (
	"sync"
	"time"
)

// ExportLimiter rate-limits export requests per IP address. Every export
// fetches and re-encodes each panel image, so requests are capped per
// window.
type ExportLimiter struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
	max      int
	window   time.Duration
}

// NewExportLimiter creates an ExportLimiter allowing max exports per minute.
func NewExportLimiter(max int) *ExportLimiter {
	l := &ExportLimiter{
		attempts: make(map[string][]time.Time),
		max:      max,
		window:   time.Minute,
	}
	go l.cleanup()
	return l
}

func (l *ExportLimiter) cleanup() {
	ticker := time.NewTicker(l.window)
	for range ticker.C {
		cutoff := time.Now().Add(-l.window)
		l.mu.Lock()
		for ip, hits := range l.attempts {
			kept := hits[:0]
			for _, t := range hits {
				if t.After(cutoff) {
					kept = append(kept, t)
				}
			}
			if len(kept) == 0 {
				delete(l.attempts, ip)
			} else {
				l.attempts[ip] = kept
			}
		}
		l.mu.Unlock()
	}
}

// Allow reports whether the IP is under the limit and records the attempt.
func (l *ExportLimiter) Allow(ip string) bool {
	cutoff := time.Now().Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	hits := l.attempts[ip]
	kept := hits[:0]
	for _, t := range hits {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	if len(kept) >= l.max {
		l.attempts[ip] = kept
		return false
	}
	l.attempts[ip] = append(kept, time.Now())
	return true
}

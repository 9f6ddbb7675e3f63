// Package asynchook wraps a syrup.Hooks so that delivering events never
// blocks the parser/binding layer that fires them.
//
// usage:
//
//	raw := slogdiag.New(slog.Default())
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	v, _, err := syrup.ParseWithHooks(b, hooks) // fires into hooks, never blocks on it
package asynchook

import (
	"sync"

	"github.com/syrupdev/syrup"
)

// Hooks buffers events on a bounded channel and delivers them from one
// or more background workers, dropping events when the queue is full.
type Hooks struct {
	inner syrup.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ syrup.Hooks = (*Hooks)(nil)

// New starts workers goroutines draining a queue of length qlen that
// forward to inner. workers<=0 becomes 1; qlen<=0 becomes 1024.
func New(inner syrup.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close stops accepting new events and waits for the queue to drain.
func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) DuplicateDictionaryKey(kept []byte, dropped int) {
	h.try(func() { h.inner.DuplicateDictionaryKey(kept, dropped) })
}
func (h *Hooks) InvalidUTF8Replaced(kind string, length int) {
	h.try(func() { h.inner.InvalidUTF8Replaced(kind, length) })
}
func (h *Hooks) AmbiguousRecordVariant(label string) {
	h.try(func() { h.inner.AmbiguousRecordVariant(label) })
}
func (h *Hooks) TruncatedInput(offset int) {
	h.try(func() { h.inner.TruncatedInput(offset) })
}

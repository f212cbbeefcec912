package capture

import "sync/atomic"

// Lock is the process-wide gate that admits at most one capture session.
// TryBegin is the single serialization point for concurrent triggers; the
// loser performs no side effects.
type Lock struct {
	capturing atomic.Bool
}

// TryBegin atomically transitions idle -> capturing. It returns false when a
// session is already in flight.
func (l *Lock) TryBegin() bool {
	return l.capturing.CompareAndSwap(false, true)
}

// End unconditionally returns the lock to idle. It must be called exactly
// once per successful TryBegin, on every exit path of the session.
func (l *Lock) End() {
	l.capturing.Store(false)
}

// Active reports whether a session currently holds the lock.
func (l *Lock) Active() bool {
	return l.capturing.Load()
}

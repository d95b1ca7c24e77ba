package http

import "time"

// messageLimiter caps how many chat messages one connection may send
// per minute. It is only touched from that connection's read loop, so
// it needs no locking. A zero or negative limit disables limiting.
type messageLimiter struct {
	limit  int
	count  int
	window time.Time
}

func newMessageLimiter(limit int) *messageLimiter {
	return &messageLimiter{limit: limit}
}

// allow reports whether another message fits into the current
// one-minute window, starting a fresh window when the old one expired.
func (l *messageLimiter) allow(now time.Time) bool {
	if l.limit <= 0 {
		return true
	}
	if now.Sub(l.window) >= time.Minute {
		l.window = now
		l.count = 0
	}
	l.count++
	return l.count <= l.limit
}

package services

import "sync"

// sessionGuard tracks checkout attempts that are in flight, keyed by session
// id. No two attempts for the same session may run concurrently; attempts for
// different sessions interleave freely.
type sessionGuard struct {
	mu       sync.Mutex
	inFlight map[int64]struct{}
}

func newSessionGuard() *sessionGuard {
	return &sessionGuard{inFlight: make(map[int64]struct{})}
}

// acquire marks the session busy, reporting false when an attempt for it is
// already running.
func (g *sessionGuard) acquire(sessionID int64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.inFlight[sessionID]; busy {
		return false
	}
	g.inFlight[sessionID] = struct{}{}
	return true
}

func (g *sessionGuard) release(sessionID int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.inFlight, sessionID)
}

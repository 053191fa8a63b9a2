package cart

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"bellavista/internal/config"
	"bellavista/internal/logger"
)

// Session ties a cart id to a live cart for the duration of a browsing
// session. Nothing is persisted; an idle session is swept away.
type Session struct {
	ID       string
	Cart     *Cart
	lastSeen time.Time
}

// Sessions is the in-memory cart session registry. Handlers run on
// concurrent goroutines, so the map is guarded; each individual cart is
// still driven by one user at a time.
type Sessions struct {
	mu      sync.RWMutex
	byID    map[string]*Session
	pricing config.PricingConfig
	ttl     time.Duration
	logger  *logger.Logger
	onEvict func(id string)
}

// NewSessions creates a session registry
func NewSessions(cfg *config.Config, log *logger.Logger) *Sessions {
	return &Sessions{
		byID:    make(map[string]*Session),
		pricing: cfg.Pricing,
		ttl:     cfg.Sessions.IdleTTL(),
		logger:  log,
	}
}

// SetEvictHandler registers a callback invoked when a session is removed or
// swept, so dependent state (an in-flight checkout) can be torn down too.
func (s *Sessions) SetEvictHandler(fn func(id string)) {
	s.onEvict = fn
}

// Create starts a new session with an empty cart
func (s *Sessions) Create() *Session {
	session := &Session{
		ID:       uuid.NewString(),
		Cart:     New(s.pricing),
		lastSeen: time.Now(),
	}

	s.mu.Lock()
	s.byID[session.ID] = session
	s.mu.Unlock()

	return session
}

// Get returns the session and refreshes its idle timer
func (s *Sessions) Get(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.byID[id]
	if ok {
		session.lastSeen = time.Now()
	}
	return session, ok
}

// Remove drops the session if present
func (s *Sessions) Remove(id string) {
	s.mu.Lock()
	_, ok := s.byID[id]
	delete(s.byID, id)
	s.mu.Unlock()

	if ok && s.onEvict != nil {
		s.onEvict(id)
	}
}

// StartSweeper periodically evicts idle sessions until the context ends
func (s *Sessions) StartSweeper(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.sweep()
			}
		}
	}()
}

func (s *Sessions) sweep() {
	cutoff := time.Now().Add(-s.ttl)

	s.mu.Lock()
	var expired []string
	for id, session := range s.byID {
		if session.lastSeen.Before(cutoff) {
			expired = append(expired, id)
			delete(s.byID, id)
		}
	}
	s.mu.Unlock()

	for _, id := range expired {
		if s.onEvict != nil {
			s.onEvict(id)
		}
	}
	if len(expired) > 0 {
		s.logger.Debug("sessions_swept", "Evicted idle cart sessions", "", map[string]interface{}{
			"count": len(expired),
		})
	}
}

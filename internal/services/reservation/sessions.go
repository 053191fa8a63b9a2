package reservation

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"bellavista/internal/config"
	"bellavista/internal/logger"
)

// Sessions is the in-memory reservation wizard registry. Closing or idling
// out a session discards all reservation state; nothing is persisted.
type Sessions struct {
	mu     sync.Mutex
	byID   map[string]*entry
	ttl    time.Duration
	logger *logger.Logger
}

type entry struct {
	wizard   *Wizard
	lastSeen time.Time
}

// NewSessions creates a reservation session registry
func NewSessions(cfg *config.Config, log *logger.Logger) *Sessions {
	return &Sessions{
		byID:   make(map[string]*entry),
		ttl:    cfg.Sessions.IdleTTL(),
		logger: log,
	}
}

// Create starts a new reservation wizard
func (s *Sessions) Create() *Wizard {
	w := NewWizard(uuid.NewString())

	s.mu.Lock()
	s.byID[w.id] = &entry{wizard: w, lastSeen: time.Now()}
	s.mu.Unlock()

	return w
}

// Get returns the wizard and refreshes its idle timer
func (s *Sessions) Get(id string) (*Wizard, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = time.Now()
	return e.wizard, true
}

// Remove discards the wizard if present
func (s *Sessions) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byID, id)
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
	removed := 0
	for id, e := range s.byID {
		if e.lastSeen.Before(cutoff) {
			delete(s.byID, id)
			removed++
		}
	}
	s.mu.Unlock()

	if removed > 0 {
		s.logger.Debug("sessions_swept", "Evicted idle reservation sessions", "", map[string]interface{}{
			"count": removed,
		})
	}
}

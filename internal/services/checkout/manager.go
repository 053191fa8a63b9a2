package checkout

import (
	"sync"

	"bellavista/internal/services/cart"
)

// Manager keeps one checkout wizard per cart session, created lazily the
// first time a session opens the checkout flow.
type Manager struct {
	mu        sync.Mutex
	byCart    map[string]*Wizard
	processor *Processor
}

// NewManager creates a wizard manager
func NewManager(processor *Processor) *Manager {
	return &Manager{
		byCart:    make(map[string]*Wizard),
		processor: processor,
	}
}

// ForSession returns the wizard for the session, creating it if needed
func (m *Manager) ForSession(s *cart.Session) *Wizard {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.byCart[s.ID]
	if !ok {
		w = NewWizard(s.Cart)
		m.byCart[s.ID] = w
	}
	return w
}

// Processor returns the shared payment processor
func (m *Manager) Processor() *Processor {
	return m.processor
}

// Remove tears down the wizard for an evicted session, cancelling any
// in-flight payment task.
func (m *Manager) Remove(cartID string) {
	m.mu.Lock()
	w, ok := m.byCart[cartID]
	delete(m.byCart, cartID)
	m.mu.Unlock()

	if ok {
		w.Cancel()
	}
}

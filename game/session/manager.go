// Package session keeps completed simulation runs in memory.
package session

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/wricardo/martian-robots/game/service"
)

var (
	ErrRunNotFound      = fmt.Errorf("run %w", service.ErrNotFound)
	ErrRunAlreadyExists = errors.New("run already exists")
	ErrInvalidRun       = errors.New("invalid run")
)

// Manager handles the lifecycle of completed runs
type Manager struct {
	runs map[string]*service.Run
	now  func() time.Time
	mu   sync.RWMutex
}

// NewManager creates a new run manager
func NewManager() *Manager {
	return &Manager{
		runs: make(map[string]*service.Run),
		now:  time.Now,
	}
}

// Create stores a run, generating an ID when none is set. The stored run is
// owned by the manager; callers get a copy.
func (m *Manager) Create(run *service.Run) (*service.Run, error) {
	if run == nil || run.Mission == nil {
		return nil, ErrInvalidRun
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := strings.ToLower(run.ID)
	if _, exists := m.runs[key]; exists {
		return nil, ErrRunAlreadyExists
	}

	stored := *run
	stored.CreatedAt = m.now()
	stored.LastAccessedAt = stored.CreatedAt
	m.runs[key] = &stored
	return snapshot(&stored), nil
}

// Get retrieves a run by ID (case-insensitive)
func (m *Manager) Get(id string) (*service.Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	run, exists := m.runs[strings.ToLower(id)]
	if !exists {
		return nil, ErrRunNotFound
	}
	return snapshot(run), nil
}

// List returns all stored runs, oldest first
func (m *Manager) List() []*service.Run {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*service.Run, 0, len(m.runs))
	for _, run := range m.runs {
		result = append(result, snapshot(run))
	}
	sortByCreated(result)
	return result
}

// Delete removes a run
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := strings.ToLower(id)
	if _, exists := m.runs[key]; !exists {
		return ErrRunNotFound
	}
	delete(m.runs, key)
	return nil
}

// Touch marks a run as accessed and returns a copy of it
func (m *Manager) Touch(id string) (*service.Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	run, exists := m.runs[strings.ToLower(id)]
	if !exists {
		return nil, ErrRunNotFound
	}
	run.LastAccessedAt = m.now()
	return snapshot(run), nil
}

// CleanupExpiredRuns removes runs that haven't been accessed in the given duration
func (m *Manager) CleanupExpiredRuns(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-maxAge)
	removed := 0

	for id, run := range m.runs {
		if run.LastAccessedAt.Before(cutoff) {
			delete(m.runs, id)
			removed++
		}
	}

	return removed
}

// snapshot copies a run so callers never share the stored struct. Mission,
// Results and Scents are not modified after Create.
func snapshot(run *service.Run) *service.Run {
	c := *run
	return &c
}

// Count returns the number of stored runs
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.runs)
}

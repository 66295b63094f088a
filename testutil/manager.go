package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/kbukum/ioc/di"
)

// Manager owns a container and the fixtures installed into it. ResetAll
// clears the container and reinstalls every fixture, which gives each
// subtest a fresh copy of the same wiring.
type Manager struct {
	ctx       context.Context
	container di.Container
	fixtures  []Fixture
	mu        sync.RWMutex
}

// NewManager creates a manager for c.
func NewManager(ctx context.Context, c di.Container) *Manager {
	return &Manager{
		ctx:       ctx,
		container: c,
		fixtures:  make([]Fixture, 0),
	}
}

// Container returns the managed container.
func (m *Manager) Container() di.Container {
	return m.container
}

// Add registers a fixture with the manager. It is not installed until
// InstallAll or ResetAll runs.
func (m *Manager) Add(f Fixture) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fixtures = append(m.fixtures, f)
}

// Fixtures returns all registered fixtures.
func (m *Manager) Fixtures() []Fixture {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]Fixture, len(m.fixtures))
	copy(result, m.fixtures)
	return result
}

// Get retrieves a fixture by name, or nil.
func (m *Manager) Get(name string) Fixture {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, f := range m.fixtures {
		if f.Name() == name {
			return f
		}
	}
	return nil
}

// InstallAll installs fixtures in the order they were added. Later fixtures
// overwrite bindings of earlier ones. It stops at the first failure.
func (m *Manager) InstallAll() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, f := range m.fixtures {
		if err := f.Install(m.ctx, m.container); err != nil {
			return fmt.Errorf("failed to install fixture %s: %w", f.Name(), err)
		}
	}
	return nil
}

// ResetAll clears the container and reinstalls every fixture.
func (m *Manager) ResetAll() error {
	m.container.Reset()
	return m.InstallAll()
}

// Cleanup closes the container, releasing singletons that hold resources.
// It fits t.Cleanup:
//
//	t.Cleanup(func() { _ = m.Cleanup() })
func (m *Manager) Cleanup() error {
	return m.container.Close()
}

// Package consumers manages the lifecycle of the broker consumers: start,
// stop, restart and health reporting, exposed over the HTTP surface.
package consumers

import (
	"context"
	"fmt"
	"sync"

	"github.com/TienDattttt/shoppi-sub004/internal/pkg/errs"
	"github.com/TienDattttt/shoppi-sub004/internal/pkg/logger"
)

// Consumer is the lifecycle contract the manager drives. The rabbit adapter's
// Consumer satisfies it.
type Consumer interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	IsRunning() bool
	Healthy() bool
}

// Status is the reported state of one managed consumer.
type Status struct {
	Name    string `json:"name"`
	Running bool   `json:"running"`
	Healthy bool   `json:"healthy"`
	Error   string `json:"error,omitempty"`
}

// Manager owns the registered consumers. All operations are safe for
// concurrent use; the HTTP surface and the shutdown path share it.
type Manager struct {
	log logger.Logger

	mu        sync.Mutex
	order     []string
	consumers map[string]Consumer
	lastErr   map[string]error
}

// NewManager creates an empty manager.
func NewManager(log logger.Logger) *Manager {
	return &Manager{
		log:       log.With("component", "consumer-manager"),
		consumers: make(map[string]Consumer),
		lastErr:   make(map[string]error),
	}
}

// Register adds a consumer under its name. Registration order is preserved in
// status listings.
func (m *Manager) Register(c Consumer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.order = append(m.order, c.Name())
	m.consumers[c.Name()] = c
}

// StartAll starts every registered consumer. Best-effort: a consumer that
// fails to start is recorded in its status and the rest still start.
func (m *Manager) StartAll(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, name := range m.order {
		err := m.consumers[name].Start(ctx)
		m.lastErr[name] = err
		if err != nil {
			m.log.Errorf(ctx, "consumer %s failed to start: %v", name, err)
		}
	}
}

// StopAll drains and stops every running consumer.
func (m *Manager) StopAll(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, name := range m.order {
		if err := m.consumers[name].Stop(ctx); err != nil {
			m.log.Warnf(ctx, "consumer %s stop: %v", name, err)
		}
	}
}

// Restart stops and starts the named consumer.
func (m *Manager) Restart(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.consumers[name]
	if !ok {
		return errs.NewObjectNotFoundError("consumer", name)
	}

	if err := c.Stop(ctx); err != nil {
		m.log.Warnf(ctx, "consumer %s stop before restart: %v", name, err)
	}

	err := c.Start(ctx)
	m.lastErr[name] = err
	return err
}

// Statuses reports every consumer in registration order.
func (m *Manager) Statuses() []Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	statuses := make([]Status, 0, len(m.order))
	for _, name := range m.order {
		c := m.consumers[name]
		s := Status{
			Name:    name,
			Running: c.IsRunning(),
			Healthy: c.Healthy(),
		}
		if err := m.lastErr[name]; err != nil {
			s.Error = err.Error()
		}
		statuses = append(statuses, s)
	}

	return statuses
}

// HealthCheck returns an error naming the first unhealthy consumer, nil when
// all are healthy.
func (m *Manager) HealthCheck() error {
	for _, s := range m.Statuses() {
		if !s.Healthy {
			return fmt.Errorf("consumer %s is unhealthy", s.Name)
		}
	}
	return nil
}

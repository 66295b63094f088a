package observability

import (
	"strconv"
	"strings"

	"github.com/kbukum/ioc/di"
)

// HealthStatus represents the health state of a component or service.
type HealthStatus string

const (
	HealthStatusUp       HealthStatus = "up"
	HealthStatusDown     HealthStatus = "down"
	HealthStatusDegraded HealthStatus = "degraded"
)

// Health describes the health of an individual component.
type Health struct {
	Name    string            `json:"name"`
	Status  HealthStatus      `json:"status"`
	Message string            `json:"message,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// ServiceHealth describes the overall health of a service and its components.
type ServiceHealth struct {
	Service    string       `json:"service"`
	Status     HealthStatus `json:"status"`
	Version    string       `json:"version,omitempty"`
	Components []Health     `json:"components,omitempty"`
}

// NewServiceHealth creates a ServiceHealth with status up.
func NewServiceHealth(service, version string) *ServiceHealth {
	return &ServiceHealth{
		Service: service,
		Status:  HealthStatusUp,
		Version: version,
	}
}

// AddComponent adds a component health result and degrades overall status if needed.
func (sh *ServiceHealth) AddComponent(ch Health) {
	sh.Components = append(sh.Components, ch)

	switch ch.Status {
	case HealthStatusDown:
		sh.Status = HealthStatusDown
	case HealthStatusDegraded:
		if sh.Status != HealthStatusDown {
			sh.Status = HealthStatusDegraded
		}
	}
}

// CheckContainer reports the container as degraded when any scoped binding
// currently has no resolvable constructor. Nothing is constructed.
func CheckContainer(c di.Container) Health {
	regs := c.Registrations()
	h := Health{
		Name:   "container",
		Status: HealthStatusUp,
		Details: map[string]string{
			"id":       c.ID(),
			"bindings": strconv.Itoa(len(regs)),
		},
	}

	var blocked []string
	for _, r := range regs {
		if r.Lifecycle != di.Scoped {
			continue
		}
		if res, ok := c.Diagnose(r.Key); ok && !res.OK() {
			blocked = append(blocked, r.Key.ShortString())
		}
	}
	if len(blocked) > 0 {
		h.Status = HealthStatusDegraded
		h.Message = "no resolvable constructor for " + strings.Join(blocked, ", ")
	}
	return h
}

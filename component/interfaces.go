package component

import "context"

// HealthStatus is the state reported by Health.
type HealthStatus string

const (
	StatusHealthy   HealthStatus = "healthy"
	StatusUnhealthy HealthStatus = "unhealthy"
	StatusDegraded  HealthStatus = "degraded"
)

// Health is one component's entry in the /health report.
type Health struct {
	Name    string       `json:"name"`
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
}

// Component is a part of the host with a start and stop: the HTTP server,
// the startup action runner, a connection pool. Name must be unique within a
// Registry.
type Component interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Health(ctx context.Context) Health
}

// Description is logged when a component starts.
type Description struct {
	Name    string // display name, Name() when empty
	Type    string // "server", "lifecycle", ...
	Details string // e.g. "0.0.0.0:8080"
}

// Describable components report a Description.
type Describable interface {
	Describe() Description
}

// Describe returns c's Description, falling back to its Name.
func Describe(c Component) Description {
	var d Description
	if dc, ok := c.(Describable); ok {
		d = dc.Describe()
	}
	if d.Name == "" {
		d.Name = c.Name()
	}
	return d
}

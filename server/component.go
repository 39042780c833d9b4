package server

import (
	"context"

	"github.com/kbukum/hostkit/component"
	"github.com/kbukum/hostkit/routes"
)

const componentName = "http-server"

var (
	_ component.Component   = (*ServerComponent)(nil)
	_ component.Describable = (*ServerComponent)(nil)
	_ routes.Provider       = (*ServerComponent)(nil)
)

// ServerComponent registers a Server with the component registry. Register
// it after the startup actions so the port opens only once they succeed.
type ServerComponent struct {
	server *Server
}

func NewComponent(s *Server) *ServerComponent {
	return &ServerComponent{server: s}
}

func (sc *ServerComponent) Server() *Server { return sc.server }

func (sc *ServerComponent) Name() string { return componentName }

func (sc *ServerComponent) Start(ctx context.Context) error { return sc.server.Start(ctx) }

func (sc *ServerComponent) Stop(ctx context.Context) error { return sc.server.Stop(ctx) }

// Health is unhealthy until the port is bound.
func (sc *ServerComponent) Health(ctx context.Context) component.Health {
	h := component.Health{Name: componentName, Status: component.StatusHealthy}
	if h.Message = sc.server.ListenAddr(); h.Message == "" {
		h.Status = component.StatusUnhealthy
		h.Message = "not listening"
	}
	return h
}

func (sc *ServerComponent) Describe() component.Description {
	return component.Description{
		Name:    "HTTP Server",
		Type:    "server",
		Details: sc.server.Addr(),
	}
}

func (sc *ServerComponent) Descriptors() []routes.Descriptor {
	return sc.server.Descriptors()
}

package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/kbukum/hostkit/logger"
	"github.com/kbukum/hostkit/routes"
	"github.com/kbukum/hostkit/server/endpoint"
	"github.com/kbukum/hostkit/server/middleware"
)

// Server serves a Gin engine plus any handlers mounted with Handle on one
// port. Connections speak HTTP/1.1 or cleartext HTTP/2.
type Server struct {
	cfg     Config
	log     *logger.Logger
	engine  *gin.Engine
	mux     *http.ServeMux
	chain   []middleware.Middleware
	httpSrv *http.Server

	mu       sync.RWMutex
	listener net.Listener
}

var _ routes.Provider = (*Server)(nil)

// New builds a server with no middleware. See ApplyDefaults.
func New(cfg Config, log *logger.Logger) *Server {
	gin.SetMode(cfg.Mode)
	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		middleware.SetRoute(c.Request.Context(), c.FullPath())
	})
	mux := http.NewServeMux()
	mux.Handle("/", engine)

	return &Server{
		cfg:    cfg,
		log:    log.WithComponent("server"),
		engine: engine,
		mux:    mux,
		httpSrv: &http.Server{
			Addr:         net.JoinHostPort(cfg.Host, fmt.Sprint(cfg.Port)),
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
	}
}

// GinEngine is where attribute routes are registered.
func (s *Server) GinEngine() *gin.Engine {
	return s.engine
}

// Handle mounts a plain handler beside the engine. It does not appear in
// Descriptors.
func (s *Server) Handle(pattern string, handler http.Handler) {
	s.mux.Handle(pattern, handler)
	s.log.Debug("Handler mounted", logger.Fields("pattern", pattern))
}

// Use appends middleware that wraps every request, mounted handlers included.
func (s *Server) Use(mw ...middleware.Middleware) {
	s.chain = append(s.chain, mw...)
}

// Handler is the root handler Start serves.
func (s *Server) Handler() http.Handler {
	return h2c.NewHandler(middleware.Chain(s.chain...)(s.mux), &http2.Server{
		MaxConcurrentStreams: 250,
		IdleTimeout:          2 * time.Minute,
	})
}

// Descriptors lists the engine's routes.
func (s *Server) Descriptors() []routes.Descriptor {
	infos := s.engine.Routes()
	out := make([]routes.Descriptor, len(infos))
	for i, ri := range infos {
		out[i] = routes.FromHandler(ri.Method, ri.Path, ri.Handler)
	}
	return out
}

// Start returns once the port is bound.
func (s *Server) Start(ctx context.Context) error {
	s.httpSrv.Handler = s.Handler()
	ln, err := net.Listen("tcp", s.httpSrv.Addr)
	if err != nil {
		return fmt.Errorf("server failed to bind %s: %w", s.httpSrv.Addr, err)
	}
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	go func() {
		if err := s.httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("Server error", logger.ErrorFields("serve", err))
		}
	}()
	s.log.Info("HTTP server listening", logger.Fields("addr", ln.Addr().String()))
	return nil
}

// Stop drains in-flight requests for at most ShutdownTimeout.
func (s *Server) Stop(ctx context.Context) error {
	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := s.httpSrv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	s.mu.Lock()
	s.listener = nil
	s.mu.Unlock()
	s.log.Info("HTTP server stopped")
	return nil
}

// Addr is the configured address; ListenAddr is the bound one, or "" when
// not serving.
func (s *Server) Addr() string {
	return s.httpSrv.Addr
}

func (s *Server) ListenAddr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// ApplyMiddleware installs recovery, request IDs, optional tracing, CORS
// and request logging, outermost first.
func (s *Server) ApplyMiddleware() {
	s.Use(middleware.Recovery(s.log), middleware.RequestID())
	if s.cfg.Tracing {
		s.Use(middleware.Tracing())
	}
	s.Use(middleware.CORS(s.cfg.CORS), middleware.RequestLogger(s.log))
}

// RegisterDefaultEndpoints adds GET /health and GET /info.
func (s *Server) RegisterDefaultEndpoints(serviceName, version string, checker endpoint.HealthChecker) {
	s.engine.GET("/health", endpoint.Health(serviceName, checker))
	s.engine.GET("/info", endpoint.Info(serviceName, version))
}

func (s *Server) ApplyDefaults(serviceName, version string, checker endpoint.HealthChecker) {
	s.ApplyMiddleware()
	s.RegisterDefaultEndpoints(serviceName, version, checker)
}

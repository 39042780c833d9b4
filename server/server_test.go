package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kbukum/hostkit/component"
	apperrors "github.com/kbukum/hostkit/errors"
	"github.com/kbukum/hostkit/logger"
	"github.com/kbukum/hostkit/routes"
	"github.com/kbukum/hostkit/testutil"
)

type WidgetsController struct{}

func (w *WidgetsController) Index(c *gin.Context)  { RespondOK(c, []string{"a", "b"}) }
func (w *WidgetsController) Create(c *gin.Context) { RespondCreated(c, gin.H{"id": 1}) }
func (w *WidgetsController) Show(c *gin.Context) {
	RespondWithError(c, apperrors.NotFound("widget", c.Param("id")))
}

func testConfig() Config {
	return Config{Host: "127.0.0.1", Port: 0, Mode: gin.TestMode}
}

func newTestServer() *Server {
	s := New(testConfig(), logger.NewNop())
	ctrl := &WidgetsController{}
	s.GinEngine().GET("/widgets", ctrl.Index)
	s.GinEngine().POST("/widgets", ctrl.Create)
	s.GinEngine().GET("/widgets/:id", ctrl.Show)
	return s
}

func serve(s *Server, method, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(method, path, http.NoBody))
	return rr
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Port != 8080 || cfg.Mode != "release" || cfg.ReadTimeout != 15*time.Second || cfg.IdleTimeout != time.Minute || cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"port too large", func(c *Config) { c.Port = 70000 }, true},
		{"negative timeout", func(c *Config) { c.ReadTimeout = -time.Second }, true},
		{"negative shutdown", func(c *Config) { c.ShutdownTimeout = -time.Second }, true},
		{"unknown mode", func(c *Config) { c.Mode = "turbo" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{}
			cfg.ApplyDefaults()
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDescriptors(t *testing.T) {
	s := newTestServer()

	got := routes.Report(s.Descriptors())
	want := routes.ReportHeader + "\n\n" +
		"    GET /widgets (WidgetsController#Index)\n" +
		"   POST /widgets (WidgetsController#Create)\n" +
		"    GET /widgets/:id (WidgetsController#Show)\n"
	if got != want {
		t.Errorf("report mismatch\nexpected:\n%s\ngot:\n%s", want, got)
	}
}

func TestDescriptorsIncludeDefaultEndpoints(t *testing.T) {
	s := newTestServer()
	s.RegisterDefaultEndpoints("svc", "1.2.3", nil)

	lines := routes.Lines(s.Descriptors())
	if len(lines) != 5 {
		t.Fatalf("expected 5 routes, got %d", len(lines))
	}
	if lines[0].RouteTemplate != "health" || lines[0].HTTPMethod != "GET" {
		t.Errorf("expected /health first, got %+v", lines[0])
	}
	if lines[0].RouteSource != "endpoint.Health" {
		t.Errorf("expected closure reported by its builder, got %q", lines[0].RouteSource)
	}
}

func TestHandlerServesGinRoutes(t *testing.T) {
	s := newTestServer()
	s.ApplyMiddleware()

	rr := serve(s, "GET", "/widgets")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if rr.Header().Get("X-Request-Id") == "" {
		t.Error("expected request id from server middleware")
	}
	var body Envelope
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if fmt.Sprint(body.Data) != "[a b]" {
		t.Errorf("unexpected data: %v", body.Data)
	}

	if rr := serve(s, "POST", "/widgets"); rr.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rr.Code)
	}
}

func TestRespondWithAppError(t *testing.T) {
	s := newTestServer()

	rr := serve(s, "GET", "/widgets/42")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	var body apperrors.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body.Error.Code != apperrors.ErrCodeNotFound {
		t.Errorf("expected NOT_FOUND, got %s", body.Error.Code)
	}
}

func TestHandleMountsPlainHandler(t *testing.T) {
	s := newTestServer()
	s.Handle("/raw/", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "raw")
	}))

	rr := serve(s, "GET", "/raw/x")
	if rr.Body.String() != "raw" {
		t.Errorf("expected 'raw', got %q", rr.Body.String())
	}
	for _, l := range routes.Lines(s.Descriptors()) {
		if l.RouteTemplate == "raw/" {
			t.Error("expected mounted handler to be absent from descriptors")
		}
	}
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer()
	healthy := true
	s.RegisterDefaultEndpoints("svc", "1.0.0", func(ctx context.Context) []component.Health {
		status := component.StatusHealthy
		if !healthy {
			status = component.StatusUnhealthy
		}
		return []component.Health{{Name: "startup-actions", Status: status}}
	})

	if rr := serve(s, "GET", "/health"); rr.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rr.Code)
	}
	healthy = false
	rr := serve(s, "GET", "/health")
	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", rr.Code)
	}
	var body map[string]interface{}
	json.Unmarshal(rr.Body.Bytes(), &body)
	if body["status"] != "unhealthy" {
		t.Errorf("expected unhealthy, got %v", body["status"])
	}
}

func TestInfoEndpoint(t *testing.T) {
	s := newTestServer()
	s.RegisterDefaultEndpoints("svc", "1.2.3", nil)

	rr := serve(s, "GET", "/info")
	var body map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["service"] != "svc" || body["version"] != "1.2.3" {
		t.Errorf("unexpected info: %v", body)
	}
}

func TestComponentLifecycle(t *testing.T) {
	s := newTestServer()
	sc := NewComponent(s)
	ctx := context.Background()

	if h := sc.Health(ctx); h.Status != component.StatusUnhealthy {
		t.Errorf("expected unhealthy before Start, got %s", h.Status)
	}
	if err := sc.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	resp, err := http.Get("http://" + s.ListenAddr() + "/widgets")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if h := sc.Health(ctx); h.Status != component.StatusHealthy {
		t.Errorf("expected healthy while serving, got %s", h.Status)
	}

	if err := sc.Stop(ctx); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if s.ListenAddr() != "" {
		t.Error("expected no listen address after Stop")
	}
}

func TestComponentServesMountedHandler(t *testing.T) {
	s := newTestServer()
	s.Handle("/raw", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	testutil.Start(t, NewComponent(s))

	resp, err := http.Get("http://" + s.ListenAddr() + "/raw")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusTeapot {
		t.Errorf("expected 418, got %d", resp.StatusCode)
	}
}

func TestComponentDescribe(t *testing.T) {
	sc := NewComponent(newTestServer())
	d := sc.Describe()
	if d.Type != "server" || d.Details != "127.0.0.1:0" {
		t.Errorf("unexpected description: %+v", d)
	}
	if sc.Name() != "http-server" {
		t.Errorf("expected 'http-server', got %q", sc.Name())
	}
	if len(sc.Descriptors()) != 3 {
		t.Errorf("expected 3 descriptors, got %d", len(sc.Descriptors()))
	}
}

func TestApplyMiddlewareTracing(t *testing.T) {
	for _, tracing := range []bool{false, true} {
		cfg := testConfig()
		cfg.Tracing = tracing
		s := New(cfg, logger.NewNop())
		s.ApplyMiddleware()

		want := 4
		if tracing {
			want = 5
		}
		if len(s.chain) != want {
			t.Errorf("tracing=%v: expected %d middleware, got %d", tracing, want, len(s.chain))
		}
	}
}

func TestTracingNamesSpanAfterGinRoute(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prev)
	})

	cfg := testConfig()
	cfg.Tracing = true
	s := New(cfg, logger.NewNop())
	s.ApplyMiddleware()
	s.GinEngine().GET("/widgets/:id", (&WidgetsController{}).Show)

	for _, id := range []string{"1", "2"} {
		s.Handler().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/widgets/"+id, http.NoBody))
	}

	spans := exporter.GetSpans()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	for _, span := range spans {
		if span.Name != "GET /widgets/:id" {
			t.Errorf("expected span 'GET /widgets/:id', got %q", span.Name)
		}
	}
}

package endpoint

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/hostkit/component"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestOverall(t *testing.T) {
	tests := []struct {
		name       string
		components []component.Health
		want       component.HealthStatus
	}{
		{"none", nil, component.StatusHealthy},
		{"all healthy", []component.Health{{Status: component.StatusHealthy}}, component.StatusHealthy},
		{"degraded", []component.Health{{Status: component.StatusHealthy}, {Status: component.StatusDegraded}}, component.StatusDegraded},
		{"unhealthy wins", []component.Health{{Status: component.StatusUnhealthy}, {Status: component.StatusDegraded}}, component.StatusUnhealthy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overall(tt.components); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestHealthWithoutChecker(t *testing.T) {
	r := gin.New()
	r.GET("/health", Health("hostd", nil))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var report HealthReport
	if err := json.Unmarshal(rr.Body.Bytes(), &report); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if report.Service != "hostd" || report.Status != component.StatusHealthy {
		t.Errorf("unexpected report: %+v", report)
	}
	if report.Components == nil {
		t.Error("expected an empty component list, not null")
	}
}

func TestHealthDegradedStillServes(t *testing.T) {
	r := gin.New()
	r.GET("/health", Health("hostd", func(ctx context.Context) []component.Health {
		return []component.Health{{Name: "cache", Status: component.StatusDegraded}}
	}))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rr.Code != http.StatusOK {
		t.Errorf("expected 200 for degraded, got %d", rr.Code)
	}
}

func TestInfo(t *testing.T) {
	r := gin.New()
	r.GET("/info", Info("hostd", "1.2.3"))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/info", nil))

	var body map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if body["service"] != "hostd" || body["version"] != "1.2.3" {
		t.Errorf("unexpected body: %v", body)
	}
	if _, ok := body["uptime"]; !ok {
		t.Error("expected uptime")
	}
	build, ok := body["build"].(map[string]interface{})
	if !ok || build["go_version"] == "" {
		t.Errorf("expected build stamp, got %v", body["build"])
	}
}

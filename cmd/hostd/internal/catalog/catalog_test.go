package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/hostkit/di"
	apperrors "github.com/kbukum/hostkit/errors"
)

func newEngine(store *Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	NewFoosController(store).Register(engine)
	return engine
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestStoreCreateGetList(t *testing.T) {
	s := NewStore()
	a := s.Create("  alpha ")
	b := s.Create("beta")

	if a.Name != "alpha" {
		t.Errorf("expected trimmed name 'alpha', got %q", a.Name)
	}
	got, err := s.Get(b.ID)
	if err != nil || got.Name != "beta" {
		t.Errorf("expected beta, got %+v (%v)", got, err)
	}
	list := s.List()
	if len(list) != 2 || list[0].ID != a.ID || list[1].ID != b.ID {
		t.Errorf("expected insertion order, got %+v", list)
	}
}

func TestStoreGetMissing(t *testing.T) {
	_, err := NewStore().Get("nope")
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.Code != apperrors.ErrCodeNotFound {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestFoosIndex(t *testing.T) {
	store := NewStore()
	store.Create("alpha")

	rr := do(newEngine(store), "GET", "/foos", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var body struct {
		Data []Foo          `json:"data"`
		Meta map[string]any `json:"meta"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(body.Data) != 1 || body.Data[0].Name != "alpha" {
		t.Errorf("unexpected data: %+v", body.Data)
	}
	if body.Meta["total"] != float64(1) {
		t.Errorf("expected total 1, got %v", body.Meta["total"])
	}
}

func TestFoosShow(t *testing.T) {
	store := NewStore()
	foo := store.Create("alpha")
	engine := newEngine(store)

	if rr := do(engine, "GET", "/foos/"+foo.ID, ""); rr.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rr.Code)
	}
	if rr := do(engine, "GET", "/foos/not-a-uuid", ""); rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed id, got %d", rr.Code)
	}
	if rr := do(engine, "GET", "/foos/6f1c1a52-4f9e-4a55-9d55-4b5f0f6f9a10", ""); rr.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown id, got %d", rr.Code)
	}
}

func TestFoosNewIsStaticRoute(t *testing.T) {
	rr := do(newEngine(NewStore()), "GET", "/foos/new", "")
	if rr.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rr.Code)
	}
}

func TestFoosCreate(t *testing.T) {
	store := NewStore()
	engine := newEngine(store)

	rr := do(engine, "POST", "/foos", `{"name":"gamma"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	if store.Len() != 1 {
		t.Errorf("expected 1 foo stored, got %d", store.Len())
	}

	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"name":""}`},
		{"too long", `{"name":"` + string(bytes.Repeat([]byte("x"), maxNameLength+1)) + `"}`},
		{"not json", `nope`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(engine, "POST", "/foos", tt.body)
			if rr.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rr.Code)
			}
		})
	}
}

func TestAdminStats(t *testing.T) {
	store := NewStore()
	store.Create("alpha")

	rr := do(NewAdminRouter(store), "GET", "/admin/stats", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var body map[string]int
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["foos"] != 1 {
		t.Errorf("expected 1 foo, got %v", body)
	}
	if rr.Header().Get("Cache-Control") != "no-store" {
		t.Errorf("expected admin responses to be uncacheable, got %q", rr.Header().Get("Cache-Control"))
	}
}

func TestSeedActionFillsEmptyStore(t *testing.T) {
	store := NewStore()
	action := NewSeedAction(store, "alpha", "beta")

	if err := action.OnStartup(context.Background()); err != nil {
		t.Fatalf("OnStartup failed: %v", err)
	}
	if store.Len() != 2 {
		t.Fatalf("expected 2 foos, got %d", store.Len())
	}

	if err := action.OnStartup(context.Background()); err != nil {
		t.Fatalf("second OnStartup failed: %v", err)
	}
	if store.Len() != 2 {
		t.Errorf("expected seeding to skip a populated store, got %d", store.Len())
	}
}

func TestSeedActionHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := NewSeedAction(NewStore(), "alpha").OnStartup(ctx); err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestSeedFactoryResolvesStore(t *testing.T) {
	store := NewStore()
	c := di.NewContainer()
	c.RegisterSingleton(StoreKey, store)

	scope := c.NewScope()
	defer scope.Close()

	action, err := SeedFactory("alpha")(scope)
	if err != nil {
		t.Fatalf("factory failed: %v", err)
	}
	if err := action.OnStartup(context.Background()); err != nil {
		t.Fatalf("OnStartup failed: %v", err)
	}
	if store.Len() != 1 {
		t.Errorf("expected the registered store to be seeded, got %d", store.Len())
	}

	if _, err := SeedFactory()(di.NewContainer().NewScope()); err == nil {
		t.Error("expected error without a registered store")
	}
}

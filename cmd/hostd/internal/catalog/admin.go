package catalog

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kbukum/hostkit/server/middleware"
)

// AdminController serves operator endpoints on a chi router mounted beside
// the Gin engine.
type AdminController struct {
	store *Store
}

// NewAdminRouter returns a router serving /admin/*.
func NewAdminRouter(store *Store) chi.Router {
	ac := &AdminController{store: store}
	r := chi.NewRouter()
	r.Use(middleware.NoStore())
	r.Get("/admin/stats", ac.Stats)
	return r
}

// Stats reports store counters.
func (ac *AdminController) Stats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]int{"foos": ac.store.Len()})
}

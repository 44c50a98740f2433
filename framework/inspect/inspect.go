// Package inspect exposes a read-only HTTP debug surface over a running
// application: the registered routes, the container's bound tokens and the
// currently active route. It reports names only — no instance ever crosses
// the wire.
//
//	go inspect.Serve(":6060", app.Factory, app.Router())
package inspect

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/km-arc/go-nest/framework/module"
	"github.com/km-arc/go-nest/framework/routing"
)

type routeEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Kind string `json:"kind"`
}

type currentEntry struct {
	Active     bool   `json:"active"`
	Path       string `json:"path,omitempty"`
	InstanceID string `json:"instance_id,omitempty"`
}

// Handler builds the inspector's HTTP handler.
//
//	GET /routes   → [{"name": ..., "path": ..., "kind": ...}]
//	GET /bindings → ["config", "logger", ...]
//	GET /current  → {"active": true, "path": "/home", "instance_id": ...}
func Handler(f *module.Factory, rt *routing.Router) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/routes", func(w http.ResponseWriter, req *http.Request) {
		routes := f.Routes().All()
		entries := make([]routeEntry, 0, len(routes))
		for _, path := range f.Routes().Paths() {
			route := routes[path]
			entries = append(entries, routeEntry{
				Name: route.Name,
				Path: route.Path,
				Kind: route.Kind.String(),
			})
		}
		writeJSON(w, entries)
	})

	r.Get("/bindings", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, f.Container().Tokens())
	})

	r.Get("/current", func(w http.ResponseWriter, req *http.Request) {
		entry := currentEntry{}
		if route, ok := rt.CurrentRoute(); ok {
			entry.Active = true
			entry.Path = route.Path
			entry.InstanceID = rt.CurrentInstanceID()
		}
		writeJSON(w, entry)
	})

	return r
}

// Serve runs the inspector on addr, blocking. Intended for a goroutine in
// debug builds.
func Serve(addr string, f *module.Factory, rt *routing.Router) error {
	return http.ListenAndServe(addr, Handler(f, rt))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

package routing

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/km-arc/go-nest/framework/container"
)

// ── Errors ────────────────────────────────────────────────────────────────────

var (
	// ErrDuplicateRoute is returned when two routes share a path.
	ErrDuplicateRoute = errors.New("routing: duplicate route path")

	// ErrInvalidRoute is returned for a route with no path or no builder.
	ErrInvalidRoute = errors.New("routing: invalid route")

	// ErrRouteNotFound is returned by Navigate for an unregistered path.
	ErrRouteNotFound = errors.New("routing: route not found")

	// ErrNavigationInProgress is returned when Navigate is re-entered from
	// a lifecycle hook while another navigation is still on the stack.
	ErrNavigationInProgress = errors.New("routing: navigation already in progress")
)

// ── Kind ──────────────────────────────────────────────────────────────────────

// Kind tells the presentation layer how a component's surface is shown.
// Dialogs are presented modally (the presenter may block); windows and
// widgets are non-blocking.
type Kind int

const (
	KindWindow Kind = iota
	KindDialog
	KindWidget
)

func (k Kind) String() string {
	switch k {
	case KindWindow:
		return "window"
	case KindDialog:
		return "dialog"
	case KindWidget:
		return "widget"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ── Component spec ────────────────────────────────────────────────────────────

// BuildArgs is the named-argument bag a component is constructed from.
// RouteData and Router are always supplied; Deps holds the container
// tokens that resolved. A token missing from Deps simply failed to
// resolve — the component applies its own default.
type BuildArgs struct {
	RouteData map[string]any
	Router    *Router
	Deps      map[container.Token]any
}

// Dep returns the resolved dependency for token, or fallback when the
// container could not supply it.
func Dep[T any](a BuildArgs, token container.Token, fallback T) T {
	if v, ok := a.Deps[token]; ok {
		if typed, ok := v.(T); ok {
			return typed
		}
	}
	return fallback
}

// ComponentSpec is the compile-time replacement for constructor
// reflection: it names the container tokens the component wants and the
// function that builds it from the assembled bag.
//
//	routing.Route{
//	    Path: "/home",
//	    Component: routing.ComponentSpec{
//	        Deps: []container.Token{"logger"},
//	        Build: func(a routing.BuildArgs) any {
//	            return NewHomeView(a.RouteData, routing.Dep(a, "logger", logging.Discard))
//	        },
//	    },
//	}
type ComponentSpec struct {
	Deps  []container.Token
	Build func(args BuildArgs) any
}

// ── Route ─────────────────────────────────────────────────────────────────────

// Route binds a path to a component with a display kind. Routes are
// immutable data declared at module level; the path is globally unique
// across all merged modules.
type Route struct {
	Name      string
	Path      string
	Component ComponentSpec
	Kind      Kind
}

func (r Route) validate() error {
	if r.Path == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidRoute)
	}
	if r.Component.Build == nil {
		return fmt.Errorf("%w: %q has no component builder", ErrInvalidRoute, r.Path)
	}
	return nil
}

// ── Registry ──────────────────────────────────────────────────────────────────

// Registry is the flat path → route map shared by module registration and
// the router. The router reads it; modules write into it.
type Registry struct {
	mu     sync.RWMutex
	routes map[string]Route
}

// NewRegistry creates an empty route registry.
func NewRegistry() *Registry {
	return &Registry{routes: make(map[string]Route)}
}

// Register adds a route, failing with ErrDuplicateRoute on path collision.
func (g *Registry) Register(r Route) error {
	if err := r.validate(); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if existing, ok := g.routes[r.Path]; ok {
		return fmt.Errorf("%w: %q already registered (component %q)", ErrDuplicateRoute, r.Path, existing.Name)
	}
	g.routes[r.Path] = r
	return nil
}

// RegisterAll registers routes in order, stopping at the first error.
func (g *Registry) RegisterAll(routes ...Route) error {
	for _, r := range routes {
		if err := g.Register(r); err != nil {
			return err
		}
	}
	return nil
}

// GetByPath looks a route up by its path.
func (g *Registry) GetByPath(path string) (Route, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	r, ok := g.routes[path]
	return r, ok
}

// All returns a copy of the path → route map.
func (g *Registry) All() map[string]Route {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make(map[string]Route, len(g.routes))
	for p, r := range g.routes {
		out[p] = r
	}
	return out
}

// ByKind returns the routes of one display kind, sorted by path.
func (g *Registry) ByKind(k Kind) []Route {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var out []Route
	for _, r := range g.routes {
		if r.Kind == k {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Paths returns all registered paths, sorted.
func (g *Registry) Paths() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]string, 0, len(g.routes))
	for p := range g.routes {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of registered routes.
func (g *Registry) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.routes)
}

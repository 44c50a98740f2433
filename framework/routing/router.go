package routing

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/km-arc/go-nest/framework/container"
	"github.com/km-arc/go-nest/framework/logging"
)

// ── Lifecycle capabilities ────────────────────────────────────────────────────

// OnInit is the optional init hook: called once, after construction,
// before the component is handed to the presenter.
type OnInit interface {
	OnInit()
}

// OnDestroy is the optional destroy hook: called once on the previous
// instance before the next navigation proceeds. It is the only point at
// which a component is retired.
type OnDestroy interface {
	OnDestroy()
}

// RouteParamsReceiver is the secondary route-data channel: a component
// that opts in has SetRouteParams called with the navigation data right
// after construction (redundant with BuildArgs.RouteData).
type RouteParamsReceiver interface {
	SetRouteParams(data map[string]any)
}

// ── Presenter ─────────────────────────────────────────────────────────────────

// Presenter shows a constructed component. It is the external collaborator
// owning all GUI-visible side effects: a KindDialog route may be presented
// modally-blocking, windows and widgets are shown non-blocking. The
// router's reentrancy guard is released before Present runs, so a modal
// dialog's own event handling may navigate again.
type Presenter interface {
	Present(route Route, instance any)
}

// PresenterFunc adapts a function to the Presenter interface.
type PresenterFunc func(route Route, instance any)

func (f PresenterFunc) Present(route Route, instance any) { f(route, instance) }

// ── Router ────────────────────────────────────────────────────────────────────

// Router is the navigation state machine. It holds at most one live
// component instance; navigating replaces it, never stacks it.
//
// All navigation is synchronous on the calling thread. Navigate is not
// reentrant: calling it from an OnInit/OnDestroy hook fails with
// ErrNavigationInProgress.
type Router struct {
	container  *container.Container
	registry   *Registry
	presenter  Presenter
	log        logging.Logger
	current    *Route
	instance   any
	instanceID string
	navigating bool
}

// RouterOption configures a Router.
type RouterOption func(*Router)

// WithPresenter sets the presentation-layer collaborator.
func WithPresenter(p Presenter) RouterOption { return func(r *Router) { r.presenter = p } }

// WithLogger sets the router's logger.
func WithLogger(l logging.Logger) RouterOption { return func(r *Router) { r.log = l } }

// New creates a Router resolving component dependencies through c and
// looking paths up in reg.
func New(c *container.Container, reg *Registry, opts ...RouterOption) *Router {
	r := &Router{container: c, registry: reg, log: logging.Discard}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetPresenter replaces the presenter (nil disables presentation).
func (r *Router) SetPresenter(p Presenter) { r.presenter = p }

// SetLogger replaces the router's logger.
func (r *Router) SetLogger(l logging.Logger) {
	if l != nil {
		r.log = l
	}
}

// ── Registration ──────────────────────────────────────────────────────────────

// Register adds a single route to the registry.
func (r *Router) Register(route Route) error { return r.registry.Register(route) }

// RegisterRoutes adds multiple routes to the registry.
func (r *Router) RegisterRoutes(routes ...Route) error { return r.registry.RegisterAll(routes...) }

// Routes returns a copy of the registered path → route map.
func (r *Router) Routes() map[string]Route { return r.registry.All() }

// ── Navigation ────────────────────────────────────────────────────────────────

// Navigate retires the current component and activates the one routed at
// path, in strict order: destroy hook → route lookup → construction →
// route params → init hook → record → present.
//
// The previous instance is torn down before the lookup, so navigating to
// an unregistered path after a successful navigation leaves the router
// Idle: ErrRouteNotFound is returned and no component is active.
//
// A brand-new instance is constructed on every call, including
// re-navigation to the current path.
func (r *Router) Navigate(path string, data map[string]any) error {
	if r.navigating {
		return fmt.Errorf("%w: navigate(%q) called from a lifecycle hook", ErrNavigationInProgress, path)
	}
	route, instance, err := r.transition(path, data)
	if err != nil {
		return err
	}
	if r.presenter != nil {
		r.presenter.Present(route, instance)
	}
	return nil
}

// transition runs steps 1–8 under the reentrancy guard; presentation
// happens after the guard is released.
func (r *Router) transition(path string, data map[string]any) (Route, any, error) {
	r.navigating = true
	defer func() { r.navigating = false }()

	if data == nil {
		data = map[string]any{}
	}

	// Retire the active component first.
	if r.instance != nil {
		if d, ok := r.instance.(OnDestroy); ok {
			d.OnDestroy()
		}
		r.log.Debug("destroyed instance %s of %q", shortID(r.instanceID), r.currentPath())
		r.instance = nil
		r.current = nil
		r.instanceID = ""
	}

	route, ok := r.registry.GetByPath(path)
	if !ok {
		return Route{}, nil, fmt.Errorf("%w: %q", ErrRouteNotFound, path)
	}

	args := BuildArgs{
		RouteData: data,
		Router:    r,
		Deps:      make(map[container.Token]any, len(route.Component.Deps)),
	}
	for _, token := range route.Component.Deps {
		v, err := r.container.Get(token)
		if err != nil {
			// Best-effort injection: the component falls back to its own
			// default for this dependency.
			r.log.Debug("skipping dependency %q for %q: %v", token, path, err)
			continue
		}
		args.Deps[token] = v
	}

	instance := route.Component.Build(args)
	if rp, ok := instance.(RouteParamsReceiver); ok {
		rp.SetRouteParams(data)
	}
	if in, ok := instance.(OnInit); ok {
		in.OnInit()
	}

	r.current = &route
	r.instance = instance
	r.instanceID = uuid.NewString()
	r.log.Info("navigated to %q (%s, instance %s)", path, route.Kind, shortID(r.instanceID))
	return route, instance, nil
}

// ── State ─────────────────────────────────────────────────────────────────────

// CurrentRoute returns the active route, if any.
func (r *Router) CurrentRoute() (Route, bool) {
	if r.current == nil {
		return Route{}, false
	}
	return *r.current, true
}

// CurrentInstance returns the live component instance, or nil when Idle.
func (r *Router) CurrentInstance() any { return r.instance }

// CurrentInstanceID returns the live instance's correlation id, or "".
func (r *Router) CurrentInstanceID() string { return r.instanceID }

// LogRoutes writes the registered route table through the logger.
func (r *Router) LogRoutes(title string) {
	routes := r.registry.All()
	r.log.Info("%s (%d routes)", title, len(routes))
	for _, path := range r.registry.Paths() {
		route := routes[path]
		r.log.Info("  %-30s -> %-25s [%s]", path, route.Name, route.Kind)
	}
}

func (r *Router) currentPath() string {
	if r.current == nil {
		return ""
	}
	return r.current.Path
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

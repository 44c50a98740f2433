package module

import (
	"errors"
	"fmt"

	"github.com/km-arc/go-nest/framework/container"
	"github.com/km-arc/go-nest/framework/logging"
	"github.com/km-arc/go-nest/framework/routing"
)

// ErrImportCycle is returned when a module's imports reach back to a
// module that is still being registered (A imports B imports A).
var ErrImportCycle = errors.New("module: import cycle")

// Factory turns registered modules into a resolved dependency graph: it
// owns the container and the route registry, registers module trees
// imports-first, and eagerly warms the singleton cache up.
type Factory struct {
	container *container.Container
	routes    *routing.Registry
	log       logging.Logger

	registered  map[*Module]bool
	visiting    map[*Module]bool
	modules     []*Module
	initialized bool
}

// Option configures a Factory.
type Option func(*Factory)

// WithLogger sets the logger used for warm-up warnings.
func WithLogger(l logging.Logger) Option { return func(f *Factory) { f.log = l } }

// WithContainer supplies a pre-built container instead of a fresh one.
func WithContainer(c *container.Container) Option { return func(f *Factory) { f.container = c } }

// SetLogger swaps the factory's logger, typically once the container has
// resolved the real one.
func (f *Factory) SetLogger(l logging.Logger) {
	if l != nil {
		f.log = l
	}
}

// New creates an empty Factory.
func New(opts ...Option) *Factory {
	f := &Factory{
		log:        logging.Discard,
		registered: make(map[*Module]bool),
		visiting:   make(map[*Module]bool),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.container == nil {
		f.container = container.New()
	}
	f.routes = routing.NewRegistry()
	return f
}

// ── Registration ──────────────────────────────────────────────────────────────

// Register registers one or more module trees. For each module its imports
// are registered first (so their providers are available at root scope),
// then its own providers are bound, then its routes are merged into the
// route registry. Registering a module twice is a no-op; an import cycle
// fails with ErrImportCycle.
func (f *Factory) Register(mods ...*Module) error {
	for _, m := range mods {
		if err := f.registerModule(m); err != nil {
			return err
		}
	}
	return nil
}

func (f *Factory) registerModule(m *Module) error {
	if f.registered[m] {
		return nil
	}
	if f.visiting[m] {
		return fmt.Errorf("%w: module %q imports itself transitively", ErrImportCycle, m.Name)
	}
	f.visiting[m] = true
	defer delete(f.visiting, m)

	for _, imp := range m.Imports {
		if err := f.registerModule(imp); err != nil {
			return err
		}
	}

	for _, p := range m.Providers {
		if err := f.container.Bind(p); err != nil {
			return fmt.Errorf("module %q: %w", m.Name, err)
		}
	}

	for _, r := range m.Routes {
		if err := f.routes.Register(r); err != nil {
			return fmt.Errorf("module %q: %w", m.Name, err)
		}
	}

	f.registered[m] = true
	f.modules = append(f.modules, m)
	f.log.Debug("registered module %q (%d providers, %d routes)", m.Name, len(m.Providers), len(m.Routes))
	return nil
}

// ── Eager warm-up ─────────────────────────────────────────────────────────────

// Initialize resolves every bound token once so all singletons exist
// before the first navigation. A failing resolution is non-fatal here: it
// is logged as a warning and the remaining tokens continue — unlike lazy
// Get, which fails to its caller. Idempotent.
func (f *Factory) Initialize() {
	if f.initialized {
		return
	}
	for _, token := range f.container.Tokens() {
		if _, err := f.container.Get(token); err != nil {
			f.log.Warn("failed to initialize provider %q: %v", token, err)
		}
	}
	f.initialized = true
}

// Initialized reports whether the eager warm-up pass has run.
func (f *Factory) Initialized() bool { return f.initialized }

// ── Accessors ─────────────────────────────────────────────────────────────────

// Get resolves a token from the container (lazy, fatal on failure).
func (f *Factory) Get(token container.Token) (any, error) {
	return f.container.Get(token)
}

// Container returns the factory's container.
func (f *Factory) Container() *container.Container { return f.container }

// Routes returns the route registry populated by module registration.
func (f *Factory) Routes() *routing.Registry { return f.routes }

// Modules returns the modules in registration order (imports first).
func (f *Factory) Modules() []*Module { return f.modules }

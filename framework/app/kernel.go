package app

import (
	"fmt"

	"github.com/km-arc/go-nest/framework/config"
	"github.com/km-arc/go-nest/framework/container"
	"github.com/km-arc/go-nest/framework/logging"
	"github.com/km-arc/go-nest/framework/module"
	"github.com/km-arc/go-nest/framework/providers"
	"github.com/km-arc/go-nest/framework/routing"
)

// Application is the top-level kernel. It embeds the module Factory so
// user code can call app.Register(), app.Initialize(), app.Get() directly,
// and owns the Router built over the factory's container and routes.
type Application struct {
	*module.Factory
	router *routing.Router
}

// New creates and bootstraps the application: a fresh factory with the
// framework core module (config + logger) registered, and a router over
// its container and route registry.
func New(envFiles ...string) *Application {
	f := module.New()
	if err := f.Register(providers.Core(envFiles...)); err != nil {
		// The core module is static; a bind failure is a programming error.
		panic(fmt.Sprintf("app: register core module: %v", err))
	}
	return &Application{
		Factory: f,
		router:  routing.New(f.Container(), f.Routes()),
	}
}

// Router returns the navigation router.
func (a *Application) Router() *routing.Router { return a.router }

// SetPresenter wires the presentation layer into the router.
func (a *Application) SetPresenter(p routing.Presenter) { a.router.SetPresenter(p) }

// Navigate is shorthand for Router().Navigate.
func (a *Application) Navigate(path string, data map[string]any) error {
	return a.router.Navigate(path, data)
}

// Config resolves *config.Config from the container.
func (a *Application) Config() *config.Config {
	return container.MustResolve[*config.Config](a.Container(), providers.TokenConfig)
}

// Logger resolves the application logger from the container.
func (a *Application) Logger() logging.Logger {
	return container.MustResolve[logging.Logger](a.Container(), providers.TokenLogger)
}

// Start runs the eager warm-up pass, wires the container logger into the
// router, and navigates to path — or to app.initial_route from config when
// path is empty. With neither set the application stays Idle and Start
// returns nil after warm-up.
func (a *Application) Start(path string) error {
	if lg, err := container.Resolve[logging.Logger](a.Container(), providers.TokenLogger); err == nil {
		a.SetLogger(lg)
		a.router.SetLogger(lg)
	}
	a.Initialize()
	if path == "" {
		path = a.Config().App.InitialRoute
	}
	if path == "" {
		return nil
	}
	return a.router.Navigate(path, nil)
}

// Environment returns the app.env config value.
func (a *Application) Environment() string { return a.Config().App.Env }
func (a *Application) IsLocal() bool       { return a.Environment() == "local" }
func (a *Application) IsProduction() bool  { return a.Environment() == "production" }
func (a *Application) IsTesting() bool     { return a.Environment() == "testing" }
func (a *Application) IsDebug() bool       { return a.Config().App.Debug }
func (a *Application) Version() string     { return "0.1.0" }

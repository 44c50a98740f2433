package app_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/km-arc/go-nest/framework/app"
	"github.com/km-arc/go-nest/framework/container"
	"github.com/km-arc/go-nest/framework/logging"
	"github.com/km-arc/go-nest/framework/module"
	"github.com/km-arc/go-nest/framework/providers"
	"github.com/km-arc/go-nest/framework/routing"
)

// chdir isolates Load from any config.yml in the working tree.
func chdir(t *testing.T) {
	t.Helper()
	for _, key := range []string{"APP_NAME", "APP_ENV", "APP_DEBUG", "APP_INITIAL_ROUTE", "LOG_LEVEL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	dir := t.TempDir()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}

// homeView is the example scenario's component: it wants the logger from
// the container and records its lifecycle.
type homeView struct {
	routeData map[string]any
	logger    logging.Logger
	inits     int
}

func (v *homeView) OnInit() {
	v.inits++
	v.logger.Info("home ready for %v", v.routeData["user"])
}

func TestApplication_BindsCoreModule(t *testing.T) {
	chdir(t)
	a := app.New("nonexistent.env")

	if a.Config() == nil {
		t.Fatal("config should resolve")
	}
	if a.Logger() == nil {
		t.Fatal("logger should resolve")
	}
	if !a.IsLocal() || a.IsProduction() {
		t.Errorf("default env = %q", a.Environment())
	}
}

// The example scenario: a module provides a console logger and a /home
// route; navigating with {user: Ada} constructs HomeView with the data,
// the resolved logger, and exactly one OnInit call.
func TestApplication_NavigateExampleScenario(t *testing.T) {
	chdir(t)

	var buf bytes.Buffer
	consoleLogger := logging.New("home", logging.WithWriter(&buf))

	appModule := &module.Module{
		Name: "app",
		Providers: []container.Provider{
			container.Value("homeLogger", consoleLogger),
		},
		Routes: []routing.Route{{
			Name: "HomeView",
			Path: "/home",
			Kind: routing.KindWindow,
			Component: routing.ComponentSpec{
				Deps: []container.Token{"homeLogger"},
				Build: func(args routing.BuildArgs) any {
					return &homeView{
						routeData: args.RouteData,
						logger:    routing.Dep[logging.Logger](args, "homeLogger", logging.Discard),
					}
				},
			},
		}},
	}

	a := app.New("nonexistent.env")
	if err := a.Register(appModule); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := a.Start(""); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if err := a.Navigate("/home", map[string]any{"user": "Ada"}); err != nil {
		t.Fatalf("Navigate: %v", err)
	}

	v, ok := a.Router().CurrentInstance().(*homeView)
	if !ok {
		t.Fatalf("current instance = %T", a.Router().CurrentInstance())
	}
	if v.routeData["user"] != "Ada" {
		t.Errorf("routeData = %v", v.routeData)
	}
	if v.logger != consoleLogger {
		t.Error("bound logger should be injected")
	}
	if v.inits != 1 {
		t.Errorf("OnInit ran %d times, want 1", v.inits)
	}
	if route, _ := a.Router().CurrentRoute(); route.Path != "/home" {
		t.Errorf("current route = %q, want /home", route.Path)
	}
}

func TestApplication_StartNavigatesToInitialRoute(t *testing.T) {
	chdir(t)
	t.Setenv("APP_INITIAL_ROUTE", "/landing")

	landed := false
	m := &module.Module{
		Name: "ui",
		Routes: []routing.Route{{
			Name: "Landing", Path: "/landing", Kind: routing.KindWindow,
			Component: routing.ComponentSpec{Build: func(args routing.BuildArgs) any {
				landed = true
				return struct{}{}
			}},
		}},
	}

	a := app.New("nonexistent.env")
	if err := a.Register(m); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := a.Start(""); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !landed {
		t.Error("Start should navigate to app.initial_route")
	}
}

func TestApplication_StartWithoutRouteStaysIdle(t *testing.T) {
	chdir(t)
	a := app.New("nonexistent.env")

	if err := a.Start(""); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !a.Initialized() {
		t.Error("Start should run the warm-up pass")
	}
	if _, ok := a.Router().CurrentRoute(); ok {
		t.Error("no route should be active without an initial route")
	}
}

func TestApplication_PresenterReceivesNavigation(t *testing.T) {
	chdir(t)

	m := &module.Module{
		Name: "ui",
		Routes: []routing.Route{{
			Name: "W", Path: "/w", Kind: routing.KindWidget,
			Component: routing.ComponentSpec{Build: func(args routing.BuildArgs) any { return struct{}{} }},
		}},
	}
	a := app.New("nonexistent.env")
	if err := a.Register(m); err != nil {
		t.Fatalf("Register: %v", err)
	}

	var shown []string
	a.SetPresenter(routing.PresenterFunc(func(route routing.Route, instance any) {
		shown = append(shown, route.Path)
	}))

	if err := a.Start("/w"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if len(shown) != 1 || shown[0] != "/w" {
		t.Errorf("shown = %v", shown)
	}
}

func TestApplication_GetResolvesCoreTokens(t *testing.T) {
	chdir(t)
	a := app.New("nonexistent.env")

	if _, err := a.Get(providers.TokenConfig); err != nil {
		t.Errorf("Get(config): %v", err)
	}
	if _, err := a.Get(providers.TokenLogger); err != nil {
		t.Errorf("Get(logger): %v", err)
	}
}

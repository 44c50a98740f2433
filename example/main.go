// Command example composes a small application from modules and navigates
// between its views inside a bubbletea program. Keys: h → /home,
// s → /settings, a → /about (dialog), q quits.
package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/km-arc/go-nest/framework/app"
	"github.com/km-arc/go-nest/framework/container"
	"github.com/km-arc/go-nest/framework/logging"
	"github.com/km-arc/go-nest/framework/module"
	"github.com/km-arc/go-nest/framework/routing"
)

// ── Styles ────────────────────────────────────────────────────────────────────

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#89b4fa"))
	bodyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#cdd6f4"))
	frameStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
	dialogStyle = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).Padding(1, 4).Foreground(lipgloss.Color("#f9e2af"))
	statusStyle = lipgloss.NewStyle().Faint(true)
)

// renderable is the display contract the example's presenter expects.
type renderable interface {
	Render() string
}

// ── Services ──────────────────────────────────────────────────────────────────

type greeter struct {
	log logging.Logger
}

func (g *greeter) Greet(name string) string {
	g.log.Debug("greeting %q", name)
	return fmt.Sprintf("Hello, %s!", name)
}

var servicesModule = &module.Module{
	Name: "services",
	Providers: []container.Provider{
		container.Class("greeter", func(deps ...any) any {
			return &greeter{log: deps[0].(logging.Logger)}
		}, "logger"),
	},
	Exports: []container.Token{"greeter"},
}

// ── Views ─────────────────────────────────────────────────────────────────────

type homeView struct {
	greeting string
	log      logging.Logger
}

func (v *homeView) OnInit()    { v.log.Info("home view initialized") }
func (v *homeView) OnDestroy() { v.log.Info("home view destroyed") }

func (v *homeView) Render() string {
	return frameStyle.Render(
		titleStyle.Render("Home") + "\n\n" + bodyStyle.Render(v.greeting))
}

type settingsView struct {
	routeParams map[string]any
}

func (v *settingsView) SetRouteParams(data map[string]any) { v.routeParams = data }

func (v *settingsView) Render() string {
	lines := []string{titleStyle.Render("Settings"), ""}
	for k, val := range v.routeParams {
		lines = append(lines, bodyStyle.Render(fmt.Sprintf("%s = %v", k, val)))
	}
	if len(v.routeParams) == 0 {
		lines = append(lines, bodyStyle.Render("(no route params)"))
	}
	return frameStyle.Render(strings.Join(lines, "\n"))
}

type aboutDialog struct{}

func (d *aboutDialog) Render() string {
	return dialogStyle.Render("go-nest example\n\nmodular navigation for terminal apps")
}

var uiModule = &module.Module{
	Name:    "ui",
	Imports: []*module.Module{servicesModule},
	Routes: []routing.Route{
		{
			Name: "HomeView",
			Path: "/home",
			Kind: routing.KindWindow,
			Component: routing.ComponentSpec{
				Deps: []container.Token{"greeter", "logger"},
				Build: func(a routing.BuildArgs) any {
					name, _ := a.RouteData["user"].(string)
					if name == "" {
						name = "world"
					}
					g := routing.Dep[*greeter](a, "greeter", nil)
					greeting := "Hello!"
					if g != nil {
						greeting = g.Greet(name)
					}
					return &homeView{
						greeting: greeting,
						log:      routing.Dep[logging.Logger](a, "logger", logging.Discard),
					}
				},
			},
		},
		{
			Name: "SettingsView",
			Path: "/settings",
			Kind: routing.KindWidget,
			Component: routing.ComponentSpec{
				Build: func(a routing.BuildArgs) any { return &settingsView{} },
			},
		},
		{
			Name: "AboutDialog",
			Path: "/about",
			Kind: routing.KindDialog,
			Component: routing.ComponentSpec{
				Build: func(a routing.BuildArgs) any { return &aboutDialog{} },
			},
		},
	},
}

// ── Bubbletea host ────────────────────────────────────────────────────────────

// host owns the application and shows whatever the presenter last handed
// over. Dialogs overlay until any key is pressed.
type host struct {
	app     *app.Application
	content string
	dialog  string
	status  string
}

func (h *host) Init() tea.Cmd { return nil }

func (h *host) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return h, nil
	}
	if h.dialog != "" {
		h.dialog = ""
		return h, nil
	}
	switch key.String() {
	case "q", "ctrl+c":
		return h, tea.Quit
	case "h":
		h.navigate("/home", map[string]any{"user": "Ada"})
	case "s":
		h.navigate("/settings", map[string]any{"theme": "mocha", "pageSize": 20})
	case "a":
		h.navigate("/about", nil)
	}
	return h, nil
}

func (h *host) navigate(path string, data map[string]any) {
	if err := h.app.Navigate(path, data); err != nil {
		h.status = err.Error()
		return
	}
	route, _ := h.app.Router().CurrentRoute()
	h.status = fmt.Sprintf("at %s [%s]", route.Path, route.Kind)
}

func (h *host) View() string {
	view := h.content
	if h.dialog != "" {
		view = h.dialog
	}
	help := statusStyle.Render("h: home  s: settings  a: about  q: quit  " + h.status)
	return view + "\n" + help + "\n"
}

func main() {
	application := app.New()
	if err := application.Register(uiModule); err != nil {
		fmt.Fprintln(os.Stderr, "register:", err)
		os.Exit(1)
	}

	h := &host{}
	h.app = application
	application.SetPresenter(routing.PresenterFunc(func(route routing.Route, instance any) {
		view, ok := instance.(renderable)
		if !ok {
			return
		}
		if route.Kind == routing.KindDialog {
			h.dialog = view.Render()
			return
		}
		h.content = view.Render()
	}))

	if err := application.Start("/home"); err != nil {
		fmt.Fprintln(os.Stderr, "start:", err)
		os.Exit(1)
	}

	if _, err := tea.NewProgram(h).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "run:", err)
		os.Exit(1)
	}
}

// Package module implements the declarative module system: named bundles
// of providers, imported sub-modules, exported tokens and routes, plus the
// Factory that resolves them into a running container and route registry.
//
//	// NestJS:
//	// @Module({
//	//   imports:   [LoggerModule],
//	//   providers: [{ provide: Greeter, useClass: Greeter }],
//	//   routes:    [{ path: '/home', component: HomeView }],
//	// })
//	var AppModule = &module.Module{
//	    Name:    "app",
//	    Imports: []*module.Module{LoggerModule},
//	    Providers: []container.Provider{
//	        container.Class("greeter", newGreeter, "logger"),
//	    },
//	    Routes: []routing.Route{homeRoute},
//	}
package module

import (
	"github.com/km-arc/go-nest/framework/container"
	"github.com/km-arc/go-nest/framework/routing"
)

// Module is an immutable bundle of providers, imports, exports and routes,
// declared once at package level and registered with a Factory.
//
// Imports must form a DAG: the Factory registers imports before the module
// itself and fails fast on cycles. Exports are declarative metadata — the
// provider graph is flat, every bound token is resolvable at root scope.
type Module struct {
	Name      string
	Providers []container.Provider
	Imports   []*Module
	Exports   []container.Token
	Routes    []routing.Route
}

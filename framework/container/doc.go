// Package container provides a NestJS-style IoC (Inversion of Control)
// container for Go.
//
// # Overview
//
// The container turns declarative providers into singleton instances. A
// provider names a token and exactly one production strategy:
//
//	// NestJS: { provide: Logger, useClass: ConsoleLogger }
//	c.Bind(container.Class("logger", func(deps ...any) any {
//	    return logging.New("app")
//	}))
//
//	// NestJS: { provide: API_URL, useValue: "https://api.example.com" }
//	c.Bind(container.Value("apiURL", "https://api.example.com"))
//
//	// NestJS: { provide: Repo, useFactory: (db) => new Repo(db), inject: [DB] }
//	c.Bind(container.Factory("repo", func(deps ...any) (any, error) {
//	    return NewRepo(deps[0].(*DB)), nil
//	}, "db"))
//
// Because Go has no runtime constructor introspection, auto-wiring is
// replaced by the explicit Inject list: tokens are resolved recursively in
// declared order and handed to the constructor or factory positionally.
//
// # Resolving
//
//	// Untyped
//	raw, err := c.Get("logger")
//
//	// Generic (preferred — no type assertion required)
//	logger, err := container.Resolve[logging.Logger](c, "logger")
//
// Every binding is singleton-scoped: two Gets return the identical
// instance. An unresolvable token is ErrUnresolvedToken; an Inject chain
// that reaches itself is ErrDependencyCycle.
//
// Modules bundle providers together with routes; see the module package
// for registration and eager warm-up.
package container

package container

import "fmt"

// ── Tokens ────────────────────────────────────────────────────────────────────

// Token identifies a binding in the container. Tokens must be unique per
// container; a plain string is fine, TypeKey derives one from a Go type.
type Token = string

// ── Provider ──────────────────────────────────────────────────────────────────

// Constructor builds a class-provided implementation. It receives the
// provider's Inject tokens resolved, in declared order.
type Constructor func(deps ...any) any

// FactoryFunc builds a factory-provided value. Unlike constructors, a
// factory may fail.
type FactoryFunc func(deps ...any) (any, error)

// Provider is a declarative recipe for producing the value of a token —
// the NestJS provider shape:
//
//	// NestJS: { provide: Logger, useClass: ConsoleLogger }
//	container.Class("logger", func(deps ...any) any { return logging.New("app") })
//
//	// NestJS: { provide: API_URL, useValue: "https://..." }
//	container.Value("apiURL", "https://example.com")
//
//	// NestJS: { provide: Repo, useFactory: (db) => new Repo(db), inject: [DB] }
//	container.Factory("repo", newRepo, "db")
//
// Exactly one of UseValue, UseClass, UseFactory must be set; Bind rejects
// anything else with ErrInvalidProvider.
type Provider struct {
	Token Token

	// UseValue binds a constant; it is returned verbatim on every Get.
	UseValue any

	// UseClass binds a constructor for the implementation type.
	UseClass Constructor

	// UseFactory binds a fallible factory function.
	UseFactory FactoryFunc

	// Inject lists the tokens resolved and passed to UseClass/UseFactory,
	// in order. This is the compile-time injection descriptor — Go cannot
	// introspect constructor parameters at runtime.
	Inject []Token
}

// Value declares a constant provider.
func Value(token Token, value any) Provider {
	return Provider{Token: token, UseValue: value}
}

// Class declares a constructor provider with its injected dependencies.
func Class(token Token, ctor Constructor, inject ...Token) Provider {
	return Provider{Token: token, UseClass: ctor, Inject: inject}
}

// Factory declares a factory provider with its injected dependencies.
func Factory(token Token, fn FactoryFunc, inject ...Token) Provider {
	return Provider{Token: token, UseFactory: fn, Inject: inject}
}

// validate enforces the exactly-one-strategy invariant.
func (p Provider) validate() error {
	if p.Token == "" {
		return fmt.Errorf("%w: empty token", ErrInvalidProvider)
	}
	n := 0
	if p.UseValue != nil {
		n++
	}
	if p.UseClass != nil {
		n++
	}
	if p.UseFactory != nil {
		n++
	}
	switch n {
	case 1:
		return nil
	case 0:
		return fmt.Errorf("%w: %q declares no strategy (UseValue, UseClass or UseFactory)", ErrInvalidProvider, p.Token)
	default:
		return fmt.Errorf("%w: %q declares %d strategies, want exactly one", ErrInvalidProvider, p.Token, n)
	}
}

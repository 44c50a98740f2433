package container

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
)

// ── Errors ────────────────────────────────────────────────────────────────────

var (
	// ErrUnresolvedToken is returned by Get when no provider is bound.
	ErrUnresolvedToken = errors.New("container: unresolved token")

	// ErrDependencyCycle is returned when a provider's Inject chain reaches
	// a token that is already being resolved further up the stack.
	ErrDependencyCycle = errors.New("container: dependency cycle")

	// ErrInvalidProvider is returned by Bind for a malformed provider.
	ErrInvalidProvider = errors.New("container: invalid provider")

	// ErrSelfAlias is returned when a token is aliased to itself.
	ErrSelfAlias = errors.New("container: token aliased to itself")
)

// ── Container ─────────────────────────────────────────────────────────────────

// Container binds tokens to providers and caches resolved singletons.
//
// Every strategy is singleton-scoped: the first Get resolves and caches,
// later Gets return the identical instance. Value providers are cached at
// Bind time.
//
// Map access is guarded for multi-threaded hosts, but resolution itself is
// synchronous and must not be invoked concurrently — the build stack that
// powers cycle detection is single-threaded by contract.
type Container struct {
	mu sync.RWMutex

	// token → provider
	providers map[Token]Provider

	// token → resolved singleton instance
	instances map[Token]any

	// alias → canonical token
	aliases map[Token]Token

	// tokens currently being resolved (cycle detection)
	buildStack []Token
}

// New creates an empty container. The container binds itself under the
// "container" token so factories can receive it as an ordinary dependency.
func New() *Container {
	c := &Container{
		providers: make(map[Token]Provider),
		instances: make(map[Token]any),
		aliases:   make(map[Token]Token),
	}
	_ = c.Bind(Value("container", c))
	return c
}

// ── Registration ──────────────────────────────────────────────────────────────

// Bind registers a provider under its token. Rebinding a token drops any
// cached instance so the next Get resolves with the new provider. A value
// provider is pre-cached: Get returns the constant verbatim.
func (c *Container) Bind(p Provider) error {
	if err := p.validate(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	key := c.canonical(p.Token)
	delete(c.instances, key)
	c.providers[key] = p
	if p.UseValue != nil {
		c.instances[key] = p.UseValue
	}
	return nil
}

// MustBind is Bind for static, known-good providers; it panics on error.
func (c *Container) MustBind(ps ...Provider) {
	for _, p := range ps {
		if err := c.Bind(p); err != nil {
			panic(err)
		}
	}
}

// Alias registers an alternative name for a token.
func (c *Container) Alias(token, alias Token) error {
	if token == alias {
		return fmt.Errorf("%w: %q", ErrSelfAlias, token)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aliases[alias] = c.canonical(token)
	return nil
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Get returns the instance bound to token, resolving and caching it on
// first use. Dependencies declared in the provider's Inject list are
// resolved recursively, in order. Fails with ErrUnresolvedToken when no
// provider is bound — unlike the Factory's eager warm-up, this is fatal to
// the caller.
func (c *Container) Get(token Token) (any, error) {
	c.mu.RLock()
	key := c.canonical(token)
	inst, cached := c.instances[key]
	c.mu.RUnlock()
	if cached {
		return inst, nil
	}

	c.mu.RLock()
	p, bound := c.providers[key]
	c.mu.RUnlock()
	if !bound {
		return nil, fmt.Errorf("%w: %q", ErrUnresolvedToken, token)
	}

	for _, t := range c.buildStack {
		if t == key {
			return nil, fmt.Errorf("%w: %s", ErrDependencyCycle,
				strings.Join(append(c.buildStack, key), " -> "))
		}
	}
	c.buildStack = append(c.buildStack, key)
	defer func() { c.buildStack = c.buildStack[:len(c.buildStack)-1] }()

	deps := make([]any, len(p.Inject))
	for i, dep := range p.Inject {
		v, err := c.Get(dep)
		if err != nil {
			return nil, fmt.Errorf("resolving %q for %q: %w", dep, token, err)
		}
		deps[i] = v
	}

	switch {
	case p.UseClass != nil:
		inst = p.UseClass(deps...)
	case p.UseFactory != nil:
		var err error
		inst, err = p.UseFactory(deps...)
		if err != nil {
			return nil, fmt.Errorf("factory for %q: %w", token, err)
		}
	default:
		// Value providers are cached at Bind time; only a Forget of the
		// instance but not the provider lands here.
		inst = p.UseValue
	}

	c.mu.Lock()
	c.instances[key] = inst
	c.mu.Unlock()
	return inst, nil
}

// MustGet is Get that panics on failure.
func (c *Container) MustGet(token Token) any {
	inst, err := c.Get(token)
	if err != nil {
		panic(err)
	}
	return inst
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// Bound reports whether a provider (or cached instance) exists for token.
func (c *Container) Bound(token Token) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	key := c.canonical(token)
	_, hasProvider := c.providers[key]
	_, hasInstance := c.instances[key]
	return hasProvider || hasInstance
}

// Resolved reports whether token has been resolved at least once.
func (c *Container) Resolved(token Token) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.instances[c.canonical(token)]
	return ok
}

// Tokens returns all bound tokens, sorted.
func (c *Container) Tokens() []Token {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Token, 0, len(c.providers))
	for k := range c.providers {
		out = append(out, k)
	}
	for k := range c.instances {
		if _, already := c.providers[k]; !already {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// Forget removes the provider and cached instance for a token.
func (c *Container) Forget(token Token) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := c.canonical(token)
	delete(c.providers, key)
	delete(c.instances, key)
}

// Flush resets the container to empty (the self-binding included).
func (c *Container) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.providers = make(map[Token]Provider)
	c.instances = make(map[Token]any)
	c.aliases = make(map[Token]Token)
}

// canonical resolves an alias to its canonical token (callers hold mu).
func (c *Container) canonical(token Token) Token {
	if target, ok := c.aliases[token]; ok {
		return target
	}
	return token
}

// ── Reflect helper ────────────────────────────────────────────────────────────

// TypeKey returns the package-qualified type name of v, useful as a stable
// token when binding interfaces.
//
//	key := container.TypeKey((*logging.Logger)(nil))
func TypeKey(v any) Token {
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.PkgPath() + "." + t.Name()
}

// ── Generics helpers ──────────────────────────────────────────────────────────

// Resolve resolves token and type-asserts the result.
//
//	logger, err := container.Resolve[logging.Logger](c, "logger")
func Resolve[T any](c *Container, token Token) (T, error) {
	var zero T
	inst, err := c.Get(token)
	if err != nil {
		return zero, err
	}
	typed, ok := inst.(T)
	if !ok {
		return zero, fmt.Errorf("container: Resolve[%T]: %q resolved to %T", zero, token, inst)
	}
	return typed, nil
}

// MustResolve is Resolve that panics on failure.
func MustResolve[T any](c *Container, token Token) T {
	typed, err := Resolve[T](c, token)
	if err != nil {
		panic(err)
	}
	return typed
}

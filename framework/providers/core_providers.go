// Package providers defines the framework's built-in core module: the
// configuration and logger bindings every application starts from.
package providers

import (
	"github.com/km-arc/go-nest/framework/config"
	"github.com/km-arc/go-nest/framework/container"
	"github.com/km-arc/go-nest/framework/logging"
	"github.com/km-arc/go-nest/framework/module"
)

// Well-known tokens bound by the core module.
const (
	TokenConfig container.Token = "config"
	TokenLogger container.Token = "logger"
)

// Core returns the framework core module.
//
// Bound tokens:
//   - "config" → *config.Config (from .env / config.yml / environment)
//   - "logger" → logging.Logger (console, level from log.level)
//
// Register it before any application module so views can inject both:
//
//	f := module.New()
//	f.Register(providers.Core())
func Core(envFiles ...string) *module.Module {
	return &module.Module{
		Name: "core",
		Providers: []container.Provider{
			container.Factory(TokenConfig, func(deps ...any) (any, error) {
				return config.Load(envFiles...)
			}),
			container.Class(TokenLogger, func(deps ...any) any {
				cfg := deps[0].(*config.Config)
				return logging.New(cfg.App.Name,
					logging.WithLevel(logging.ParseLevel(cfg.Log.Level)))
			}, TokenConfig),
		},
		Exports: []container.Token{TokenConfig, TokenLogger},
	}
}

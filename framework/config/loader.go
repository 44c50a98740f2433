package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Loader navigates raw YAML group trees, for view configuration that does
// not fit the typed Config struct:
//
//	loader, _ := config.NewLoader("views.yml")
//	editor, ok := loader.Group("tables").Sub("component").
//	    Filter("name", "materials").First()
//
// Unlike Load, a missing file is an error — view configuration is not
// optional when asked for.
type Loader struct {
	path string
	v    *viper.Viper
}

// NewLoader reads a YAML file into a Loader.
func NewLoader(path string) (*Loader, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config: yaml file not found: %q: %w", path, err)
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: read %q: %w", path, err)
	}
	return &Loader{path: path, v: v}, nil
}

// Group starts a cursor at a top-level group. A missing group yields an
// empty cursor; the chain stays nil-safe throughout.
func (l *Loader) Group(name string) *Cursor {
	return &Cursor{data: l.v.Get(name)}
}

// Cursor is one position in the YAML tree; every step returns a cursor so
// lookups chain.
type Cursor struct {
	data any
}

// Sub descends into a named child of a mapping node.
func (c *Cursor) Sub(name string) *Cursor {
	m, ok := c.data.(map[string]any)
	if !ok {
		return &Cursor{}
	}
	return &Cursor{data: m[name]}
}

// Filter keeps the entries of a list (or mapping) whose key equals value.
func (c *Cursor) Filter(key string, value any) *Cursor {
	switch data := c.data.(type) {
	case []any:
		var kept []any
		for _, item := range data {
			if m, ok := item.(map[string]any); ok && m[key] == value {
				kept = append(kept, item)
			}
		}
		return &Cursor{data: kept}
	case map[string]any:
		kept := make(map[string]any)
		for k, v := range data {
			if m, ok := v.(map[string]any); ok && m[key] == value {
				kept[k] = v
			}
		}
		return &Cursor{data: kept}
	default:
		return &Cursor{}
	}
}

// First returns the first entry of a list node.
func (c *Cursor) First() (map[string]any, bool) {
	list, ok := c.data.([]any)
	if !ok || len(list) == 0 {
		return nil, false
	}
	m, ok := list[0].(map[string]any)
	return m, ok
}

// All returns the raw value at the cursor, which may be nil.
func (c *Cursor) All() any { return c.data }

// Slice returns the cursor's value as a list, or nil.
func (c *Cursor) Slice() []any {
	list, _ := c.data.([]any)
	return list
}

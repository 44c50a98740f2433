package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/km-arc/go-nest/framework/config"
)

// chdir moves into a fresh temp dir so Load never picks up a stray
// config.yml from the working tree, and clears the env keys Load reads.
func chdir(t *testing.T) string {
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
	return dir
}

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%s): %v", path, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t)

	cfg, err := config.Load("nonexistent.env")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.Name != "go-nest" {
		t.Errorf("App.Name = %q", cfg.App.Name)
	}
	if cfg.App.Env != "local" {
		t.Errorf("App.Env = %q", cfg.App.Env)
	}
	if !cfg.App.Debug {
		t.Error("App.Debug should default true")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
}

func TestLoad_ReadsYAMLFile(t *testing.T) {
	dir := chdir(t)
	write(t, filepath.Join(dir, "config.yml"), `
app:
  name: testapp
  env: testing
  debug: false
  initial_route: /home
log:
  level: warn
`)

	cfg, err := config.Load("nonexistent.env")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.Name != "testapp" || cfg.App.Env != "testing" || cfg.App.Debug {
		t.Errorf("App = %+v", cfg.App)
	}
	if cfg.App.InitialRoute != "/home" {
		t.Errorf("InitialRoute = %q", cfg.App.InitialRoute)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := chdir(t)
	write(t, filepath.Join(dir, "config.yml"), "app:\n  name: from-file\n")
	t.Setenv("APP_NAME", "from-env")

	cfg, err := config.Load("nonexistent.env")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.Name != "from-env" {
		t.Errorf("App.Name = %q, env must win over file", cfg.App.Name)
	}
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := chdir(t)
	// godotenv does not override already-set variables, so make sure the
	// key is unset first.
	os.Unsetenv("APP_ENV")
	write(t, filepath.Join(dir, ".env"), "APP_ENV=production\n")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.Env != "production" {
		t.Errorf("App.Env = %q, want value from .env", cfg.App.Env)
	}
	os.Unsetenv("APP_ENV")
}

// ── Loader ────────────────────────────────────────────────────────────────────

const viewsYAML = `
tables:
  component:
    - name: materials
      type: editable
      items: [a, b]
    - name: results
      type: readonly
      items: [c]
windows:
  title: main
`

func newLoader(t *testing.T) *config.Loader {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "views.yml")
	write(t, path, viewsYAML)
	l, err := config.NewLoader(path)
	if err != nil {
		t.Fatalf("NewLoader: %v", err)
	}
	return l
}

func TestNewLoader_MissingFileFails(t *testing.T) {
	if _, err := config.NewLoader(filepath.Join(t.TempDir(), "absent.yml")); err == nil {
		t.Error("NewLoader should fail for a missing file")
	}
}

func TestLoader_GroupSubFilterFirst(t *testing.T) {
	l := newLoader(t)

	entry, ok := l.Group("tables").Sub("component").Filter("name", "materials").First()
	if !ok {
		t.Fatal("expected a matching entry")
	}
	if entry["type"] != "editable" {
		t.Errorf("type = %v", entry["type"])
	}
}

func TestLoader_FilterNoMatch(t *testing.T) {
	l := newLoader(t)

	if _, ok := l.Group("tables").Sub("component").Filter("name", "nope").First(); ok {
		t.Error("filter with no match should yield nothing")
	}
}

func TestLoader_MissingGroupIsNilSafe(t *testing.T) {
	l := newLoader(t)

	cur := l.Group("absent").Sub("deeper").Filter("k", "v")
	if cur.All() != nil && len(cur.Slice()) != 0 {
		t.Errorf("missing group should stay empty, got %v", cur.All())
	}
	if _, ok := cur.First(); ok {
		t.Error("First on a missing group should be false")
	}
}

func TestLoader_SliceReturnsList(t *testing.T) {
	l := newLoader(t)

	list := l.Group("tables").Sub("component").Slice()
	if len(list) != 2 {
		t.Errorf("Slice = %d entries, want 2", len(list))
	}
}

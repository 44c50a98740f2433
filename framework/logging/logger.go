package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// ── Levels ────────────────────────────────────────────────────────────────────

// Level is a log severity threshold.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARNING"
	case LevelError:
		return "ERROR"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// ParseLevel maps a config string ("debug", "warn", "warning", ...) to a
// Level. Unknown values fall back to LevelDebug.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelDebug
	}
}

// ── Logger ────────────────────────────────────────────────────────────────────

// Logger is the service interface views and framework components log through.
// Register an implementation under the "logger" token so components can
// declare it as an injected dependency.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// levelStyles colors the level label; lipgloss degrades to plain text when
// the writer is not a terminal.
var levelStyles = map[Level]lipgloss.Style{
	LevelDebug: lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	LevelInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	LevelWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	LevelError: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
}

// Console is a leveled, colored line logger.
//
// Output format:
//
//	26-08-2026    15:04:05    [app] [INFO]: message
type Console struct {
	mu    sync.Mutex
	name  string
	level Level
	out   io.Writer
}

// Option configures a Console.
type Option func(*Console)

// WithLevel sets the minimum level that is written.
func WithLevel(l Level) Option { return func(c *Console) { c.level = l } }

// WithWriter redirects output (tests pass a bytes.Buffer).
func WithWriter(w io.Writer) Option { return func(c *Console) { c.out = w } }

// New creates a Console logger writing to stderr at LevelDebug.
func New(name string, opts ...Option) *Console {
	c := &Console{name: name, level: LevelDebug, out: os.Stderr}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Console) Debug(format string, args ...any) { c.log(LevelDebug, format, args...) }
func (c *Console) Info(format string, args ...any)  { c.log(LevelInfo, format, args...) }
func (c *Console) Warn(format string, args ...any)  { c.log(LevelWarn, format, args...) }
func (c *Console) Error(format string, args ...any) { c.log(LevelError, format, args...) }

func (c *Console) log(lv Level, format string, args ...any) {
	if lv < c.level {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	ts := time.Now().Format("02-01-2006    15:04:05")
	label := levelStyles[lv].Render(lv.String())
	fmt.Fprintf(c.out, "%s    [%s] [%s]: %s\n", ts, c.name, label, fmt.Sprintf(format, args...))
}

// ── Discard ───────────────────────────────────────────────────────────────────

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// Discard drops everything. Useful as a default and in tests.
var Discard Logger = nopLogger{}

// Package gologger adapts github.com/goliatone/go-logger to the corpus
// logging contracts so the rest of the module never imports it directly.
package gologger

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/DeadKai/go-content/internal/logging"
	"github.com/DeadKai/go-content/pkg/interfaces"
)

// Config captures the go-logger options the content module exposes.
// Level and Format mirror runtimeconfig.LoggingConfig; Focus narrows
// output to the named namespaces (content.corpus, content.index, ...).
type Config struct {
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig matches the module's runtime defaults: info-level
// console output without source annotations.
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: "console",
	}
}

// Provider hands out namespace-scoped loggers backed by go-logger.
// Children are cached so repeated lookups of a corpus namespace share
// one adapter.
type Provider struct {
	root *glog.BaseLogger

	mu       sync.Mutex
	children map[string]interfaces.Logger
}

var _ interfaces.LoggerProvider = (*Provider)(nil)

// NewProvider constructs a logger provider from the supplied config.
// Unknown levels and formats are rejected rather than silently ignored,
// mirroring runtimeconfig validation.
func NewProvider(cfg Config) (*Provider, error) {
	options := []glog.Option{}

	if trimmed := strings.TrimSpace(cfg.Level); trimmed != "" {
		level, ok := levelFor(trimmed)
		if !ok {
			return nil, fmt.Errorf("logging: unsupported go-logger level %q", cfg.Level)
		}
		options = append(options, glog.WithLevel(level))
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "console":
		options = append(options, glog.WithLoggerTypeConsole())
	case "json":
		options = append(options, glog.WithLoggerTypeJSON())
	case "pretty":
		options = append(options, glog.WithLoggerTypePretty())
	default:
		return nil, fmt.Errorf("logging: unsupported go-logger format %q", cfg.Format)
	}

	if cfg.AddSource {
		options = append(options, glog.WithAddSource(true))
	}

	root := glog.NewLogger(options...)
	if focus := trimmedNames(cfg.Focus); len(focus) > 0 {
		root.Focus(focus...)
	}

	return &Provider{
		root:     root,
		children: map[string]interfaces.Logger{},
	}, nil
}

// GetLogger satisfies interfaces.LoggerProvider. An empty name yields the
// root logger; anything else yields a cached child for that namespace.
func (p *Provider) GetLogger(name string) interfaces.Logger {
	if p == nil {
		return logging.NoOp()
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return newAdapter(p.root)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if child, ok := p.children[name]; ok {
		return child
	}
	child := newAdapter(p.root.GetLogger(name))
	p.children[name] = child
	return child
}

func newAdapter(inner glog.Logger) interfaces.Logger {
	if inner == nil {
		return logging.NoOp()
	}
	return &adapter{inner: inner}
}

type adapter struct {
	inner glog.Logger
}

func (l *adapter) Trace(msg string, args ...any) { l.inner.Trace(msg, args...) }
func (l *adapter) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }
func (l *adapter) Info(msg string, args ...any)  { l.inner.Info(msg, args...) }
func (l *adapter) Warn(msg string, args ...any)  { l.inner.Warn(msg, args...) }
func (l *adapter) Error(msg string, args ...any) { l.inner.Error(msg, args...) }
func (l *adapter) Fatal(msg string, args ...any) { l.inner.Fatal(msg, args...) }

func (l *adapter) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}

	if with, ok := l.inner.(glog.FieldsLogger); ok {
		copied := make(map[string]any, len(fields))
		for k, v := range fields {
			copied[k] = v
		}
		return newAdapter(with.WithFields(copied))
	}

	if with, ok := l.inner.(interface{ With(...any) *glog.BaseLogger }); ok {
		return newAdapter(with.With(sortedArgs(fields)...))
	}
	return l
}

func (l *adapter) WithContext(ctx context.Context) interfaces.Logger {
	if ctx == nil {
		return l
	}
	return newAdapter(l.inner.WithContext(ctx))
}

// sortedArgs flattens fields into key/value pairs with a stable order so
// fallback output stays deterministic.
func sortedArgs(fields map[string]any) []any {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]any, 0, len(keys)*2)
	for _, k := range keys {
		args = append(args, k, fields[k])
	}
	return args
}

func levelFor(level string) (string, bool) {
	switch strings.ToLower(level) {
	case "trace":
		return glog.Trace, true
	case "debug":
		return glog.Debug, true
	case "info":
		return glog.Info, true
	case "warn", "warning":
		return glog.Warn, true
	case "error":
		return glog.Error, true
	case "fatal":
		return glog.Fatal, true
	default:
		return "", false
	}
}

func trimmedNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

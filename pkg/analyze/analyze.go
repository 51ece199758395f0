// Package analyze defines the host-side analysis lifecycle that extension
// hooks plug into. The host owns the declared-symbol table and the issue
// reporting pipeline; hooks receive both through a Context and run once,
// synchronously, before the host's main analysis phase.
package analyze

import (
	"fmt"

	"github.com/classref/classref/pkg/issues"
	"github.com/classref/classref/pkg/pipeline"
	"github.com/classref/classref/pkg/symbols"
)

// WarnFunc receives recoverable problems hooks encounter while running.
type WarnFunc func(format string, args ...any)

// Context carries the capabilities the host injects into hooks.
type Context struct {
	// Symbols is the host's declared-class table.
	Symbols symbols.Table
	// Issues receives every diagnostic a hook emits.
	Issues issues.Sink
	// Warn receives non-fatal warnings. May be nil.
	Warn WarnFunc
}

// Warnf forwards to the context's warn callback when one is set.
func (c *Context) Warnf(format string, args ...any) {
	if c.Warn != nil {
		c.Warn(format, args...)
	}
}

// Hook is the common interface for pre-analysis extension hooks.
type Hook interface {
	Name() string
	Flag() string
	Description() string

	// Configuration.
	ListConfigurationOptions() []pipeline.ConfigurationOption
	Configure(facts map[string]any) error

	// BeforeAnalysis runs the hook's whole pass. It is invoked exactly once,
	// before the host's main analysis phase.
	BeforeAnalysis(ctx *Context) error
}

// Registry manages registration and execution of hooks.
type Registry struct {
	hooks []Hook
}

// NewRegistry creates a registry holding the given hooks in order.
func NewRegistry(hooks ...Hook) *Registry {
	return &Registry{hooks: hooks}
}

// Register appends a hook to the registry.
func (r *Registry) Register(hook Hook) {
	r.hooks = append(r.hooks, hook)
}

// Hooks returns the registered hooks in registration order.
func (r *Registry) Hooks() []Hook {
	return r.hooks
}

// DefaultFacts builds a facts map from every hook's option defaults.
func (r *Registry) DefaultFacts() map[string]any {
	facts := map[string]any{}

	for _, hook := range r.hooks {
		for _, opt := range hook.ListConfigurationOptions() {
			if opt.Default != nil {
				facts[opt.Name] = opt.Default
			}
		}
	}

	return facts
}

// Configure configures every hook from the facts map. The first failure
// aborts: configuration errors are fatal and happen before any scanning.
func (r *Registry) Configure(facts map[string]any) error {
	for _, hook := range r.hooks {
		err := hook.Configure(facts)
		if err != nil {
			return fmt.Errorf("failed to configure %s: %w", hook.Name(), err)
		}
	}

	return nil
}

// RunBeforeAnalysis runs every hook once, in registration order.
func (r *Registry) RunBeforeAnalysis(ctx *Context) error {
	for _, hook := range r.hooks {
		err := hook.BeforeAnalysis(ctx)
		if err != nil {
			return fmt.Errorf("hook %s: %w", hook.Name(), err)
		}
	}

	return nil
}

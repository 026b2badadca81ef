package filter

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
)

// ErrUnknownPreset is returned by Resolve for a preset name never loaded
var ErrUnknownPreset = errors.New("unknown filter preset")

// Presets is a concurrency-safe set of named, precompiled filters, loaded
// from the filter section of the config.
type Presets struct {
	mu       sync.RWMutex
	compiler Compiler
	byName   map[string]CompiledFilter
}

// PresetsOption configures a preset set
type PresetsOption func(*Presets)

// WithCompiler replaces the default cached expr compiler
func WithCompiler(compiler Compiler) PresetsOption {
	return func(p *Presets) {
		p.compiler = compiler
	}
}

// NewPresets returns an empty preset set
func NewPresets(opts ...PresetsOption) *Presets {
	p := &Presets{
		compiler: NewExprCompiler(WithCache(100)),
		byName:   make(map[string]CompiledFilter),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Add compiles expression and stores it under name, replacing any preset
// of the same name.
func (p *Presets) Add(name, expression string) error {
	compiled, err := p.compiler.Compile(expression)
	if err != nil {
		return fmt.Errorf("preset %q: %w", name, err)
	}

	p.mu.Lock()
	p.byName[name] = compiled
	p.mu.Unlock()
	return nil
}

// Load adds every preset of the map. Nothing is stored if any expression
// fails to compile.
func (p *Presets) Load(presets map[string]string) error {
	compiled := make(map[string]CompiledFilter, len(presets))
	for _, name := range slices.Sorted(maps.Keys(presets)) {
		f, err := p.compiler.Compile(presets[name])
		if err != nil {
			return fmt.Errorf("preset %q: %w", name, err)
		}
		compiled[name] = f
	}

	p.mu.Lock()
	maps.Copy(p.byName, compiled)
	p.mu.Unlock()
	return nil
}

// Remove drops a preset
func (p *Presets) Remove(name string) {
	p.mu.Lock()
	delete(p.byName, name)
	p.mu.Unlock()
}

func (p *Presets) Lookup(name string) (CompiledFilter, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	f, ok := p.byName[name]
	return f, ok
}

// Names returns the preset names in sorted order
func (p *Presets) Names() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Sorted(maps.Keys(p.byName))
}

// Resolve picks the filter for one command invocation. An ad hoc
// expression wins over a preset name; both empty yields a nil filter,
// which Select treats as match-all.
func (p *Presets) Resolve(expression, preset string) (CompiledFilter, error) {
	switch {
	case expression != "":
		return p.compiler.Compile(expression)
	case preset == "":
		return nil, nil
	}

	f, ok := p.Lookup(preset)
	if !ok {
		return nil, fmt.Errorf("%w %q (have %v)", ErrUnknownPreset, preset, p.Names())
	}
	return f, nil
}

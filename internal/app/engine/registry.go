package engine

import (
	"fmt"
	"sort"
	"sync"

	"polycap/internal/app/model"
)

// DefaultEngineRegistry implements Registry
type DefaultEngineRegistry struct {
	mu       sync.RWMutex
	engines  map[string]Engine
	seq      map[string]int // registration order, breaks priority ties
	defaults map[model.Capability]string
	nextSeq  int
}

// NewEngineRegistry creates a new engine registry
func NewEngineRegistry() *DefaultEngineRegistry {
	return &DefaultEngineRegistry{
		engines:  make(map[string]Engine),
		seq:      make(map[string]int),
		defaults: make(map[model.Capability]string),
	}
}

// Register adds an engine after validating its descriptor
func (r *DefaultEngineRegistry) Register(e Engine) error {
	if e == nil {
		return fmt.Errorf("engine cannot be nil")
	}
	d := e.Descriptor()
	if d.ID == "" {
		return fmt.Errorf("engine ID cannot be empty")
	}
	if !model.IsValidCapability(string(d.Capability)) {
		return fmt.Errorf("engine '%s' has unknown capability '%s'", d.ID, d.Capability)
	}
	if d.Timeout <= 0 {
		return fmt.Errorf("engine '%s' must declare a positive attempt timeout", d.ID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.engines[d.ID]; exists {
		return fmt.Errorf("engine '%s' already registered", d.ID)
	}

	r.engines[d.ID] = e
	r.seq[d.ID] = r.nextSeq
	r.nextSeq++

	// First engine per capability becomes its default
	if _, ok := r.defaults[d.Capability]; !ok {
		r.defaults[d.Capability] = d.ID
	}

	return nil
}

// Get retrieves an engine by ID
func (r *DefaultEngineRegistry) Get(id string) (Engine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, exists := r.engines[id]
	if !exists {
		return nil, fmt.Errorf("engine '%s' not found", id)
	}
	return e, nil
}

// EnginesFor returns the capability's engines in attempt order
func (r *DefaultEngineRegistry) EnginesFor(capability model.Capability) []Engine {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Engine
	for _, e := range r.engines {
		if e.Descriptor().Capability == capability {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		di, dj := out[i].Descriptor(), out[j].Descriptor()
		if di.Priority != dj.Priority {
			return di.Priority < dj.Priority
		}
		return r.seq[di.ID] < r.seq[dj.ID]
	})
	return out
}

// Default returns the capability's default engine
func (r *DefaultEngineRegistry) Default(capability model.Capability) (Engine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.defaults[capability]
	if !ok {
		return nil, fmt.Errorf("no default engine for capability '%s'", capability)
	}
	e, exists := r.engines[id]
	if !exists {
		return nil, fmt.Errorf("default engine '%s' not found", id)
	}
	return e, nil
}

// SetDefault overrides the capability's default engine
func (r *DefaultEngineRegistry) SetDefault(capability model.Capability, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, exists := r.engines[id]
	if !exists {
		return fmt.Errorf("engine '%s' not found", id)
	}
	if e.Descriptor().Capability != capability {
		return fmt.Errorf("engine '%s' does not serve capability '%s'", id, capability)
	}

	r.defaults[capability] = id
	return nil
}

// Snapshot returns a copy of every registered descriptor
func (r *DefaultEngineRegistry) Snapshot() []model.EngineDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.EngineDescriptor, 0, len(r.engines))
	for _, e := range r.engines {
		out = append(out, e.Descriptor())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Capability != out[j].Capability {
			return out[i].Capability < out[j].Capability
		}
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return out[i].ID < out[j].ID
	})
	return out
}

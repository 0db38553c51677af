package personas

import "fmt"

// Registry is an ordered, read-only set of personas.
// It is built once and never mutated, so it is safe for concurrent use.
type Registry struct {
	keys  []string
	byKey map[string]Persona
}

// NewRegistry validates the personas and builds a registry that preserves
// their order. Duplicate keys are rejected.
func NewRegistry(list []Persona) (*Registry, error) {
	if len(list) == 0 {
		return nil, fmt.Errorf("registry needs at least one persona")
	}

	r := &Registry{
		keys:  make([]string, 0, len(list)),
		byKey: make(map[string]Persona, len(list)),
	}
	for _, p := range list {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, dup := r.byKey[p.Key]; dup {
			return nil, fmt.Errorf("duplicate persona key %q", p.Key)
		}
		p.OutputFormat = append([]string(nil), p.OutputFormat...)
		p.Examples = append([]string(nil), p.Examples...)
		r.keys = append(r.keys, p.Key)
		r.byKey[p.Key] = p
	}
	return r, nil
}

// Get returns the persona for key, or *UnknownPersonaError.
func (r *Registry) Get(key string) (Persona, error) {
	p, ok := r.byKey[key]
	if !ok {
		return Persona{}, &UnknownPersonaError{Key: key, Available: r.Keys()}
	}
	return p, nil
}

// Keys returns the persona keys in registration order.
func (r *Registry) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// List returns all personas in registration order.
func (r *Registry) List() []Persona {
	out := make([]Persona, len(r.keys))
	for i, k := range r.keys {
		out[i] = r.byKey[k]
	}
	return out
}

// Len returns the number of registered personas.
func (r *Registry) Len() int {
	return len(r.keys)
}

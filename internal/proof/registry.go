package proof

import "fmt"

// Registry holds loaded theorems keyed by id, preserving insertion order
// for stable index rendering.
type Registry struct {
	byID  map[string]*Theorem
	order []string
}

// Stats summarizes a registry for the site index and build history.
type Stats struct {
	Total      int
	Verified   int
	TotalSteps int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]*Theorem)}
}

// Add registers a theorem. Duplicate ids are an error.
func (r *Registry) Add(t *Theorem) error {
	if t.ID == "" {
		return fmt.Errorf("theorem has no id")
	}
	if _, exists := r.byID[t.ID]; exists {
		return fmt.Errorf("duplicate theorem id %q", t.ID)
	}
	r.byID[t.ID] = t
	r.order = append(r.order, t.ID)
	return nil
}

// Get returns the theorem with the given id, or nil.
func (r *Registry) Get(id string) *Theorem {
	return r.byID[id]
}

// List returns all theorems in insertion order.
func (r *Registry) List() []*Theorem {
	out := make([]*Theorem, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// IDs returns the registered theorem ids in insertion order.
func (r *Registry) IDs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered theorems.
func (r *Registry) Len() int {
	return len(r.order)
}

// Stats computes index statistics over the registry.
func (r *Registry) Stats() Stats {
	s := Stats{Total: len(r.order)}
	for _, t := range r.byID {
		if t.Status == StatusVerified {
			s.Verified++
		}
		s.TotalSteps += len(t.ProofSteps)
	}
	return s
}

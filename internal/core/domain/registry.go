package domain

import (
	"iter"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Registry holds every action produced by one configuration pass. Action
// names are unique; a colliding registration fails instead of overwriting.
type Registry struct {
	actions map[ActionID]*Action
	order   []ActionID
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		actions: make(map[ActionID]*Action),
	}
}

// Add registers an action. It returns ErrActionExists if the name is taken.
func (r *Registry) Add(a *Action) error {
	if _, exists := r.actions[a.Name]; exists {
		return zerr.With(zerr.Wrap(ErrActionExists, "cannot register action"), "action", string(a.Name))
	}
	r.actions[a.Name] = a
	r.order = append(r.order, a.Name)
	return nil
}

// Get returns the action with the given name.
func (r *Registry) Get(name ActionID) (*Action, error) {
	a, ok := r.actions[name]
	if !ok {
		return nil, zerr.With(zerr.Wrap(ErrActionNotFound, "no such action"), "action", string(name))
	}
	return a, nil
}

// Aggregate returns the aggregate action with the given name, creating it on
// first use. Creation is idempotent; the description of an existing aggregate
// is left untouched.
func (r *Registry) Aggregate(name ActionID, description string) *Action {
	if a, ok := r.actions[name]; ok {
		return a
	}
	a := &Action{Name: name, Description: description}
	r.actions[name] = a
	r.order = append(r.order, name)
	return a
}

// AddDependency appends dep to the action's dependency list.
func (r *Registry) AddDependency(name, dep ActionID) error {
	a, err := r.Get(name)
	if err != nil {
		return err
	}
	a.DependsOn = append(a.DependsOn, dep)
	return nil
}

// Len returns the number of registered actions.
func (r *Registry) Len() int {
	return len(r.actions)
}

// Walk returns an iterator over actions in registration order.
func (r *Registry) Walk() iter.Seq[*Action] {
	return func(yield func(*Action) bool) {
		for _, name := range r.order {
			if !yield(r.actions[name]) {
				return
			}
		}
	}
}

// Sorted returns every action ordered by name.
func (r *Registry) Sorted() []*Action {
	res := make([]*Action, 0, r.Len())
	for a := range r.Walk() {
		res = append(res, a)
	}
	slices.SortFunc(res, func(a, b *Action) int {
		return strings.Compare(string(a.Name), string(b.Name))
	})
	return res
}

package ecs

import (
	"fmt"
	"reflect"
	"sort"
)

// Queryable is the type-erased view of a Store used by Query and by
// dependency declarations.
type Queryable interface {
	Has(e Entity) bool
	Len() int
	Entities() []Entity
	Name() string

	drop(e Entity)
	addDependent(s Queryable)
}

// Store holds one attribute type. Values are stored behind pointers, so a
// pointer returned by Get stays valid until the attribute is removed and
// writes through it are visible to every later reader.
type Store[T any] struct {
	reg        *Registry
	name       string
	items      map[Entity]*T
	requires   []Queryable
	dependents []Queryable
	check      func(*T) error
}

// Register creates the store for T and attaches it to the registry, so that
// Registry.Destroy also clears it.
func Register[T any](r *Registry) *Store[T] {
	s := &Store[T]{
		reg:   r,
		name:  reflect.TypeOf((*T)(nil)).Elem().Name(),
		items: make(map[Entity]*T, 64),
	}
	r.stores = append(r.stores, s)
	return s
}

// Requires declares that an entity may only hold T while it also holds dep.
func (s *Store[T]) Requires(dep Queryable) *Store[T] {
	s.requires = append(s.requires, dep)
	dep.addDependent(s)
	return s
}

// Check installs a validation function run on every Set.
func (s *Store[T]) Check(fn func(*T) error) *Store[T] {
	s.check = fn
	return s
}

// Name returns the attribute type name.
func (s *Store[T]) Name() string { return s.name }

// Set attaches v to e, replacing any previous value in place.
func (s *Store[T]) Set(e Entity, v T) (*T, error) {
	if !s.reg.Alive(e) {
		return nil, fmt.Errorf("attach %s to %d: %w", s.name, e, ErrNoEntity)
	}
	for _, dep := range s.requires {
		if !dep.Has(e) {
			return nil, fmt.Errorf("attach %s to %d: %w: %s", s.name, e, ErrMissingRequirement, dep.Name())
		}
	}
	if s.check != nil {
		if err := s.check(&v); err != nil {
			return nil, fmt.Errorf("attach %s to %d: %w: %v", s.name, e, ErrInvalid, err)
		}
	}
	if p, ok := s.items[e]; ok {
		*p = v
		return p, nil
	}
	p := &v
	s.items[e] = p
	return p, nil
}

// MustSet is Set for callers whose inputs cannot legitimately fail.
// A failure is a programming error and panics.
func (s *Store[T]) MustSet(e Entity, v T) *T {
	p, err := s.Set(e, v)
	if err != nil {
		panic(err)
	}
	return p
}

// Get returns the attribute of e.
func (s *Store[T]) Get(e Entity) (*T, bool) {
	p, ok := s.items[e]
	return p, ok
}

// Has reports whether e holds the attribute.
func (s *Store[T]) Has(e Entity) bool {
	_, ok := s.items[e]
	return ok
}

// Remove detaches the attribute from e. It fails if another attached
// attribute of e requires this one.
func (s *Store[T]) Remove(e Entity) error {
	if _, ok := s.items[e]; !ok {
		return nil
	}
	for _, d := range s.dependents {
		if d.Has(e) {
			return fmt.Errorf("detach %s from %d: %w: %s", s.name, e, ErrRequiredBy, d.Name())
		}
	}
	delete(s.items, e)
	return nil
}

// Len returns the number of entities holding the attribute.
func (s *Store[T]) Len() int { return len(s.items) }

// Entities returns the holders in creation order. The slice is a copy.
func (s *Store[T]) Entities() []Entity {
	out := make([]Entity, 0, len(s.items))
	for e := range s.items {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Each calls fn for every holder in creation order. The holder set is fixed
// when Each starts; holders that lose the attribute during the pass are
// skipped, holders gaining it are not visited.
func (s *Store[T]) Each(fn func(Entity, *T)) {
	for _, e := range s.Entities() {
		if p, ok := s.items[e]; ok {
			fn(e, p)
		}
	}
}

func (s *Store[T]) drop(e Entity) { delete(s.items, e) }

func (s *Store[T]) addDependent(d Queryable) { s.dependents = append(s.dependents, d) }

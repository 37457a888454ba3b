// Package ecs is a small single-threaded entity/attribute store.
//
// Entities are opaque ids; attributes live in typed stores created with
// Register. All reads and writes are expected to happen on the simulation
// goroutine, so nothing here takes a lock.
package ecs

import "errors"

// Entity identifies a game object. Ids are issued in increasing order, so
// sorting by id yields creation order.
type Entity uint32

// Nil is never issued by a Registry and marks "no entity".
const Nil Entity = 0

var (
	// ErrNoEntity is returned when attaching to an entity that is not alive.
	ErrNoEntity = errors.New("entity does not exist")
	// ErrMissingRequirement is returned when an attribute is attached before
	// an attribute it depends on.
	ErrMissingRequirement = errors.New("missing required attribute")
	// ErrRequiredBy is returned when detaching an attribute another attached
	// attribute depends on.
	ErrRequiredBy = errors.New("attribute is required by another attribute")
	// ErrInvalid is returned when a store's check rejects a value.
	ErrInvalid = errors.New("invalid attribute value")
)

// Registry owns entity lifetimes and the stores registered against it.
type Registry struct {
	next   Entity
	alive  map[Entity]struct{}
	stores []Queryable
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		next:  1,
		alive: make(map[Entity]struct{}, 512),
	}
}

// Create issues a new entity with no attributes.
func (r *Registry) Create() Entity {
	e := r.next
	r.next++
	r.alive[e] = struct{}{}
	return e
}

// Destroy removes the entity and every attribute attached to it.
// Destroying an entity that is already gone is a no-op.
func (r *Registry) Destroy(e Entity) {
	if _, ok := r.alive[e]; !ok {
		return
	}
	for _, s := range r.stores {
		s.drop(e)
	}
	delete(r.alive, e)
}

// Alive reports whether e was created and not yet destroyed.
func (r *Registry) Alive(e Entity) bool {
	_, ok := r.alive[e]
	return ok
}

// Len returns the number of live entities.
func (r *Registry) Len() int {
	return len(r.alive)
}

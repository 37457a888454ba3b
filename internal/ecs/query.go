package ecs

import "sort"

// Query returns the entities present in every given store, in creation
// order.
//
// The result is a snapshot: the entity set does not change while the caller
// iterates it, but attribute pointers fetched from the stores are live. A
// pass that destroys entities must check Registry.Alive (or the store's Get)
// before touching a later element; entities created during the pass are
// not part of the result.
func Query(stores ...Queryable) []Entity {
	if len(stores) == 0 {
		return nil
	}

	// Start from the smallest store to keep the Has() checks down
	sorted := make([]Queryable, len(stores))
	copy(sorted, stores)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Len() < sorted[j].Len() })

	candidates := sorted[0].Entities()
	for _, s := range sorted[1:] {
		filtered := candidates[:0]
		for _, e := range candidates {
			if s.Has(e) {
				filtered = append(filtered, e)
			}
		}
		candidates = filtered
		if len(candidates) == 0 {
			break
		}
	}
	return candidates
}

package ecs

import (
	"iter"
)

// Query wraps a View with caching for repeated iteration.
// Matching archetypes are cached until the archetype set changes, and Execute snapshots the
// matching entities once per frame so that systems iterate a stable list even if they queue
// structural commands while iterating.
type Query[T any] struct {
	view               *View[T]
	storage            *Storage
	cachedArchetypes   []*Archetype
	lastArchetypeCount int

	cached     []T
	cacheValid bool
}

// NewQuery creates a new Query with archetype-level caching.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init initializes or re-initializes the Query with a storage.
// Called by the Scheduler during system registration.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.lastArchetypeCount = -1
	q.cachedArchetypes = nil
	q.cacheValid = false
}

// Execute builds the component cache for this frame.
// The Scheduler calls it for every Query field right before the owning system runs.
func (q *Query[T]) Execute() {
	q.invalidateIfNeeded()
	q.ensureArchetypeCache()

	q.cached = q.cached[:0]
	for _, archetype := range q.cachedArchetypes {
		for _, item := range q.view.iterArchetype(archetype) {
			q.cached = append(q.cached, item)
		}
	}

	q.cacheValid = true
}

func (q *Query[T]) invalidateIfNeeded() {
	currentCount := q.storage.archetypes.Len()
	if currentCount != q.lastArchetypeCount {
		q.cachedArchetypes = nil
		q.lastArchetypeCount = currentCount
	}
}

func (q *Query[T]) ensureArchetypeCache() {
	if q.cachedArchetypes != nil {
		return
	}

	q.cachedArchetypes = make([]*Archetype, 0)
	for _, archetype := range q.storage.GetArchetypes() {
		if q.view.matchesArchetype(archetype) {
			q.cachedArchetypes = append(q.cachedArchetypes, archetype)
		}
	}
}

// Iter returns an iterator over the entities captured by the last Execute.
// Panics if Execute() has not been called.
func (q *Query[T]) Iter() iter.Seq[T] {
	if !q.cacheValid {
		panic("Query.Iter() called before Query.Execute()")
	}

	return func(yield func(T) bool) {
		for i := range q.cached {
			if !yield(q.cached[i]) {
				return
			}
		}
	}
}

// Len returns the number of entities captured by the last Execute.
func (q *Query[T]) Len() int {
	return len(q.cached)
}

// First returns the first captured entity, for queries expected to match a single entity.
func (q *Query[T]) First() (T, bool) {
	if !q.cacheValid || len(q.cached) == 0 {
		var zero T
		return zero, false
	}
	return q.cached[0], true
}

// Get projects a single entity through the query's view, independent of the frame cache.
func (q *Query[T]) Get(id EntityId) *T {
	return q.view.Get(id)
}

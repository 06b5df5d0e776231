package ecs

import (
	"reflect"
	"slices"
	"weak"

	"github.com/kamstrup/intmap"
)

type byTypeName []reflect.Type

func (a byTypeName) Len() int           { return len(a) }
func (a byTypeName) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byTypeName) Less(i, j int) bool { return a[i].String() < a[j].String() }

// Archetype stores every entity that has exactly the same set of component types.
type Archetype struct {
	id       uint32
	types    []reflect.Type
	storages []componentColumn
	count    int
	refs     *intmap.Map[EntityId, weak.Pointer[EntityRef]]
}

// NewArchetype creates a new archetype with the given ID and sorted component types
func NewArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:       id,
		types:    types,
		storages: make([]componentColumn, len(types)),
		refs:     intmap.New[EntityId, weak.Pointer[EntityRef]](16),
	}

	for idx, typ := range types {
		factory := registry.getFactory(typ)
		if factory == nil {
			panic("component type " + typ.String() + " not registered")
		}
		a.storages[idx] = factory()
	}

	return a
}

// Spawn appends one entity built from components and returns its slot index.
// Every storage hands out the same slot because all of them grow and free in lockstep.
func (a *Archetype) Spawn(components []any) uint32 {
	var storagePos int
	for _, comp := range components {
		idx := a.storageIndex(componentType(comp))
		if idx < 0 {
			panic("component type " + componentType(comp).String() + " is not part of archetype")
		}
		storagePos = a.storages[idx].Append(comp)
	}

	a.count++
	return uint32(storagePos)
}

// GetComponent returns a pointer to the component of compType for the entity at entityIndex,
// or nil when the archetype lacks the type or the slot is empty.
func (a *Archetype) GetComponent(entityIndex uint32, compType reflect.Type) any {
	idx := a.storageIndex(compType)
	if idx < 0 {
		return nil
	}
	return a.storages[idx].Get(int(entityIndex))
}

// Delete frees the entity slot. Other entity indices are unaffected.
func (a *Archetype) Delete(entityIndex uint32) bool {
	if len(a.storages) == 0 || !a.storages[0].Has(int(entityIndex)) {
		return false
	}

	entityId := NewEntityId(a.id, entityIndex)
	if weakPtr, ok := a.refs.Get(entityId); ok {
		if ref := weakPtr.Value(); ref != nil {
			ref.Id = 0
			ref.Archetype = nil
		}
		a.refs.Del(entityId)
	}

	for _, storage := range a.storages {
		storage.Delete(int(entityIndex))
	}
	a.count--
	return true
}

// moveRef hands the reference held for index over to the entity's new id in archetype to.
func (a *Archetype) moveRef(index uint32, to *Archetype, newId EntityId) {
	oldId := NewEntityId(a.id, index)
	weakPtr, ok := a.refs.Get(oldId)
	if !ok {
		return
	}
	a.refs.Del(oldId)

	ref := weakPtr.Value()
	if ref == nil {
		return
	}
	ref.Id = newId
	ref.Archetype = to
	to.refs.Put(newId, weakPtr)
}

// Has reports whether the slot is occupied.
func (a *Archetype) Has(entityIndex uint32) bool {
	return len(a.storages) > 0 && a.storages[0].Has(int(entityIndex))
}

// HasComponent checks if this archetype has the given component type
func (a *Archetype) HasComponent(compType reflect.Type) bool {
	return slices.Contains(a.types, compType)
}

// ID returns the archetype's unique identifier
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the sorted component types for this archetype
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of live entities.
func (a *Archetype) Len() int {
	return a.count
}

// Iter returns an iterator over all valid EntityIds in this archetype
func (a *Archetype) Iter() func(yield func(EntityId) bool) {
	return func(yield func(EntityId) bool) {
		if len(a.storages) == 0 {
			return
		}

		for index := range a.storages[0].Iter() {
			if !yield(NewEntityId(a.id, uint32(index))) {
				return
			}
		}
	}
}

func (a *Archetype) storageIndex(compType reflect.Type) int {
	for i, typ := range a.types {
		if typ == compType {
			return i
		}
	}
	return -1
}

func componentType(component any) reflect.Type {
	t := reflect.TypeOf(component)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

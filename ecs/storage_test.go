package ecs_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/plus3/flockflow/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityIdEncoding(t *testing.T) {
	tests := []struct {
		archetypeId uint32
		index       uint32
	}{
		{0, 0},
		{0xFFFFFFFF, 0xFFFFFFFF},
		{1, 0},
		{0, 1},
		{0x12345678, 0x9ABCDEF0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("archetype=%d,index=%d", tt.archetypeId, tt.index), func(t *testing.T) {
			entityId := ecs.NewEntityId(tt.archetypeId, tt.index)
			assert.Equal(t, tt.archetypeId, entityId.ArchetypeId())
			assert.Equal(t, tt.index, entityId.Index())
		})
	}

	assert.Equal(t, "0000002a:7", ecs.NewEntityId(42, 7).String())
}

func TestSpawnAndGetComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(&Position{X: 3, Y: 4}, Name{Value: "first"}, Score(9))
	require.True(t, storage.Exists(id))
	assert.Equal(t, 1, storage.Len())

	pos := ecs.ReadComponent[Position](storage, id)
	require.NotNil(t, pos)
	assert.Equal(t, Position{X: 3, Y: 4}, *pos)
	assert.Equal(t, Score(9), *ecs.ReadComponent[Score](storage, id))
	assert.Nil(t, ecs.ReadComponent[Velocity](storage, id))

	assert.True(t, storage.HasComponent(id, reflect.TypeFor[Name]()))
	assert.False(t, storage.HasComponent(id, reflect.TypeFor[Health]()))
}

func TestSpawnOrderDoesNotChangeArchetype(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	a := storage.Spawn(Position{}, Velocity{})
	b := storage.Spawn(Velocity{}, Position{})
	assert.Equal(t, a.ArchetypeId(), b.ArchetypeId())
	assert.Len(t, storage.GetArchetypes(), 1)
	assert.NotNil(t, storage.GetArchetype(Velocity{}, Position{}))
	assert.NotNil(t, storage.GetArchetypeByTypes([]reflect.Type{reflect.TypeFor[Velocity](), reflect.TypeFor[Position]()}))
}

func TestSpawnPanics(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() { storage.Spawn() })
	assert.Panics(t, func() { storage.Spawn(map[string]int{}) })

	type unregistered struct{}
	assert.Panics(t, func() { storage.Spawn(unregistered{}) })
}

func TestComponentPointersSurviveGrowth(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	first := storage.Spawn(Position{X: 1})
	pos := ecs.ReadComponent[Position](storage, first)

	for i := range 500 {
		storage.Spawn(Position{X: float32(i)})
	}

	pos.X = 99
	assert.Equal(t, float32(99), ecs.ReadComponent[Position](storage, first).X)
}

func TestDeleteEntity(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	a := storage.Spawn(Position{X: 1})
	b := storage.Spawn(Position{X: 2})

	assert.True(t, storage.Delete(a))
	assert.False(t, storage.Delete(a), "second delete is a no-op")
	assert.False(t, storage.Exists(a))
	assert.Nil(t, ecs.ReadComponent[Position](storage, a))

	assert.True(t, storage.Exists(b))
	assert.Equal(t, float32(2), ecs.ReadComponent[Position](storage, b).X)
	assert.Equal(t, 1, storage.Len())

	c := storage.Spawn(Position{X: 3})
	assert.Equal(t, a, c, "freed slots are reused")
	assert.False(t, storage.Delete(ecs.NewEntityId(0xdead, 0)))
}

func TestAddComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{X: 1, Y: 2})

	moved := storage.AddComponent(id, Velocity{DX: 3})
	assert.NotEqual(t, id, moved)
	assert.False(t, storage.Exists(id))
	assert.Equal(t, Position{X: 1, Y: 2}, *ecs.ReadComponent[Position](storage, moved))
	assert.Equal(t, Velocity{DX: 3}, *ecs.ReadComponent[Velocity](storage, moved))

	same := storage.AddComponent(moved, &Velocity{DX: 7})
	assert.Equal(t, moved, same, "replacing a component keeps the id")
	assert.Equal(t, float32(7), ecs.ReadComponent[Velocity](storage, same).DX)

	assert.Equal(t, ecs.EntityId(0), storage.AddComponent(id, Health{}))
}

func TestRemoveComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{X: 1}, Velocity{DX: 2})

	assert.Equal(t, id, storage.RemoveComponent(id, reflect.TypeFor[Health]()))

	moved := storage.RemoveComponent(id, reflect.TypeFor[Velocity]())
	assert.NotEqual(t, id, moved)
	assert.Nil(t, ecs.ReadComponent[Velocity](storage, moved))
	assert.Equal(t, float32(1), ecs.ReadComponent[Position](storage, moved).X)

	gone := storage.RemoveComponent(moved, reflect.TypeFor[Position]())
	assert.Equal(t, ecs.EntityId(0), gone)
	assert.Equal(t, 0, storage.Len())
}

func TestEntityRefFollowsEntity(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{X: 1})

	ref := storage.CreateEntityRef(id)
	require.NotNil(t, ref)
	assert.Same(t, ref, storage.CreateEntityRef(id), "one ref per entity")
	assert.Nil(t, storage.CreateEntityRef(ecs.NewEntityId(0xdead, 0)))

	moved := storage.AddComponent(id, Velocity{DX: 2})
	current, ok := storage.ResolveEntityRef(ref)
	require.True(t, ok)
	assert.Equal(t, moved, current)
	assert.Equal(t, moved.ArchetypeId(), ref.Archetype.ID())

	moved = storage.RemoveComponent(moved, reflect.TypeFor[Velocity]())
	current, _ = storage.ResolveEntityRef(ref)
	assert.Equal(t, moved, current)

	view := ecs.NewView[struct{ *Position }](storage)
	require.NotNil(t, view.GetRef(ref))
	assert.Equal(t, float32(1), view.GetRef(ref).Position.X)

	require.True(t, storage.Delete(moved))
	_, ok = storage.ResolveEntityRef(ref)
	assert.False(t, ok)
	assert.Nil(t, view.GetRef(ref))

	reused := storage.Spawn(Position{X: 9})
	assert.Equal(t, moved, reused, "the slot is reused")
	_, ok = storage.ResolveEntityRef(ref)
	assert.False(t, ok, "a deleted entity's ref never points at the slot's new owner")
}

func TestInvalidateEntityRef(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{})

	ref := storage.CreateEntityRef(id)
	assert.True(t, storage.InvalidateEntityRef(ref))
	assert.False(t, storage.InvalidateEntityRef(ref))
	assert.True(t, storage.Exists(id))

	fresh := storage.CreateEntityRef(id)
	assert.NotSame(t, ref, fresh)
	current, ok := storage.ResolveEntityRef(fresh)
	assert.True(t, ok)
	assert.Equal(t, id, current)
}

func TestSingletons(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	var missing *Health
	assert.False(t, storage.ReadSingleton(&missing))

	storage.AddSingleton(Health{Current: 3, Max: 5})

	var h *Health
	require.True(t, storage.ReadSingleton(&h))
	assert.Equal(t, 3, h.Current)

	storage.AddSingleton(&Health{Current: 4, Max: 5})
	assert.Equal(t, 4, h.Current, "replacing a singleton keeps existing pointers valid")

	assert.Panics(t, func() { storage.ReadSingleton(h) })
}

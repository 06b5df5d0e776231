package ecs_test

import (
	"testing"

	"github.com/plus3/flockflow/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestView(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(&Position{X: 1, Y: 2}, Score(32))

	view := ecs.NewView[struct {
		ecs.EntityId
		*Position
		*Score
	}](storage)

	item := view.Get(id)
	require.NotNil(t, item)
	assert.Equal(t, id, item.EntityId)
	assert.Equal(t, Score(32), *item.Score)

	item.Position.X = 10
	assert.Equal(t, float32(10), ecs.ReadComponent[Position](storage, id).X)
}

func TestViewMissingComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(&Position{X: 5, Y: 10})

	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](storage)

	assert.Nil(t, view.Get(id))

	var out struct {
		*Position
		*Velocity
	}
	assert.False(t, view.Fill(id, &out))
}

func TestViewOptional(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	plain := storage.Spawn(Position{X: 1})
	moving := storage.Spawn(Position{X: 2}, Velocity{DX: 3})

	view := ecs.NewView[struct {
		ecs.EntityId
		*Position
		Vel *Velocity `ecs:"optional"`
	}](storage)

	seen := map[ecs.EntityId]bool{}
	for id, item := range view.Iter() {
		assert.Equal(t, id, item.EntityId)
		seen[id] = item.Vel != nil
	}

	assert.Equal(t, map[ecs.EntityId]bool{plain: false, moving: true}, seen)
}

func TestViewValuesAndEarlyExit(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	for i := range 10 {
		storage.Spawn(Position{X: float32(i)})
	}

	view := ecs.NewView[struct{ *Position }](storage)

	total := float32(0)
	for item := range view.Values() {
		total += item.Position.X
	}
	assert.Equal(t, float32(45), total)

	n := 0
	for range view.Iter() {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)
}

func TestViewInvalidDeclarations(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() { ecs.NewView[int](storage) })
	assert.Panics(t, func() { ecs.NewView[struct{ Position }](storage) })
	assert.Panics(t, func() {
		ecs.NewView[struct {
			ecs.EntityId
			Other ecs.EntityId
		}](storage)
	})
	assert.Panics(t, func() {
		ecs.NewView[struct {
			*Position `ecs:"optional"`
		}](storage)
	})
	assert.Panics(t, func() {
		ecs.NewView[struct {
			Pos *Position `ecs:"sometimes"`
		}](storage)
	})
}

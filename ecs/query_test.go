package ecs_test

import (
	"testing"

	"github.com/plus3/flockflow/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryRequiresExecute(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	q := ecs.NewQuery[struct{ *Position }](storage)

	assert.Panics(t, func() { q.Iter() })

	_, ok := q.First()
	assert.False(t, ok)
}

func TestQuerySnapshotsMatches(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	storage.Spawn(Position{X: 1})
	storage.Spawn(Position{X: 2}, Velocity{})
	storage.Spawn(Velocity{})

	q := ecs.NewQuery[struct {
		ecs.EntityId
		*Position
	}](storage)
	q.Execute()
	assert.Equal(t, 2, q.Len())

	storage.Spawn(Position{X: 3}, Health{})
	assert.Equal(t, 2, q.Len(), "matches are frozen until the next Execute")

	q.Execute()
	assert.Equal(t, 3, q.Len())

	sum := float32(0)
	for item := range q.Iter() {
		assert.True(t, storage.Exists(item.EntityId))
		sum += item.Position.X
	}
	assert.Equal(t, float32(6), sum)
}

func TestQueryFirstAndGet(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{X: 4}, Name{Value: "solo"})
	other := storage.Spawn(Velocity{})

	q := ecs.NewQuery[struct {
		*Position
		*Name
	}](storage)
	q.Execute()

	first, ok := q.First()
	require.True(t, ok)
	assert.Equal(t, "solo", first.Name.Value)

	require.NotNil(t, q.Get(id))
	assert.Nil(t, q.Get(other))
}

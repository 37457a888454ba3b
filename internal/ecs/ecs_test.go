package ecs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type box struct{ W, H float64 }

type solid struct{ Owner Entity }

func TestCreateDestroy(t *testing.T) {
	r := NewRegistry()
	boxes := Register[box](r)

	a := r.Create()
	b := r.Create()
	require.NotEqual(t, Nil, a)
	require.Less(t, a, b)

	boxes.MustSet(a, box{W: 1, H: 1})
	r.Destroy(a)

	assert.False(t, r.Alive(a))
	assert.False(t, boxes.Has(a))
	assert.Equal(t, 1, r.Len())

	// Second destroy is a no-op
	r.Destroy(a)
	assert.Equal(t, 1, r.Len())
}

func TestSetOnDeadEntity(t *testing.T) {
	r := NewRegistry()
	boxes := Register[box](r)
	e := r.Create()
	r.Destroy(e)

	_, err := boxes.Set(e, box{})
	require.ErrorIs(t, err, ErrNoEntity)
}

func TestRequirement(t *testing.T) {
	r := NewRegistry()
	boxes := Register[box](r)
	solids := Register[solid](r).Requires(boxes)

	e := r.Create()
	_, err := solids.Set(e, solid{})
	require.ErrorIs(t, err, ErrMissingRequirement)
	assert.False(t, solids.Has(e))

	boxes.MustSet(e, box{W: 2, H: 2})
	_, err = solids.Set(e, solid{})
	require.NoError(t, err)

	err = boxes.Remove(e)
	require.ErrorIs(t, err, ErrRequiredBy)
	assert.True(t, boxes.Has(e))

	require.NoError(t, solids.Remove(e))
	require.NoError(t, boxes.Remove(e))
	assert.False(t, boxes.Has(e))
}

func TestMustSetPanicsOnViolation(t *testing.T) {
	r := NewRegistry()
	boxes := Register[box](r)
	solids := Register[solid](r).Requires(boxes)
	e := r.Create()

	assert.Panics(t, func() { solids.MustSet(e, solid{}) })
}

func TestCheck(t *testing.T) {
	r := NewRegistry()
	boxes := Register[box](r).Check(func(b *box) error {
		if b.W <= 0 || b.H <= 0 {
			return errors.New("size must be positive")
		}
		return nil
	})
	e := r.Create()

	_, err := boxes.Set(e, box{W: 0, H: 3})
	require.ErrorIs(t, err, ErrInvalid)

	p, err := boxes.Set(e, box{W: 3, H: 3})
	require.NoError(t, err)

	// Replacing keeps the same pointer
	q, err := boxes.Set(e, box{W: 4, H: 4})
	require.NoError(t, err)
	assert.Same(t, p, q)
	assert.Equal(t, 4.0, p.W)
}

func TestQueryCreationOrder(t *testing.T) {
	r := NewRegistry()
	boxes := Register[box](r)
	solids := Register[solid](r)

	var want []Entity
	for i := 0; i < 10; i++ {
		e := r.Create()
		boxes.MustSet(e, box{W: 1, H: 1})
		if i%2 == 0 {
			want = append(want, e)
		}
	}
	// Attach in reverse so attach order differs from creation order
	for i := len(want) - 1; i >= 0; i-- {
		solids.MustSet(want[i], solid{})
	}

	assert.Equal(t, want, Query(boxes, solids))
	assert.Equal(t, want, solids.Entities())
	assert.Nil(t, Query())
}

func TestQuerySnapshotWhileMutating(t *testing.T) {
	r := NewRegistry()
	boxes := Register[box](r)
	a, b, c := r.Create(), r.Create(), r.Create()
	for _, e := range []Entity{a, b, c} {
		boxes.MustSet(e, box{W: 1, H: 1})
	}

	var visited []Entity
	for _, e := range Query(boxes) {
		if !r.Alive(e) {
			continue
		}
		visited = append(visited, e)
		if e == a {
			r.Destroy(b)
			boxes.MustSet(r.Create(), box{W: 1, H: 1})
			p, _ := boxes.Get(c)
			p.W = 9
		}
		if e == c {
			p, _ := boxes.Get(c)
			assert.Equal(t, 9.0, p.W, "same-pass writes are visible")
		}
	}
	assert.Equal(t, []Entity{a, c}, visited)
}

func TestEachSkipsRemoved(t *testing.T) {
	r := NewRegistry()
	boxes := Register[box](r)
	a, b := r.Create(), r.Create()
	boxes.MustSet(a, box{W: 1, H: 1})
	boxes.MustSet(b, box{W: 1, H: 1})

	var seen []Entity
	boxes.Each(func(e Entity, _ *box) {
		seen = append(seen, e)
		r.Destroy(b)
	})
	assert.Equal(t, []Entity{a}, seen)
}

func TestQueueDrain(t *testing.T) {
	var q Queue[int]

	calls := 0
	q.Drain(func(int) { calls++ })
	assert.Zero(t, calls, "empty drain changes nothing")

	q.Push(1)
	q.Push(2)
	q.Push(3)

	var got []int
	q.Drain(func(v int) {
		got = append(got, v)
		if v == 1 {
			q.Push(4)
		}
	})
	assert.Equal(t, []int{1, 2, 3}, got)
	assert.Equal(t, 1, q.Len())

	got = got[:0]
	q.Drain(func(v int) { got = append(got, v) })
	assert.Equal(t, []int{4}, got)
	assert.Zero(t, q.Len())
}

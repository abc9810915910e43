package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPushPopRestoresSequence(t *testing.T) {
	a := New(7)
	b := New(7)

	first := a.Float()
	assert.Equal(t, first, b.Float())

	a.Push(99)
	a.Float()
	a.Float()
	a.Pop()

	assert.Equal(t, b.Float(), a.Float(), "pushed samples must not leak into the outer sequence")
	assert.Equal(t, 0, a.Depth())
}

func TestPushIsDeterministic(t *testing.T) {
	r := New(1)
	restore := r.Push(42)
	x := []float64{r.Float(), r.Float()}
	restore()

	r.Push(42)
	assert.Equal(t, x, []float64{r.Float(), r.Float()})
	r.Pop()
}

func TestRestoreIsIdempotent(t *testing.T) {
	r := New(1)
	restore := r.Push(5)
	r.Push(6)
	restore() // inner state still pushed, nothing happens
	assert.Equal(t, 2, r.Depth())
	r.Pop()
	restore()
	restore()
	assert.Equal(t, 0, r.Depth())
	r.Pop()
	assert.Equal(t, 0, r.Depth())
}

func TestFloatSeeded(t *testing.T) {
	r := New(3)
	ref := New(3)
	v := r.FloatSeeded(10)
	assert.Equal(t, v, r.FloatSeeded(10))
	assert.NotEqual(t, v, r.FloatSeeded(11))
	assert.Equal(t, ref.Float(), r.Float())
}

func TestRanges(t *testing.T) {
	r := New(11)
	for i := 0; i < 500; i++ {
		f := r.Range(-2, 3)
		assert.GreaterOrEqual(t, f, -2.0)
		assert.Less(t, f, 3.0)
		n := r.RangeInt(2, 5)
		assert.GreaterOrEqual(t, n, 2)
		assert.Less(t, n, 5)
	}
	assert.Equal(t, 4, r.RangeInt(4, 4))
}

func TestRangeIntSeeded(t *testing.T) {
	r := New(3)
	ref := New(3)
	v := r.RangeIntSeeded(0, 100, 10)
	assert.Equal(t, v, r.RangeIntSeeded(0, 100, 10))
	assert.GreaterOrEqual(t, v, 0)
	assert.Less(t, v, 100)

	restore := r.Push(10)
	assert.Equal(t, v, r.RangeInt(0, 100), "the seeded value leads the pushed sequence")
	restore()
	assert.Equal(t, ref.Float(), r.Float())
}

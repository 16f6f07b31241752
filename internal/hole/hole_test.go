package hole

import (
	"math"
	"testing"

	"github.com/orixdb/orixdb/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReserveFirstFit(t *testing.T) {
	a := New()
	require.NoError(t, a.Release(100, 10))
	require.NoError(t, a.Release(0, 4))
	require.NoError(t, a.Release(50, 20))

	off, ok := a.Reserve(8)
	require.True(t, ok)
	assert.Equal(t, uint64(50), off, "lowest offset hole that fits")
	assert.Equal(t, []Hole{{0, 4}, {58, 12}, {100, 10}}, a.Holes())

	off, ok = a.Reserve(4)
	require.True(t, ok)
	assert.Equal(t, uint64(0), off)
	assert.Equal(t, []Hole{{58, 12}, {100, 10}}, a.Holes(), "exact fit removes the hole")

	_, ok = a.Reserve(13)
	assert.False(t, ok)
	_, ok = a.Reserve(0)
	assert.False(t, ok)

	assert.Equal(t, uint64(22), a.Total())
	require.NoError(t, a.Check())
}

func TestReleaseCoalesces(t *testing.T) {
	a := New()
	require.NoError(t, a.Release(10, 10))
	require.NoError(t, a.Release(30, 10))
	assert.Equal(t, 2, a.Len())

	// Fills the gap and joins both neighbours.
	require.NoError(t, a.Release(20, 10))
	assert.Equal(t, []Hole{{10, 30}}, a.Holes())

	// Joins predecessor only.
	require.NoError(t, a.Release(40, 5))
	assert.Equal(t, []Hole{{10, 35}}, a.Holes())

	// Joins successor only.
	require.NoError(t, a.Release(0, 10))
	assert.Equal(t, []Hole{{0, 45}}, a.Holes())

	assert.Equal(t, uint64(45), a.Total())
	require.NoError(t, a.Check())
}

func TestReleaseErrors(t *testing.T) {
	a := New()
	require.NoError(t, a.Release(10, 10))

	for _, r := range []Hole{{10, 1}, {5, 6}, {19, 5}, {0, 100}, {12, 2}} {
		err := a.Release(r.Offset, r.Length)
		assert.ErrorIs(t, err, ErrOverlap, "%+v", r)
	}
	assert.ErrorIs(t, a.Release(math.MaxUint64, 2), ErrRange)
	assert.NoError(t, a.Release(500, 0))
	assert.Equal(t, []Hole{{10, 10}}, a.Holes())
}

// TestRandomOperations checks the allocator against a byte map model.
func TestRandomOperations(t *testing.T) {
	const size = 512

	rng := testutil.NewRNG(2024)
	a := New()
	free := make([]bool, size)
	type block struct{ off, n uint64 }
	var used []block

	// Start with the whole file free.
	require.NoError(t, a.Release(0, size))
	for i := range free {
		free[i] = true
	}

	for step := range 5000 {
		if len(used) == 0 || rng.Intn(2) == 0 {
			n := uint64(1 + rng.Intn(32))
			off, ok := a.Reserve(n)
			if !ok {
				continue
			}
			for i := off; i < off+n; i++ {
				require.True(t, free[i], "step %d: reserved byte %d twice", step, i)
				free[i] = false
			}
			used = append(used, block{off, n})
		} else {
			k := rng.Intn(len(used))
			b := used[k]
			used = append(used[:k], used[k+1:]...)
			require.NoError(t, a.Release(b.off, b.n))
			for i := b.off; i < b.off+b.n; i++ {
				free[i] = true
			}
		}

		require.NoError(t, a.Check(), "step %d", step)
	}

	// The tree must describe exactly the free bytes of the model.
	inHole := make([]bool, size)
	for _, h := range a.Holes() {
		for i := h.Offset; i < h.End(); i++ {
			inHole[i] = true
		}
	}
	var total uint64
	for i, f := range free {
		assert.Equal(t, f, inHole[i], "byte %d", i)
		if f {
			total++
		}
	}
	assert.Equal(t, total, a.Total())
}

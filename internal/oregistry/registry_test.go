package oregistry_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yerTools/observer/internal/oregistry"
)

func TestRegistry_Add_allocatesMonotonicIndices(t *testing.T) {
	t.Parallel()

	r := oregistry.New[string]()

	i0 := r.Add("a")
	i1 := r.Add("b")
	i2 := r.Add("c")

	require.Less(t, i0, i1)
	require.Less(t, i1, i2)

	// An index freed by Remove is never handed out again.
	r.Remove(i2)
	i3 := r.Add("d")
	require.Greater(t, i3, i2)
}

func TestRegistry_Snapshot_orderedByIndex(t *testing.T) {
	t.Parallel()

	r := oregistry.New[string]()

	r.Add("a")
	mid := r.Add("b")
	r.Add("c")
	r.Remove(mid)

	require.Equal(t, []string{"a", "c"}, r.Snapshot())
}

func TestRegistry_Snapshot_unaffectedByLaterMutation(t *testing.T) {
	t.Parallel()

	r := oregistry.New[string]()

	i0 := r.Add("a")
	r.Add("b")

	snap := r.Snapshot()

	r.Remove(i0)
	r.Add("c")

	require.Equal(t, []string{"a", "b"}, snap)
	require.Equal(t, []string{"b", "c"}, r.Snapshot())
}

func TestRegistry_Remove_absentIndexIsNoop(t *testing.T) {
	t.Parallel()

	r := oregistry.New[string]()

	i0 := r.Add("a")

	r.Remove(i0 + 100)
	r.Remove(i0)
	r.Remove(i0)

	require.Zero(t, r.Len())
}

func TestRegistry_Len(t *testing.T) {
	t.Parallel()

	r := oregistry.New[int]()
	require.Zero(t, r.Len())

	i0 := r.Add(1)
	r.Add(2)
	require.Equal(t, 2, r.Len())

	r.Remove(i0)
	require.Equal(t, 1, r.Len())
}

func TestRegistry_Close(t *testing.T) {
	t.Parallel()

	r := oregistry.New[string]()
	i0 := r.Add("a")

	r.Close()
	r.Close()

	require.Panics(t, func() {
		r.Add("b")
	})
	require.Panics(t, func() {
		r.Snapshot()
	})

	// Outstanding handles must stay safe.
	require.NotPanics(t, func() {
		r.Remove(i0)
	})
}

func TestRegistry_concurrentMutation(t *testing.T) {
	t.Parallel()

	r := oregistry.New[int]()

	const adders = 8
	const perAdder = 100

	var wg sync.WaitGroup
	wg.Add(adders)
	for a := 0; a < adders; a++ {
		a := a
		go func() {
			defer wg.Done()
			for i := 0; i < perAdder; i++ {
				idx := r.Add(a*perAdder + i)
				if i%2 == 0 {
					r.Remove(idx)
				}
			}
		}()
	}
	wg.Wait()

	require.Equal(t, adders*perAdder/2, r.Len())
	require.Len(t, r.Snapshot(), adders*perAdder/2)
}

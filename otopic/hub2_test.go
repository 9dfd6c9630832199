package otopic_test

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yerTools/observer/internal/otest"
	"github.com/yerTools/observer/otopic"
)

func TestHub2_Notify_requiresBothDimensionsToIntersect(t *testing.T) {
	t.Parallel()

	h := otopic.New2[string](otest.NewLogger(t))
	defer h.Close()

	var a, b atomic.Int32
	h.Subscribe(
		[]string{"user"},
		[]string{"name", "age", "*"},
		func(string) { a.Add(1) },
	)
	h.Subscribe(
		[]string{"user"},
		[]string{"name", "age", "email", "*"},
		func(string) { b.Add(1) },
	)

	h.Notify([]string{"user"}, []string{"name"}, "x")
	require.Equal(t, int32(1), a.Load())
	require.Equal(t, int32(1), b.Load())

	h.Notify([]string{"user"}, []string{"email"}, "x")
	require.Equal(t, int32(1), a.Load())
	require.Equal(t, int32(2), b.Load())

	h.Notify([]string{"user"}, []string{"*"}, "x")
	require.Equal(t, int32(2), a.Load())
	require.Equal(t, int32(3), b.Load())
}

func TestHub2_Notify_singleDimensionMatchIsNotEnough(t *testing.T) {
	t.Parallel()

	h := otopic.New2[string](otest.NewLogger(t))
	defer h.Close()

	var hit atomic.Int32
	h.Subscribe(
		[]string{"orders"},
		[]string{"total"},
		func(string) { hit.Add(1) },
	)

	// First dimension matches, second does not.
	h.Notify([]string{"orders"}, []string{"status"}, "x")
	// Second dimension matches, first does not.
	h.Notify([]string{"users"}, []string{"total"}, "x")

	require.Zero(t, hit.Load())

	h.Notify([]string{"orders"}, []string{"total"}, "x")
	require.Equal(t, int32(1), hit.Load())
}

func TestHub2_Subscribe_emptyDimensionNeverMatches(t *testing.T) {
	t.Parallel()

	h := otopic.New2[string](otest.NewLogger(t))
	defer h.Close()

	var hit atomic.Int32
	h.Subscribe([]string{"t"}, nil, func(string) { hit.Add(1) })

	h.Notify([]string{"t"}, []string{"c", "*", ""}, "x")
	require.Zero(t, hit.Load())
}

func TestHub2_Unsubscribe(t *testing.T) {
	t.Parallel()

	h := otopic.New2[int](otest.NewLogger(t))
	defer h.Close()

	var hit atomic.Int32
	unsub := h.Subscribe([]string{"t"}, []string{"c"}, func(int) {
		hit.Add(1)
	})

	h.Notify([]string{"t"}, []string{"c"}, 1)
	unsub()
	h.Notify([]string{"t"}, []string{"c"}, 2)

	require.Equal(t, int32(1), hit.Load())
}

func TestWith2_closesHub(t *testing.T) {
	t.Parallel()

	var escaped *otopic.Hub2[int]

	res := otopic.With2(otest.NewLogger(t), func(h *otopic.Hub2[int]) int {
		escaped = h
		return 7
	})
	require.Equal(t, 7, res)

	require.Panics(t, func() {
		escaped.Subscribe([]string{"t"}, []string{"c"}, func(int) {})
	})
}

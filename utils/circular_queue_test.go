package utils

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCircularQueueDropsOldest(t *testing.T) {
	q := NewCircularQueue[int](3, nil)
	require.Equal(t, 0, q.Len())
	require.Equal(t, 3, q.Cap())

	for i := 1; i <= 5; i++ {
		require.NoError(t, q.Append(i))
	}
	require.Equal(t, []int{3, 4, 5}, slices.Collect(q.Iter()))

	newest, ok := q.Newest()
	require.True(t, ok)
	require.Equal(t, 5, newest)

	oldest, err := q.Get(0)
	require.NoError(t, err)
	require.Equal(t, 3, oldest)

	_, err = q.Get(3)
	require.Error(t, err)
}

func TestCircularQueuePropagate(t *testing.T) {
	q := NewCircularQueue(2, func() *int { v := 7; return &v })
	require.Equal(t, 2, q.Len())

	v, ok := q.Pop()
	require.True(t, ok)
	require.Equal(t, 7, *v)
	require.Equal(t, 1, q.Len())
}

func TestCircularQueueZeroCapacity(t *testing.T) {
	q := NewCircularQueue[int](0, nil)
	require.Error(t, q.Append(1))
	_, ok := q.Newest()
	require.False(t, ok)
}

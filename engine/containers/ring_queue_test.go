package containers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingQueueFIFO(t *testing.T) {
	q := NewRingQueue[string](2)
	assert.True(t, q.IsEmpty())

	require.NoError(t, q.Enqueue("a"))
	require.NoError(t, q.Enqueue("b"))
	assert.True(t, q.IsFull())
	assert.ErrorIs(t, q.Enqueue("c"), ErrQueueFull)

	front, err := q.Peek()
	require.NoError(t, err)
	assert.Equal(t, "a", front)

	v, err := q.Dequeue()
	require.NoError(t, err)
	assert.Equal(t, "a", v)

	// Wraps around the backing array.
	require.NoError(t, q.Enqueue("c"))
	assert.Equal(t, 2, q.Len())
	assert.True(t, q.Contains(func(s string) bool { return s == "c" }))
	assert.False(t, q.Contains(func(s string) bool { return s == "a" }))

	v, _ = q.Dequeue()
	assert.Equal(t, "b", v)
	v, _ = q.Dequeue()
	assert.Equal(t, "c", v)

	_, err = q.Dequeue()
	assert.ErrorIs(t, err, ErrQueueEmpty)
	_, err = q.Peek()
	assert.ErrorIs(t, err, ErrQueueEmpty)
}

package sequence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriorityQueueOrdersByLess(t *testing.T) {
	pq := NewPriorityQueue(func(a, b float64) bool { return a < b })
	for _, v := range []float64{5, 1, 4, 2, 3} {
		pq.Enqueue(v)
	}

	head, ok := pq.Peek()
	require.True(t, ok)
	assert.Equal(t, 1.0, head)
	assert.Equal(t, 5, pq.Len())

	var got []float64
	for !pq.IsEmpty() {
		v, ok := pq.Dequeue()
		require.True(t, ok)
		got = append(got, v)
	}
	assert.Equal(t, []float64{1, 2, 3, 4, 5}, got)

	_, ok = pq.Dequeue()
	assert.False(t, ok)
}

func TestPriorityQueueDrainAndClear(t *testing.T) {
	pq := NewPriorityQueue(func(a, b int) bool { return a > b })
	pq.Enqueue(1)
	pq.Enqueue(3)
	pq.Enqueue(2)
	assert.Equal(t, []int{3, 2, 1}, pq.Drain())
	assert.True(t, pq.IsEmpty())

	pq.Enqueue(7)
	pq.Clear()
	assert.Equal(t, 0, pq.Len())
	_, ok := pq.Peek()
	assert.False(t, ok)
}

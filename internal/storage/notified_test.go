package storage

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotified_MarkThenHas(t *testing.T) {
	n := NewNotified()

	assert.False(t, n.Has(1, 42))

	n.Mark(1, 42)
	assert.True(t, n.Has(1, 42))

	// Marking again is idempotent
	n.Mark(1, 42)
	assert.True(t, n.Has(1, 42))
	assert.Equal(t, 1, n.Len())
}

func TestNotified_PairsAreDistinctPerUser(t *testing.T) {
	n := NewNotified()

	n.Mark(1, 42)

	assert.True(t, n.Has(1, 42))
	assert.False(t, n.Has(2, 42))
	assert.False(t, n.Has(1, 43))
}

func TestNotified_ConcurrentAccess(t *testing.T) {
	n := NewNotified()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		id := int64(i)
		go func() {
			defer wg.Done()
			n.Mark(id, 42)
		}()
		go func() {
			defer wg.Done()
			n.Has(id, 42)
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, n.Len())
}

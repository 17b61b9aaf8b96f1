package parallel

import (
	"runtime"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkers(t *testing.T) {
	assert.Equal(t, 4, Workers(4, 100))
	assert.Equal(t, 3, Workers(8, 3))
	assert.Equal(t, min(runtime.NumCPU(), 1000), Workers(0, 1000))
	assert.Equal(t, 1, Workers(-1, 0))
}

func TestParallelize_CoversEveryIndexOnce(t *testing.T) {
	for _, workers := range []int{1, 2, 3, 7, 0} {
		const items = 1000
		var hits [items]int32
		Parallelize(items, workers, func(start, end int) {
			for i := start; i < end; i++ {
				atomic.AddInt32(&hits[i], 1)
			}
		})
		for i, h := range hits {
			if h != 1 {
				t.Fatalf("workers=%d: index %d visited %d times", workers, i, h)
			}
		}
	}
}

func TestParallelize_ZeroItems(t *testing.T) {
	called := false
	Parallelize(0, 4, func(start, end int) { called = true })
	assert.False(t, called)
}

func TestParallelizeWithThreshold_Sequential(t *testing.T) {
	var calls int32
	ParallelizeWithThreshold(10, 100, 4, func(start, end int) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, 0, start)
		assert.Equal(t, 10, end)
	})
	assert.Equal(t, int32(1), calls)
}

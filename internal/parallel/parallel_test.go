package parallel

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForRange_CoversEveryIndex(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 8}

	var counter int64
	seen := make([]int32, 1000)
	ForRange(len(seen), func(start, end int) {
		for i := start; i < end; i++ {
			atomic.AddInt64(&counter, 1)
			atomic.AddInt32(&seen[i], 1)
		}
	}, cfg)

	assert.Equal(t, int64(1000), counter)
	for i, s := range seen {
		assert.Equal(t, int32(1), s, "index %d", i)
	}
}

func TestForRange_Chunks(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 3, MinChunkSize: 10}

	var mu sync.Mutex
	covered := 0
	chunks := 0
	ForRange(100, func(start, end int) {
		mu.Lock()
		defer mu.Unlock()
		assert.Less(t, start, end)
		covered += end - start
		chunks++
	}, cfg)

	assert.Equal(t, 100, covered)
	assert.Equal(t, 3, chunks)
}

func TestForRange_Sequential(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		n    int
	}{
		{"disabled", Config{Enabled: false, NumWorkers: 8, MinChunkSize: 1}, 100},
		{"small", Config{Enabled: true, NumWorkers: 8, MinChunkSize: 64}, 100},
		{"one worker", Config{Enabled: true, NumWorkers: 1, MinChunkSize: 1}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			ForRange(tt.n, func(start, end int) {
				calls++
				assert.Equal(t, 0, start)
				assert.Equal(t, tt.n, end)
			}, tt.cfg)
			assert.Equal(t, 1, calls)
		})
	}
}

func TestForRange_Empty(t *testing.T) {
	ForRange(0, func(_, _ int) { t.Fatal("called on empty range") }, DefaultConfig())
}

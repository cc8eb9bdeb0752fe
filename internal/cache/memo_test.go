package cache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMemo(size int) *Memo[int] {
	return New[int]("test", size, zerolog.New(nil).Level(zerolog.Disabled))
}

func TestMemo_SetGet(t *testing.T) {
	m := newTestMemo(4)

	_, ok := m.Get("a")
	assert.False(t, ok)

	m.Set("a", 1)
	v, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	m.Set("a", 2)
	v, _ = m.Get("a")
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, m.Len())
}

func TestMemo_EvictsLeastRecentlyUsed(t *testing.T) {
	m := newTestMemo(2)
	m.Set("a", 1)
	m.Set("b", 2)
	m.Get("a")
	m.Set("c", 3)

	_, ok := m.Get("b")
	assert.False(t, ok, "b was least recently used")
	_, ok = m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 2, m.Len())
}

func TestMemo_Disabled(t *testing.T) {
	m := newTestMemo(0)
	m.Set("a", 1)
	_, ok := m.Get("a")
	assert.False(t, ok)

	calls := 0
	for i := 0; i < 3; i++ {
		v, err := m.GetOrCompute("a", func() (int, error) {
			calls++
			return 7, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 7, v)
	}
	assert.Equal(t, 3, calls)
}

func TestMemo_GetOrComputeCachesSuccessOnly(t *testing.T) {
	m := newTestMemo(4)
	boom := errors.New("boom")

	_, err := m.GetOrCompute("k", func() (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, m.Len())

	v, err := m.GetOrCompute("k", func() (int, error) { return 5, nil })
	require.NoError(t, err)
	assert.Equal(t, 5, v)

	v, err = m.GetOrCompute("k", func() (int, error) { return 6, nil })
	require.NoError(t, err)
	assert.Equal(t, 5, v)

	stats := m.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(2), stats.Misses)
	assert.Equal(t, 1, stats.Entries)
}

func TestMemo_GetOrComputeCollapsesConcurrentCalls(t *testing.T) {
	m := newTestMemo(4)
	var calls atomic.Int32
	release := make(chan struct{})

	var wg sync.WaitGroup
	results := make([]int, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := m.GetOrCompute("k", func() (int, error) {
				calls.Add(1)
				<-release
				return 42, nil
			})
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, v := range results {
		assert.Equal(t, 42, v)
	}
}

package smartsheet

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestQueueRunsTasksInOrder(t *testing.T) {
	q := NewRequestQueue(time.Millisecond)

	var mu sync.Mutex
	var order []int

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			// stagger enqueues so FIFO order is deterministic
			time.Sleep(time.Duration(i*5) * time.Millisecond)
			_, err := q.Enqueue(func() (interface{}, error) {
				mu.Lock()
				order = append(order, i)
				mu.Unlock()
				return nil, nil
			})
			require.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
	assert.Equal(t, 0, q.Len())
}

func TestRequestQueueDelaysBetweenTasks(t *testing.T) {
	q := NewRequestQueue(50 * time.Millisecond)

	var slept []time.Duration
	var mu sync.Mutex
	q.sleep = func(d time.Duration) {
		mu.Lock()
		slept = append(slept, d)
		mu.Unlock()
	}

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = q.Enqueue(func() (interface{}, error) { return nil, nil })
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, slept, 3)
	for _, d := range slept {
		assert.Equal(t, 50*time.Millisecond, d)
	}
}

func TestRequestQueueOneTaskAtATime(t *testing.T) {
	q := NewRequestQueue(time.Millisecond)

	var running, maxRunning int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = q.Enqueue(func() (interface{}, error) {
				n := atomic.AddInt32(&running, 1)
				if n > atomic.LoadInt32(&maxRunning) {
					atomic.StoreInt32(&maxRunning, n)
				}
				time.Sleep(2 * time.Millisecond)
				atomic.AddInt32(&running, -1)
				return nil, nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&maxRunning))
}

func TestRequestQueueFailureIsolation(t *testing.T) {
	q := NewRequestQueue(time.Millisecond)
	boom := errors.New("boom")

	_, err := q.Enqueue(func() (interface{}, error) { return nil, boom })
	require.ErrorIs(t, err, boom)

	// a failing task must not stop the drain for the next one
	v, err := q.Enqueue(func() (interface{}, error) { return 42, nil })
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestRequestQueueReturnsTaskValue(t *testing.T) {
	q := NewRequestQueue(time.Millisecond)

	v, err := q.Enqueue(func() (interface{}, error) { return []int64{7, 8}, nil })
	require.NoError(t, err)
	assert.Equal(t, []int64{7, 8}, v)
}

func TestRequestQueueDefaultDelay(t *testing.T) {
	q := NewRequestQueue(0)
	assert.Equal(t, DefaultQueueDelay, q.delay)
}

package smartsheet

import (
	"sync"
	"time"
)

// DefaultQueueDelay is the minimum gap between outbound API calls.
const DefaultQueueDelay = 200 * time.Millisecond

type queuedTask struct {
	run  func() (interface{}, error)
	done chan taskResult
}

type taskResult struct {
	value interface{}
	err   error
}

// RequestQueue serializes every outbound Smartsheet call. Tasks run one at a
// time in FIFO order with a fixed delay between them, so the aggregate call
// rate stays under the API quota no matter how many callers enqueue
// concurrently. A task's error is delivered only to its own caller and never
// stops the drain.
type RequestQueue struct {
	mu       sync.Mutex
	pending  []*queuedTask
	draining bool

	delay time.Duration
	sleep func(time.Duration)
}

// NewRequestQueue returns a queue with the given inter-request delay.
// A non-positive delay falls back to DefaultQueueDelay.
func NewRequestQueue(delay time.Duration) *RequestQueue {
	if delay <= 0 {
		delay = DefaultQueueDelay
	}
	return &RequestQueue{
		delay: delay,
		sleep: time.Sleep,
	}
}

// Enqueue appends task to the queue and blocks until it has run, returning
// the task's own result. Calling Enqueue while a drain is already in progress
// only appends; at most one drain loop is ever active.
func (q *RequestQueue) Enqueue(task func() (interface{}, error)) (interface{}, error) {
	t := &queuedTask{run: task, done: make(chan taskResult, 1)}

	q.mu.Lock()
	q.pending = append(q.pending, t)
	start := !q.draining
	if start {
		q.draining = true
	}
	q.mu.Unlock()

	if start {
		go q.drain()
	}

	res := <-t.done
	return res.value, res.err
}

// Len reports how many tasks are waiting. Used by tests and status logging.
func (q *RequestQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

func (q *RequestQueue) drain() {
	for {
		q.mu.Lock()
		if len(q.pending) == 0 {
			q.draining = false
			q.mu.Unlock()
			return
		}
		t := q.pending[0]
		q.pending = q.pending[1:]
		q.mu.Unlock()

		v, err := t.run()
		t.done <- taskResult{value: v, err: err}

		q.sleep(q.delay)
	}
}

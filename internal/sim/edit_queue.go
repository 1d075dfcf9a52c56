package sim

import "sync"

const (
	editQueueDepthMetricKey    = "sim_edit_queue_depth"
	editQueueOverflowMetricKey = "sim_edit_queue_overflow_total"
)

// EditQueue stages edit commands between frames in a fixed-size ring.
// Network sessions push from their own goroutines; the frame loop is the
// single consumer and drains the whole queue at the top of each frame.
type EditQueue struct {
	mu      sync.Mutex
	ring    []Command
	head    int
	tail    int
	depth   int
	metrics queueMetrics
}

type queueMetrics interface {
	Add(string, uint64)
	Store(string, uint64)
}

// NewEditQueue builds a queue staging at most capacity edits.
func NewEditQueue(capacity int, metrics queueMetrics) *EditQueue {
	if capacity < 1 {
		capacity = 1
	}
	return &EditQueue{
		ring:    make([]Command, capacity),
		metrics: metrics,
	}
}

// Capacity reports the most edits the queue can hold at once.
func (q *EditQueue) Capacity() int {
	if q == nil {
		return 0
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.ring)
}

// Push stages one edit, returning false when the queue is full. Overflow is
// counted; the session decides whether to tell the client.
func (q *EditQueue) Push(cmd Command) bool {
	if q == nil {
		return false
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.depth == len(q.ring) {
		if q.metrics != nil {
			q.metrics.Add(editQueueOverflowMetricKey, 1)
		}
		return false
	}
	q.ring[q.tail] = cmd
	q.tail = (q.tail + 1) % len(q.ring)
	q.depth++
	q.storeDepthLocked()
	return true
}

// Drain returns every staged edit in arrival order and empties the queue.
func (q *EditQueue) Drain() []Command {
	if q == nil {
		return nil
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.depth == 0 {
		return nil
	}
	drained := make([]Command, q.depth)
	for i := range drained {
		drained[i] = q.ring[(q.head+i)%len(q.ring)]
	}
	q.head = 0
	q.tail = 0
	q.depth = 0
	q.storeDepthLocked()
	return drained
}

// Len reports the number of staged edits.
func (q *EditQueue) Len() int {
	if q == nil {
		return 0
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.depth
}

func (q *EditQueue) storeDepthLocked() {
	if q.metrics == nil {
		return
	}
	q.metrics.Store(editQueueDepthMetricKey, uint64(q.depth))
}

package backend

import "sync"

// queue is an unbounded FIFO with a single blocking consumer. Producers never
// block, so neither the UI goroutine nor the stdout reader can be stalled by
// the other side.
type queue[T any] struct {
	mu     sync.Mutex
	items  []T
	closed bool

	ready chan struct{} // cap 1, poked on every push
	done  chan struct{} // closed by close()
}

func newQueue[T any]() *queue[T] {
	return &queue[T]{
		ready: make(chan struct{}, 1),
		done:  make(chan struct{}),
	}
}

// push appends v. It reports false once the queue has been closed.
func (q *queue[T]) push(v T) bool {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return false
	}
	q.items = append(q.items, v)
	q.mu.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
	}
	return true
}

// pop blocks until an item is available. Items queued before close are still
// handed out; after that pop reports false.
func (q *queue[T]) pop() (T, bool) {
	for {
		q.mu.Lock()
		if len(q.items) > 0 {
			v := q.items[0]
			var zero T
			q.items[0] = zero
			q.items = q.items[1:]
			q.mu.Unlock()
			return v, true
		}
		closed := q.closed
		q.mu.Unlock()

		if closed {
			var zero T
			return zero, false
		}
		select {
		case <-q.ready:
		case <-q.done:
		}
	}
}

// drain removes and returns everything currently queued without blocking.
func (q *queue[T]) drain() []T {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// close is idempotent.
func (q *queue[T]) close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	close(q.done)
}

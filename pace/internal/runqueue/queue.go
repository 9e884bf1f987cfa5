package runqueue

import (
	"context"
	"sync"
	"time"
)

// Queue is a serialized FIFO of deferred tasks drained by a single Run
// loop. Posting is safe from any goroutine; tasks always execute on the
// goroutine that called Run, which makes that goroutine the serialized
// execution context the pacer requires.
type Queue struct {
	mu      sync.Mutex
	tasks   []func()
	wake    chan struct{}
	stopped bool
}

func NewQueue() *Queue {
	return &Queue{
		wake: make(chan struct{}, 1),
	}
}

func (q *Queue) PostTask(fn func()) {
	q.mu.Lock()
	if q.stopped {
		q.mu.Unlock()
		return
	}
	q.tasks = append(q.tasks, fn)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

func (q *Queue) PostDelayedTask(fn func(), delay time.Duration) {
	if delay <= 0 {
		q.PostTask(fn)
		return
	}

	time.AfterFunc(delay, func() {
		q.PostTask(fn)
	})
}

// Run drains posted tasks until ctx is cancelled, then drops the
// backlog. Tasks posted after Run returns are dropped as well.
func (q *Queue) Run(ctx context.Context) {
	defer q.stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-q.wake:
		}

		for {
			select {
			case <-ctx.Done():
				return
			default:
			}

			task := q.next()
			if task == nil {
				break
			}

			task()
		}
	}
}

func (q *Queue) next() func() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.tasks) == 0 {
		return nil
	}

	task := q.tasks[0]
	q.tasks = q.tasks[1:]
	return task
}

func (q *Queue) stop() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.stopped = true
	q.tasks = nil
}

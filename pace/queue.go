package pace

import "time"

type (
	// TaskQueue serializes deferred zero-argument tasks onto a single
	// execution context. The pacer and the delay-based time source post
	// their continuations to it; both guard every posted closure with a
	// generation check, so the queue itself needs no cancel operation.
	TaskQueue interface {
		PostTask(fn func())
		PostDelayedTask(fn func(), delay time.Duration)
	}
)

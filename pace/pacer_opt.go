package pace

import "time"

type (
	Initializer = func(*Pacer)

	// should return current time (time.Now())
	// redeclared for unit tests
	timeObtainer = func() time.Time
)

func WithMaxSwapsPending(maxSwapsPending int) Initializer {
	return func(p *Pacer) {
		p.maxSwapsPending = maxSwapsPending
	}
}

func WithLogger(logger logger) Initializer {
	return func(p *Pacer) {
		p.logger = logger
	}
}

func WithTimeObtainer(obtainer timeObtainer) Initializer {
	return func(p *Pacer) {
		p.getTime = obtainer
	}
}

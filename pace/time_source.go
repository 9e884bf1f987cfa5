package pace

import "time"

type (
	// TimeSourceClient receives one OnTimerTick per period while its
	// source is active.
	TimeSourceClient interface {
		OnTimerTick()
	}

	// TimeSource is a periodic ticker aligned to an external signal,
	// typically hardware vsync.
	TimeSource interface {
		SetClient(client TimeSourceClient)

		// SetActive starts or stops periodic notification. Calling it
		// with the current state is a no-op.
		SetActive(active bool)

		// SetTimebaseAndInterval realigns the tick phase: ticks target
		// timebase + n*interval.
		SetTimebaseAndInterval(timebase time.Time, interval time.Duration)

		// NextTickTime returns the scheduled next tick, or the zero
		// time while inactive.
		NextTickTime() time.Time

		// LastTickTime returns the target of the last tick that fired.
		LastTickTime() time.Time
	}
)

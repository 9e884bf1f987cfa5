package pace

import "time"

type (
	TimeSourceInitializer = func(*DelayBasedTimeSource)
)

func WithSourceInterval(interval time.Duration) TimeSourceInitializer {
	return func(ts *DelayBasedTimeSource) {
		ts.interval = interval
	}
}

func WithSourceTimeObtainer(obtainer timeObtainer) TimeSourceInitializer {
	return func(ts *DelayBasedTimeSource) {
		ts.getTime = obtainer
	}
}

package pace

// Stats is a snapshot of the pacer`s counters. The totals are
// monotonic; FramesPending is the live in-flight gauge.
type Stats struct {
	Ticks          uint64
	ThrottledTicks uint64
	SwapsIssued    uint64
	SwapsCompleted uint64
	Aborts         uint64

	FramesPending int
}

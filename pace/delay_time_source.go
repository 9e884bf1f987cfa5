package pace

import "time"

const defaultInterval = time.Second / 60

// DelayBasedTimeSource synthesizes a periodic tick signal by posting a
// delayed task for each tick. Tick targets snap to the phase grid
// timebase + n*interval; periods missed while the queue was busy are
// skipped, not replayed - the next target is always in the future.
//
// Like the pacer it is unsynchronized and lives on one serialized
// execution context.
type DelayBasedTimeSource struct {
	queue   TaskQueue
	getTime timeObtainer

	client TimeSourceClient

	// state
	active       bool
	timebase     time.Time
	interval     time.Duration
	lastTickTime time.Time
	nextTickTime time.Time
	generation   uint64
}

func NewDelayBasedTimeSource(queue TaskQueue, initializers ...TimeSourceInitializer) *DelayBasedTimeSource {
	ts := &DelayBasedTimeSource{
		queue:    queue,
		getTime:  time.Now,
		interval: defaultInterval,
	}

	for _, init := range initializers {
		init(ts)
	}

	return ts
}

func (ts *DelayBasedTimeSource) SetClient(client TimeSourceClient) {
	ts.client = client
}

func (ts *DelayBasedTimeSource) SetActive(active bool) {
	if ts.active == active {
		return
	}
	ts.active = active

	if active {
		ts.postNextTick()
	} else {
		// invalidate the outstanding delayed task
		ts.generation++
		ts.nextTickTime = time.Time{}
	}
}

func (ts *DelayBasedTimeSource) SetTimebaseAndInterval(timebase time.Time, interval time.Duration) {
	ts.timebase = timebase
	ts.interval = interval

	if ts.active {
		// retarget: drop the outstanding post, realign to the new phase
		ts.generation++
		ts.postNextTick()
	}
}

func (ts *DelayBasedTimeSource) NextTickTime() time.Time {
	return ts.nextTickTime
}

func (ts *DelayBasedTimeSource) LastTickTime() time.Time {
	return ts.lastTickTime
}

func (ts *DelayBasedTimeSource) postNextTick() {
	now := ts.getTime()
	target := ts.nextTickTarget(now)
	ts.nextTickTime = target

	generation := ts.generation
	ts.queue.PostDelayedTask(func() {
		if generation != ts.generation {
			return
		}

		ts.onTick()
	}, target.Sub(now))
}

func (ts *DelayBasedTimeSource) onTick() {
	generation := ts.generation
	ts.lastTickTime = ts.nextTickTime

	if ts.client != nil {
		ts.client.OnTimerTick()
	}

	// the client may have deactivated or retargeted us re-entrantly;
	// both bump the generation and own the next post
	if ts.active && generation == ts.generation {
		ts.postNextTick()
	}
}

// nextTickTarget snaps to the first phase boundary strictly after now.
func (ts *DelayBasedTimeSource) nextTickTarget(now time.Time) time.Time {
	if ts.interval <= 0 {
		return now
	}

	elapsed := now.Sub(ts.timebase)
	periods := elapsed / ts.interval
	if elapsed%ts.interval >= 0 {
		// integer division truncates toward zero; this turns it into
		// floor+1 for both signs of elapsed
		periods++
	}

	return ts.timebase.Add(periods * ts.interval)
}

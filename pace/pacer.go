package pace

import (
	"fmt"
	"time"
)

type (
	// Client consumes tick notifications. The pacer always delivers the
	// tick, throttled or not; whether to actually produce a frame on a
	// throttled tick is the client`s decision, not the pacer`s.
	Client interface {
		Tick(throttled bool)
	}

	// Pacer decides when the next frame may be produced and whether
	// production should back off because too many swaps are still in
	// flight. It runs in one of two modes, fixed at construction:
	//   - hardware: a bound TimeSource drives ticks (vsync aligned)
	//   - manual:   the pacer chains self-posted tasks on a TaskQueue
	//
	// The pacer is not synchronized. Everything - SetActive, tick
	// delivery, swap bookkeeping - must happen on one serialized
	// execution context.
	Pacer struct {
		logger  logger
		getTime timeObtainer

		client     Client
		timeSource TimeSource
		queue      TaskQueue

		// state
		active           bool
		numFramesPending int
		maxSwapsPending  int
		generation       uint64
		stats            Stats

		// mode, fixed for the object`s lifetime
		timeSourceThrottling bool
	}
)

// NewPacer creates a pacer driven by the given time source. The pacer
// registers itself as the source`s client.
func NewPacer(source TimeSource, initializers ...Initializer) *Pacer {
	p := &Pacer{
		logger:               &fallbackLogger{},
		getTime:              time.Now,
		timeSource:           source,
		timeSourceThrottling: true,
	}

	for _, init := range initializers {
		init(p)
	}

	source.SetClient(p)
	return p
}

// NewManualPacer creates a self-paced pacer that keeps itself ticking
// by re-posting a task to the queue after each tick.
func NewManualPacer(queue TaskQueue, initializers ...Initializer) *Pacer {
	p := &Pacer{
		logger:  &fallbackLogger{},
		getTime: time.Now,
		queue:   queue,
	}

	for _, init := range initializers {
		init(p)
	}

	return p
}

// SetClient registers the tick consumer. Set once, before activation.
func (p *Pacer) SetClient(client Client) {
	p.client = client
}

// SetActive starts or stops ticking. Calling it with the current state
// is a no-op. Deactivation invalidates any self-posted tick that is
// already queued: it will not fire even though it was posted.
func (p *Pacer) SetActive(active bool) {
	if p.active == active {
		return
	}
	p.active = active

	if p.timeSourceThrottling {
		p.timeSource.SetActive(active)
		return
	}

	if active {
		p.postManualTick()
	} else {
		p.generation++
	}
}

// SetMaxSwapsPending updates the backpressure threshold. Zero disables
// throttling by swap count.
func (p *Pacer) SetMaxSwapsPending(maxSwapsPending int) {
	if maxSwapsPending < 0 {
		p.fatal(fmt.Errorf("pace: negative max swaps pending (%d)", maxSwapsPending))
	}

	p.maxSwapsPending = maxSwapsPending
}

// SetTimebaseAndInterval realigns the tick phase. Manual mode has no
// phase, so this is a no-op there.
func (p *Pacer) SetTimebaseAndInterval(timebase time.Time, interval time.Duration) {
	if p.timeSourceThrottling {
		p.timeSource.SetTimebaseAndInterval(timebase, interval)
	}
}

// OnTimerTick delivers one tick to the client. It fires from the bound
// time source in hardware mode, or from a self-posted task in manual
// mode; firing while inactive is a contract violation.
//
// The throttled flag reflects the counters as they stand when the tick
// fires. A client that mutates the pacer from inside Tick (re-entrant
// SetMaxSwapsPending, DidSwapBuffers, ...) affects only subsequent
// ticks, never the flag it was just handed.
func (p *Pacer) OnTimerTick() {
	if !p.active {
		p.fatal(fmt.Errorf("pace: tick delivered while inactive"))
	}

	// too many frames in flight?
	throttled := p.maxSwapsPending != 0 && p.numFramesPending >= p.maxSwapsPending

	p.stats.Ticks++
	if throttled {
		p.stats.ThrottledTicks++
	}

	if p.client != nil {
		p.client.Tick(throttled)
	}

	if !p.timeSourceThrottling && !throttled {
		p.postManualTick()
	}
}

// DidSwapBuffers records one issued, not yet acknowledged frame.
func (p *Pacer) DidSwapBuffers() {
	p.numFramesPending++
	p.stats.SwapsIssued++
}

// DidSwapBuffersComplete acknowledges one previously issued frame. In
// manual mode this is the event that un-stalls a throttled tick chain.
func (p *Pacer) DidSwapBuffersComplete() {
	if p.numFramesPending <= 0 {
		p.fatal(fmt.Errorf("pace: swap complete without matching swap"))
	}

	p.numFramesPending--
	p.stats.SwapsCompleted++

	if !p.timeSourceThrottling {
		p.postManualTick()
	}
}

// DidAbortAllPendingFrames forgives every outstanding swap. Used when
// the pipeline discards in-flight work (context loss) and the per-swap
// acknowledgments will never arrive.
func (p *Pacer) DidAbortAllPendingFrames() {
	p.numFramesPending = 0
	p.stats.Aborts++
}

// NextTickTime returns the scheduled next tick in hardware mode. Manual
// mode has no schedule; the zero time is returned as the unknown
// sentinel.
func (p *Pacer) NextTickTime() time.Time {
	if p.timeSourceThrottling {
		return p.timeSource.NextTickTime()
	}

	return time.Time{}
}

// LastTickTime returns the last observed tick in hardware mode. Manual
// ticks are synthesized on demand rather than observed, so manual mode
// returns the current time.
func (p *Pacer) LastTickTime() time.Time {
	if p.timeSourceThrottling {
		return p.timeSource.LastTickTime()
	}

	return p.getTime()
}

// Stats returns a snapshot of the pacer`s counters.
func (p *Pacer) Stats() Stats {
	stats := p.stats
	stats.FramesPending = p.numFramesPending
	return stats
}

func (p *Pacer) postManualTick() {
	if !p.active {
		return
	}

	// the closure captures the current generation; SetActive(false)
	// bumps it, so a task queued before deactivation never fires
	generation := p.generation
	p.queue.PostTask(func() {
		if generation != p.generation {
			return
		}

		p.OnTimerTick()
	})
}

func (p *Pacer) fatal(err error) {
	p.logger.Error(err)
	panic(err)
}

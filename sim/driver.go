package sim

import (
	"context"
	"sync"
	"time"
)

// FrameFunc observes the state after each tick
type FrameFunc func(snapshot Snapshot, report StepReport)

// Driver ticks a simulation on a fixed schedule, for hosts that have no
// frame loop of their own
type Driver struct {
	sim      *Simulation
	interval time.Duration
	onFrame  FrameFunc

	stop     chan struct{}
	stopOnce sync.Once
}

// NewDriver creates a driver that ticks sim once per interval
func NewDriver(sim *Simulation, interval time.Duration) *Driver {
	return &Driver{
		sim:      sim,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// OnFrame registers fn to be called after every tick
func (d *Driver) OnFrame(fn FrameFunc) {
	d.onFrame = fn
}

// Run ticks the simulation in real time until ctx is cancelled, Stop is
// called, or maxFrames ticks have run (maxFrames <= 0 means no limit).
// It returns ctx.Err() when cancelled and nil otherwise.
func (d *Driver) Run(ctx context.Context, maxFrames int) error {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	frames := 0
	for maxFrames <= 0 || frames < maxFrames {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-d.stop:
			return nil
		case now := <-ticker.C:
			d.tick(now)
			frames++
		}
	}
	return nil
}

// RunFrames ticks the simulation n times on a virtual clock that starts at
// start and advances by the frame interval per tick. It returns the clock
// value after the last tick. Stop ends it early.
func (d *Driver) RunFrames(start time.Time, n int) time.Time {
	now := start
	for i := 0; i < n; i++ {
		select {
		case <-d.stop:
			return now
		default:
		}
		now = now.Add(d.interval)
		d.tick(now)
	}
	return now
}

// Stop ends Run or RunFrames. It is safe to call more than once and from
// any goroutine.
func (d *Driver) Stop() {
	d.stopOnce.Do(func() {
		close(d.stop)
	})
}

func (d *Driver) tick(now time.Time) {
	report := d.sim.Tick(now)
	if d.onFrame != nil {
		d.onFrame(d.sim.Snapshot(), report)
	}
}

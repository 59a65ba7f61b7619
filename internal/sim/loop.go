package sim

import (
	"sync"
	"sync/atomic"
	"time"
)

// Loop lifecycle states.
const (
	stateIdle uint32 = iota
	stateRunning
	stateStopping
	stateStopped
)

// Loop invokes a tick function at a fixed rate on its own goroutine. Ticks
// are scheduled against absolute deadlines on the monotonic clock, so jitter
// in one tick does not accumulate into drift. When the loop falls more than
// one period behind it realigns to the present instead of bursting to catch
// up. Stop is cooperative: the running tick always completes, then the
// goroutine exits before the next deadline.
type Loop struct {
	period time.Duration
	tick   func(now time.Duration)

	state atomic.Uint32
	stop  chan struct{}
	wg    sync.WaitGroup
}

// NewLoop builds a loop that calls tick every period. The now argument to
// tick is the elapsed time since Start.
func NewLoop(period time.Duration, tick func(now time.Duration)) *Loop {
	return &Loop{
		period: period,
		tick:   tick,
		stop:   make(chan struct{}),
	}
}

// Start launches the tick goroutine. A loop runs at most once; calling
// Start again, even after Stop, returns ErrAlreadyRunning.
func (l *Loop) Start() error {
	if !l.state.CompareAndSwap(stateIdle, stateRunning) {
		return ErrAlreadyRunning
	}
	l.wg.Add(1)
	go l.run()
	return nil
}

// Stop asks the goroutine to exit and waits for it. The call returns only
// after the final tick has completed.
func (l *Loop) Stop() error {
	if !l.state.CompareAndSwap(stateRunning, stateStopping) {
		return ErrNotRunning
	}
	close(l.stop)
	l.wg.Wait()
	l.state.Store(stateStopped)
	return nil
}

// Running reports whether the tick goroutine is active.
func (l *Loop) Running() bool {
	return l.state.Load() == stateRunning
}

func (l *Loop) run() {
	defer l.wg.Done()

	epoch := time.Now()
	deadline := l.period
	timer := time.NewTimer(l.period)
	defer timer.Stop()

	for {
		select {
		case <-l.stop:
			return
		case <-timer.C:
		}

		now := time.Since(epoch)
		l.tick(now)

		deadline += l.period
		if deadline < now {
			deadline = now + l.period
		}
		timer.Reset(deadline - time.Since(epoch))
	}
}

package testing

import (
	"sort"
	"time"
)

type timer struct {
	due time.Duration
	seq int
	fn  func()
}

// FakeLoop is a manually driven event loop with a virtual clock. Timers only
// fire from Advance and background tasks only run from RunPending.
type FakeLoop struct {
	start   time.Time
	elapsed time.Duration
	seq     int

	timers []timer

	every      func()
	interval   time.Duration
	nextEvery  time.Duration
	EveryCalls int

	pending []func() func()
}

// NewFakeLoop creates a loop whose clock starts at start.
func NewFakeLoop(start time.Time) *FakeLoop {
	return &FakeLoop{start: start}
}

// Now returns the virtual time. Pass it as the session clock.
func (l *FakeLoop) Now() time.Time {
	return l.start.Add(l.elapsed)
}

func (l *FakeLoop) After(d time.Duration, fn func()) {
	l.seq++
	l.timers = append(l.timers, timer{due: l.elapsed + d, seq: l.seq, fn: fn})
}

func (l *FakeLoop) Every(d time.Duration, fn func()) {
	l.EveryCalls++
	l.every = fn
	l.interval = d
	l.nextEvery = l.elapsed + d
}

func (l *FakeLoop) Go(task func() func()) {
	l.pending = append(l.pending, task)
}

// Interval returns the interval of the installed repeating timer.
func (l *FakeLoop) Interval() time.Duration {
	return l.interval
}

// Pending returns the number of queued background tasks.
func (l *FakeLoop) Pending() int {
	return len(l.pending)
}

// RunPending runs queued background tasks in order and applies their results.
func (l *FakeLoop) RunPending() {
	for len(l.pending) > 0 {
		task := l.pending[0]
		l.pending = l.pending[1:]
		if apply := task(); apply != nil {
			apply()
		}
	}
}

// RunOne runs only the oldest queued task. It reports whether one ran.
func (l *FakeLoop) RunOne() bool {
	if len(l.pending) == 0 {
		return false
	}
	task := l.pending[0]
	l.pending = l.pending[1:]
	if apply := task(); apply != nil {
		apply()
	}
	return true
}

// Advance moves the clock forward by d, firing due timers in order.
func (l *FakeLoop) Advance(d time.Duration) {
	target := l.elapsed + d
	for {
		sort.SliceStable(l.timers, func(i, j int) bool {
			if l.timers[i].due != l.timers[j].due {
				return l.timers[i].due < l.timers[j].due
			}
			return l.timers[i].seq < l.timers[j].seq
		})

		oneShot := len(l.timers) > 0 && l.timers[0].due <= target
		repeat := l.every != nil && l.interval > 0 && l.nextEvery <= target

		switch {
		case oneShot && (!repeat || l.timers[0].due <= l.nextEvery):
			t := l.timers[0]
			l.timers = l.timers[1:]
			l.elapsed = t.due
			t.fn()
		case repeat:
			l.elapsed = l.nextEvery
			l.nextEvery += l.interval
			l.every()
		default:
			l.elapsed = target
			return
		}
	}
}

// Settle fires timers for up to d and runs background tasks after each step
// until nothing is left to do.
func (l *FakeLoop) Settle(d time.Duration) {
	const step = time.Millisecond
	for waited := time.Duration(0); waited < d; waited += step {
		l.RunPending()
		l.Advance(step)
	}
	l.RunPending()
}

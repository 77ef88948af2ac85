package dashboard

import (
	"math"
	"time"
)

// TweenFrame is the interval between animation frames.
const TweenFrame = 16 * time.Millisecond

const (
	tweenSteps     = 10
	tweenTolerance = 0.01
)

// Tween moves a value toward a target in fixed steps of a tenth of the
// initial distance. It finishes once the target is reached or passed, or
// immediately when the start is already within tolerance.
type Tween struct {
	current float64
	target  float64
	step    float64
	done    bool
}

// NewTween starts a tween from from to to.
func NewTween(from, to float64) *Tween {
	t := &Tween{current: from, target: to}
	if math.Abs(to-from) < tweenTolerance {
		t.current = to
		t.done = true
		return t
	}
	t.step = (to - from) / tweenSteps
	return t
}

// Next advances one frame and returns the new value.
func (t *Tween) Next() (value float64, done bool) {
	if t.done {
		return t.target, true
	}
	t.current += t.step
	if (t.step > 0 && t.current >= t.target) ||
		(t.step < 0 && t.current <= t.target) ||
		math.Abs(t.target-t.current) < tweenTolerance {
		t.current = t.target
		t.done = true
	}
	return t.current, t.done
}

func (t *Tween) Value() float64 { return t.current }
func (t *Tween) Done() bool     { return t.done }

// tweener drives per-field tweens on the event loop. Starting a new tween
// on a field supersedes the one already running there.
type tweener struct {
	surface Surface
	loop    Loop
	shown   map[FieldID]float64
	gen     map[FieldID]uint64
}

func newTweener(surface Surface, loop Loop) *tweener {
	return &tweener{
		surface: surface,
		loop:    loop,
		shown:   make(map[FieldID]float64),
		gen:     make(map[FieldID]uint64),
	}
}

// seed records the value currently displayed in id.
func (a *tweener) seed(id FieldID, v float64) {
	a.gen[id]++
	a.shown[id] = v
}

func (a *tweener) animate(id FieldID, target float64, format func(float64) string) {
	a.gen[id]++
	gen := a.gen[id]

	from, known := a.shown[id]
	if !known {
		a.shown[id] = target
		a.surface.SetText(id, format(target))
		return
	}
	tw := NewTween(from, target)
	if tw.Done() {
		a.shown[id] = target
		a.surface.SetText(id, format(target))
		return
	}

	var frame func()
	frame = func() {
		if a.gen[id] != gen {
			return
		}
		v, done := tw.Next()
		a.shown[id] = v
		a.surface.SetText(id, format(v))
		if !done {
			a.loop.After(TweenFrame, frame)
		}
	}
	a.loop.After(TweenFrame, frame)
}

// reset stops every running tween and forgets displayed values.
func (a *tweener) reset() {
	for id := range a.gen {
		a.gen[id]++
	}
	a.shown = make(map[FieldID]float64)
}

package anim

import (
	"fmt"
	"time"
)

// State is the playback state of an Animation.
type State int

const (
	Idle State = iota
	Playing
	Paused
	Finished
)

var stateNames = [...]string{
	Idle:     "Idle",
	Playing:  "Playing",
	Paused:   "Paused",
	Finished: "Finished",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Animation advances a progress value from 0 to 1 over its duration and hands
// the eased value to an apply function every update.
//
// Reverse plays from 1 to 0. PingPong plays forward then backward as one
// run; with Loop set the run repeats until Stop.
type Animation struct {
	duration time.Duration
	current  time.Duration
	speed    float64
	state    State
	easing   EasingFunc
	apply    func(eased float32)

	loop      bool
	reverse   bool
	pingPong  bool
	reversing bool

	OnStart    func()
	OnComplete func()
	// OnUpdate receives linear progress after every applied update.
	OnUpdate func(progress float32)
}

// Animator is implemented by *Animation and every type embedding it.
type Animator interface {
	animation() *Animation
}

func (a *Animation) animation() *Animation { return a }

// New creates an idle animation calling apply with eased progress.
func New(duration time.Duration, apply func(eased float32)) *Animation {
	if duration < 0 {
		duration = 0
	}
	return &Animation{duration: duration, speed: 1, easing: Linear, apply: apply}
}

func (a *Animation) Duration() time.Duration    { return a.duration }
func (a *Animation) CurrentTime() time.Duration { return a.current }
func (a *Animation) State() State               { return a.state }

func (a *Animation) SetLoop(loop bool)         { a.loop = loop }
func (a *Animation) SetReverse(reverse bool)   { a.reverse = reverse }
func (a *Animation) SetPingPong(pingPong bool) { a.pingPong = pingPong }

// SetSpeed scales elapsed time. Non-positive speeds are ignored.
func (a *Animation) SetSpeed(speed float64) {
	if speed > 0 {
		a.speed = speed
	}
}

// SetEasing sets the curve applied to progress. nil restores Linear.
func (a *Animation) SetEasing(fn EasingFunc) {
	if fn == nil {
		fn = Linear
	}
	a.easing = fn
}

// Progress returns the direction-adjusted linear progress in [0,1].
func (a *Animation) Progress() float32 {
	p := float32(1)
	if a.duration > 0 {
		p = float32(float64(a.current) / float64(a.duration))
	}
	p = min(max(p, 0), 1)
	if a.reverse != a.reversing {
		p = 1 - p
	}
	return p
}

// Start plays from the beginning, restarting a running animation.
func (a *Animation) Start() {
	a.current = 0
	a.reversing = false
	a.state = Playing
	if a.OnStart != nil {
		a.OnStart()
	}
	a.update()
}

// Stop returns to Idle at time zero without applying.
func (a *Animation) Stop() {
	a.state = Idle
	a.current = 0
	a.reversing = false
}

func (a *Animation) Pause() {
	if a.state == Playing {
		a.state = Paused
	}
}

func (a *Animation) Resume() {
	if a.state == Paused {
		a.state = Playing
	}
}

// Update advances a playing animation by dt scaled by its speed.
func (a *Animation) Update(dt time.Duration) {
	if a.state != Playing || dt <= 0 {
		return
	}
	a.current += time.Duration(float64(dt) * a.speed)
	for a.current >= a.duration {
		if a.duration == 0 || !a.nextPass() {
			a.finish()
			return
		}
		a.current -= a.duration
	}
	a.update()
}

// nextPass turns around or loops at the end of a pass, reporting whether
// playback continues.
func (a *Animation) nextPass() bool {
	switch {
	case a.pingPong && !a.reversing:
		a.reversing = true
	case a.loop:
		a.reversing = false
	default:
		return false
	}
	return true
}

// Seek jumps to t within the current pass and applies it without changing
// the state.
func (a *Animation) Seek(t time.Duration) {
	a.current = min(max(t, 0), a.duration)
	a.update()
}

func (a *Animation) finish() {
	a.current = a.duration
	a.update()
	a.state = Finished
	if a.OnComplete != nil {
		a.OnComplete()
	}
}

func (a *Animation) update() {
	p := a.Progress()
	if a.apply != nil {
		a.apply(a.easing(p))
	}
	if a.OnUpdate != nil {
		a.OnUpdate(p)
	}
}

// drive positions the animation at local time t on a timeline, starting and
// finishing it as t crosses its bounds.
func (a *Animation) drive(t time.Duration) {
	if t < 0 {
		if a.state != Idle {
			a.Stop()
		}
		return
	}
	if a.state == Idle {
		a.state = Playing
		a.reversing = false
		if a.OnStart != nil {
			a.OnStart()
		}
	}
	if t >= a.duration {
		if a.state != Finished {
			a.finish()
		}
		return
	}
	a.state = Playing
	a.Seek(t)
}

// Number is a type PropertyAnimation can interpolate without a custom lerp.
type Number interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// Lerp interpolates between from and to.
func Lerp[T Number](from, to T, t float32) T {
	return from + T(float64(to-from)*float64(t))
}

// PropertyAnimation writes an interpolated value to a target on every update.
type PropertyAnimation[T any] struct {
	*Animation
	target *T
	from   T
	to     T
	lerp   func(from, to T, t float32) T
}

// NewPropertyAnimation animates *target from from to to.
func NewPropertyAnimation[T Number](target *T, from, to T, duration time.Duration) *PropertyAnimation[T] {
	return NewPropertyAnimationFunc(target, from, to, duration, Lerp[T])
}

// NewPropertyAnimationFunc animates *target with a custom interpolation, for
// values such as colors and vectors.
func NewPropertyAnimationFunc[T any](target *T, from, to T, duration time.Duration, lerp func(from, to T, t float32) T) *PropertyAnimation[T] {
	p := &PropertyAnimation[T]{target: target, from: from, to: to, lerp: lerp}
	p.Animation = New(duration, p.set)
	return p
}

func (p *PropertyAnimation[T]) set(eased float32) {
	if p.target != nil {
		*p.target = p.lerp(p.from, p.to, eased)
	}
}

// SetRange changes the endpoints. The target updates on the next apply.
func (p *PropertyAnimation[T]) SetRange(from, to T) {
	p.from, p.to = from, to
}

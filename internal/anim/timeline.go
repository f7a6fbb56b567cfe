package anim

import "time"

type timelineEntry struct {
	anim  *Animation
	start time.Duration
}

// Timeline schedules animations at offsets on a shared clock. Animations on
// a timeline are positioned by the timeline; their own loop, ping-pong and
// speed settings are not used.
type Timeline struct {
	entries        []timelineEntry
	current        time.Duration
	lastStart      time.Duration
	lastSequential time.Duration
	playing        bool

	OnComplete func()
}

func NewTimeline() *Timeline {
	return &Timeline{}
}

// Add schedules a to start at the given offset.
func (tl *Timeline) Add(a Animator, start time.Duration) {
	anim := a.animation()
	if start < 0 {
		start = 0
	}
	tl.entries = append(tl.entries, timelineEntry{anim: anim, start: start})
	tl.lastStart = start
	tl.lastSequential = max(tl.lastSequential, start+anim.Duration())
}

// AddSequential schedules a after everything added so far.
func (tl *Timeline) AddSequential(a Animator) {
	tl.Add(a, tl.lastSequential)
}

// AddParallel schedules a at the start of the previously added animation.
func (tl *Timeline) AddParallel(a Animator) {
	tl.Add(a, tl.lastStart)
}

// Duration is the end time of the last animation.
func (tl *Timeline) Duration() time.Duration {
	var d time.Duration
	for _, e := range tl.entries {
		d = max(d, e.start+e.anim.Duration())
	}
	return d
}

func (tl *Timeline) CurrentTime() time.Duration { return tl.current }
func (tl *Timeline) IsPlaying() bool            { return tl.playing }
func (tl *Timeline) Len() int                   { return len(tl.entries) }

// Play starts or resumes playback. A finished timeline restarts from zero.
func (tl *Timeline) Play() {
	if tl.current >= tl.Duration() {
		tl.Seek(0)
	}
	tl.playing = true
	tl.drive()
}

func (tl *Timeline) Pause() { tl.playing = false }

// Stop halts playback and rewinds every animation to Idle.
func (tl *Timeline) Stop() {
	tl.playing = false
	tl.current = 0
	for _, e := range tl.entries {
		e.anim.Stop()
	}
}

// Seek moves the clock to t and repositions every animation.
func (tl *Timeline) Seek(t time.Duration) {
	tl.current = min(max(t, 0), tl.Duration())
	tl.drive()
}

// Update advances a playing timeline by dt.
func (tl *Timeline) Update(dt time.Duration) {
	if !tl.playing || dt <= 0 {
		return
	}
	tl.current += dt
	end := tl.Duration()
	if tl.current < end {
		tl.drive()
		return
	}
	tl.current = end
	tl.drive()
	tl.playing = false
	if tl.OnComplete != nil {
		tl.OnComplete()
	}
}

func (tl *Timeline) drive() {
	for _, e := range tl.entries {
		e.anim.drive(tl.current - e.start)
	}
}

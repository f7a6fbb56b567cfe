package anim

import (
	"testing"
	"time"
)

func TestTimeline_SequentialAndParallel(t *testing.T) {
	var a, b, c float32
	tl := NewTimeline()
	tl.AddSequential(NewPropertyAnimation(&a, 0, 1, time.Second))
	tl.AddSequential(NewPropertyAnimation(&b, 0, 1, 2*time.Second))
	tl.AddParallel(NewPropertyAnimation(&c, 0, 1, time.Second))

	if tl.Duration() != 3*time.Second {
		t.Fatalf("expected 3s, got %v", tl.Duration())
	}

	tl.Play()
	tl.Update(1500 * time.Millisecond)
	if a != 1 {
		t.Fatalf("expected first animation done, got %v", a)
	}
	if !near(b, 0.25) || !near(c, 0.5) {
		t.Fatalf("expected b=0.25 c=0.5, got b=%v c=%v", b, c)
	}
}

func TestTimeline_AddAt(t *testing.T) {
	var v float32
	anim := NewPropertyAnimation(&v, 0, 1, time.Second)
	tl := NewTimeline()
	tl.Add(anim, 2*time.Second)

	tl.Play()
	tl.Update(time.Second)
	if anim.State() != Idle || v != 0 {
		t.Fatalf("expected idle before its start, got %v at %v", anim.State(), v)
	}
	tl.Update(1500 * time.Millisecond)
	if anim.State() != Playing || !near(v, 0.5) {
		t.Fatalf("expected playing at 0.5, got %v at %v", anim.State(), v)
	}
}

func TestTimeline_CompletesOnce(t *testing.T) {
	var v float32
	completed := 0
	tl := NewTimeline()
	tl.AddSequential(NewPropertyAnimation(&v, 0, 1, time.Second))
	tl.OnComplete = func() { completed++ }

	tl.Play()
	tl.Update(2 * time.Second)
	tl.Update(time.Second)
	if completed != 1 || tl.IsPlaying() {
		t.Fatalf("expected one completion and stopped, got %d (%v)", completed, tl.IsPlaying())
	}
	if tl.CurrentTime() != time.Second || v != 1 {
		t.Fatalf("expected clamped at end, got %v at %v", tl.CurrentTime(), v)
	}
}

func TestTimeline_SeekAndStop(t *testing.T) {
	var a, b float32
	first := NewPropertyAnimation(&a, 0, 1, time.Second)
	second := NewPropertyAnimation(&b, 0, 1, time.Second)
	tl := NewTimeline()
	tl.AddSequential(first)
	tl.AddSequential(second)

	tl.Seek(1500 * time.Millisecond)
	if first.State() != Finished || !near(b, 0.5) {
		t.Fatalf("expected first finished and b=0.5, got %v b=%v", first.State(), b)
	}
	tl.Seek(500 * time.Millisecond)
	if second.State() != Idle || !near(a, 0.5) {
		t.Fatalf("expected second idle and a=0.5, got %v a=%v", second.State(), a)
	}

	tl.Stop()
	if tl.CurrentTime() != 0 || first.State() != Idle {
		t.Fatalf("expected rewound, got %v %v", tl.CurrentTime(), first.State())
	}
}

func TestTimeline_PauseHoldsClock(t *testing.T) {
	var v float32
	tl := NewTimeline()
	tl.AddSequential(NewPropertyAnimation(&v, 0, 1, time.Second))
	tl.Play()
	tl.Update(200 * time.Millisecond)
	tl.Pause()
	tl.Update(500 * time.Millisecond)
	if tl.CurrentTime() != 200*time.Millisecond {
		t.Fatalf("expected clock held at 200ms, got %v", tl.CurrentTime())
	}
}

package anim

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// maxSpringStep bounds a single integration step; longer frames are
// subdivided.
const maxSpringStep = time.Second / 120

// DefaultRestThreshold is the displacement and speed below which a spring
// counts as at rest.
const DefaultRestThreshold = 0.001

// SpringConfig holds the physical constants of a damped spring.
type SpringConfig struct {
	Stiffness float32
	Damping   float32
	Mass      float32
	// Rest is the initial position and target.
	Rest            float32
	InitialVelocity float32
}

func DefaultSpringConfig() SpringConfig {
	return SpringConfig{Stiffness: 100, Damping: 10, Mass: 1}
}

// Spring is a one-dimensional damped spring pulled toward a target,
// integrated with semi-implicit Euler.
type Spring struct {
	cfg      SpringConfig
	position float32
	velocity float32
	target   float32
}

func NewSpring(cfg SpringConfig) *Spring {
	if cfg.Mass <= 0 {
		cfg.Mass = 1
	}
	return &Spring{
		cfg:      cfg,
		position: cfg.Rest,
		velocity: cfg.InitialVelocity,
		target:   cfg.Rest,
	}
}

func (s *Spring) Config() SpringConfig { return s.cfg }
func (s *Spring) Position() float32    { return s.position }
func (s *Spring) Velocity() float32    { return s.velocity }
func (s *Spring) Target() float32      { return s.target }

func (s *Spring) SetTarget(target float32) { s.target = target }

// ApplyImpulse changes velocity by force / mass.
func (s *Spring) ApplyImpulse(force float32) {
	s.velocity += force / s.cfg.Mass
}

// Reset places the spring at position with velocity, keeping the target.
func (s *Spring) Reset(position, velocity float32) {
	s.position, s.velocity = position, velocity
}

// Update integrates dt of motion.
func (s *Spring) Update(dt time.Duration) {
	for dt > 0 {
		step := min(dt, maxSpringStep)
		s.step(float32(step.Seconds()))
		dt -= step
	}
}

func (s *Spring) step(dt float32) {
	force := -s.cfg.Stiffness*(s.position-s.target) - s.cfg.Damping*s.velocity
	s.velocity += force / s.cfg.Mass * dt
	s.position += s.velocity * dt
}

// AtRest reports whether both displacement from the target and speed are
// below threshold.
func (s *Spring) AtRest(threshold float32) bool {
	return abs(s.position-s.target) < threshold && abs(s.velocity) < threshold
}

func abs(v float32) float32 { return float32(math.Abs(float64(v))) }

// Spring2D is a pair of independent springs sharing one configuration.
type Spring2D struct {
	x, y *Spring
}

func NewSpring2D(cfg SpringConfig) *Spring2D {
	return &Spring2D{x: NewSpring(cfg), y: NewSpring(cfg)}
}

func (s *Spring2D) Position() mgl32.Vec2 { return mgl32.Vec2{s.x.position, s.y.position} }
func (s *Spring2D) Velocity() mgl32.Vec2 { return mgl32.Vec2{s.x.velocity, s.y.velocity} }
func (s *Spring2D) Target() mgl32.Vec2   { return mgl32.Vec2{s.x.target, s.y.target} }

func (s *Spring2D) SetTarget(target mgl32.Vec2) {
	s.x.SetTarget(target.X())
	s.y.SetTarget(target.Y())
}

func (s *Spring2D) ApplyImpulse(force mgl32.Vec2) {
	s.x.ApplyImpulse(force.X())
	s.y.ApplyImpulse(force.Y())
}

func (s *Spring2D) Reset(position, velocity mgl32.Vec2) {
	s.x.Reset(position.X(), velocity.X())
	s.y.Reset(position.Y(), velocity.Y())
}

func (s *Spring2D) Update(dt time.Duration) {
	s.x.Update(dt)
	s.y.Update(dt)
}

func (s *Spring2D) AtRest(threshold float32) bool {
	return s.x.AtRest(threshold) && s.y.AtRest(threshold)
}

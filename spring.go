package motion

import (
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

// SpringConfig describes a damped spring. Termination happens when the
// distance to the target is at most RestDelta and the speed at most
// RestSpeed.
type SpringConfig struct {
	Stiffness       float64
	Damping         float64
	Mass            float64
	InitialVelocity float64
	RestDelta       float64
	RestSpeed       float64
}

// DefaultSpring returns {stiffness 100, damping 20, mass 1, velocity 0,
// rest delta 0.01, rest speed 0.01}.
func DefaultSpring() SpringConfig {
	return SpringConfig{
		Stiffness: 100,
		Damping:   20,
		Mass:      1,
		RestDelta: 0.01,
		RestSpeed: 0.01,
	}
}

// Validate rejects non-positive mass, negative stiffness or damping,
// negative rest thresholds and non-finite fields.
func (c SpringConfig) Validate() error {
	for _, f := range [...]float64{c.Stiffness, c.Damping, c.Mass, c.InitialVelocity, c.RestDelta, c.RestSpeed} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: spring has non-finite field", ErrInvalidValue)
		}
	}
	switch {
	case c.Mass <= 0:
		return fmt.Errorf("%w: spring mass must be positive, got %v", ErrInvalidValue, c.Mass)
	case c.Stiffness < 0:
		return fmt.Errorf("%w: spring stiffness must be non-negative, got %v", ErrInvalidValue, c.Stiffness)
	case c.Damping < 0:
		return fmt.Errorf("%w: spring damping must be non-negative, got %v", ErrInvalidValue, c.Damping)
	case c.RestDelta < 0 || c.RestSpeed < 0:
		return fmt.Errorf("%w: spring rest thresholds must be non-negative", ErrInvalidValue)
	}
	return nil
}

// SpringState is the integrator state of a single channel.
type SpringState struct {
	Position float64
	Velocity float64
}

// Step advances s by dt toward target with semi-implicit Euler:
//
//	a = (stiffness·(target−x) − damping·v) / mass
//	v += a·dt
//	x += v·dt
func (s *SpringState) Step(c SpringConfig, target float64, dt time.Duration) error {
	if err := c.Validate(); err != nil {
		return err
	}
	sec := dt.Seconds()
	if sec < 0 {
		return fmt.Errorf("%w: negative spring step %v", ErrInvalidValue, dt)
	}
	s.step(c, target, sec)
	if math.IsNaN(s.Position) || math.IsInf(s.Position, 0) || math.IsNaN(s.Velocity) || math.IsInf(s.Velocity, 0) {
		return fmt.Errorf("%w: spring diverged", ErrInvalidValue)
	}
	return nil
}

func (s *SpringState) step(c SpringConfig, target, dt float64) {
	fs := c.Stiffness * (target - s.Position)
	fd := c.Damping * s.Velocity
	a := (fs - fd) / c.Mass
	s.Velocity += a * dt
	s.Position += s.Velocity * dt
}

// AtRest reports whether s satisfies the rest conditions for target.
func (s SpringState) AtRest(c SpringConfig, target float64) bool {
	return math.Abs(target-s.Position) <= c.RestDelta && math.Abs(s.Velocity) <= c.RestSpeed
}

// springChannels integrates one spring per numeric channel of a value.
type springChannels struct {
	states  []SpringState
	targets []float64
}

func newSpringChannels(from, to []float64, velocity []float64) *springChannels {
	sc := &springChannels{
		states:  make([]SpringState, len(from)),
		targets: append([]float64(nil), to...),
	}
	for i := range from {
		sc.states[i].Position = from[i]
		if i < len(velocity) {
			sc.states[i].Velocity = velocity[i]
		}
	}
	return sc
}

func (sc *springChannels) step(c SpringConfig, dt float64) {
	for i := range sc.states {
		sc.states[i].step(c, sc.targets[i], dt)
	}
}

func (sc *springChannels) atRest(c SpringConfig) bool {
	for i := range sc.states {
		if !sc.states[i].AtRest(c, sc.targets[i]) {
			return false
		}
	}
	return true
}

func (sc *springChannels) positions(dst []float64) []float64 {
	dst = dst[:0]
	for _, s := range sc.states {
		dst = append(dst, s.Position)
	}
	return dst
}

func (sc *springChannels) velocities() []float64 {
	out := make([]float64, len(sc.states))
	for i, s := range sc.states {
		out[i] = s.Velocity
	}
	return out
}

// --- Spring easing ---

const (
	springCurveFPS        = 120
	springCurveMaxSamples = 10 * springCurveFPS
	springCurveRest       = 1e-3
)

// SpringEasing returns an easing shaped like the unit step response of the
// spring, for time-driven transitions that want a springy feel over a fixed
// duration. The response is simulated once with harmonica's damped
// oscillator and sampled; it overshoots for underdamped configs. An invalid
// config falls back to DefaultSpring.
func SpringEasing(c SpringConfig) Easing {
	if c.Validate() != nil || c.Stiffness == 0 {
		c = DefaultSpring()
	}
	return Easing{
		name:   "spring",
		kind:   easeSpring,
		spring: c,
		curve:  springCurve(c),
	}
}

func springCurve(c SpringConfig) []float64 {
	omega := math.Sqrt(c.Stiffness / c.Mass)
	zeta := c.Damping / (2 * math.Sqrt(c.Stiffness*c.Mass))
	sp := harmonica.NewSpring(harmonica.FPS(springCurveFPS), omega, zeta)

	samples := make([]float64, 1, 2*springCurveFPS)
	pos, vel := 0.0, 0.0
	for i := 0; i < springCurveMaxSamples; i++ {
		pos, vel = sp.Update(pos, vel, 1)
		samples = append(samples, pos)
		if math.Abs(1-pos) < springCurveRest && math.Abs(vel) < springCurveRest {
			break
		}
	}
	samples[len(samples)-1] = 1
	return samples
}

// sampleCurve linearly interpolates a curve sampled at evenly spaced t.
func sampleCurve(curve []float64, t float64) float64 {
	if len(curve) < 2 {
		return t
	}
	x := t * float64(len(curve)-1)
	i := int(x)
	if i >= len(curve)-1 {
		return curve[len(curve)-1]
	}
	return lerp(curve[i], curve[i+1], x-float64(i))
}

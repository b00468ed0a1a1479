package motion

import (
	"fmt"
	"math"
	"time"
)

// minVelocityDt bounds the denominator of the finite-difference velocity
// estimate.
const minVelocityDt = time.Millisecond

var processStart = time.Now()

func wallClock() time.Duration { return time.Since(processStart) }

// Subscription identifies a subscriber registered with MotionValue.Subscribe.
type Subscription uint64

type subscriber struct {
	id     Subscription
	fn     func(Value)
	active bool
}

// MotionValue is an observable cell holding the current value of one
// animated property together with its velocity. Its kind is fixed at
// construction. Subscribers run synchronously, in registration order, on
// every successful Set. A Set issued from inside a subscriber is applied at
// once but its notification is deferred until the outer notification has
// finished, so subscribers never re-enter.
type MotionValue struct {
	value    Value
	velocity []float64 // per channel, units per second
	lastSet  time.Duration
	clock    func() time.Duration

	subs    []*subscriber
	nextSub Subscription

	notifying bool
	pending   bool
	released  bool
}

// NewMotionValue returns a motion value holding v. Velocity is estimated
// against the wall clock until the value is bound to a scheduler.
func NewMotionValue(v Value) *MotionValue {
	m := &MotionValue{value: v, clock: wallClock}
	m.velocity = make([]float64, len(v.channels()))
	m.lastSet = m.clock()
	return m
}

// Get returns the current value.
func (m *MotionValue) Get() Value { return m.value }

// Kind returns the kind fixed at construction.
func (m *MotionValue) Kind() Kind { return m.value.kind }

// Velocity returns the scalar velocity in units per second. For colors and
// transforms it is the magnitude of the per-channel velocity.
func (m *MotionValue) Velocity() float64 {
	switch len(m.velocity) {
	case 0:
		return 0
	case 1:
		return m.velocity[0]
	}
	var sum float64
	for _, v := range m.velocity {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// ChannelVelocity returns a copy of the per-channel velocity, laid out like
// the value's channels (r, g, b, a for colors; specified fields in canonical
// order for transforms).
func (m *MotionValue) ChannelVelocity() []float64 {
	return append([]float64(nil), m.velocity...)
}

// Set replaces the current value, estimates velocity from the change since
// the previous Set, and notifies subscribers.
func (m *MotionValue) Set(v Value) error {
	if err := m.check(v); err != nil {
		return err
	}
	now := m.clock()
	dt := now - m.lastSet
	if dt < minVelocityDt {
		dt = minVelocityDt
	}
	m.commit(v, velocityBetween(m.value, v, dt), now)
	return nil
}

// SetWithVelocity replaces the current value and sets every channel's
// velocity to vel.
func (m *MotionValue) SetWithVelocity(v Value, vel float64) error {
	if err := m.check(v); err != nil {
		return err
	}
	if math.IsNaN(vel) || math.IsInf(vel, 0) {
		return fmt.Errorf("%w: non-finite velocity", ErrInvalidValue)
	}
	velocity := make([]float64, len(v.channels()))
	for i := range velocity {
		velocity[i] = vel
	}
	m.commit(v, velocity, m.clock())
	return nil
}

// Subscribe registers fn to run after every committed change. The returned
// handle unsubscribes it.
func (m *MotionValue) Subscribe(fn func(Value)) Subscription {
	m.nextSub++
	m.subs = append(m.subs, &subscriber{id: m.nextSub, fn: fn, active: true})
	return m.nextSub
}

// Unsubscribe removes a subscriber. Unknown handles are ignored. A
// subscriber removed during a notification is not called again, even later
// in the same notification.
func (m *MotionValue) Unsubscribe(h Subscription) {
	for i, s := range m.subs {
		if s.id == h {
			s.active = false
			subs := make([]*subscriber, 0, len(m.subs)-1)
			subs = append(subs, m.subs[:i]...)
			m.subs = append(subs, m.subs[i+1:]...)
			return
		}
	}
}

// SubscriberCount returns the number of registered subscribers.
func (m *MotionValue) SubscriberCount() int { return len(m.subs) }

func (m *MotionValue) check(v Value) error {
	if m.released {
		return ErrElementGone
	}
	if v.kind != m.value.kind {
		return fmt.Errorf("%w: motion value is %s, got %s", ErrKindMismatch, m.value.kind, v.kind)
	}
	return v.Validate()
}

// commitChannels is the scheduler's write path: the value has already been
// validated and the integrator supplies the velocity.
func (m *MotionValue) commitChannels(v Value, velocity []float64) {
	m.commit(v, velocity, m.clock())
}

// commitEstimated is the scheduler's write path for time-driven tasks.
func (m *MotionValue) commitEstimated(v Value) {
	now := m.clock()
	dt := now - m.lastSet
	if dt < minVelocityDt {
		dt = minVelocityDt
	}
	m.commit(v, velocityBetween(m.value, v, dt), now)
}

func (m *MotionValue) commit(v Value, velocity []float64, now time.Duration) {
	m.value = v
	m.velocity = velocity
	m.lastSet = now
	if m.notifying {
		m.pending = true
		return
	}
	m.notifying = true
	defer func() { m.notifying = false }()
	for {
		m.pending = false
		cur := m.value
		subs := m.subs
		for _, s := range subs {
			if s.active {
				s.fn(cur)
			}
		}
		if !m.pending || m.released {
			return
		}
	}
}

// release drops all subscribers; later writes fail with ErrElementGone.
func (m *MotionValue) release() {
	for _, s := range m.subs {
		s.active = false
	}
	m.subs = nil
	m.released = true
}

// velocityBetween estimates per-channel velocity of next relative to prev,
// laid out like next's channels.
func velocityBetween(prev, next Value, dt time.Duration) []float64 {
	sec := dt.Seconds()
	if next.kind == KindTransform {
		out := make([]float64, 0, next.tf.count())
		for f := TransformField(0); f < numTransformFields; f++ {
			if next.tf.Has(f) {
				out = append(out, (next.tf.vals[f]-prev.tf.Value(f))/sec)
			}
		}
		return out
	}
	a, b := prev.channels(), next.channels()
	out := make([]float64, len(b))
	for i := range b {
		if i < len(a) {
			out[i] = (b[i] - a[i]) / sec
		}
	}
	return out
}

// alignVelocity maps a velocity laid out for src's channels onto dst's
// channels. Transform fields absent from src get zero velocity.
func alignVelocity(src Value, vel []float64, dst Value) []float64 {
	out := make([]float64, len(dst.channels()))
	if src.kind != dst.kind {
		return out
	}
	if dst.kind != KindTransform {
		copy(out, vel)
		return out
	}
	var byField [numTransformFields]float64
	i := 0
	for f := TransformField(0); f < numTransformFields; f++ {
		if src.tf.Has(f) {
			if i < len(vel) {
				byField[f] = vel[i]
			}
			i++
		}
	}
	j := 0
	for f := TransformField(0); f < numTransformFields; f++ {
		if dst.tf.Has(f) {
			out[j] = byField[f]
			j++
		}
	}
	return out
}

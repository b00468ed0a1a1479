package motion

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Target maps property names to the values they should animate to. Property
// names are free-form CSS names plus the transform shorthands (x, y, z,
// scale, scaleX, scaleY, rotate, rotateX, rotateY, rotateZ, skewX, skewY).
type Target map[string]Value

// Clone returns a copy of t. Values are plain values, so the copy shares
// nothing with t.
func (t Target) Clone() Target {
	if t == nil {
		return nil
	}
	out := make(Target, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// Keys returns the property names in sorted order.
func (t Target) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// RepeatMode selects what a task does when a run reaches its end.
type RepeatMode uint8

const (
	RepeatNever RepeatMode = iota
	RepeatCount
	RepeatInfinite
	RepeatInfiniteAlternating
)

// Repeat is a repeat policy. The zero Repeat is Never.
type Repeat struct {
	Mode  RepeatMode
	Times int // total runs for RepeatCount
}

// Repeat policies.
var (
	Never               = Repeat{}
	Infinite            = Repeat{Mode: RepeatInfinite}
	InfiniteAlternating = Repeat{Mode: RepeatInfiniteAlternating}
)

// Count runs the animation n times in total. Count(0) and Count(1) both run
// once.
func Count(n int) Repeat { return Repeat{Mode: RepeatCount, Times: n} }

func (r Repeat) String() string {
	switch r.Mode {
	case RepeatCount:
		return fmt.Sprintf("count(%d)", r.Times)
	case RepeatInfinite:
		return "infinite"
	case RepeatInfiniteAlternating:
		return "infinite-alternating"
	}
	return "never"
}

// runs returns the total number of runs, or -1 for unbounded.
func (r Repeat) runs() int {
	switch r.Mode {
	case RepeatCount:
		if r.Times < 1 {
			return 1
		}
		return r.Times
	case RepeatInfinite, RepeatInfiniteAlternating:
		return -1
	}
	return 1
}

// Transition describes how a property moves to its target. A zero Duration
// selects spring timing: the task runs until the spring comes to rest. An
// Easing built by SpringEasing also selects spring timing when Duration is
// zero, with that easing's configuration.
type Transition struct {
	Duration time.Duration
	Delay    time.Duration
	Easing   Easing
	Repeat   Repeat
	Stagger  *Stagger
	Spring   *SpringConfig
}

// Tween returns a time-driven transition.
func Tween(d time.Duration, e Easing) Transition {
	return Transition{Duration: d, Easing: e}
}

// SpringTransition returns a spring-driven transition.
func SpringTransition(c SpringConfig) Transition {
	return Transition{Spring: &c}
}

// IsSpring reports whether the transition is driven by a spring.
func (tr Transition) IsSpring() bool { return tr.Duration == 0 }

// SpringConfig returns the spring used when the transition is
// spring-driven: Spring if set, else the configuration of a spring Easing,
// else DefaultSpring.
func (tr Transition) SpringConfig() SpringConfig {
	if tr.Spring != nil {
		return *tr.Spring
	}
	if c, ok := tr.Easing.Spring(); ok {
		return c
	}
	return DefaultSpring()
}

// Validate rejects negative or non-finite timing, invalid spring
// configurations and invalid stagger settings.
func (tr Transition) Validate() error {
	if tr.Duration < 0 {
		return fmt.Errorf("%w: negative duration %v", ErrInvalidValue, tr.Duration)
	}
	if tr.Delay < 0 {
		return fmt.Errorf("%w: negative delay %v", ErrInvalidValue, tr.Delay)
	}
	if tr.Repeat.Mode == RepeatCount && tr.Repeat.Times < 0 {
		return fmt.Errorf("%w: negative repeat count %d", ErrInvalidValue, tr.Repeat.Times)
	}
	if tr.Stagger != nil {
		if err := tr.Stagger.Validate(); err != nil {
			return err
		}
	}
	if tr.IsSpring() {
		if err := tr.SpringConfig().Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Seconds converts a float number of seconds into a Duration. Non-finite or
// out-of-range inputs yield an error so configuration loaders can reject
// them.
func Seconds(s float64) (time.Duration, error) {
	if math.IsNaN(s) || math.IsInf(s, 0) || math.Abs(s) > math.MaxInt64/float64(time.Second) {
		return 0, fmt.Errorf("%w: duration %v seconds", ErrInvalidValue, s)
	}
	return time.Duration(s * float64(time.Second)), nil
}

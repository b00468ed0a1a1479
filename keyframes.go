package motion

import (
	"fmt"
	"math"
	"sort"
)

// Keyframe is one stop of a Keyframes track. Offset is the stop's position
// in the run, from 0 to 1. Easing shapes the segment that starts at this
// stop.
type Keyframe struct {
	Offset float64
	Target Target
	Easing Easing
}

// Keyframes animates through several stops in one run. A property absent
// from a stop is interpolated between the stops that name it.
type Keyframes []Keyframe

// Add appends a stop. The offset is clamped to [0, 1].
func (k Keyframes) Add(offset float64, target Target, e Easing) Keyframes {
	return append(k, Keyframe{Offset: clamp(offset, 0, 1), Target: target.Clone(), Easing: e})
}

// Evenly returns stops spaced evenly from 0 to 1, all with easing e.
func Evenly(e Easing, targets ...Target) Keyframes {
	var k Keyframes
	for i, t := range targets {
		offset := 0.0
		if len(targets) > 1 {
			offset = float64(i) / float64(len(targets)-1)
		}
		k = k.Add(offset, t, e)
	}
	return k
}

// Keys returns every property named by any stop, in sorted order.
func (k Keyframes) Keys() []string {
	seen := make(map[string]bool)
	var keys []string
	for _, kf := range k {
		for prop := range kf.Target {
			if !seen[prop] {
				seen[prop] = true
				keys = append(keys, prop)
			}
		}
	}
	sort.Strings(keys)
	return keys
}

// Validate rejects empty tracks, offsets that are not finite or go
// backwards, invalid values, and a property whose stops disagree on kind.
func (k Keyframes) Validate() error {
	if len(k) == 0 {
		return fmt.Errorf("%w: keyframes need at least one stop", ErrInvalidValue)
	}
	kinds := make(map[string]Kind)
	prev := 0.0
	for i, kf := range k {
		if math.IsNaN(kf.Offset) || kf.Offset < 0 || kf.Offset > 1 {
			return fmt.Errorf("%w: keyframe %d offset %v outside [0, 1]", ErrInvalidValue, i, kf.Offset)
		}
		if kf.Offset < prev {
			return fmt.Errorf("%w: keyframe %d offset %v before %v", ErrInvalidValue, i, kf.Offset, prev)
		}
		prev = kf.Offset
		for _, prop := range kf.Target.Keys() {
			v := kf.Target[prop]
			if err := v.Validate(); err != nil {
				return &PropertyError{Property: prop, Err: err}
			}
			if err := checkShorthand(prop, v.kind); err != nil {
				return err
			}
			if want, ok := kinds[prop]; ok && want != v.kind {
				return kindMismatch(prop, want, v.kind)
			}
			kinds[prop] = v.kind
		}
	}
	return nil
}

// At returns the target at progress p in [0, 1]. Each property holds its
// first value before its first stop and its last value after its last stop.
func (k Keyframes) At(p float64) Target {
	out := make(Target)
	for _, prop := range k.Keys() {
		out[prop] = k.track(prop, nil).at(p)
	}
	return out
}

// last returns the final value of every property.
func (k Keyframes) last() Target {
	return k.At(1)
}

type keyStop struct {
	offset float64
	value  Value
	easing Easing
}

// keyTrack is the stops of one property, in offset order.
type keyTrack []keyStop

// track collects the stops that name prop. When from is non-nil and the
// first stop is past 0, from becomes an implicit linear stop at 0.
func (k Keyframes) track(prop string, from *Value) keyTrack {
	var tr keyTrack
	for _, kf := range k {
		if v, ok := kf.Target[prop]; ok {
			tr = append(tr, keyStop{offset: kf.Offset, value: v, easing: kf.Easing})
		}
	}
	if from != nil && len(tr) > 0 && tr[0].offset > 0 {
		tr = append(keyTrack{{value: *from, easing: Linear}}, tr...)
	}
	return tr
}

// at interpolates the track at p. The segment containing p is eased with its
// starting stop's easing.
func (tr keyTrack) at(p float64) Value {
	if len(tr) == 1 || p <= tr[0].offset {
		return tr[0].value
	}
	for i := 0; i < len(tr)-1; i++ {
		a, b := tr[i], tr[i+1]
		if p > b.offset {
			continue
		}
		span := b.offset - a.offset
		if span <= 0 {
			return b.value
		}
		return Interpolate(a.value, b.value, a.easing.Eval((p-a.offset)/span))
	}
	return tr[len(tr)-1].value
}

// StartKeyframes animates el through the stops of k in one run of tr. The
// transition must be time-driven; its Easing maps time onto the track before
// the per-segment easings apply. Validation and replacement follow Start.
func (s *Scheduler) StartKeyframes(el *Element, k Keyframes, tr Transition) (BatchHandle, error) {
	if tr.IsSpring() {
		return 0, fmt.Errorf("%w: keyframes need a duration", ErrInvalidValue)
	}
	if err := k.Validate(); err != nil {
		return 0, err
	}
	last := k.last()
	return s.start(el, last, tr, func(prop string, from Value) keyTrack {
		return k.track(prop, &from)
	})
}

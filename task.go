package motion

import (
	"fmt"
	"time"
)

// task animates one property of one element.
type task struct {
	id    uint64
	el    *Element
	prop  string
	mv    *MotionValue
	from  Value
	to    Value
	tr    Transition
	batch BatchHandle
	phase Phase

	// track replaces the from/to line for keyframe tasks; reversed plays it
	// backwards on alternate runs.
	track    keyTrack
	reversed bool

	startAt  time.Duration // first tick after Start
	runStart time.Duration
	prevNow  time.Duration
	runs     int

	// handoff is set when the task replaced a running one; velocity then
	// holds the motion value's channel velocity at replacement.
	handoff  bool
	velocity []float64

	spring     *springChannels
	springCfg  SpringConfig
	springFrom Value // from, aligned with to
	springTo   Value // to, aligned with from
	snap       bool  // no numeric channels; jump to the target
}

func (t *task) event(now time.Duration) *TaskEvent {
	return &TaskEvent{
		TaskID:    t.id,
		Batch:     t.batch,
		ElementID: t.el.id,
		Element:   t.el.name,
		Property:  t.prop,
		From:      t.from,
		To:        t.to,
		Phase:     t.phase,
		Spring:    t.tr.IsSpring(),
		Now:       now,
	}
}

// stepTween commits the eased interpolation for now and reports whether the
// run reached its end.
func (t *task) stepTween(now time.Duration) (bool, error) {
	p := float64(now-t.runStart) / float64(t.tr.Duration)
	if p > 1 {
		p = 1
	} else if p < 0 {
		p = 0
	}
	var v Value
	if t.track != nil {
		q := t.tr.Easing.Eval(p)
		if t.reversed {
			q = t.tr.Easing.Eval(1 - p)
		}
		v = t.track.at(q)
	} else {
		v = Interpolate(t.from, t.to, t.tr.Easing.Eval(p))
	}
	if err := v.Validate(); err != nil {
		return false, fmt.Errorf("interpolating %s: %w", t.prop, err)
	}
	t.mv.commitEstimated(v)
	return p >= 1, nil
}

// initSpring prepares one integrator per channel. Transforms are aligned so
// both endpoints carry the union of their fields. The integrator velocity
// comes from the replaced task when there was one, otherwise from the
// spring's InitialVelocity.
func (t *task) initSpring() {
	t.springCfg = t.tr.SpringConfig()
	from, to := t.from, t.to
	if from.kind != to.kind || from.kind == KindString {
		t.snap = true
		return
	}
	if from.kind == KindTransform {
		a, b := alignTransforms(from.tf, to.tf)
		from, to = TransformValue(a), TransformValue(b)
	}
	t.springFrom, t.springTo = from, to

	var velocity []float64
	if t.handoff {
		velocity = alignVelocity(t.from, t.velocity, from)
	} else {
		velocity = make([]float64, len(from.channels()))
		for i := range velocity {
			velocity[i] = t.springCfg.InitialVelocity
		}
	}
	t.spring = newSpringChannels(from.channels(), to.channels(), velocity)
}

// stepSpring integrates one clamped Δt, commits the position and reports
// whether the spring came to rest. At rest the exact target is committed.
func (t *task) stepSpring(now, maxStep time.Duration) (bool, error) {
	dt := now - t.prevNow
	t.prevNow = now
	if dt > maxStep {
		dt = maxStep
	}
	if t.snap {
		t.mv.commitChannels(t.to, nil)
		return true, nil
	}
	t.spring.step(t.springCfg, dt.Seconds())
	if t.spring.atRest(t.springCfg) {
		t.mv.commitChannels(t.springTo, make([]float64, len(t.spring.states)))
		return true, nil
	}
	v := t.springFrom.withChannels(t.spring.positions(nil))
	if err := v.Validate(); err != nil {
		return false, fmt.Errorf("spring %s diverged: %w", t.prop, err)
	}
	t.mv.commitChannels(v, t.spring.velocities())
	return false, nil
}

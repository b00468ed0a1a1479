package motion

import (
	"fmt"
	"io"
	"log/slog"
	"time"
)

// DefaultMaxStep is the largest Δt a spring integrates in one tick. Longer
// gaps between ticks (a suspended host) are clamped to it.
const DefaultMaxStep = 64 * time.Millisecond

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the structured logger used for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// WithHooks registers lifecycle hooks. Calling it again chains the hooks.
func WithHooks(h Hooks) Option {
	return func(s *Scheduler) {
		s.hooks = s.hooks.Chain(h)
	}
}

// WithMaxStep overrides DefaultMaxStep. Non-positive values are ignored.
func WithMaxStep(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.maxStep = d
		}
	}
}

type taskKey struct {
	el   uint64
	prop string
}

// Scheduler owns every in-flight animation task and advances them once per
// Tick. At most one non-terminal task exists per (element, property);
// starting another replaces it and inherits its committed value and
// velocity.
//
// A Scheduler is not safe for concurrent use. Start, Stop and Tick must be
// called from the goroutine that drives the frame loop.
type Scheduler struct {
	tasks  []*task // creation order
	active map[taskKey]*task

	batches   map[BatchHandle]*batch
	nextBatch BatchHandle
	nextTask  uint64

	now     time.Duration
	ticked  bool
	ticking bool
	touched []*Element

	// Batch callbacks wait in deferred until depth drops back to zero.
	depth    int
	draining bool
	deferred []func()

	maxStep time.Duration
	logger  *slog.Logger
	hooks   Hooks
}

// NewScheduler creates a scheduler. By default it logs nothing.
func NewScheduler(opts ...Option) *Scheduler {
	s := &Scheduler{
		active:  make(map[taskKey]*task),
		batches: make(map[BatchHandle]*batch),
		maxStep: DefaultMaxStep,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

// Now returns the timestamp of the latest Tick.
func (s *Scheduler) Now() time.Duration { return s.now }

// ActiveCount returns the number of tasks that are pending, delaying or
// running.
func (s *Scheduler) ActiveCount() int { return len(s.active) }

// IsRunning reports whether a non-terminal task exists for (el, prop).
func (s *Scheduler) IsRunning(el *Element, prop string) bool {
	if el == nil {
		return false
	}
	_, ok := s.active[taskKey{el.id, prop}]
	return ok
}

// Phase returns the phase of the task for (el, prop).
func (s *Scheduler) Phase(el *Element, prop string) (Phase, bool) {
	if el == nil {
		return 0, false
	}
	t, ok := s.active[taskKey{el.id, prop}]
	if !ok {
		return 0, false
	}
	return t.phase, true
}

// Start animates each property of target on el with tr and returns the
// handle of the resulting batch. Inputs are validated before anything
// changes: an invalid transition or value, or a value whose kind differs
// from the property's motion value, fails the whole call.
//
// A property already at its target with no task running is skipped. A
// property with a running task has that task replaced; the new task starts
// from the committed value and velocity. Tasks are Pending until the next
// Tick, which starts their clock.
func (s *Scheduler) Start(el *Element, target Target, tr Transition) (BatchHandle, error) {
	return s.start(el, target, tr, nil)
}

// start validates and creates the tasks of one batch. When tracks is set,
// each task follows the keyframe track it returns instead of a straight line
// to its target.
func (s *Scheduler) start(el *Element, target Target, tr Transition, tracks func(prop string, from Value) keyTrack) (BatchHandle, error) {
	if el == nil {
		return 0, fmt.Errorf("%w: nil element", ErrInvalidValue)
	}
	if el.destroyed {
		s.reportGone(el)
		return 0, ErrElementGone
	}
	if err := tr.Validate(); err != nil {
		return 0, err
	}
	s.enter()
	defer s.leave()
	keys := target.Keys()
	for _, prop := range keys {
		v := target[prop]
		if err := v.Validate(); err != nil {
			return 0, &PropertyError{Property: prop, Err: err}
		}
		if err := checkShorthand(prop, v.kind); err != nil {
			return 0, err
		}
		if err := el.checkKind(prop, v.kind); err != nil {
			return 0, err
		}
	}

	el.bindClock(s.Now)
	h, b := s.newBatch()
	for _, prop := range keys {
		to := target[prop]
		mv, err := el.motionValue(prop, to.kind)
		if err != nil {
			// checked above
			panic("motion: " + err.Error())
		}
		key := taskKey{el.id, prop}
		prev := s.active[key]
		from := mv.Get()
		if prev == nil && tracks == nil && from.Equal(to) {
			continue
		}

		var velocity []float64
		if prev != nil {
			velocity = mv.ChannelVelocity()
			s.cancel(prev)
		}
		if !Smooth(from, to) && el.diagnose(prop) {
			s.logger.Debug("property animates with step rule",
				"element", el.id, "property", prop, "kind", to.kind, "err", ErrPropertyUnknown)
		}

		s.nextTask++
		t := &task{
			id:       s.nextTask,
			el:       el,
			prop:     prop,
			mv:       mv,
			from:     from,
			to:       to,
			tr:       tr,
			batch:    h,
			handoff:  prev != nil,
			velocity: velocity,
		}
		if tracks != nil {
			t.track = tracks(prop, from)
		}
		s.tasks = append(s.tasks, t)
		s.active[key] = t
		b.pending++
		if s.hooks.OnStart != nil {
			s.hooks.OnStart(t.event(s.now))
		}
	}
	if b.pending == 0 {
		s.finishBatch(h, b)
	}
	return h, nil
}

// Stop cancels the tasks for the given properties of el, or all of el's
// tasks when no property is named. Motion values keep their last committed
// value. It returns the number of tasks cancelled.
func (s *Scheduler) Stop(el *Element, props ...string) int {
	if el == nil {
		return 0
	}
	if el.destroyed {
		s.reportGone(el)
		return 0
	}
	s.enter()
	defer s.leave()
	n := 0
	if len(props) == 0 {
		for _, t := range s.tasks {
			if t.el == el && !t.phase.Terminal() {
				s.cancel(t)
				n++
			}
		}
	} else {
		for _, prop := range props {
			if t, ok := s.active[taskKey{el.id, prop}]; ok {
				s.cancel(t)
				n++
			}
		}
	}
	if !s.ticking {
		s.compact()
	}
	return n
}

// DestroyElement cancels every task of el, releases its motion values and
// marks it destroyed before any completion callback runs. The surface keeps
// the last committed styles. It returns the number of tasks cancelled.
func (s *Scheduler) DestroyElement(el *Element) int {
	if el == nil || el.destroyed {
		return 0
	}
	s.enter()
	defer s.leave()
	n := s.Stop(el)
	el.destroy()
	s.logger.Debug("element destroyed", "element", el.id, "cancelled", n)
	return n
}

// Tick advances every non-terminal task to now, in creation order.
// Completion callbacks run after every task has stepped; tasks they start
// wait for the next tick. A task that fails is cancelled and reported through
// Hooks.OnError; Tick itself never fails. Timestamps that go backwards are
// treated as a repeat of the latest one.
func (s *Scheduler) Tick(now time.Duration) {
	start := time.Now()
	if s.ticked && now < s.now {
		now = s.now
	}
	s.now = now
	s.ticked = true
	s.ticking = true
	s.enter()

	n := len(s.tasks)
	stepped := 0
	for i := 0; i < n; i++ {
		t := s.tasks[i]
		if t.phase.Terminal() {
			continue
		}
		if !t.el.batching {
			t.el.beginBatch()
			s.touched = append(s.touched, t.el)
		}
		s.advance(t, now)
		stepped++
	}
	for i, el := range s.touched {
		el.endBatch()
		s.touched[i] = nil
	}
	s.touched = s.touched[:0]
	s.ticking = false
	s.compact()
	s.leave()

	if s.hooks.OnTick != nil {
		s.hooks.OnTick(&TickEvent{
			Now:     now,
			Active:  len(s.active),
			Stepped: stepped,
			Elapsed: time.Since(start),
		})
	}
}

// advance runs one task for one tick and isolates its failures.
func (s *Scheduler) advance(t *task, now time.Duration) {
	defer func() {
		if r := recover(); r != nil {
			s.fail(t, fmt.Errorf("motion: task panicked: %v", r))
		}
	}()
	switch t.phase {
	case PhasePending:
		t.startAt = now
		if t.tr.Delay > 0 {
			t.phase = PhaseDelaying
			return
		}
		s.run(t, now)
	case PhaseDelaying:
		if now-t.startAt >= t.tr.Delay {
			s.run(t, now)
		}
	case PhaseRunning:
		s.step(t, now)
	}
}

func (s *Scheduler) run(t *task, now time.Duration) {
	t.phase = PhaseRunning
	t.runStart = now
	t.prevNow = now
	if t.tr.IsSpring() {
		t.initSpring()
	}
	s.step(t, now)
}

func (s *Scheduler) step(t *task, now time.Duration) {
	var (
		done bool
		err  error
	)
	if t.tr.IsSpring() {
		done, err = t.stepSpring(now, s.maxStep)
	} else {
		done, err = t.stepTween(now)
	}
	if err != nil {
		s.fail(t, err)
		return
	}
	if done && !t.phase.Terminal() {
		s.endRun(t, now)
	}
}

// endRun applies the repeat policy at the end of a run.
func (s *Scheduler) endRun(t *task, now time.Duration) {
	t.runs++
	if total := t.tr.Repeat.runs(); total > 0 && t.runs >= total {
		s.complete(t)
		return
	}
	if t.tr.Repeat.Mode == RepeatInfiniteAlternating {
		t.from, t.to = t.to, t.from
		t.reversed = !t.reversed
	}
	t.runStart = now
	t.prevNow = now
	if t.tr.IsSpring() {
		t.velocity = nil
		t.handoff = false
		t.initSpring()
	}
}

func (s *Scheduler) complete(t *task) {
	s.finish(t, PhaseCompleted)
	if s.hooks.OnComplete != nil {
		s.hooks.OnComplete(t.event(s.now))
	}
	s.settle(t)
}

func (s *Scheduler) cancel(t *task) {
	if t.phase.Terminal() {
		return
	}
	s.finish(t, PhaseCancelled)
	if s.hooks.OnCancel != nil {
		s.hooks.OnCancel(t.event(s.now))
	}
	s.settle(t)
}

func (s *Scheduler) fail(t *task, err error) {
	if t.phase.Terminal() {
		return
	}
	s.finish(t, PhaseCancelled)
	s.logger.Warn("animation task failed",
		"element", t.el.id, "property", t.prop, "task", t.id, "err", err)
	if s.hooks.OnError != nil {
		s.hooks.OnError(t.event(s.now), err)
	}
	s.settle(t)
}

func (s *Scheduler) finish(t *task, p Phase) {
	t.phase = p
	key := taskKey{t.el.id, t.prop}
	if s.active[key] == t {
		delete(s.active, key)
	}
}

// settle counts a terminal task against its batch.
func (s *Scheduler) settle(t *task) {
	b, ok := s.batches[t.batch]
	if !ok {
		return
	}
	b.pending--
	if t.phase == PhaseCancelled {
		b.cancelled++
	}
	if b.pending == 0 {
		s.finishBatch(t.batch, b)
	}
}

// compact drops terminal tasks, keeping creation order.
func (s *Scheduler) compact() {
	live := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.phase.Terminal() {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = live
}

func (s *Scheduler) reportGone(el *Element) {
	if el.goneReported {
		return
	}
	el.goneReported = true
	s.logger.Warn("operation on destroyed element", "element", el.id, "name", el.name, "err", ErrElementGone)
}

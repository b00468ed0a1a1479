package motion

import (
	"errors"
	"math"
	"testing"
	"time"
)

func newTestElement(styles map[string]string) (*Element, *StyleMap) {
	surf := NewStyleMap(styles)
	return NewElement(surf), surf
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

func valueOf(t *testing.T, el *Element, prop string) Value {
	t.Helper()
	v, ok := el.Get(prop)
	if !ok {
		t.Fatalf("%s has no motion value", prop)
	}
	return v
}

// --- Time-driven tasks ---

func TestSchedulerLinearFadeIn(t *testing.T) {
	s := NewScheduler()
	el, surf := newTestElement(map[string]string{"opacity": "0"})
	if _, err := s.Start(el, Target{"opacity": Number(1)}, Tween(time.Second, Linear)); err != nil {
		t.Fatal(err)
	}
	if ph, _ := s.Phase(el, "opacity"); ph != PhasePending {
		t.Errorf("phase before first tick = %s, want pending", ph)
	}

	for i, want := range []float64{0, 0.25, 0.5, 0.75, 1} {
		s.Tick(ms(250 * i))
		assertNear(t, "opacity", valueOf(t, el, "opacity").Float(), want)
	}
	if s.IsRunning(el, "opacity") {
		t.Error("task still active at t=1s")
	}
	if s.ActiveCount() != 0 {
		t.Errorf("ActiveCount() = %d, want 0", s.ActiveCount())
	}
	if got := surf.Get("opacity"); got != "1" {
		t.Errorf("surface opacity = %q, want 1", got)
	}
}

func TestSchedulerDelay(t *testing.T) {
	s := NewScheduler()
	el, _ := newTestElement(map[string]string{"opacity": "0"})
	tr := Tween(time.Second, Linear)
	tr.Delay = ms(500)
	if _, err := s.Start(el, Target{"opacity": Number(1)}, tr); err != nil {
		t.Fatal(err)
	}
	s.Tick(0)
	if ph, _ := s.Phase(el, "opacity"); ph != PhaseDelaying {
		t.Errorf("phase = %s, want delaying", ph)
	}
	s.Tick(ms(250))
	assertNear(t, "during delay", valueOf(t, el, "opacity").Float(), 0)
	s.Tick(ms(500))
	if ph, _ := s.Phase(el, "opacity"); ph != PhaseRunning {
		t.Errorf("phase = %s, want running", ph)
	}
	s.Tick(ms(1000))
	assertNear(t, "half way", valueOf(t, el, "opacity").Float(), 0.5)
	s.Tick(ms(1500))
	if s.IsRunning(el, "opacity") {
		t.Error("task should be complete after delay + duration")
	}
}

func TestSchedulerRepeatAlternating(t *testing.T) {
	s := NewScheduler()
	el, _ := newTestElement(map[string]string{"opacity": "0"})
	tr := Tween(ms(500), Linear)
	tr.Repeat = InfiniteAlternating
	if _, err := s.Start(el, Target{"opacity": Number(1)}, tr); err != nil {
		t.Fatal(err)
	}
	s.Tick(0)
	for i, want := range []float64{1, 0, 1, 0} {
		s.Tick(ms(500 * (i + 1)))
		assertNear(t, "opacity", valueOf(t, el, "opacity").Float(), want)
	}
	s.Tick(ms(2250))
	assertNear(t, "mid run", valueOf(t, el, "opacity").Float(), 0.5)
	if !s.IsRunning(el, "opacity") {
		t.Fatal("alternating task completed on its own")
	}
	if n := s.Stop(el, "opacity"); n != 1 {
		t.Errorf("Stop() = %d, want 1", n)
	}
}

func TestSchedulerRepeatCount(t *testing.T) {
	s := NewScheduler()
	el, _ := newTestElement(map[string]string{"opacity": "0"})
	tr := Tween(time.Second, Linear)
	tr.Repeat = Count(2)
	h, err := s.Start(el, Target{"opacity": Number(1)}, tr)
	if err != nil {
		t.Fatal(err)
	}
	s.Tick(0)
	s.Tick(time.Second)
	if s.Done(h) {
		t.Fatal("done after first of two runs")
	}
	s.Tick(ms(1500))
	assertNear(t, "second run restarts", valueOf(t, el, "opacity").Float(), 0.5)
	s.Tick(2 * time.Second)
	if !s.Done(h) {
		t.Error("not done after two runs")
	}
	assertNear(t, "final", valueOf(t, el, "opacity").Float(), 1)
}

func TestSchedulerTransformComposition(t *testing.T) {
	s := NewScheduler()
	el, surf := newTestElement(nil)
	target := Target{
		"x":      Pixels(10),
		"y":      Pixels(20),
		"scale":  Number(1.5),
		"rotate": Degrees(45),
	}
	if _, err := s.Start(el, target, Tween(ms(100), EaseOut)); err != nil {
		t.Fatal(err)
	}
	for i := 0; i <= 10; i++ {
		s.Tick(ms(10 * i))
		if got := surf.Writes("transform"); got != i+1 {
			t.Fatalf("after tick %d transform writes = %d, want %d", i, got, i+1)
		}
	}
	want := "translate3d(10px, 20px, 0) rotate(45deg) scale(1.5)"
	if got := surf.Get("transform"); got != want {
		t.Errorf("transform = %q, want %q", got, want)
	}
	for _, p := range []string{"x", "y", "scale", "rotate"} {
		if _, ok := surf.ComputedStyle(p); ok {
			t.Errorf("shorthand %s written directly", p)
		}
	}
}

func TestSchedulerStringStepsAtHalf(t *testing.T) {
	s := NewScheduler()
	el, surf := newTestElement(map[string]string{"display": "none"})
	if _, err := s.Start(el, Target{"display": String("block")}, Tween(time.Second, Linear)); err != nil {
		t.Fatal(err)
	}
	s.Tick(0)
	s.Tick(ms(400))
	if got := surf.Get("display"); got != "none" {
		t.Errorf("display at 0.4 = %q, want none", got)
	}
	s.Tick(ms(500))
	if got := surf.Get("display"); got != "block" {
		t.Errorf("display at 0.5 = %q, want block", got)
	}
}

// --- Springs ---

func TestSchedulerSpringRest(t *testing.T) {
	s := NewScheduler()
	el, _ := newTestElement(nil)
	h, err := s.Start(el, Target{"x": Pixels(0)}, Transition{})
	if err != nil {
		t.Fatal(err)
	}
	if !s.Done(h) {
		t.Fatal("x already at 0 should create no task")
	}
	if _, err = s.Start(el, Target{"x": Pixels(100)}, Transition{}); err != nil {
		t.Fatal(err)
	}
	ticks := 0
	for ; ticks <= 600 && s.IsRunning(el, "x"); ticks++ {
		s.Tick(time.Duration(ticks) * frame60)
	}
	if s.IsRunning(el, "x") {
		t.Fatal("spring did not rest within 600 ticks")
	}
	if got := valueOf(t, el, "x"); !got.Equal(Pixels(100)) {
		t.Errorf("final x = %v, want exactly 100px", got)
	}
	mv, _ := el.Value("x")
	if mv.Velocity() != 0 {
		t.Errorf("velocity at rest = %v", mv.Velocity())
	}
}

func TestSchedulerSpringHandoffKeepsMomentum(t *testing.T) {
	s := NewScheduler()
	el, _ := newTestElement(nil)
	if _, err := s.Start(el, Target{"x": Pixels(100)}, Transition{}); err != nil {
		t.Fatal(err)
	}
	var now time.Duration
	for i := 0; i < 10; i++ {
		now = time.Duration(i) * frame60
		s.Tick(now)
	}
	mv, _ := el.Value("x")
	v0 := mv.Velocity()
	x0 := valueOf(t, el, "x").Float()
	if v0 <= 0 {
		t.Fatalf("velocity before handoff = %v, want > 0", v0)
	}

	if _, err := s.Start(el, Target{"x": Pixels(0)}, Transition{}); err != nil {
		t.Fatal(err)
	}
	now += frame60
	s.Tick(now)
	assertNear(t, "first commit", valueOf(t, el, "x").Float(), x0)
	now += frame60
	s.Tick(now)
	if x := valueOf(t, el, "x").Float(); x <= x0 {
		t.Errorf("x = %v after handoff, want it to keep moving past %v", x, x0)
	}
}

func TestSchedulerSpringClampsLongFrames(t *testing.T) {
	s := NewScheduler(WithMaxStep(ms(10)))
	el, _ := newTestElement(nil)
	if _, err := s.Start(el, Target{"x": Pixels(100)}, Transition{}); err != nil {
		t.Fatal(err)
	}
	s.Tick(0)
	s.Tick(10 * time.Second)
	// one clamped 10ms step: v = 100*100*0.01, x = v*0.01
	assertNear(t, "x", valueOf(t, el, "x").Float(), 1)
}

func TestSchedulerSpringColorAndString(t *testing.T) {
	s := NewScheduler()
	el, surf := newTestElement(map[string]string{"color": "#000", "display": "none"})
	target := Target{"color": ColorValue(ColorWhite), "display": String("flex")}
	h, err := s.Start(el, target, SpringTransition(DefaultSpring()))
	if err != nil {
		t.Fatal(err)
	}
	s.Tick(0)
	if got := surf.Get("display"); got != "flex" {
		t.Errorf("string under spring = %q, want snapped to flex", got)
	}
	for i := 1; i <= 600 && !s.Done(h); i++ {
		s.Tick(time.Duration(i) * frame60)
	}
	if !s.Done(h) {
		t.Fatal("color spring did not rest")
	}
	if got := surf.Get("color"); got != "rgb(255,255,255)" {
		t.Errorf("color = %q", got)
	}
}

// --- Replacement ---

func TestSchedulerReplacementHandoff(t *testing.T) {
	s := NewScheduler()
	el, _ := newTestElement(nil)
	var cancelled int
	s.hooks.OnCancel = func(*TaskEvent) { cancelled++ }

	if _, err := s.Start(el, Target{"x": Pixels(100)}, Tween(time.Second, Linear)); err != nil {
		t.Fatal(err)
	}
	s.Tick(0)
	s.Tick(ms(300))
	assertNear(t, "x at 0.3", valueOf(t, el, "x").Float(), 30)

	if _, err := s.Start(el, Target{"x": Pixels(0)}, Tween(time.Second, Linear)); err != nil {
		t.Fatal(err)
	}
	if cancelled != 1 {
		t.Errorf("OnCancel ran %d times, want 1", cancelled)
	}
	if s.ActiveCount() != 1 {
		t.Errorf("ActiveCount() = %d, want 1", s.ActiveCount())
	}

	s.Tick(ms(316))
	assertWithin(t, "first commit after replacement", valueOf(t, el, "x").Float(), 30, 0.01)
	s.Tick(ms(816))
	assertWithin(t, "half way back", valueOf(t, el, "x").Float(), 15, 1e-6)
	s.Tick(ms(1316))
	assertNear(t, "end", valueOf(t, el, "x").Float(), 0)
}

func TestSchedulerStartRejectsWithoutChanges(t *testing.T) {
	s := NewScheduler()
	el, _ := newTestElement(nil)
	if _, err := s.Start(el, Target{"width": Pixels(10)}, Tween(time.Second, Linear)); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		target Target
		tr     Transition
		want   error
	}{
		{"negative duration", Target{"opacity": Number(1)}, Tween(-time.Second, Linear), ErrInvalidValue},
		{"negative delay", Target{"opacity": Number(1)}, Transition{Duration: time.Second, Delay: -1}, ErrInvalidValue},
		{"bad spring", Target{"opacity": Number(1)}, SpringTransition(SpringConfig{Mass: 0}), ErrInvalidValue},
		{"non-finite value", Target{"opacity": Number(math.NaN())}, Tween(time.Second, Linear), ErrInvalidValue},
		{"kind mismatch", Target{"opacity": Number(1), "width": Percentage(50)}, Tween(time.Second, Linear), ErrKindMismatch},
		{"color shorthand", Target{"x": ColorValue(ColorWhite)}, Tween(time.Second, Linear), ErrKindMismatch},
		{"negative count", Target{"opacity": Number(1)}, Transition{Duration: time.Second, Repeat: Count(-1)}, ErrInvalidValue},
	}
	for _, tt := range tests {
		if _, err := s.Start(el, tt.target, tt.tr); !errors.Is(err, tt.want) {
			t.Errorf("%s: err = %v, want %v", tt.name, err, tt.want)
		}
	}
	if s.ActiveCount() != 1 {
		t.Errorf("ActiveCount() = %d, rejected starts must not create tasks", s.ActiveCount())
	}
	if _, ok := el.Value("opacity"); ok {
		t.Error("rejected start created a motion value")
	}
	if _, err := s.Start(nil, Target{}, Transition{}); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("nil element err = %v", err)
	}
}

// --- Stop and destroy ---

func TestSchedulerShorthandUnits(t *testing.T) {
	tests := []struct {
		prop string
		v    Value
		ok   bool
	}{
		{"x", Pixels(10), true},
		{"y", Number(10), true},
		{"z", Pixels(-5), true},
		{"rotate", Degrees(45), true},
		{"rotateX", Radians(1), true},
		{"skewY", Degrees(10), true},
		{"scale", Number(2), true},
		{"scaleX", Number(0.5), true},

		{"x", Percentage(50), false},
		{"x", Radians(1), false},
		{"y", Degrees(90), false},
		{"scale", Pixels(2), false},
		{"scaleY", Percentage(50), false},
		{"scale", Degrees(2), false},
		{"rotate", Pixels(10), false},
		{"rotate", Number(90), false},
		{"skewX", Percentage(10), false},
		{"z", String("far"), false},
	}
	for _, tt := range tests {
		t.Run(tt.prop+"/"+tt.v.Kind().String(), func(t *testing.T) {
			s := NewScheduler()
			el, surf := newTestElement(nil)
			_, err := s.Start(el, Target{tt.prop: tt.v}, Tween(time.Second, Linear))
			if tt.ok {
				if err != nil {
					t.Fatalf("Start() err = %v", err)
				}
				return
			}
			if !errors.Is(err, ErrKindMismatch) {
				t.Fatalf("Start() err = %v, want ErrKindMismatch", err)
			}
			var pe *PropertyError
			if !errors.As(err, &pe) || pe.Property != tt.prop {
				t.Errorf("err = %#v, want PropertyError for %s", err, tt.prop)
			}
			if s.ActiveCount() != 0 || surf.Writes("transform") != 0 {
				t.Error("rejected shorthand changed the element")
			}
			if err := el.Set(tt.prop, tt.v); !errors.Is(err, ErrKindMismatch) {
				t.Errorf("Set() err = %v, want ErrKindMismatch", err)
			}
		})
	}
}

func TestSchedulerStop(t *testing.T) {
	s := NewScheduler()
	el, _ := newTestElement(nil)
	target := Target{"opacity": Number(0), "x": Pixels(50), "y": Pixels(50)}
	if _, err := s.Start(el, target, Tween(time.Second, Linear)); err != nil {
		t.Fatal(err)
	}
	s.Tick(0)
	s.Tick(ms(500))

	if n := s.Stop(el, "x", "missing"); n != 1 {
		t.Errorf("Stop(x) = %d, want 1", n)
	}
	assertNear(t, "x keeps value", valueOf(t, el, "x").Float(), 25)
	if n := s.Stop(el); n != 2 {
		t.Errorf("Stop() = %d, want 2", n)
	}
	if n := s.Stop(el); n != 0 {
		t.Errorf("second Stop() = %d, want 0", n)
	}
	s.Tick(time.Second)
	assertNear(t, "y frozen", valueOf(t, el, "y").Float(), 25)
}

func TestSchedulerDestroyElement(t *testing.T) {
	s := NewScheduler()
	el, surf := newTestElement(nil)
	if _, err := s.Start(el, Target{"opacity": Number(0), "x": Pixels(10)}, Tween(time.Second, Linear)); err != nil {
		t.Fatal(err)
	}
	s.Tick(0)
	s.Tick(ms(500))
	if n := s.DestroyElement(el); n != 2 {
		t.Errorf("DestroyElement() = %d, want 2", n)
	}
	if s.DestroyElement(el) != 0 {
		t.Error("second DestroyElement cancelled tasks")
	}
	if _, err := s.Start(el, Target{"opacity": Number(1)}, Tween(time.Second, Linear)); !errors.Is(err, ErrElementGone) {
		t.Errorf("Start after destroy err = %v", err)
	}
	if s.Stop(el) != 0 {
		t.Error("Stop on destroyed element cancelled tasks")
	}
	writes := surf.Writes("opacity")
	s.Tick(time.Second)
	if surf.Writes("opacity") != writes {
		t.Error("destroyed element was written after destroy")
	}
	if got := surf.Get("opacity"); got != "0.5" {
		t.Errorf("opacity = %q, want last committed 0.5", got)
	}
}

func TestSchedulerDestroyElementBeforeCallbacks(t *testing.T) {
	s := NewScheduler()
	el, _ := newTestElement(nil)
	h, err := s.Start(el, Target{"x": Pixels(10)}, Tween(time.Second, Linear))
	if err != nil {
		t.Fatal(err)
	}
	var restartErr error
	ran := false
	s.OnComplete(h, func(BatchResult) {
		ran = true
		_, restartErr = s.Start(el, Target{"y": Pixels(10)}, Tween(time.Second, Linear))
	})
	s.Tick(0)
	if n := s.DestroyElement(el); n != 1 {
		t.Errorf("DestroyElement() = %d, want 1", n)
	}
	if !ran {
		t.Fatal("completion callback did not run")
	}
	if !errors.Is(restartErr, ErrElementGone) {
		t.Errorf("Start from callback err = %v, want ErrElementGone", restartErr)
	}
	if s.ActiveCount() != 0 {
		t.Errorf("ActiveCount() = %d after destroy", s.ActiveCount())
	}
}

func TestSchedulerCallbacksRunAfterStart(t *testing.T) {
	s := NewScheduler()
	el, _ := newTestElement(nil)
	h, _ := s.Start(el, Target{"x": Pixels(10)}, Tween(time.Second, Linear))
	var seen []int
	s.OnComplete(h, func(BatchResult) { seen = append(seen, s.ActiveCount()) })
	if _, err := s.Start(el, Target{"x": Pixels(20), "y": Pixels(20)}, Tween(time.Second, Linear)); err != nil {
		t.Fatal(err)
	}
	// The callback observes the replacement batch fully created.
	if len(seen) != 1 || seen[0] != 2 {
		t.Errorf("callback saw ActiveCount() = %v, want [2]", seen)
	}
}

// --- Failures ---

func TestSchedulerFailureIsolation(t *testing.T) {
	var errs []error
	var cancels int
	s := NewScheduler(WithHooks(Hooks{
		OnError:  func(_ *TaskEvent, err error) { errs = append(errs, err) },
		OnCancel: func(*TaskEvent) { cancels++ },
	}))
	bad, _ := newTestElement(nil)
	good, _ := newTestElement(nil)
	nan := CustomEasing("nan", func(float64) float64 { return math.NaN() })

	if _, err := s.Start(bad, Target{"x": Pixels(10)}, Tween(time.Second, nan)); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Start(good, Target{"x": Pixels(10)}, Tween(time.Second, Linear)); err != nil {
		t.Fatal(err)
	}
	s.Tick(0)
	s.Tick(ms(500))
	if len(errs) != 1 || !errors.Is(errs[0], ErrInvalidValue) {
		t.Fatalf("errors = %v, want one ErrInvalidValue", errs)
	}
	if cancels != 0 {
		t.Errorf("OnCancel ran %d times for a failure", cancels)
	}
	if s.IsRunning(bad, "x") {
		t.Error("failed task still running")
	}
	assertNear(t, "good x", valueOf(t, good, "x").Float(), 5)
}

func TestSchedulerRecoversPanics(t *testing.T) {
	var errs []error
	s := NewScheduler(WithHooks(Hooks{OnError: func(_ *TaskEvent, err error) { errs = append(errs, err) }}))
	el, _ := newTestElement(nil)
	boom := CustomEasing("boom", func(float64) float64 { panic("boom") })
	if _, err := s.Start(el, Target{"opacity": Number(0)}, Tween(time.Second, boom)); err != nil {
		t.Fatal(err)
	}
	s.Tick(0)
	s.Tick(ms(100))
	if len(errs) != 1 {
		t.Fatalf("errors = %v, want one", errs)
	}
	if s.ActiveCount() != 0 {
		t.Errorf("ActiveCount() = %d", s.ActiveCount())
	}
}

// --- Clock ---

func TestSchedulerBackwardTimeIsClamped(t *testing.T) {
	s := NewScheduler()
	el, _ := newTestElement(map[string]string{"opacity": "0"})
	if _, err := s.Start(el, Target{"opacity": Number(1)}, Tween(time.Second, Linear)); err != nil {
		t.Fatal(err)
	}
	s.Tick(0)
	s.Tick(ms(600))
	s.Tick(ms(200))
	if s.Now() != ms(600) {
		t.Errorf("Now() = %v, want 600ms", s.Now())
	}
	assertNear(t, "opacity", valueOf(t, el, "opacity").Float(), 0.6)
}

func TestSchedulerTasksStartedInHooksWaitForNextTick(t *testing.T) {
	s := NewScheduler()
	el, _ := newTestElement(nil)
	started := false
	s.hooks.OnComplete = func(ev *TaskEvent) {
		if ev.Property != "x" || started {
			return
		}
		started = true
		if _, err := s.Start(el, Target{"y": Pixels(10)}, Tween(time.Second, Linear)); err != nil {
			t.Errorf("Start from hook: %v", err)
		}
	}
	if _, err := s.Start(el, Target{"x": Pixels(10)}, Tween(ms(100), Linear)); err != nil {
		t.Fatal(err)
	}
	s.Tick(0)
	s.Tick(ms(100))
	if ph, ok := s.Phase(el, "y"); !ok || ph != PhasePending {
		t.Errorf("y phase = %v %v, want pending", ph, ok)
	}
	s.Tick(ms(200))
	if ph, _ := s.Phase(el, "y"); ph != PhaseRunning {
		t.Errorf("y phase = %s, want running", ph)
	}
}

// --- Batches ---

func TestSchedulerBatchCompletion(t *testing.T) {
	s := NewScheduler()
	el, _ := newTestElement(nil)
	h, err := s.Start(el, Target{"x": Pixels(10), "y": Pixels(10)}, Tween(time.Second, Linear))
	if err != nil {
		t.Fatal(err)
	}
	var results []BatchResult
	s.OnComplete(h, func(r BatchResult) { results = append(results, r) })

	s.Tick(0)
	s.Stop(el, "y")
	if s.Done(h) {
		t.Fatal("batch done with x still running")
	}
	s.Tick(time.Second)
	if !s.Done(h) {
		t.Fatal("batch not done")
	}
	if len(results) != 1 {
		t.Fatalf("callback ran %d times", len(results))
	}
	if results[0].Handle != h || results[0].Cancelled != 1 {
		t.Errorf("result = %+v, want handle %d with 1 cancelled", results[0], h)
	}

	ran := false
	s.OnComplete(h, func(BatchResult) { ran = true })
	if !ran {
		t.Error("OnComplete on a finished batch should run immediately")
	}
}

func TestSchedulerStopBatch(t *testing.T) {
	s := NewScheduler()
	a, _ := newTestElement(nil)
	b, _ := newTestElement(nil)
	h1, _ := s.Start(a, Target{"x": Pixels(10), "y": Pixels(10)}, Tween(time.Second, Linear))
	h2, _ := s.Start(b, Target{"x": Pixels(10)}, Tween(time.Second, Linear))
	if n := s.StopBatch(h1); n != 2 {
		t.Errorf("StopBatch() = %d, want 2", n)
	}
	if !s.Done(h1) || s.Done(h2) {
		t.Error("StopBatch touched the wrong batch")
	}
	if s.StopBatch(h1) != 0 {
		t.Error("StopBatch on done batch")
	}
}

func TestSchedulerOnTick(t *testing.T) {
	var ev TickEvent
	s := NewScheduler(WithHooks(Hooks{OnTick: func(e *TickEvent) { ev = *e }}))
	el, _ := newTestElement(nil)
	if _, err := s.Start(el, Target{"x": Pixels(10), "y": Pixels(5)}, Tween(time.Second, Linear)); err != nil {
		t.Fatal(err)
	}
	s.Tick(ms(40))
	if ev.Now != ms(40) || ev.Active != 2 || ev.Stepped != 2 {
		t.Errorf("tick event = %+v", ev)
	}
}

func TestHooksChain(t *testing.T) {
	var order []string
	h := Hooks{OnStart: func(*TaskEvent) { order = append(order, "a") }}.
		Chain(Hooks{OnStart: func(*TaskEvent) { order = append(order, "b") }})
	h.OnStart(&TaskEvent{})
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Errorf("order = %v", order)
	}
	h.OnError(&TaskEvent{}, errors.New("x"))
	h.OnTick(&TickEvent{})
}

// --- Transition ---

func TestTransitionSpringConfig(t *testing.T) {
	custom := SpringConfig{Stiffness: 50, Damping: 5, Mass: 2}
	if got := SpringTransition(custom).SpringConfig(); got != custom {
		t.Errorf("SpringTransition config = %+v", got)
	}
	if got := (Transition{Easing: SpringEasing(custom)}).SpringConfig(); got != custom {
		t.Errorf("spring easing config = %+v", got)
	}
	if got := (Transition{}).SpringConfig(); got != DefaultSpring() {
		t.Errorf("default config = %+v", got)
	}
	if Tween(time.Second, Linear).IsSpring() {
		t.Error("tween reported as spring")
	}
}

func TestRepeatString(t *testing.T) {
	tests := map[Repeat]string{
		Never:               "never",
		Count(3):            "count(3)",
		Infinite:            "infinite",
		InfiniteAlternating: "infinite-alternating",
	}
	for r, want := range tests {
		if r.String() != want {
			t.Errorf("%v.String() = %q, want %q", r, r.String(), want)
		}
	}
	if Count(0).runs() != 1 {
		t.Error("Count(0) should run once")
	}
}

func TestSeconds(t *testing.T) {
	d, err := Seconds(0.25)
	if err != nil || d != ms(250) {
		t.Errorf("Seconds(0.25) = %v, %v", d, err)
	}
	if _, err := Seconds(math.Inf(1)); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("Seconds(Inf) err = %v", err)
	}
}

func BenchmarkSchedulerTick(b *testing.B) {
	s := NewScheduler()
	tr := Tween(time.Hour, EaseInOut)
	for i := 0; i < 1000; i++ {
		el, _ := newTestElement(nil)
		if _, err := s.Start(el, Target{"x": Pixels(100), "opacity": Number(0)}, tr); err != nil {
			b.Fatal(err)
		}
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Tick(time.Duration(i) * frame60)
	}
}

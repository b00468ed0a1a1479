package motion

import (
	"errors"
	"math"
	"testing"
	"time"
)

// fakeClock is a settable clock for velocity estimates.
type fakeClock struct{ now time.Duration }

func (c *fakeClock) Now() time.Duration { return c.now }

func newTestMotionValue(v Value, clk *fakeClock) *MotionValue {
	mv := NewMotionValue(v)
	mv.clock = clk.Now
	mv.lastSet = clk.now
	return mv
}

func TestMotionValueSetEstimatesVelocity(t *testing.T) {
	clk := &fakeClock{}
	mv := newTestMotionValue(Pixels(0), clk)

	clk.now = 100 * time.Millisecond
	if err := mv.Set(Pixels(10)); err != nil {
		t.Fatal(err)
	}
	assertNear(t, "velocity", mv.Velocity(), 100)

	// Two sets within the same instant use the 1ms floor.
	if err := mv.Set(Pixels(11)); err != nil {
		t.Fatal(err)
	}
	assertNear(t, "floored velocity", mv.Velocity(), 1000)
}

func TestMotionValueCompositeVelocity(t *testing.T) {
	clk := &fakeClock{}
	mv := newTestMotionValue(TransformValue(Transform{}.WithX(0).WithY(0)), clk)
	clk.now = time.Second
	if err := mv.Set(TransformValue(Transform{}.WithX(3).WithY(4))); err != nil {
		t.Fatal(err)
	}
	assertNear(t, "norm", mv.Velocity(), 5)
	ch := mv.ChannelVelocity()
	if len(ch) != 2 || ch[0] != 3 || ch[1] != 4 {
		t.Errorf("ChannelVelocity() = %v, want [3 4]", ch)
	}
}

func TestMotionValueSetWithVelocity(t *testing.T) {
	mv := NewMotionValue(ColorValue(ColorBlack))
	if err := mv.SetWithVelocity(ColorValue(ColorWhite), 2); err != nil {
		t.Fatal(err)
	}
	for i, v := range mv.ChannelVelocity() {
		if v != 2 {
			t.Errorf("channel %d velocity = %v, want 2", i, v)
		}
	}
	if err := mv.SetWithVelocity(ColorValue(ColorWhite), math.NaN()); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("NaN velocity err = %v", err)
	}
}

func TestMotionValueRejects(t *testing.T) {
	mv := NewMotionValue(Number(0))
	if err := mv.Set(Pixels(1)); !errors.Is(err, ErrKindMismatch) {
		t.Errorf("kind mismatch err = %v", err)
	}
	if err := mv.Set(Number(math.Inf(1))); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("non-finite err = %v", err)
	}
	if !mv.Get().Equal(Number(0)) {
		t.Errorf("rejected Set changed value to %v", mv.Get())
	}
	mv.release()
	if err := mv.Set(Number(1)); !errors.Is(err, ErrElementGone) {
		t.Errorf("released err = %v", err)
	}
}

// --- Subscribers ---

func TestMotionValueSubscribersInOrder(t *testing.T) {
	mv := NewMotionValue(Number(0))
	var log []string
	mv.Subscribe(func(v Value) { log = append(log, "a:"+v.String()) })
	mv.Subscribe(func(v Value) { log = append(log, "b:"+v.String()) })
	if err := mv.Set(Number(1)); err != nil {
		t.Fatal(err)
	}
	want := []string{"a:1", "b:1"}
	if len(log) != len(want) || log[0] != want[0] || log[1] != want[1] {
		t.Errorf("log = %v, want %v", log, want)
	}
}

func TestMotionValueReentrantSetIsDeferred(t *testing.T) {
	mv := NewMotionValue(Number(0))
	var log []string
	mv.Subscribe(func(v Value) {
		log = append(log, "a:"+v.String())
		if v.Float() == 1 {
			if err := mv.Set(Number(2)); err != nil {
				t.Errorf("nested Set: %v", err)
			}
			if !mv.Get().Equal(Number(2)) {
				t.Errorf("nested Set not applied at once")
			}
		}
	})
	mv.Subscribe(func(v Value) { log = append(log, "b:"+v.String()) })

	if err := mv.Set(Number(1)); err != nil {
		t.Fatal(err)
	}
	want := []string{"a:1", "b:1", "a:2", "b:2"}
	if len(log) != len(want) {
		t.Fatalf("log = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("log[%d] = %q, want %q", i, log[i], want[i])
		}
	}
}

func TestMotionValueUnsubscribeDuringNotify(t *testing.T) {
	mv := NewMotionValue(Number(0))
	calls := 0
	var second Subscription
	mv.Subscribe(func(Value) { mv.Unsubscribe(second) })
	second = mv.Subscribe(func(Value) { calls++ })

	if err := mv.Set(Number(1)); err != nil {
		t.Fatal(err)
	}
	if calls != 0 {
		t.Errorf("unsubscribed subscriber ran %d times", calls)
	}
	if mv.SubscriberCount() != 1 {
		t.Errorf("SubscriberCount() = %d, want 1", mv.SubscriberCount())
	}
	mv.Unsubscribe(12345) // unknown handles are ignored
}

func TestMotionValueReleaseDropsSubscribers(t *testing.T) {
	mv := NewMotionValue(Number(0))
	mv.Subscribe(func(Value) {})
	mv.release()
	if mv.SubscriberCount() != 0 {
		t.Errorf("SubscriberCount() = %d after release", mv.SubscriberCount())
	}
}

// --- Velocity helpers ---

func TestAlignVelocity(t *testing.T) {
	src := TransformValue(Transform{}.WithX(0).WithScale(1))
	dst := TransformValue(Transform{}.WithX(0).WithRotate(0).WithScale(1))
	got := alignVelocity(src, []float64{5, 7}, dst)
	want := []float64{5, 0, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("aligned[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if got := alignVelocity(Number(0), []float64{3}, Pixels(0)); got[0] != 0 {
		t.Errorf("cross-kind velocity = %v, want 0", got)
	}
}

func TestVelocityBetweenTransformFromUnset(t *testing.T) {
	prev := TransformValue(Transform{})
	next := TransformValue(Transform{}.WithScale(2))
	got := velocityBetween(prev, next, time.Second)
	if len(got) != 1 || got[0] != 1 {
		t.Errorf("velocity = %v, want [1] (from identity scale)", got)
	}
}

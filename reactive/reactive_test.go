package reactive

import (
	"strings"
	"testing"
)

// --- Signal ---

func TestSignalSetReportsChange(t *testing.T) {
	s := New(1)
	if s.Set(1) {
		t.Error("Set(same) reported a change")
	}
	if !s.Set(2) {
		t.Error("Set(new) reported no change")
	}
	if s.Peek() != 2 || s.Get() != 2 {
		t.Errorf("value = %d, want 2", s.Peek())
	}
	if !s.Update(func(v int) int { return v * 10 }) || s.Peek() != 20 {
		t.Errorf("Update = %d, want 20", s.Peek())
	}
}

func TestNewWithNilEqualAlwaysNotifies(t *testing.T) {
	s := NewWith([]int{1}, nil)
	runs := 0
	stop := Effect(func() {
		s.Get()
		runs++
	})
	defer stop()
	s.Set([]int{1})
	s.Set([]int{1})
	if runs != 3 {
		t.Errorf("runs = %d, want 3", runs)
	}
}

func TestSubscribe(t *testing.T) {
	s := New("a")
	other := New(0)
	calls := 0
	unsub := s.Subscribe(func() {
		calls++
		other.Get() // not tracked
	})
	s.Set("b")
	other.Set(1)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	unsub()
	s.Set("c")
	if calls != 1 {
		t.Errorf("calls after unsubscribe = %d", calls)
	}
}

// --- Effect ---

func TestEffectRerunsOnChange(t *testing.T) {
	a := New(1)
	b := New(10)
	var seen []int
	stop := Effect(func() { seen = append(seen, a.Get()+b.Get()) })

	a.Set(2)
	b.Set(20)
	stop()
	a.Set(3)

	want := []int{11, 12, 22}
	if len(seen) != len(want) {
		t.Fatalf("seen = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("seen[%d] = %d, want %d", i, seen[i], want[i])
		}
	}
}

func TestEffectRecollectsDependencies(t *testing.T) {
	useA := New(true)
	a := New(0)
	b := New(0)
	runs := 0
	stop := Effect(func() {
		runs++
		if useA.Get() {
			a.Get()
		} else {
			b.Get()
		}
	})
	defer stop()

	useA.Set(false)
	runs = 0
	a.Set(1)
	if runs != 0 {
		t.Errorf("stale dependency re-ran the effect %d times", runs)
	}
	b.Set(1)
	if runs != 1 {
		t.Errorf("runs = %d, want 1", runs)
	}
}

func TestEffectWritingItsDependencySettles(t *testing.T) {
	n := New(0)
	stop := Effect(func() {
		if v := n.Get(); v < 5 {
			n.Set(v + 1)
		}
	})
	defer stop()
	if n.Peek() != 5 {
		t.Errorf("n = %d, want 5", n.Peek())
	}
}

func TestEffectRunawayPanics(t *testing.T) {
	n := New(0)
	defer func() {
		r := recover()
		if r == nil || !strings.Contains(r.(string), "did not settle") {
			t.Errorf("recover() = %v", r)
		}
	}()
	Effect(func() { n.Set(n.Get() + 1) })
}

// --- Batch / Untrack ---

func TestBatchCoalesces(t *testing.T) {
	a := New(0)
	b := New(0)
	runs := 0
	stop := Effect(func() {
		a.Get()
		b.Get()
		runs++
	})
	defer stop()

	Batch(func() {
		a.Set(1)
		b.Set(1)
		a.Set(2)
		if runs != 1 {
			t.Errorf("effect ran inside batch")
		}
	})
	if runs != 2 {
		t.Errorf("runs = %d, want 2", runs)
	}
}

func TestNestedBatch(t *testing.T) {
	a := New(0)
	runs := 0
	stop := Effect(func() { a.Get(); runs++ })
	defer stop()
	Batch(func() {
		Batch(func() { a.Set(1) })
		if runs != 1 {
			t.Error("inner batch flushed early")
		}
		a.Set(2)
	})
	if runs != 2 {
		t.Errorf("runs = %d, want 2", runs)
	}
}

func TestUntrack(t *testing.T) {
	a := New(0)
	b := New(0)
	runs := 0
	stop := Effect(func() {
		a.Get()
		_ = Untrack(b.Get)
		runs++
	})
	defer stop()
	b.Set(1)
	if runs != 1 {
		t.Errorf("untracked read re-ran the effect")
	}
	a.Set(1)
	if runs != 2 {
		t.Errorf("runs = %d, want 2", runs)
	}
}

// --- Scope ---

func TestScopeDispose(t *testing.T) {
	root := NewScope()
	child := root.Child()
	sig := New(0)
	var log []string

	runs := 0
	child.Track(func() { sig.Get(); runs++ })
	root.OnCleanup(func() { log = append(log, "root-1") })
	root.OnCleanup(func() { log = append(log, "root-2") })
	child.OnCleanup(func() { log = append(log, "child") })

	root.Dispose()
	root.Dispose()

	want := []string{"child", "root-2", "root-1"}
	if strings.Join(log, ",") != strings.Join(want, ",") {
		t.Errorf("cleanup order = %v, want %v", log, want)
	}
	if !child.Disposed() || !root.Disposed() {
		t.Error("scopes not disposed")
	}
	sig.Set(1)
	if runs != 1 {
		t.Errorf("effect ran after dispose")
	}
}

func TestDisposedScope(t *testing.T) {
	sc := NewScope()
	sc.Dispose()

	ran := false
	stop := sc.Track(func() { ran = true })
	stop()
	if ran {
		t.Error("Track on disposed scope ran fn")
	}
	cleaned := false
	sc.OnCleanup(func() { cleaned = true })
	if !cleaned {
		t.Error("OnCleanup on disposed scope should run immediately")
	}
	if !sc.Child().Disposed() {
		t.Error("child of disposed scope should be disposed")
	}
}

func TestChildDisposeDetachesFromParent(t *testing.T) {
	root := NewScope()
	child := root.Child()
	child.Dispose()
	if len(root.children) != 0 {
		t.Errorf("parent still holds %d children", len(root.children))
	}
	root.Dispose()
}

func TestTrackStopEarly(t *testing.T) {
	sc := NewScope()
	defer sc.Dispose()
	sig := New(0)
	runs := 0
	stop := sc.Track(func() { sig.Get(); runs++ })
	stop()
	sig.Set(1)
	if runs != 1 {
		t.Errorf("runs = %d after stop", runs)
	}
}

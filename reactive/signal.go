package reactive

// Readable is read access to a reactive value.
type Readable[T any] interface {
	Get() T
	Peek() T
	Subscribe(fn func()) (unsubscribe func())
}

// Writable is read and write access to a reactive value.
type Writable[T any] interface {
	Readable[T]
	Set(value T) bool
	Update(fn func(T) T) bool
}

// Signal holds a value and notifies its observers when it changes.
type Signal[T any] struct {
	value T
	equal func(a, b T) bool
	subs  []*observer
}

var (
	_ Writable[int]  = (*Signal[int])(nil)
	_ Readable[bool] = (*Signal[bool])(nil)
)

// New returns a signal holding v. Writes equal to the current value are
// ignored.
func New[T comparable](v T) *Signal[T] {
	return &Signal[T]{value: v, equal: func(a, b T) bool { return a == b }}
}

// NewWith returns a signal holding v that uses equal to skip redundant
// writes. A nil equal treats every write as a change.
func NewWith[T any](v T, equal func(a, b T) bool) *Signal[T] {
	return &Signal[T]{value: v, equal: equal}
}

// Get returns the value and, inside an effect, records the signal as one of
// the effect's dependencies.
func (s *Signal[T]) Get() T {
	if o := current; o != nil && !s.has(o) {
		s.subs = append(s.subs, o)
		o.deps = append(o.deps, s)
	}
	return s.value
}

// Peek returns the value without tracking.
func (s *Signal[T]) Peek() T { return s.value }

// Set stores v and notifies observers. It reports whether the value
// changed.
func (s *Signal[T]) Set(v T) bool {
	if s.equal != nil && s.equal(s.value, v) {
		return false
	}
	s.value = v
	s.notify()
	return true
}

// Update sets the value to fn(current).
func (s *Signal[T]) Update(fn func(T) T) bool {
	return s.Set(fn(s.value))
}

// Subscribe calls fn after every change. fn's own reads are not tracked.
func (s *Signal[T]) Subscribe(fn func()) (unsubscribe func()) {
	o := &observer{fn: fn}
	s.subs = append(s.subs, o)
	o.deps = append(o.deps, s)
	return o.stop
}

func (s *Signal[T]) notify() {
	batchDepth++
	for _, o := range s.subs {
		schedule(o)
	}
	batchDepth--
	flush()
}

func (s *Signal[T]) has(o *observer) bool {
	for _, x := range s.subs {
		if x == o {
			return true
		}
	}
	return false
}

func (s *Signal[T]) unsubscribe(o *observer) {
	for i, x := range s.subs {
		if x == o {
			subs := make([]*observer, 0, len(s.subs)-1)
			subs = append(subs, s.subs[:i]...)
			s.subs = append(subs, s.subs[i+1:]...)
			return
		}
	}
}

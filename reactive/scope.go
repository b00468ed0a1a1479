package reactive

// Scope owns effects, child scopes and cleanup callbacks. Disposing a scope
// disposes its children, stops its effects and runs its cleanups in reverse
// registration order.
type Scope struct {
	parent   *Scope
	children []*Scope
	effects  []*observer
	cleanups []func()
	disposed bool
}

// NewScope returns a root scope.
func NewScope() *Scope { return &Scope{} }

// Child returns a scope disposed together with sc.
func (sc *Scope) Child() *Scope {
	c := &Scope{parent: sc}
	if sc.disposed {
		c.disposed = true
		return c
	}
	sc.children = append(sc.children, c)
	return c
}

// Track runs fn as an effect owned by the scope. The returned function stops
// it early. On a disposed scope fn does not run.
func (sc *Scope) Track(fn func()) (stop func()) {
	if sc.disposed {
		return func() {}
	}
	o := &observer{fn: fn, tracking: true}
	sc.effects = append(sc.effects, o)
	Batch(o.run)
	return o.stop
}

// OnCleanup registers fn to run when the scope is disposed. On a disposed
// scope fn runs immediately.
func (sc *Scope) OnCleanup(fn func()) {
	if sc.disposed {
		fn()
		return
	}
	sc.cleanups = append(sc.cleanups, fn)
}

// Disposed reports whether Dispose was called.
func (sc *Scope) Disposed() bool { return sc.disposed }

// Dispose tears the scope down. It is idempotent.
func (sc *Scope) Dispose() {
	if sc.disposed {
		return
	}
	sc.disposed = true
	for i := len(sc.children) - 1; i >= 0; i-- {
		sc.children[i].Dispose()
	}
	sc.children = nil
	for _, o := range sc.effects {
		o.stop()
	}
	sc.effects = nil
	for i := len(sc.cleanups) - 1; i >= 0; i-- {
		sc.cleanups[i]()
	}
	sc.cleanups = nil
	if p := sc.parent; p != nil && !p.disposed {
		for i, c := range p.children {
			if c == sc {
				p.children = append(p.children[:i], p.children[i+1:]...)
				break
			}
		}
	}
}

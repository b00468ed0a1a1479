package motion

// Host is the reactive runtime a Bridge registers with. Track runs fn now
// and again whenever a reactive source fn read changes; OnCleanup registers
// a callback for when the owning scope is destroyed. *reactive.Scope
// satisfies it.
type Host interface {
	Track(fn func()) (stop func())
	OnCleanup(fn func())
}

// Animator is the scheduler surface a Bridge drives. *Scheduler satisfies
// it.
type Animator interface {
	Start(el *Element, target Target, tr Transition) (BatchHandle, error)
	DestroyElement(el *Element) int
}

// BoolSource is a reactive boolean, such as a gesture state signal.
type BoolSource interface {
	Get() bool
}

// TargetSource produces the base target of a Bridge: either a fixed map or
// a function re-evaluated whenever the reactive sources it reads change.
type TargetSource struct {
	static Target
	fn     func() Target
}

// Static returns a source that always yields a copy of t.
func Static(t Target) TargetSource { return TargetSource{static: t.Clone()} }

// Reactive returns a source that calls fn on every evaluation.
func Reactive(fn func() Target) TargetSource { return TargetSource{fn: fn} }

// Resolve evaluates the source. The result is owned by the caller.
func (s TargetSource) Resolve() Target {
	if s.fn != nil {
		return s.fn().Clone()
	}
	return s.static.Clone()
}

// Gesture is an overlay target applied while Active reads true. Transition,
// when set, overrides the bridge transition for the properties the overlay
// supplies.
type Gesture struct {
	Active     BoolSource
	Target     TargetSource
	Transition *Transition
}

// BridgeConfig configures a Bridge. Target is the base target; the gesture
// overlays apply on top of it in the precedence tap, hover, focus, in-view.
// Initial values are set without animation before the first evaluation, so
// the element animates from them rather than from its surface.
type BridgeConfig struct {
	Initial    Target
	Target     TargetSource
	Transition func() Transition // nil selects the default spring
	Hover      *Gesture
	Tap        *Gesture
	Focus      *Gesture
	InView     *Gesture

	// OnError receives Start failures; the property keeps its last value.
	OnError func(prop string, err error)
}

// Bridge keeps an element animating toward a reactive target. Every time a
// source read by the target, the transition or an active overlay changes,
// the bridge recomputes the effective target and starts one animation per
// property whose value differs from the previous effective target.
// Properties that drop out of the effective target are forgotten without
// being animated back.
type Bridge struct {
	anim Animator
	el   *Element
	cfg  BridgeConfig

	committed Target
	stop      func()
	destroyed bool
}

// layer is one contributor to the effective target.
type layer struct {
	target     Target
	transition *Transition
}

// NewBridge binds el to cfg, applies cfg.Initial, then evaluates once and
// starts animations toward the initial effective target. The bridge is
// destroyed with the host scope or when the element is destroyed.
func NewBridge(host Host, anim Animator, el *Element, cfg BridgeConfig) *Bridge {
	b := &Bridge{anim: anim, el: el, cfg: cfg, committed: Target{}}
	for _, prop := range cfg.Initial.Keys() {
		if err := el.Set(prop, cfg.Initial[prop]); err != nil && cfg.OnError != nil {
			cfg.OnError(prop, err)
		}
	}
	el.OnDestroy(b.detach)
	host.OnCleanup(b.Destroy)
	b.stop = host.Track(b.update)
	return b
}

// Element returns the animated element.
func (b *Bridge) Element() *Element { return b.el }

// Effective returns a copy of the last effective target.
func (b *Bridge) Effective() Target { return b.committed.Clone() }

// Destroyed reports whether the bridge was destroyed.
func (b *Bridge) Destroyed() bool { return b.destroyed }

// Destroy stops tracking, cancels the element's animations and releases its
// motion values. It is idempotent.
func (b *Bridge) Destroy() {
	if b.destroyed {
		return
	}
	b.detach()
	b.anim.DestroyElement(b.el)
}

func (b *Bridge) detach() {
	if b.destroyed {
		return
	}
	b.destroyed = true
	if b.stop != nil {
		b.stop()
	}
}

func (b *Bridge) update() {
	if b.destroyed {
		return
	}
	base := Transition{}
	if b.cfg.Transition != nil {
		base = b.cfg.Transition()
	}
	layers := b.layers()

	effective := Target{}
	source := map[string]*Transition{}
	for _, l := range layers {
		for prop, v := range l.target {
			effective[prop] = v
			source[prop] = l.transition
		}
	}

	for _, prop := range effective.Keys() {
		v := effective[prop]
		if prev, ok := b.committed[prop]; ok && prev.Equal(v) {
			continue
		}
		tr := base
		if source[prop] != nil {
			tr = *source[prop]
		}
		if _, err := b.anim.Start(b.el, Target{prop: v}, tr); err != nil {
			if b.cfg.OnError != nil {
				b.cfg.OnError(prop, err)
			}
			// Keep the old entry so the change is retried on the next
			// evaluation.
			if prev, ok := b.committed[prop]; ok {
				effective[prop] = prev
			} else {
				delete(effective, prop)
			}
		}
	}
	b.committed = effective
}

// layers returns the base target followed by the active overlays, lowest
// precedence first. Every overlay's Active source is read on every
// evaluation so toggling it re-runs the bridge.
func (b *Bridge) layers() []layer {
	layers := []layer{{target: b.cfg.Target.Resolve()}}
	for _, g := range [...]*Gesture{b.cfg.InView, b.cfg.Focus, b.cfg.Hover, b.cfg.Tap} {
		if g == nil || g.Active == nil {
			continue
		}
		if g.Active.Get() {
			layers = append(layers, layer{target: g.Target.Resolve(), transition: g.Transition})
		}
	}
	return layers
}

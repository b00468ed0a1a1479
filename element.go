package motion

import (
	"sort"
	"time"
)

// Surface is the style interface an Element writes to. Implementations may
// back it with a scene node, a terminal cell grid, or a test double.
type Surface interface {
	SetStyle(name, value string)
	ComputedStyle(name string) (string, bool)
}

// StyleMap is an in-memory Surface. It records how many times each property
// was written.
type StyleMap struct {
	styles map[string]string
	writes map[string]int
}

// NewStyleMap returns a StyleMap whose computed style starts as initial.
func NewStyleMap(initial map[string]string) *StyleMap {
	m := &StyleMap{styles: make(map[string]string, len(initial)), writes: make(map[string]int)}
	for k, v := range initial {
		m.styles[k] = v
	}
	return m
}

// SetStyle implements Surface.
func (m *StyleMap) SetStyle(name, value string) {
	m.styles[name] = value
	m.writes[name]++
}

// ComputedStyle implements Surface.
func (m *StyleMap) ComputedStyle(name string) (string, bool) {
	v, ok := m.styles[name]
	return v, ok
}

// Get returns the current style string for name, or "".
func (m *StyleMap) Get(name string) string { return m.styles[name] }

// Writes returns the number of SetStyle calls for name.
func (m *StyleMap) Writes(name string) int { return m.writes[name] }

// Names returns the written property names in sorted order.
func (m *StyleMap) Names() []string {
	names := make([]string, 0, len(m.styles))
	for k := range m.styles {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// --- ID counter ---

// elementIDCounter is a plain counter; elements are created and animated on
// one goroutine.
var elementIDCounter uint64

func nextElementID() uint64 {
	elementIDCounter++
	return elementIDCounter
}

// transformProperty is the style the shorthands compose into.
const transformProperty = "transform"

// Element owns the motion values of one surface. Motion values are created
// on first use, seeded from the surface's computed style, and write their
// formatted value back to the surface on every commit. The transform
// shorthands and a direct "transform" value compose into a single transform
// write; while a scheduler tick is in progress those writes are coalesced
// into one per tick.
type Element struct {
	id      uint64
	name    string
	surface Surface

	values map[string]*MotionValue
	order  []string
	clock  func() time.Duration

	batching bool
	tfDirty  bool

	destroyed    bool
	goneReported bool
	diagnosed    map[string]bool
	onDestroy    []func()
}

// NewElement wraps a surface.
func NewElement(s Surface) *Element {
	return &Element{
		id:      nextElementID(),
		surface: s,
		values:  make(map[string]*MotionValue),
		clock:   wallClock,
	}
}

// NewNamedElement wraps a surface and names it for diagnostics.
func NewNamedElement(name string, s Surface) *Element {
	e := NewElement(s)
	e.name = name
	return e
}

// ID returns the element's unique ID.
func (e *Element) ID() uint64 { return e.id }

// Name returns the diagnostic name, or "".
func (e *Element) Name() string { return e.name }

// Surface returns the wrapped surface.
func (e *Element) Surface() Surface { return e.surface }

// Destroyed reports whether the element has been destroyed.
func (e *Element) Destroyed() bool { return e.destroyed }

// Value returns the motion value for prop, if one exists.
func (e *Element) Value(prop string) (*MotionValue, bool) {
	mv, ok := e.values[prop]
	return mv, ok
}

// Properties returns the animated property names in creation order.
func (e *Element) Properties() []string {
	return append([]string(nil), e.order...)
}

// Get returns the current value of prop, or false if it was never animated.
func (e *Element) Get(prop string) (Value, bool) {
	mv, ok := e.values[prop]
	if !ok {
		return Value{}, false
	}
	return mv.Get(), true
}

// Set jumps prop to v without animating, creating its motion value if
// needed. It does not stop a running task.
func (e *Element) Set(prop string, v Value) error {
	if e.destroyed {
		return ErrElementGone
	}
	if err := v.Validate(); err != nil {
		return err
	}
	if err := checkShorthand(prop, v.kind); err != nil {
		return err
	}
	mv, err := e.motionValue(prop, v.kind)
	if err != nil {
		return err
	}
	return mv.Set(v)
}

// Transform returns the composed transform: the "transform" value, if any,
// with the shorthand fields applied over it.
func (e *Element) Transform() Transform {
	var tf Transform
	if mv, ok := e.values[transformProperty]; ok && mv.Kind() == KindTransform {
		tf = mv.Get().tf
	}
	for _, prop := range e.order {
		f, ok := ShorthandField(prop)
		if !ok {
			continue
		}
		if n, ok := shorthandNumber(e.values[prop].Get()); ok {
			tf = tf.Set(f, n)
		}
	}
	return tf
}

// OnDestroy registers fn to run when the element is destroyed.
func (e *Element) OnDestroy(fn func()) {
	e.onDestroy = append(e.onDestroy, fn)
}

// motionValue returns the motion value for prop, creating and seeding one of
// the given kind on first sight. An existing value of another kind fails with
// ErrKindMismatch.
func (e *Element) motionValue(prop string, kind Kind) (*MotionValue, error) {
	if mv, ok := e.values[prop]; ok {
		if mv.Kind() != kind {
			return nil, kindMismatch(prop, mv.Kind(), kind)
		}
		return mv, nil
	}
	mv := NewMotionValue(e.seed(prop, kind))
	mv.clock = e.now
	mv.lastSet = e.now()
	e.values[prop] = mv
	e.order = append(e.order, prop)
	if isTransformProp(prop) {
		mv.Subscribe(func(Value) { e.transformChanged() })
	} else {
		mv.Subscribe(func(v Value) { e.surface.SetStyle(prop, v.String()) })
	}
	return mv, nil
}

// checkKind reports the error motionValue would return for prop and kind,
// without creating anything.
func (e *Element) checkKind(prop string, kind Kind) error {
	if mv, ok := e.values[prop]; ok && mv.Kind() != kind {
		return kindMismatch(prop, mv.Kind(), kind)
	}
	return nil
}

// seed reads the starting value of prop from the surface. Shorthands fall
// back to the matching field of the computed transform; anything missing or
// unparsable starts from the kind's neutral value.
func (e *Element) seed(prop string, kind Kind) Value {
	if s, ok := e.surface.ComputedStyle(prop); ok {
		if v, err := ParseAs(kind, s); err == nil {
			return v
		}
	}
	if f, ok := ShorthandField(prop); ok && kind.scalar() {
		if s, ok := e.surface.ComputedStyle(transformProperty); ok {
			if tf, err := ParseTransform(s); err == nil {
				if n, ok := tf.Get(f); ok {
					if kind == KindRadians {
						n *= radPerDeg
					}
					return Value{kind: kind, num: n}
				}
			}
		}
	}
	return neutral(kind, prop)
}

func (e *Element) now() time.Duration { return e.clock() }

func (e *Element) bindClock(clock func() time.Duration) {
	e.clock = clock
}

func (e *Element) transformChanged() {
	if e.batching {
		e.tfDirty = true
		return
	}
	e.flushTransform()
}

func (e *Element) flushTransform() {
	e.tfDirty = false
	if e.destroyed {
		return
	}
	e.surface.SetStyle(transformProperty, e.Transform().String())
}

func (e *Element) beginBatch() { e.batching = true }

func (e *Element) endBatch() {
	e.batching = false
	if e.tfDirty {
		e.flushTransform()
	}
}

// diagnose reports whether prop has not been diagnosed yet and marks it.
func (e *Element) diagnose(prop string) bool {
	if e.diagnosed[prop] {
		return false
	}
	if e.diagnosed == nil {
		e.diagnosed = make(map[string]bool)
	}
	e.diagnosed[prop] = true
	return true
}

// destroy releases every motion value and runs the destroy callbacks. The
// surface keeps the last committed styles.
func (e *Element) destroy() {
	if e.destroyed {
		return
	}
	if e.tfDirty {
		e.flushTransform()
	}
	e.destroyed = true
	for _, mv := range e.values {
		mv.release()
	}
	e.values = map[string]*MotionValue{}
	e.order = nil
	fns := e.onDestroy
	e.onDestroy = nil
	for _, fn := range fns {
		fn()
	}
}

func isTransformProp(prop string) bool {
	if prop == transformProperty {
		return true
	}
	_, ok := ShorthandField(prop)
	return ok
}

// shorthandAccepts reports whether a value of kind k can drive field f:
// numbers or px for translation, degrees or radians for angles, plain numbers
// for scale.
func shorthandAccepts(f TransformField, k Kind) bool {
	switch f {
	case FieldX, FieldY, FieldZ:
		return k == KindNumber || k == KindPixels
	case FieldScale, FieldScaleX, FieldScaleY:
		return k == KindNumber
	}
	return k == KindDegrees || k == KindRadians
}

// checkShorthand rejects values a transform shorthand cannot hold.
func checkShorthand(prop string, k Kind) error {
	f, ok := ShorthandField(prop)
	if !ok || shorthandAccepts(f, k) {
		return nil
	}
	return &PropertyError{Property: prop, Err: ErrKindMismatch, Detail: f.String() + " cannot hold a " + k.String() + " value"}
}

// shorthandNumber converts a shorthand's value into its transform field
// units: px for translation, degrees for angles, plain numbers for scale.
func shorthandNumber(v Value) (float64, bool) {
	switch v.kind {
	case KindRadians:
		return v.num / radPerDeg, true
	case KindNumber, KindPixels, KindDegrees:
		return v.num, true
	}
	return 0, false
}

func kindMismatch(prop string, have, want Kind) error {
	return &PropertyError{Property: prop, Err: ErrKindMismatch, Detail: have.String() + " value driven with " + want.String()}
}

package motion

import "sort"

// Variant is a named visual state.
type Variant struct {
	Target     Target
	Transition *Transition
}

// Variants maps names to visual states, so a bridge can be driven by a
// reactive variant name instead of a raw target.
type Variants map[string]Variant

// Names returns the variant names in sorted order.
func (vs Variants) Names() []string {
	names := make([]string, 0, len(vs))
	for k := range vs {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Target returns a copy of the named variant's target. Unknown names yield
// an empty target.
func (vs Variants) Target(name string) Target {
	v, ok := vs[name]
	if !ok {
		return Target{}
	}
	return v.Target.Clone()
}

// Source returns a target source that follows name. name is called on every
// evaluation, so a signal read inside it re-runs the bridge.
func (vs Variants) Source(name func() string) TargetSource {
	return Reactive(func() Target { return vs.Target(name()) })
}

// TransitionFor returns a transition function that yields the current
// variant's transition, or fallback when it has none.
func (vs Variants) TransitionFor(name func() string, fallback Transition) func() Transition {
	return func() Transition {
		if v, ok := vs[name()]; ok && v.Transition != nil {
			return *v.Transition
		}
		return fallback
	}
}

// Gesture returns an overlay that applies the named variant while active
// reads true.
func (vs Variants) Gesture(name string, active BoolSource) *Gesture {
	v := vs[name]
	return &Gesture{Active: active, Target: Static(v.Target), Transition: v.Transition}
}

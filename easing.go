package motion

import (
	"fmt"
	"math"
	"strings"
)

type easingKind uint8

const (
	easeFunc easingKind = iota
	easeBezier
	easeSpring
)

// Easing maps normalized time in [0, 1] to normalized progress. Every easing
// returns exactly 0 at t=0 and 1 at t=1; the Back, Elastic and spring
// families overshoot [0, 1] in the interior. The zero Easing is Linear.
type Easing struct {
	name   string
	kind   easingKind
	fn     func(float64) float64
	bez    [4]float64
	spring SpringConfig
	curve  []float64 // sampled spring response, see SpringEasing
}

// Linear is the identity curve.
var Linear = Easing{name: "linear", fn: linear}

// Cubic Bézier presets.
var (
	Ease               = Bezier(0.25, 0.1, 0.25, 1)
	MaterialStandard   = Bezier(0.4, 0, 0.2, 1)
	MaterialDecelerate = Bezier(0, 0, 0.2, 1)
	MaterialAccelerate = Bezier(0.4, 0, 1, 1)
)

// CustomEasing wraps an arbitrary curve. fn receives t in [0, 1].
func CustomEasing(name string, fn func(t float64) float64) Easing {
	return Easing{name: name, fn: fn}
}

// Bezier returns a cubic Bézier easing with control points (0,0), (x1,y1),
// (x2,y2), (1,1). x1 and x2 are clamped to [0, 1] so the curve is a function
// of time.
func Bezier(x1, y1, x2, y2 float64) Easing {
	return Easing{
		name: fmt.Sprintf("cubic-bezier(%s, %s, %s, %s)",
			formatFloat(x1), formatFloat(y1), formatFloat(x2), formatFloat(y2)),
		kind: easeBezier,
		bez:  [4]float64{clamp(x1, 0, 1), y1, clamp(x2, 0, 1), y2},
	}
}

// Name returns the easing's name ("linear", "cubic-bezier(…)", ...).
func (e Easing) Name() string {
	if e.name == "" {
		return "linear"
	}
	return e.name
}

// IsSpring reports whether e was built by SpringEasing.
func (e Easing) IsSpring() bool { return e.kind == easeSpring }

// Spring returns the configuration of a spring easing.
func (e Easing) Spring() (SpringConfig, bool) {
	return e.spring, e.kind == easeSpring
}

// Eval returns the eased progress at t. t is clamped to [0, 1].
func (e Easing) Eval(t float64) float64 {
	if math.IsNaN(t) || t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	switch e.kind {
	case easeBezier:
		return cubicBezier(e.bez[0], e.bez[1], e.bez[2], e.bez[3], t)
	case easeSpring:
		return sampleCurve(e.curve, t)
	}
	if e.fn == nil {
		return t
	}
	return e.fn(t)
}

func (e Easing) String() string { return e.Name() }

// --- Curves ---

func linear(t float64) float64 { return t }

// --- Lookup by name ---

var namedEasings = map[string]Easing{
	"linear":             Linear,
	"easein":             EaseIn,
	"easeout":            EaseOut,
	"easeinout":          EaseInOut,
	"quadin":             EaseIn,
	"quadout":            EaseOut,
	"quadinout":          EaseInOut,
	"cubicin":            CubicIn,
	"cubicout":           CubicOut,
	"cubicinout":         CubicInOut,
	"circin":             CircIn,
	"circout":            CircOut,
	"circinout":          CircInOut,
	"backin":             BackIn,
	"backout":            BackOut,
	"backinout":          BackInOut,
	"ease":               Ease,
	"materialstandard":   MaterialStandard,
	"materialdecelerate": MaterialDecelerate,
	"materialaccelerate": MaterialAccelerate,
}

// EasingByName resolves an easing from its name. Matching ignores case,
// dashes and underscores, so "ease-in-out", "easeInOut" and "EASE_IN_OUT"
// are the same. "cubic-bezier(x1, y1, x2, y2)" literals and the gween
// families ("sineIn", "bounceOut", "elasticInOut", ...) are accepted too.
func EasingByName(name string) (Easing, error) {
	lower := strings.ToLower(strings.TrimSpace(name))
	if open := strings.IndexByte(lower, '('); open > 0 && strings.HasSuffix(lower, ")") &&
		normalizeEasingName(lower[:open]) == "cubicbezier" {
		args := splitArgs(lower[open+1 : len(lower)-1])
		if len(args) != 4 {
			return Easing{}, fmt.Errorf("%w: cubic-bezier takes 4 arguments: %q", ErrInvalidValue, name)
		}
		var p [4]float64
		for i, a := range args {
			v, err := parseFinite(a)
			if err != nil {
				return Easing{}, err
			}
			p[i] = v
		}
		return Bezier(p[0], p[1], p[2], p[3]), nil
	}
	key := normalizeEasingName(lower)
	if e, ok := namedEasings[key]; ok {
		return e, nil
	}
	if e, ok := tweenEasings[key]; ok {
		return e, nil
	}
	return Easing{}, fmt.Errorf("%w: unknown easing %q", ErrInvalidValue, name)
}

func normalizeEasingName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', '_':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(name)))
}

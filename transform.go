package motion

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// TransformField names one component of a Transform. Fields are declared in
// the canonical output order: translation, rotation, scale, skew.
type TransformField uint8

const (
	FieldX       TransformField = iota // translate x, px
	FieldY                             // translate y, px
	FieldZ                             // translate z, px
	FieldRotateX                       // degrees
	FieldRotateY                       // degrees
	FieldRotateZ                       // degrees
	FieldScale                         // uniform scale
	FieldScaleX                        // horizontal scale
	FieldScaleY                        // vertical scale
	FieldSkewX                         // degrees
	FieldSkewY                         // degrees

	numTransformFields
)

var fieldNames = [numTransformFields]string{
	"x", "y", "z", "rotateX", "rotateY", "rotate", "scale", "scaleX", "scaleY", "skewX", "skewY",
}

func (f TransformField) String() string {
	if f < numTransformFields {
		return fieldNames[f]
	}
	return "field(" + strconv.Itoa(int(f)) + ")"
}

// identity is the value an unspecified field takes when composed with a
// specified counterpart: 1 for scales, 0 otherwise.
func (f TransformField) identity() float64 {
	if f == FieldScale || f == FieldScaleX || f == FieldScaleY {
		return 1
	}
	return 0
}

// shorthandFields maps the transform shorthand property names to fields.
// Keys are lower-case.
var shorthandFields = map[string]TransformField{
	"x":       FieldX,
	"y":       FieldY,
	"z":       FieldZ,
	"rotatex": FieldRotateX,
	"rotatey": FieldRotateY,
	"rotate":  FieldRotateZ,
	"rotatez": FieldRotateZ,
	"scale":   FieldScale,
	"scalex":  FieldScaleX,
	"scaley":  FieldScaleY,
	"skewx":   FieldSkewX,
	"skewy":   FieldSkewY,
}

// ShorthandField reports whether prop is a transform shorthand ("x", "scale",
// "rotate", ...) and which field it drives.
func ShorthandField(prop string) (TransformField, bool) {
	f, ok := shorthandFields[strings.ToLower(prop)]
	return f, ok
}

// Transform is a set of optional transform components. It is a plain value:
// assignment copies it and no two Values ever share one.
type Transform struct {
	vals [numTransformFields]float64
	set  uint16
}

// Set returns a copy of t with field f specified as v.
func (t Transform) Set(f TransformField, v float64) Transform {
	t.vals[f] = v
	t.set |= 1 << f
	return t
}

// Unset returns a copy of t with field f unspecified.
func (t Transform) Unset(f TransformField) Transform {
	t.vals[f] = 0
	t.set &^= 1 << f
	return t
}

// Get returns the field value and whether it is specified.
func (t Transform) Get(f TransformField) (float64, bool) {
	return t.vals[f], t.Has(f)
}

// Value returns the field value, or its identity when unspecified.
func (t Transform) Value(f TransformField) float64 {
	if t.Has(f) {
		return t.vals[f]
	}
	return f.identity()
}

// Has reports whether field f is specified.
func (t Transform) Has(f TransformField) bool { return t.set&(1<<f) != 0 }

// IsEmpty reports whether no field is specified.
func (t Transform) IsEmpty() bool { return t.set == 0 }

func (t Transform) count() int {
	n := 0
	for s := t.set; s != 0; s &= s - 1 {
		n++
	}
	return n
}

// Merge returns t with every field specified in o overriding t's.
func (t Transform) Merge(o Transform) Transform {
	for f := TransformField(0); f < numTransformFields; f++ {
		if o.Has(f) {
			t = t.Set(f, o.vals[f])
		}
	}
	return t
}

// Builders for the common fields.

func (t Transform) WithX(v float64) Transform { return t.Set(FieldX, v) }
func (t Transform) WithY(v float64) Transform { return t.Set(FieldY, v) }
func (t Transform) WithZ(v float64) Transform { return t.Set(FieldZ, v) }
func (t Transform) WithRotate(deg float64) Transform { return t.Set(FieldRotateZ, deg) }
func (t Transform) WithScale(v float64) Transform { return t.Set(FieldScale, v) }
func (t Transform) WithSkew(x, y float64) Transform {
	return t.Set(FieldSkewX, x).Set(FieldSkewY, y)
}

// String formats t as CSS transform functions in canonical order
// (translate3d, rotate, scale, skew), omitting unspecified fields.
func (t Transform) String() string {
	var parts []string
	if t.Has(FieldX) || t.Has(FieldY) || t.Has(FieldZ) {
		parts = append(parts, "translate3d("+
			translateArg(t, FieldX)+", "+
			translateArg(t, FieldY)+", "+
			translateArg(t, FieldZ)+")")
	}
	fn := func(f TransformField, name, unit string) {
		if v, ok := t.Get(f); ok {
			parts = append(parts, name+"("+formatFloat(v)+unit+")")
		}
	}
	fn(FieldRotateX, "rotateX", "deg")
	fn(FieldRotateY, "rotateY", "deg")
	fn(FieldRotateZ, "rotate", "deg")
	fn(FieldScale, "scale", "")
	fn(FieldScaleX, "scaleX", "")
	fn(FieldScaleY, "scaleY", "")
	fn(FieldSkewX, "skewX", "deg")
	fn(FieldSkewY, "skewY", "deg")
	return strings.Join(parts, " ")
}

// translateArg prints a specified axis with px and an unspecified one as 0.
func translateArg(t Transform, f TransformField) string {
	if v, ok := t.Get(f); ok {
		return formatFloat(v) + "px"
	}
	return "0"
}

// Matrix returns the 2D affine matrix [a, b, c, d, tx, ty] of t, composed
// as Scale -> Skew -> Rotate -> Translate. Z and the X/Y rotations have no 2D
// projection and are ignored.
func (t Transform) Matrix() [6]float64 {
	sx := t.Value(FieldScale) * t.Value(FieldScaleX)
	sy := t.Value(FieldScale) * t.Value(FieldScaleY)
	return composeAffine(
		t.Value(FieldX), t.Value(FieldY),
		sx, sy,
		t.Value(FieldRotateZ)*math.Pi/180,
		t.Value(FieldSkewX)*math.Pi/180, t.Value(FieldSkewY)*math.Pi/180,
		0, 0,
	)
}

// alignTransforms returns a and b extended to the union of their specified
// fields; a field missing on one side takes its identity value.
func alignTransforms(a, b Transform) (Transform, Transform) {
	union := a.set | b.set
	for f := TransformField(0); f < numTransformFields; f++ {
		if union&(1<<f) == 0 {
			continue
		}
		if !a.Has(f) {
			a = a.Set(f, f.identity())
		}
		if !b.Has(f) {
			b = b.Set(f, f.identity())
		}
	}
	return a, b
}

// ParseTransform reads a CSS transform list. It accepts the canonical form
// produced by Transform.String plus translate/translateX/Y/Z, rotateZ,
// scale(x, y), skew(x, y) and "none". Angles may be given in deg or rad.
// Inside translate3d a bare "0" leaves the axis unspecified.
func ParseTransform(s string) (Transform, error) {
	var t Transform
	s = strings.TrimSpace(s)
	if s == "" || s == "none" {
		return t, nil
	}
	for len(s) > 0 {
		open := strings.IndexByte(s, '(')
		end := strings.IndexByte(s, ')')
		if open <= 0 || end < open {
			return Transform{}, fmt.Errorf("%w: malformed transform %q", ErrInvalidValue, s)
		}
		name := strings.TrimSpace(s[:open])
		args := splitArgs(s[open+1 : end])
		s = strings.TrimSpace(s[end+1:])

		var err error
		t, err = applyTransformFunc(t, name, args)
		if err != nil {
			return Transform{}, err
		}
	}
	return t, nil
}

func splitArgs(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
}

func applyTransformFunc(t Transform, name string, args []string) (Transform, error) {
	want := func(n int) error {
		if len(args) != n {
			return fmt.Errorf("%w: %s takes %d arguments, got %d", ErrInvalidValue, name, n, len(args))
		}
		return nil
	}
	length := func(f TransformField, arg string) (Transform, error) {
		if arg == "0" {
			return t, nil
		}
		v, err := parseUnit(arg, "px")
		if err != nil {
			return t, err
		}
		return t.Set(f, v), nil
	}
	angle := func(f TransformField, arg string) (Transform, error) {
		v, err := parseAngle(arg)
		if err != nil {
			return t, err
		}
		return t.Set(f, v), nil
	}
	scalar := func(f TransformField, arg string) (Transform, error) {
		v, err := parseFinite(arg)
		if err != nil {
			return t, err
		}
		return t.Set(f, v), nil
	}

	var err error
	switch strings.ToLower(name) {
	case "translate3d":
		if err = want(3); err != nil {
			return t, err
		}
		for i, f := range []TransformField{FieldX, FieldY, FieldZ} {
			if t, err = length(f, args[i]); err != nil {
				return t, err
			}
		}
		return t, nil
	case "translate":
		if len(args) < 1 || len(args) > 2 {
			return t, fmt.Errorf("%w: translate takes 1 or 2 arguments", ErrInvalidValue)
		}
		if t, err = length(FieldX, args[0]); err != nil || len(args) == 1 {
			return t, err
		}
		return length(FieldY, args[1])
	case "translatex":
		if err = want(1); err != nil {
			return t, err
		}
		return length(FieldX, args[0])
	case "translatey":
		if err = want(1); err != nil {
			return t, err
		}
		return length(FieldY, args[0])
	case "translatez":
		if err = want(1); err != nil {
			return t, err
		}
		return length(FieldZ, args[0])
	case "rotate", "rotatez":
		if err = want(1); err != nil {
			return t, err
		}
		return angle(FieldRotateZ, args[0])
	case "rotatex":
		if err = want(1); err != nil {
			return t, err
		}
		return angle(FieldRotateX, args[0])
	case "rotatey":
		if err = want(1); err != nil {
			return t, err
		}
		return angle(FieldRotateY, args[0])
	case "scale":
		if len(args) == 2 {
			if t, err = scalar(FieldScaleX, args[0]); err != nil {
				return t, err
			}
			return scalar(FieldScaleY, args[1])
		}
		if err = want(1); err != nil {
			return t, err
		}
		return scalar(FieldScale, args[0])
	case "scalex":
		if err = want(1); err != nil {
			return t, err
		}
		return scalar(FieldScaleX, args[0])
	case "scaley":
		if err = want(1); err != nil {
			return t, err
		}
		return scalar(FieldScaleY, args[0])
	case "skew":
		if len(args) < 1 || len(args) > 2 {
			return t, fmt.Errorf("%w: skew takes 1 or 2 arguments", ErrInvalidValue)
		}
		if t, err = angle(FieldSkewX, args[0]); err != nil || len(args) == 1 {
			return t, err
		}
		return angle(FieldSkewY, args[1])
	case "skewx":
		if err = want(1); err != nil {
			return t, err
		}
		return angle(FieldSkewX, args[0])
	case "skewy":
		if err = want(1); err != nil {
			return t, err
		}
		return angle(FieldSkewY, args[0])
	}
	return t, fmt.Errorf("%w: unsupported transform function %q", ErrInvalidValue, name)
}

// parseAngle returns degrees from "45deg", "0.5rad" or a bare number (deg).
func parseAngle(s string) (float64, error) {
	if strings.HasSuffix(s, "rad") {
		v, err := parseFinite(strings.TrimSuffix(s, "rad"))
		return v * 180 / math.Pi, err
	}
	return parseUnit(s, "deg")
}

// parseUnit parses a number with an optional unit suffix.
func parseUnit(s, unit string) (float64, error) {
	return parseFinite(strings.TrimSuffix(strings.TrimSpace(s), unit))
}

func parseFinite(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidValue, s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q is not finite", ErrInvalidValue, s)
	}
	return v, nil
}

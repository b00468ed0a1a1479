package motion

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind tags the variant held by a Value.
type Kind uint8

const (
	KindNumber     Kind = iota // unitless scalar
	KindPixels                 // scalar suffixed with px
	KindPercentage             // scalar suffixed with %
	KindDegrees                // angle suffixed with deg
	KindRadians                // angle suffixed with rad
	KindColor                  // RGBA color
	KindTransform              // composite transform
	KindString                 // opaque literal, no smooth interpolation
)

var kindNames = [...]string{
	KindNumber:     "number",
	KindPixels:     "pixels",
	KindPercentage: "percentage",
	KindDegrees:    "degrees",
	KindRadians:    "radians",
	KindColor:      "color",
	KindTransform:  "transform",
	KindString:     "string",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// scalar reports whether the kind carries a single float channel.
func (k Kind) scalar() bool {
	return k <= KindRadians
}

// Value is an animatable property value. It is a small comparable value type;
// copies never share state. The zero Value is Number(0).
type Value struct {
	kind Kind
	num  float64
	rgba RGBA
	tf   Transform
	str  string
}

// Number returns a unitless value.
func Number(v float64) Value { return Value{kind: KindNumber, num: v} }

// Pixels returns a length in px.
func Pixels(v float64) Value { return Value{kind: KindPixels, num: v} }

// Percentage returns a percentage.
func Percentage(v float64) Value { return Value{kind: KindPercentage, num: v} }

// Degrees returns an angle in degrees.
func Degrees(v float64) Value { return Value{kind: KindDegrees, num: v} }

// Radians returns an angle in radians.
func Radians(v float64) Value { return Value{kind: KindRadians, num: v} }

// ColorValue returns a color value. Channels are clamped.
func ColorValue(c RGBA) Value {
	return Value{kind: KindColor, rgba: NewRGBA(c.R, c.G, c.B, c.A)}
}

// TransformValue returns a composite transform value.
func TransformValue(t Transform) Value { return Value{kind: KindTransform, tf: t} }

// String returns an opaque literal value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Kind returns the variant tag.
func (v Value) Kind() Kind { return v.kind }

// Float returns the scalar of a Number, Pixels, Percentage, Degrees or
// Radians value, and 0 for every other kind.
func (v Value) Float() float64 {
	if v.kind.scalar() {
		return v.num
	}
	return 0
}

// Color returns the color of a Color value.
func (v Value) Color() RGBA { return v.rgba }

// Transform returns the transform of a Transform value.
func (v Value) Transform() Transform { return v.tf }

// Str returns the literal of a String value.
func (v Value) Str() string { return v.str }

// Equal reports whether v and o are the same kind with the same payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch {
	case v.kind.scalar():
		return v.num == o.num
	case v.kind == KindColor:
		return v.rgba == o.rgba
	case v.kind == KindTransform:
		return v.tf == o.tf
	default:
		return v.str == o.str
	}
}

// Validate returns ErrInvalidValue if any numeric channel is NaN or infinite.
func (v Value) Validate() error {
	for _, c := range v.channels() {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return fmt.Errorf("%w: non-finite %s", ErrInvalidValue, v.kind)
		}
	}
	return nil
}

// String formats the value for a style surface. Invalid values format as
// "NaN"-style literals; use Format to get an error instead.
func (v Value) String() string {
	s, err := Format(v)
	if err != nil {
		return fmt.Sprintf("%s(invalid)", v.kind)
	}
	return s
}

// Format returns the surface representation of v.
func Format(v Value) (string, error) {
	if err := v.Validate(); err != nil {
		return "", err
	}
	switch v.kind {
	case KindNumber:
		return formatFloat(v.num), nil
	case KindPixels:
		return formatFloat(v.num) + "px", nil
	case KindPercentage:
		return formatFloat(v.num) + "%", nil
	case KindDegrees:
		return formatFloat(v.num) + "deg", nil
	case KindRadians:
		return formatFloat(v.num) + "rad", nil
	case KindColor:
		return v.rgba.String(), nil
	case KindTransform:
		return v.tf.String(), nil
	default:
		return v.str, nil
	}
}

// formatFloat prints the shortest decimal that round-trips, never using
// exponent notation.
func formatFloat(f float64) string {
	if f == 0 {
		return "0"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// channels returns the numeric channels of v in a stable order. Scalars have
// one channel, colors four (r, g, b, a), transforms one per specified field
// in canonical order, strings none.
func (v Value) channels() []float64 {
	switch {
	case v.kind.scalar():
		return []float64{v.num}
	case v.kind == KindColor:
		return []float64{v.rgba.R, v.rgba.G, v.rgba.B, v.rgba.A}
	case v.kind == KindTransform:
		out := make([]float64, 0, v.tf.count())
		for f := TransformField(0); f < numTransformFields; f++ {
			if v.tf.Has(f) {
				out = append(out, v.tf.vals[f])
			}
		}
		return out
	default:
		return nil
	}
}

// withChannels returns a copy of v whose channels are replaced by ch, which
// must have the layout returned by v.channels().
func (v Value) withChannels(ch []float64) Value {
	switch {
	case v.kind.scalar():
		v.num = ch[0]
	case v.kind == KindColor:
		v.rgba = NewRGBA(ch[0], ch[1], ch[2], ch[3])
	case v.kind == KindTransform:
		i := 0
		for f := TransformField(0); f < numTransformFields; f++ {
			if v.tf.Has(f) {
				v.tf.vals[f] = ch[i]
				i++
			}
		}
	}
	return v
}

// neutral returns the resting value of a kind for a property: 1 for opacity
// and the scale shorthands, the identity transform, transparent black, and 0
// otherwise.
func neutral(kind Kind, prop string) Value {
	switch kind {
	case KindColor:
		return ColorValue(RGBA{})
	case KindTransform:
		return TransformValue(Transform{})
	case KindString:
		return String("")
	}
	v := Value{kind: kind}
	switch strings.ToLower(prop) {
	case "opacity", "scale", "scalex", "scaley", "scale-x", "scale-y":
		v.num = 1
	}
	return v
}

package motion

import (
	"fmt"
	"strings"
)

// ParseValue infers the kind of a literal: "10px", "50%", "45deg", "1rad",
// "#f80", "rgb(…)", "translate3d(…) scale(…)" and bare numbers. Anything
// else becomes a String value.
func ParseValue(s string) Value {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(lower, "#"), strings.HasPrefix(lower, "rgb"), lower == "transparent":
		if c, err := ParseColor(lower); err == nil {
			return ColorValue(c)
		}
	case strings.HasSuffix(lower, ")"):
		if t, err := ParseTransform(s); err == nil {
			return TransformValue(t)
		}
	case strings.HasSuffix(lower, "px"):
		if v, err := parseUnit(lower, "px"); err == nil {
			return Pixels(v)
		}
	case strings.HasSuffix(lower, "%"):
		if v, err := parseUnit(lower, "%"); err == nil {
			return Percentage(v)
		}
	case strings.HasSuffix(lower, "deg"):
		if v, err := parseUnit(lower, "deg"); err == nil {
			return Degrees(v)
		}
	case strings.HasSuffix(lower, "rad"):
		if v, err := parseUnit(lower, "rad"); err == nil {
			return Radians(v)
		}
	default:
		if v, err := parseFinite(lower); err == nil {
			return Number(v)
		}
	}
	return String(s)
}

// ParseAs parses a computed-style string into a value of the given kind. A
// bare number is accepted for every scalar kind.
func ParseAs(kind Kind, s string) (Value, error) {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	switch kind {
	case KindNumber:
		v, err := parseFinite(lower)
		return Number(v), err
	case KindPixels:
		v, err := parseUnit(lower, "px")
		return Pixels(v), err
	case KindPercentage:
		v, err := parseUnit(lower, "%")
		return Percentage(v), err
	case KindDegrees:
		v, err := parseAngle(lower)
		return Degrees(v), err
	case KindRadians:
		if strings.HasSuffix(lower, "deg") {
			v, err := parseUnit(lower, "deg")
			return Radians(v * radPerDeg), err
		}
		v, err := parseUnit(lower, "rad")
		return Radians(v), err
	case KindColor:
		c, err := ParseColor(lower)
		return ColorValue(c), err
	case KindTransform:
		t, err := ParseTransform(s)
		return TransformValue(t), err
	case KindString:
		return String(s), nil
	}
	return Value{}, fmt.Errorf("%w: unknown kind %s", ErrInvalidValue, kind)
}

const radPerDeg = 0.017453292519943295

package motion

// Interpolate blends from toward to at progress t. Values of the same
// numeric kind blend linearly (colors per RGBA channel, transforms per field
// over the union of both endpoints' fields). Strings and cross-kind pairs
// step: from below 0.5, to from 0.5 on. Units are never mixed.
//
// t is not clamped; easings that overshoot produce extrapolated values.
func Interpolate(from, to Value, t float64) Value {
	if from.kind != to.kind || from.kind == KindString {
		return step(from, to, t)
	}
	switch {
	case from.kind.scalar():
		return Value{kind: from.kind, num: lerp(from.num, to.num, t)}
	case from.kind == KindColor:
		a, b := from.rgba, to.rgba
		return ColorValue(RGBA{
			R: lerp(a.R, b.R, t),
			G: lerp(a.G, b.G, t),
			B: lerp(a.B, b.B, t),
			A: lerp(a.A, b.A, t),
		})
	default:
		a, b := alignTransforms(from.tf, to.tf)
		out := a
		for f := TransformField(0); f < numTransformFields; f++ {
			if a.Has(f) {
				out.vals[f] = lerp(a.vals[f], b.vals[f], t)
			}
		}
		return TransformValue(out)
	}
}

// Smooth reports whether Interpolate blends from and to continuously rather
// than stepping.
func Smooth(from, to Value) bool {
	return from.kind == to.kind && from.kind != KindString
}

func step(from, to Value, t float64) Value {
	if t < 0.5 {
		return from
	}
	return to
}

// lerp returns exactly a at t=0 and exactly b at t=1.
func lerp(a, b, t float64) float64 {
	switch t {
	case 0:
		return a
	case 1:
		return b
	}
	return a + (b-a)*t
}

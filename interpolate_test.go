package motion

import "testing"

func TestInterpolateEndpointsExact(t *testing.T) {
	pairs := [][2]Value{
		{Number(0.1), Number(0.7)},
		{Pixels(-3.3), Pixels(9.9)},
		{Degrees(0.1), Degrees(359.9)},
		{ColorValue(RGBA{1, 2, 3, 0.3}), ColorValue(RGBA{200, 100, 50, 0.9})},
		{TransformValue(Transform{}.WithX(0.1)), TransformValue(Transform{}.WithX(0.7))},
	}
	for _, p := range pairs {
		if got := Interpolate(p[0], p[1], 0); !got.Equal(p[0]) {
			t.Errorf("t=0: got %v, want %v", got, p[0])
		}
		if got := Interpolate(p[0], p[1], 1); !got.Equal(p[1]) {
			t.Errorf("t=1: got %v, want %v", got, p[1])
		}
	}
}

func TestInterpolateScalar(t *testing.T) {
	got := Interpolate(Pixels(0), Pixels(100), 0.3)
	if got.Kind() != KindPixels {
		t.Fatalf("kind = %s, want pixels", got.Kind())
	}
	assertNear(t, "x", got.Float(), 30)
}

func TestInterpolateExtrapolates(t *testing.T) {
	got := Interpolate(Number(0), Number(10), 1.2)
	assertNear(t, "overshoot", got.Float(), 12)
}

func TestInterpolateColorMidpoint(t *testing.T) {
	got := Interpolate(ColorValue(RGBA{0, 0, 0, 0}), ColorValue(RGBA{255, 100, 50, 1}), 0.5).Color()
	assertNear(t, "r", got.R, 127.5)
	assertNear(t, "g", got.G, 50)
	assertNear(t, "b", got.B, 25)
	assertNear(t, "a", got.A, 0.5)
}

func TestInterpolateRedToBlue(t *testing.T) {
	got := Interpolate(ColorValue(RGBA{255, 0, 0, 1}), ColorValue(RGBA{0, 0, 255, 1}), 0.5).Color()
	if got != (RGBA{127.5, 0, 127.5, 1}) {
		t.Errorf("midpoint = %+v, want {127.5 0 127.5 1}", got)
	}
}

func TestInterpolateIdentity(t *testing.T) {
	values := []Value{
		Number(0.3),
		Pixels(-12.5),
		Percentage(33.3),
		Degrees(270),
		Radians(1.1),
		ColorValue(RGBA{12, 200, 99, 0.4}),
		TransformValue(Transform{}.WithX(0.1).WithScale(1.7)),
		String("block"),
	}
	for _, v := range values {
		for _, p := range []float64{0, 0.25, 0.5, 1} {
			if got := Interpolate(v, v, p); !got.Equal(v) {
				t.Errorf("Interpolate(%v, %v, %v) = %v", v, v, p, got)
			}
		}
	}
}

func TestInterpolateTransformUnion(t *testing.T) {
	from := TransformValue(Transform{}.WithX(10))
	to := TransformValue(Transform{}.WithScale(3))
	got := Interpolate(from, to, 0.5).Transform()
	assertNear(t, "x", got.Value(FieldX), 5)
	assertNear(t, "scale", got.Value(FieldScale), 2)
	if got.Has(FieldRotateZ) {
		t.Error("rotate should stay unspecified")
	}
}

func TestInterpolateStringSteps(t *testing.T) {
	from, to := String("none"), String("block")
	if got := Interpolate(from, to, 0.49); got.Str() != "none" {
		t.Errorf("t=0.49: %q, want none", got.Str())
	}
	if got := Interpolate(from, to, 0.5); got.Str() != "block" {
		t.Errorf("t=0.5: %q, want block", got.Str())
	}
	if Smooth(from, to) {
		t.Error("strings should not be smooth")
	}
}

func TestInterpolateCrossKindSteps(t *testing.T) {
	from, to := Pixels(10), Percentage(50)
	if got := Interpolate(from, to, 0.25); !got.Equal(from) {
		t.Errorf("t=0.25: %v, want %v", got, from)
	}
	if got := Interpolate(from, to, 0.75); !got.Equal(to) {
		t.Errorf("t=0.75: %v, want %v", got, to)
	}
	if Smooth(from, to) {
		t.Error("px to % should not be smooth")
	}
	if !Smooth(Pixels(0), Pixels(1)) {
		t.Error("px to px should be smooth")
	}
}

func BenchmarkInterpolateTransform(b *testing.B) {
	from := TransformValue(Transform{}.WithX(0).WithY(0).WithRotate(0).WithScale(1))
	to := TransformValue(Transform{}.WithX(100).WithY(50).WithRotate(90).WithScale(2))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = Interpolate(from, to, float64(i%100)/100)
	}
}

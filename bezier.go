package motion

import "math"

const (
	bezierNewtonIterations = 8
	bezierEpsilon          = 1e-6
	bezierMinSlope         = 1e-7
	bezierBisectIterations = 64
)

// cubicBezier evaluates the easing curve through (0,0), (x1,y1), (x2,y2),
// (1,1): it solves X(u) = t for u, then returns Y(u).
func cubicBezier(x1, y1, x2, y2, t float64) float64 {
	if x1 == y1 && x2 == y2 {
		return t
	}
	return bezierCoord(y1, y2, solveBezierX(x1, x2, t))
}

// bezierCoord is one coordinate of the curve at parameter u, for a curve whose
// endpoints are 0 and 1.
func bezierCoord(p1, p2, u float64) float64 {
	mu := 1 - u
	return 3*mu*mu*u*p1 + 3*mu*u*u*p2 + u*u*u
}

// bezierSlope is d/du of bezierCoord.
func bezierSlope(p1, p2, u float64) float64 {
	mu := 1 - u
	return 3*mu*mu*p1 + 6*mu*u*(p2-p1) + 3*u*u*(1-p2)
}

// solveBezierX finds u in [0, 1] with X(u) = t. Newton-Raphson converges in a
// few steps for well-behaved curves; flat or escaping iterations fall back to
// bisection, which is guaranteed because X is monotonic for x1, x2 in [0, 1].
func solveBezierX(x1, x2, t float64) float64 {
	u := t
	for i := 0; i < bezierNewtonIterations; i++ {
		x := bezierCoord(x1, x2, u) - t
		if math.Abs(x) <= bezierEpsilon {
			return u
		}
		d := bezierSlope(x1, x2, u)
		if math.Abs(d) < bezierMinSlope {
			break
		}
		u -= x / d
		if u < 0 || u > 1 {
			break
		}
	}

	lo, hi := 0.0, 1.0
	u = t
	for i := 0; i < bezierBisectIterations; i++ {
		x := bezierCoord(x1, x2, u)
		if math.Abs(x-t) <= bezierEpsilon {
			return u
		}
		if x < t {
			lo = u
		} else {
			hi = u
		}
		u = (lo + hi) / 2
	}
	return u
}

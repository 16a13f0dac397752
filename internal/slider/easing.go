package slider

// cubicBezier returns the CSS timing function cubic-bezier(x1, y1, x2, y2).
func cubicBezier(x1, y1, x2, y2 float64) func(float64) float64 {
	curve := func(u, p1, p2 float64) float64 {
		v := 1 - u
		return 3*v*v*u*p1 + 3*v*u*u*p2 + u*u*u
	}

	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		// x(u) is monotonic on [0,1] for x1, x2 in [0,1]; bisect for u.
		lo, hi := 0.0, 1.0
		u := t
		for i := 0; i < 32; i++ {
			x := curve(u, x1, x2)
			if x < t {
				lo = u
			} else {
				hi = u
			}
			u = (lo + hi) / 2
		}
		return curve(u, y1, y2)
	}
}

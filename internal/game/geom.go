package game

import "math"

// dist returns the Euclidean distance between two points.
func dist(ax, ay, bx, by float64) float64 {
	return math.Hypot(bx-ax, by-ay)
}

// headingTo returns the angle in radians from (ax,ay) toward (bx,by).
func headingTo(ax, ay, bx, by float64) float64 {
	return math.Atan2(by-ay, bx-ax)
}

// normalizeAngle wraps an angle into [-pi, pi].
func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// angleDiff returns the signed shortest rotation from b to a.
func angleDiff(a, b float64) float64 {
	return normalizeAngle(a - b)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// segmentPointDist returns the distance from point (px,py) to the segment
// (ax,ay)-(bx,by).
func segmentPointDist(ax, ay, bx, by, px, py float64) float64 {
	dx := bx - ax
	dy := by - ay
	lenSq := dx*dx + dy*dy
	if lenSq < 1e-12 {
		return dist(ax, ay, px, py)
	}
	t := clamp(((px-ax)*dx+(py-ay)*dy)/lenSq, 0, 1)
	return dist(ax+t*dx, ay+t*dy, px, py)
}

// circleIntersectsRect reports whether a circle overlaps an axis-aligned
// rectangle. Touching the boundary counts as overlap.
func circleIntersectsRect(cx, cy, r, rx, ry, w, h float64) bool {
	nx := clamp(cx, rx, rx+w)
	ny := clamp(cy, ry, ry+h)
	return dist(cx, cy, nx, ny) <= r
}

// rayAABBHitT returns the first segment parameter t in [0,1] where the line
// from (ox,oy)->(ex,ey) enters the AABB. The bool is false when no hit exists.
func rayAABBHitT(ox, oy, ex, ey, minX, minY, maxX, maxY float64) (float64, bool) {
	dx := ex - ox
	dy := ey - oy

	tMin := 0.0
	tMax := 1.0

	// Check X slab
	if math.Abs(dx) < 1e-12 {
		if ox < minX || ox > maxX {
			return 0, false
		}
	} else {
		invD := 1.0 / dx
		t1 := (minX - ox) * invD
		t2 := (maxX - ox) * invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}

	// Check Y slab
	if math.Abs(dy) < 1e-12 {
		if oy < minY || oy > maxY {
			return 0, false
		}
	} else {
		invD := 1.0 / dy
		t1 := (minY - oy) * invD
		t2 := (maxY - oy) * invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}

	return tMin, true
}

// rayIntersectsAABB reports whether the segment touches the AABB at all.
func rayIntersectsAABB(ox, oy, ex, ey, minX, minY, maxX, maxY float64) bool {
	_, hit := rayAABBHitT(ox, oy, ex, ey, minX, minY, maxX, maxY)
	return hit
}

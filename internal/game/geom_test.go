package game

import (
	"math"
	"testing"
)

func TestNormalizeAngle_Wraps(t *testing.T) {
	if got := normalizeAngle(3 * math.Pi); math.Abs(got-math.Pi) > 1e-9 {
		t.Fatalf("expected pi, got %v", got)
	}
	if got := normalizeAngle(-3 * math.Pi); math.Abs(got+math.Pi) > 1e-9 {
		t.Fatalf("expected -pi, got %v", got)
	}
}

func TestAngleDiff_ShortestPath(t *testing.T) {
	// 350deg and 10deg are 20deg apart, not 340.
	a := 350.0 * math.Pi / 180
	b := 10.0 * math.Pi / 180
	if got := math.Abs(angleDiff(a, b)); got > 21*math.Pi/180 {
		t.Fatalf("expected ~20deg, got %v rad", got)
	}
}

func TestSegmentPointDist_Endpoints(t *testing.T) {
	// Point beyond the segment end clamps to the endpoint.
	if got := segmentPointDist(0, 0, 10, 0, 15, 0); math.Abs(got-5) > 1e-9 {
		t.Fatalf("expected 5, got %v", got)
	}
	// Point alongside the middle measures perpendicular distance.
	if got := segmentPointDist(0, 0, 10, 0, 5, 3); math.Abs(got-3) > 1e-9 {
		t.Fatalf("expected 3, got %v", got)
	}
}

func TestSegmentPointDist_DegenerateSegment(t *testing.T) {
	if got := segmentPointDist(4, 4, 4, 4, 7, 8); math.Abs(got-5) > 1e-9 {
		t.Fatalf("expected 5, got %v", got)
	}
}

func TestRayAABB_HitAndMiss(t *testing.T) {
	if _, hit := rayAABBHitT(0, 50, 200, 50, 80, 0, 120, 100); !hit {
		t.Fatal("ray through box should hit")
	}
	if _, hit := rayAABBHitT(0, 150, 200, 150, 80, 0, 120, 100); hit {
		t.Fatal("ray below box should miss")
	}
}

func TestRayAABB_EntryParameter(t *testing.T) {
	tt, hit := rayAABBHitT(0, 50, 100, 50, 50, 0, 60, 100)
	if !hit {
		t.Fatal("expected hit")
	}
	if math.Abs(tt-0.5) > 1e-9 {
		t.Fatalf("expected entry at t=0.5, got %v", tt)
	}
}

func TestRayIntersectsAABB_InsideBox(t *testing.T) {
	if !rayIntersectsAABB(10, 10, 20, 20, 0, 0, 100, 100) {
		t.Fatal("segment inside AABB should intersect")
	}
}

func TestCircleIntersectsRect(t *testing.T) {
	if !circleIntersectsRect(5, 5, 3, 0, 0, 10, 10) {
		t.Fatal("circle centred in rect should intersect")
	}
	if circleIntersectsRect(20, 5, 3, 0, 0, 10, 10) {
		t.Fatal("circle far right of rect should not intersect")
	}
	// Touching the edge counts.
	if !circleIntersectsRect(13, 5, 3, 0, 0, 10, 10) {
		t.Fatal("circle tangent to rect edge should intersect")
	}
}

func TestClamp(t *testing.T) {
	if clamp(5, 0, 3) != 3 || clamp(-1, 0, 3) != 0 || clamp(2, 0, 3) != 2 {
		t.Fatal("clamp bounds wrong")
	}
}

package game

import "testing"

// floorGrid builds a grid with the interior carved to floor.
func floorGrid(cols, rows int) *TileGrid {
	g := NewTileGrid(cols, rows)
	for row := 1; row < rows-1; row++ {
		for col := 1; col < cols-1; col++ {
			g.Set(col, row, TileFloor)
		}
	}
	return g
}

func TestTileGrid_StartsAsWall(t *testing.T) {
	g := NewTileGrid(4, 4)
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			if !g.IsWall(col, row) {
				t.Fatalf("tile (%d,%d) should start as wall", col, row)
			}
		}
	}
}

func TestTileGrid_OutOfBoundsReadsWall(t *testing.T) {
	g := floorGrid(4, 4)
	if !g.IsWall(-1, 0) || !g.IsWall(0, 100) {
		t.Fatal("out-of-bounds cells must read as wall")
	}
}

func TestTileAt_RoundTrip(t *testing.T) {
	x, y := TileCenter(3, 7)
	col, row := TileAt(x, y)
	if col != 3 || row != 7 {
		t.Fatalf("round trip gave (%d,%d)", col, row)
	}
}

func TestCircleBlocked(t *testing.T) {
	g := floorGrid(10, 10)
	cx, cy := TileCenter(5, 5)
	if g.circleBlocked(cx, cy, 15) {
		t.Fatal("circle in open floor should not be blocked")
	}
	// Circle overlapping the border wall.
	if !g.circleBlocked(tileSize+5, cy, 15) {
		t.Fatal("circle overlapping border wall should be blocked")
	}
}

func TestSlideCircle_SlidesAlongWall(t *testing.T) {
	g := floorGrid(10, 10)
	// Start near the left wall, push diagonally up-left: X blocked, Y free.
	x, y := TileCenter(1, 5)
	x = tileSize + 16 // close to the wall face
	nx, ny := g.SlideCircle(x, y, x-10, y-10, 15)
	if nx != x {
		t.Fatalf("X should be blocked by the wall, moved to %v", nx)
	}
	if ny != y-10 {
		t.Fatalf("Y should slide freely, got %v", ny)
	}
}

func TestSlideCircle_OpenFloorMovesFreely(t *testing.T) {
	g := floorGrid(10, 10)
	x, y := TileCenter(5, 5)
	nx, ny := g.SlideCircle(x, y, x+10, y-7, 15)
	if nx != x+10 || ny != y-7 {
		t.Fatalf("open move should apply fully, got (%v,%v)", nx, ny)
	}
}

func TestSegmentHitsWall_FirstImpact(t *testing.T) {
	g := floorGrid(20, 10)
	g.Set(10, 5, TileWall)
	ax, ay := TileCenter(5, 5)
	bx, by := TileCenter(15, 5)
	tt, col, row, hit := g.SegmentHitsWall(ax, ay, bx, by)
	if !hit {
		t.Fatal("segment through wall tile should hit")
	}
	if col != 10 || row != 5 {
		t.Fatalf("expected wall (10,5), got (%d,%d)", col, row)
	}
	if tt <= 0 || tt >= 1 {
		t.Fatalf("impact parameter should be interior, got %v", tt)
	}
}

func TestHasLineOfSight(t *testing.T) {
	g := floorGrid(20, 10)
	ax, ay := TileCenter(3, 5)
	bx, by := TileCenter(16, 5)
	if !g.HasLineOfSight(ax, ay, bx, by) {
		t.Fatal("clear corridor should have LOS")
	}
	g.Set(9, 5, TileWall)
	if g.HasLineOfSight(ax, ay, bx, by) {
		t.Fatal("wall tile should block LOS")
	}
}

package game

import (
	"reflect"
	"testing"
)

func TestComputeVisibility_OriginAndNeighboursVisible(t *testing.T) {
	g := floorGrid(20, 20)
	x, y := TileCenter(10, 10)
	f := ComputeVisibility(x, y, g)

	if !f.At(10, 10) {
		t.Fatal("origin tile must be visible")
	}
	for _, d := range [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
		if !f.At(10+d[0], 10+d[1]) {
			t.Fatalf("adjacent floor tile (%d,%d) should be visible", 10+d[0], 10+d[1])
		}
	}
}

func TestComputeVisibility_WallOccludes(t *testing.T) {
	g := floorGrid(20, 20)
	// Vertical wall one column to the right of the origin.
	for row := 1; row < 19; row++ {
		g.Set(12, row, TileWall)
	}

	x, y := TileCenter(10, 10)
	f := ComputeVisibility(x, y, g)

	if !f.At(12, 10) {
		t.Fatal("the wall face itself should be visible")
	}
	if f.At(13, 10) {
		t.Fatal("tile directly behind the wall must be hidden")
	}
	if f.At(14, 10) {
		t.Fatal("tile two behind the wall must be hidden")
	}
}

func TestComputeVisibility_SightRadiusBounds(t *testing.T) {
	g := floorGrid(40, 10)
	x, y := TileCenter(2, 5)
	f := ComputeVisibility(x, y, g)

	// sightRadiusPx of 200 reaches just over three tiles of 64px.
	farCol := 2 + int(sightRadiusPx)/tileSize + 2
	if f.At(farCol, 5) {
		t.Fatalf("tile %d is beyond sight radius and must be hidden", farCol)
	}
}

func TestComputeVisibility_Deterministic(t *testing.T) {
	g := floorGrid(20, 20)
	g.Set(8, 8, TileWall)
	g.Set(13, 11, TileWall)
	x, y := TileCenter(10, 10)

	f1 := ComputeVisibility(x, y, g)
	f2 := ComputeVisibility(x, y, g)
	if !reflect.DeepEqual(f1.Visible, f2.Visible) {
		t.Fatal("visibility must be a pure function of origin and grid")
	}
}

func TestExploredMap_MergeIsMonotonic(t *testing.T) {
	g := floorGrid(20, 20)
	m := NewExploredMap(g.Cols, g.Rows)

	x1, y1 := TileCenter(3, 3)
	m.Merge(ComputeVisibility(x1, y1, g))
	if !m.At(3, 3) {
		t.Fatal("merge should record the first origin")
	}

	// Seeing a different corner must not forget the first one.
	x2, y2 := TileCenter(16, 16)
	m.Merge(ComputeVisibility(x2, y2, g))
	if !m.At(3, 3) {
		t.Fatal("explored tiles must never be forgotten")
	}
	if !m.At(16, 16) {
		t.Fatal("merge should record the second origin")
	}
}

package game

import "math"

const (
	tileSize  = 64 // pixels per tile edge
	levelCols = 50
	levelRows = 40
)

// TileType identifies the contents of one dungeon cell.
type TileType uint8

const (
	TileWall  TileType = iota // solid rock, blocks movement and sight
	TileFloor                 // walkable
)

// TileGrid is the authoritative per-cell dungeon representation.
// New grids start as solid wall; the generator carves floor into them.
type TileGrid struct {
	Cols  int
	Rows  int
	Tiles []TileType // row-major: index = row*Cols + col
}

// NewTileGrid creates a grid of the given size filled with wall.
func NewTileGrid(cols, rows int) *TileGrid {
	return &TileGrid{Cols: cols, Rows: rows, Tiles: make([]TileType, cols*rows)}
}

// inBounds returns true if (col, row) is within the grid.
func (g *TileGrid) inBounds(col, row int) bool {
	return col >= 0 && col < g.Cols && row >= 0 && row < g.Rows
}

// At returns the tile type at (col, row). Out-of-bounds cells read as wall.
func (g *TileGrid) At(col, row int) TileType {
	if !g.inBounds(col, row) {
		return TileWall
	}
	return g.Tiles[row*g.Cols+col]
}

// Set writes the tile type at (col, row). Out-of-bounds writes are ignored.
func (g *TileGrid) Set(col, row int, t TileType) {
	if !g.inBounds(col, row) {
		return
	}
	g.Tiles[row*g.Cols+col] = t
}

// IsWall returns true if (col, row) blocks movement and sight.
func (g *TileGrid) IsWall(col, row int) bool {
	return g.At(col, row) == TileWall
}

// TileAt converts a pixel position to tile coordinates.
func TileAt(x, y float64) (col, row int) {
	return int(math.Floor(x / tileSize)), int(math.Floor(y / tileSize))
}

// TileCenter returns the pixel centre of a tile.
func TileCenter(col, row int) (x, y float64) {
	return float64(col)*tileSize + tileSize/2, float64(row)*tileSize + tileSize/2
}

// circleBlocked returns true if a circle at (x,y) with radius r overlaps
// any wall tile.
func (g *TileGrid) circleBlocked(x, y, r float64) bool {
	minCol := int(math.Floor((x - r) / tileSize))
	maxCol := int(math.Floor((x + r) / tileSize))
	minRow := int(math.Floor((y - r) / tileSize))
	maxRow := int(math.Floor((y + r) / tileSize))
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			if !g.IsWall(col, row) {
				continue
			}
			if circleIntersectsRect(x, y, r,
				float64(col)*tileSize, float64(row)*tileSize, tileSize, tileSize) {
				return true
			}
		}
	}
	return false
}

// SlideCircle moves a circle from (x,y) toward (nx,ny), resolving wall
// collisions per axis so the mover slides along walls instead of sticking.
func (g *TileGrid) SlideCircle(x, y, nx, ny, r float64) (float64, float64) {
	outX, outY := x, y
	if !g.circleBlocked(nx, outY, r) {
		outX = nx
	}
	if !g.circleBlocked(outX, ny, r) {
		outY = ny
	}
	return outX, outY
}

// SegmentHitsWall returns the first wall impact along the segment
// (ax,ay)-(bx,by) as a parameter t in [0,1] plus the wall tile hit.
// The bool is false when the segment is clear.
func (g *TileGrid) SegmentHitsWall(ax, ay, bx, by float64) (float64, int, int, bool) {
	bestT := math.Inf(1)
	bestCol, bestRow := -1, -1

	minCol := int(math.Floor(math.Min(ax, bx)/tileSize)) - 1
	maxCol := int(math.Floor(math.Max(ax, bx)/tileSize)) + 1
	minRow := int(math.Floor(math.Min(ay, by)/tileSize)) - 1
	maxRow := int(math.Floor(math.Max(ay, by)/tileSize)) + 1

	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			if !g.IsWall(col, row) {
				continue
			}
			t, hit := rayAABBHitT(ax, ay, bx, by,
				float64(col)*tileSize, float64(row)*tileSize,
				float64(col+1)*tileSize, float64(row+1)*tileSize)
			if hit && t < bestT {
				bestT = t
				bestCol, bestRow = col, row
			}
		}
	}
	if bestCol < 0 {
		return 0, 0, 0, false
	}
	return bestT, bestCol, bestRow, true
}

// HasLineOfSight returns true if a straight line from (ax,ay) to (bx,by)
// does not cross any wall tile.
func (g *TileGrid) HasLineOfSight(ax, ay, bx, by float64) bool {
	_, _, _, hit := g.SegmentHitsWall(ax, ay, bx, by)
	return !hit
}

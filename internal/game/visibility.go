package game

import "math"

const (
	sightRadiusPx = 200.0 // how far the player can see
	visionRays    = 360   // one ray per degree
	visionStepPx  = 2.0   // ray march step
)

// VisibilityField is the set of tiles visible from a single origin.
// It is rebuilt from scratch each time; see ExploredMap for the
// monotonic fog-of-war memory.
type VisibilityField struct {
	Cols    int
	Rows    int
	Visible []bool // row-major
}

// NewVisibilityField allocates an all-hidden field sized to the grid.
func NewVisibilityField(cols, rows int) *VisibilityField {
	return &VisibilityField{Cols: cols, Rows: rows, Visible: make([]bool, cols*rows)}
}

// At returns whether (col, row) is visible. Out of bounds reads false.
func (f *VisibilityField) At(col, row int) bool {
	if col < 0 || col >= f.Cols || row < 0 || row >= f.Rows {
		return false
	}
	return f.Visible[row*f.Cols+col]
}

func (f *VisibilityField) mark(col, row int) {
	if col < 0 || col >= f.Cols || row < 0 || row >= f.Rows {
		return
	}
	f.Visible[row*f.Cols+col] = true
}

// ComputeVisibility casts rays from (x,y) and marks every tile each ray
// crosses up to and including the first wall tile. The result depends only
// on the origin and the grid.
func ComputeVisibility(x, y float64, g *TileGrid) *VisibilityField {
	f := NewVisibilityField(g.Cols, g.Rows)

	oc, or := TileAt(x, y)
	f.mark(oc, or)

	for i := 0; i < visionRays; i++ {
		angle := float64(i) * (2 * math.Pi / visionRays)
		dx := math.Cos(angle) * visionStepPx
		dy := math.Sin(angle) * visionStepPx

		px, py := x, y
		for step := 0.0; step < sightRadiusPx; step += visionStepPx {
			px += dx
			py += dy
			col, row := TileAt(px, py)
			f.mark(col, row)
			if g.IsWall(col, row) {
				break // wall face is visible, nothing beyond it
			}
		}
	}
	return f
}

// ExploredMap remembers every tile the player has ever seen. Tiles are
// only ever added, never removed.
type ExploredMap struct {
	Cols int
	Rows int
	Seen []bool
}

// NewExploredMap allocates an all-unseen map sized to the grid.
func NewExploredMap(cols, rows int) *ExploredMap {
	return &ExploredMap{Cols: cols, Rows: rows, Seen: make([]bool, cols*rows)}
}

// At returns whether (col, row) has ever been seen.
func (m *ExploredMap) At(col, row int) bool {
	if col < 0 || col >= m.Cols || row < 0 || row >= m.Rows {
		return false
	}
	return m.Seen[row*m.Cols+col]
}

// Merge unions a visibility field into the explored set.
func (m *ExploredMap) Merge(f *VisibilityField) {
	for i, v := range f.Visible {
		if v {
			m.Seen[i] = true
		}
	}
}

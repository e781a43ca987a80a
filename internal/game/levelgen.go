package game

import (
	"math/rand"

	"github.com/mwrenn/deepdelve/internal/logger"
)

const (
	roomMinTiles      = 6
	roomMaxTiles      = 18
	roomPlaceAttempts = 100
	genRetries        = 3
	minSpawnDistPx    = 100.0 // enemies never seed closer to the player start
)

// roomRect is a room footprint in tile coordinates.
type roomRect struct {
	x, y, w, h int
}

// center returns the room's centre tile.
func (r roomRect) center() (int, int) {
	return r.x + r.w/2, r.y + r.h/2
}

// intersects reports overlap with another room, including a padding ring
// so rooms never share a wall.
func (r roomRect) intersects(o roomRect, pad int) bool {
	return r.x-pad < o.x+o.w && r.x+r.w+pad > o.x &&
		r.y-pad < o.y+o.h && r.y+r.h+pad > o.y
}

// Dungeon is one generated level: carved grid plus placed points of interest.
// All point fields are in pixels.
type Dungeon struct {
	Grid  *TileGrid
	Rooms []roomRect
	Level int

	SpawnX, SpawnY float64
	KeyX, KeyY     float64
	AltarX, AltarY float64
	BossX, BossY   float64
}

// EnemySeed is a spawn instruction produced by the generator.
type EnemySeed struct {
	X, Y      float64
	Archetype EnemyArchetype
}

// GenerateLevel carves a rooms-and-corridors dungeon for the given level
// index and returns it with enemy spawn seeds. Generation is retried a
// bounded number of times; if no usable layout emerges it falls back to a
// single guaranteed hall so a level always exists.
func GenerateLevel(level int, rng *rand.Rand) (*Dungeon, []EnemySeed) {
	for attempt := 0; attempt < genRetries; attempt++ {
		d := carveRooms(level, rng)
		if len(d.Rooms) >= 2 {
			placePointsOfInterest(d, rng)
			return d, seedEnemies(d, level, rng)
		}
	}
	logger.Log.WithField("level", level).Warn("level generation exhausted retries, using fallback hall")
	d := fallbackHall(level)
	placePointsOfInterest(d, rng)
	return d, seedEnemies(d, level, rng)
}

// carveRooms places non-overlapping rooms and joins successive room
// centres with L-shaped corridors.
func carveRooms(level int, rng *rand.Rand) *Dungeon {
	grid := NewTileGrid(levelCols, levelRows)
	d := &Dungeon{Grid: grid, Level: level}

	maxRooms := 8 + level/2
	for i := 0; i < roomPlaceAttempts && len(d.Rooms) < maxRooms; i++ {
		w := roomMinTiles + rng.Intn(roomMaxTiles-roomMinTiles+1)
		h := roomMinTiles + rng.Intn(roomMaxTiles-roomMinTiles+1)
		if w > levelCols-4 {
			w = levelCols - 4
		}
		if h > levelRows-4 {
			h = levelRows - 4
		}
		room := roomRect{
			x: 1 + rng.Intn(levelCols-w-2),
			y: 1 + rng.Intn(levelRows-h-2),
			w: w,
			h: h,
		}

		overlaps := false
		for _, other := range d.Rooms {
			if room.intersects(other, 1) {
				overlaps = true
				break
			}
		}
		if overlaps {
			continue
		}

		carveRoom(grid, room)
		if len(d.Rooms) > 0 {
			px, py := d.Rooms[len(d.Rooms)-1].center()
			cx, cy := room.center()
			// Alternate corridor elbow direction for variety.
			if rng.Intn(2) == 0 {
				carveHCorridor(grid, px, cx, py)
				carveVCorridor(grid, py, cy, cx)
			} else {
				carveVCorridor(grid, py, cy, px)
				carveHCorridor(grid, px, cx, cy)
			}
		}
		d.Rooms = append(d.Rooms, room)
	}

	if len(d.Rooms) > 0 {
		cx, cy := d.Rooms[0].center()
		d.SpawnX, d.SpawnY = TileCenter(cx, cy)
	}
	return d
}

func carveRoom(g *TileGrid, r roomRect) {
	for row := r.y; row < r.y+r.h; row++ {
		for col := r.x; col < r.x+r.w; col++ {
			g.Set(col, row, TileFloor)
		}
	}
}

func carveHCorridor(g *TileGrid, x1, x2, row int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for col := x1; col <= x2; col++ {
		g.Set(col, row, TileFloor)
	}
}

func carveVCorridor(g *TileGrid, y1, y2, col int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for row := y1; row <= y2; row++ {
		g.Set(col, row, TileFloor)
	}
}

// fallbackHall builds the degenerate single-room level used when random
// placement fails. It always satisfies the reachability guarantees.
func fallbackHall(level int) *Dungeon {
	grid := NewTileGrid(levelCols, levelRows)
	hall := roomRect{x: 2, y: 2, w: levelCols - 4, h: levelRows - 4}
	carveRoom(grid, hall)
	d := &Dungeon{Grid: grid, Rooms: []roomRect{hall}, Level: level}
	d.SpawnX, d.SpawnY = TileCenter(hall.x+2, hall.y+hall.h/2)
	return d
}

// placePointsOfInterest positions the key, the exit altar, and the boss.
// The altar and boss go in the room furthest from spawn; the key goes in a
// different non-spawn room when one exists. Key, spawn, and altar always
// occupy distinct tiles.
func placePointsOfInterest(d *Dungeon, rng *rand.Rand) {
	spawnCol, spawnRow := TileAt(d.SpawnX, d.SpawnY)

	farIdx := 0
	farDist := -1.0
	for i, r := range d.Rooms {
		cx, cy := r.center()
		px, py := TileCenter(cx, cy)
		if dd := dist(px, py, d.SpawnX, d.SpawnY); dd > farDist {
			farDist = dd
			farIdx = i
		}
	}

	altarCol, altarRow := d.Rooms[farIdx].center()
	d.AltarX, d.AltarY = TileCenter(altarCol, altarRow)

	// Boss guards the altar from the most distant floor tile of its room.
	bossCol, bossRow := farthestRoomTile(d.Rooms[farIdx], spawnCol, spawnRow)
	d.BossX, d.BossY = TileCenter(bossCol, bossRow)

	// Key room: any room other than spawn and altar when available.
	keyIdx := farIdx
	var candidates []int
	for i := range d.Rooms {
		if i != 0 && i != farIdx {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) > 0 {
		keyIdx = candidates[rng.Intn(len(candidates))]
	}
	keyRoom := d.Rooms[keyIdx]
	for tries := 0; ; tries++ {
		col := keyRoom.x + rng.Intn(keyRoom.w)
		row := keyRoom.y + rng.Intn(keyRoom.h)
		if (col == spawnCol && row == spawnRow) || (col == altarCol && row == altarRow) {
			if tries < 50 {
				continue
			}
			// Degenerate single-room layout: shift off the contested tile.
			col = spawnCol + 1
			row = spawnRow + 1
		}
		d.KeyX, d.KeyY = TileCenter(col, row)
		break
	}
}

// farthestRoomTile returns the room tile with the greatest distance from
// the reference tile.
func farthestRoomTile(r roomRect, fromCol, fromRow int) (int, int) {
	fx, fy := TileCenter(fromCol, fromRow)
	bestCol, bestRow := r.center()
	bestDist := -1.0
	for row := r.y; row < r.y+r.h; row++ {
		for col := r.x; col < r.x+r.w; col++ {
			px, py := TileCenter(col, row)
			if dd := dist(px, py, fx, fy); dd > bestDist {
				bestDist = dd
				bestCol, bestRow = col, row
			}
		}
	}
	return bestCol, bestRow
}

// seedEnemies scatters enemy spawn points across non-spawn room tiles,
// keeping a safe radius around the player start. Corridors stay clear.
func seedEnemies(d *Dungeon, level int, rng *rand.Rand) []EnemySeed {
	rooms := d.Rooms
	if len(rooms) > 1 {
		rooms = rooms[1:]
	}
	var open [][2]int
	for _, r := range rooms {
		for row := r.y; row < r.y+r.h; row++ {
			for col := r.x; col < r.x+r.w; col++ {
				px, py := TileCenter(col, row)
				if dist(px, py, d.SpawnX, d.SpawnY) < minSpawnDistPx {
					continue
				}
				open = append(open, [2]int{col, row})
			}
		}
	}
	rng.Shuffle(len(open), func(i, j int) { open[i], open[j] = open[j], open[i] })

	count := 18 + 5*level
	if count > len(open) {
		count = len(open)
	}
	seeds := make([]EnemySeed, 0, count)
	for i := 0; i < count; i++ {
		px, py := TileCenter(open[i][0], open[i][1])
		seeds = append(seeds, EnemySeed{X: px, Y: py, Archetype: rollArchetype(level, rng)})
	}
	return seeds
}

// rollArchetype picks an enemy archetype with weights that shift toward
// the tougher kinds as levels climb. Ricochet shooters appear from level 4.
func rollArchetype(level int, rng *rand.Rand) EnemyArchetype {
	basic := 40
	fast := 25
	heavy := 15 + 2*level
	ranged := 15 + 2*level
	ricochet := 0
	if level >= 4 {
		ricochet = 6 + level
	}
	total := basic + fast + heavy + ranged + ricochet
	roll := rng.Intn(total)
	switch {
	case roll < basic:
		return ArchetypeBasic
	case roll < basic+fast:
		return ArchetypeFast
	case roll < basic+fast+heavy:
		return ArchetypeHeavy
	case roll < basic+fast+heavy+ranged:
		return ArchetypeRanged
	default:
		return ArchetypeRicochet
	}
}

package game

import (
	"image/color"
	"math"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

var (
	colFloorLit   = color.RGBA{R: 54, G: 48, B: 44, A: 255}
	colFloorDim   = color.RGBA{R: 26, G: 24, B: 22, A: 255}
	colWallLit    = color.RGBA{R: 96, G: 88, B: 80, A: 255}
	colWallDim    = color.RGBA{R: 44, G: 40, B: 38, A: 255}
	colPlayer     = color.RGBA{R: 80, G: 200, B: 120, A: 255}
	colKey        = color.RGBA{R: 240, G: 200, B: 60, A: 255}
	colAltar      = color.RGBA{R: 170, G: 90, B: 220, A: 255}
	colAltarReady = color.RGBA{R: 220, G: 150, B: 255, A: 255}
	colProjectile = color.RGBA{R: 255, G: 230, B: 120, A: 255}
	colControlled = color.RGBA{R: 120, G: 220, B: 220, A: 255}
	colSwing      = color.RGBA{R: 220, G: 220, B: 220, A: 140}
	colDamage     = color.RGBA{R: 255, G: 120, B: 80, A: 255}
	colDamageCrit = color.RGBA{R: 255, G: 220, B: 60, A: 255}
)

// archetypeColour maps enemy kinds to their body colour.
func archetypeColour(a EnemyArchetype) color.RGBA {
	switch a {
	case ArchetypeFast:
		return color.RGBA{R: 250, G: 160, B: 60, A: 255}
	case ArchetypeHeavy:
		return color.RGBA{R: 150, G: 70, B: 60, A: 255}
	case ArchetypeRanged:
		return color.RGBA{R: 90, G: 140, B: 230, A: 255}
	case ArchetypeRicochet:
		return color.RGBA{R: 60, G: 200, B: 200, A: 255}
	case ArchetypeBoss:
		return color.RGBA{R: 200, G: 40, B: 120, A: 255}
	default:
		return color.RGBA{R: 200, G: 60, B: 60, A: 255}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.updateCamera()
	g.drawWorld()

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-g.camX, -g.camY)
	screen.DrawImage(g.worldBuf, op)

	g.drawHUD(screen)
}

// updateCamera centres the view on the player, clamped to the dungeon.
func (g *Game) updateCamera() {
	p := g.sim.Player()
	worldW := float64(g.sim.Dungeon().Grid.Cols * tileSize)
	worldH := float64(g.sim.Dungeon().Grid.Rows * tileSize)
	g.camX = clamp(p.X-screenW/2, 0, math.Max(0, worldW-screenW))
	g.camY = clamp(p.Y-screenH/2, 0, math.Max(0, worldH-screenH))
}

// drawWorld renders the dungeon into the offscreen buffer: tiles under
// fog-of-war, points of interest, items, entities, and effects.
func (g *Game) drawWorld() {
	g.worldBuf.Fill(color.Black)

	sim := g.sim
	grid := sim.Dungeon().Grid
	vis := sim.Visible()
	seen := sim.Explored()

	for row := 0; row < grid.Rows; row++ {
		for col := 0; col < grid.Cols; col++ {
			if !seen.At(col, row) {
				continue // never seen: total darkness
			}
			lit := vis.At(col, row)
			var c color.RGBA
			if grid.IsWall(col, row) {
				c = colWallDim
				if lit {
					c = colWallLit
				}
			} else {
				c = colFloorDim
				if lit {
					c = colFloorLit
				}
			}
			vector.DrawFilledRect(g.worldBuf,
				float32(col*tileSize), float32(row*tileSize),
				tileSize, tileSize, c, false)
		}
	}

	g.drawPointsOfInterest()
	g.drawGroundItems()
	g.drawEnemies()
	g.drawProjectiles()
	g.drawPlayer()
	g.drawDamageNumbers()
}

// tileVisible reports whether a world position sits on a currently
// visible tile. Entities in the dark are not drawn.
func (g *Game) tileVisible(x, y float64) bool {
	col, row := TileAt(x, y)
	return g.sim.Visible().At(col, row)
}

func (g *Game) drawPointsOfInterest() {
	sim := g.sim
	d := sim.Dungeon()

	if !sim.KeyTaken() && g.tileVisible(d.KeyX, d.KeyY) {
		vector.DrawFilledCircle(g.worldBuf, float32(d.KeyX), float32(d.KeyY), 8, colKey, true)
	}

	col, row := TileAt(d.AltarX, d.AltarY)
	if sim.Explored().At(col, row) {
		c := colAltar
		if sim.BossDefeated() && sim.Player().HasKey {
			c = colAltarReady
		}
		vector.DrawFilledRect(g.worldBuf,
			float32(d.AltarX-14), float32(d.AltarY-14), 28, 28, c, true)
	}
}

func (g *Game) drawGroundItems() {
	for _, gi := range g.sim.GroundItems() {
		if !g.tileVisible(gi.X, gi.Y) {
			continue
		}
		var c color.RGBA
		switch gi.Kind.Category() {
		case CategoryWeapon:
			c = color.RGBA{R: 200, G: 200, B: 210, A: 255}
		case CategorySpell:
			c = color.RGBA{R: 140, G: 120, B: 240, A: 255}
		case CategoryEnchant:
			c = color.RGBA{R: 240, G: 140, B: 200, A: 255}
		default: // health
			c = color.RGBA{R: 230, G: 70, B: 70, A: 255}
		}
		vector.DrawFilledCircle(g.worldBuf, float32(gi.X), float32(gi.Y), 6, c, true)
	}
}

func (g *Game) drawEnemies() {
	for _, e := range g.sim.Enemies() {
		if !e.Alive() || !g.tileVisible(e.X, e.Y) {
			continue
		}
		c := archetypeColour(e.Archetype)
		if e.Controlled {
			c = colControlled
		}
		vector.DrawFilledCircle(g.worldBuf, float32(e.X), float32(e.Y), float32(e.Radius), c, true)

		// Health sliver above the body.
		frac := float32(e.HP) / float32(e.MaxHP)
		w := float32(e.Radius) * 2
		vector.DrawFilledRect(g.worldBuf, float32(e.X)-w/2, float32(e.Y-e.Radius-7),
			w*frac, 3, color.RGBA{R: 220, G: 60, B: 60, A: 220}, false)

		if g.settings.ShowDebug {
			text.Draw(g.worldBuf, e.State.String(), basicfont.Face7x13,
				int(e.X-14), int(e.Y-e.Radius-10), color.White)
		}
	}
}

func (g *Game) drawProjectiles() {
	for _, pr := range g.sim.Projectiles() {
		if !g.tileVisible(pr.X, pr.Y) {
			continue
		}
		vector.DrawFilledCircle(g.worldBuf, float32(pr.X), float32(pr.Y),
			projectileRadius, colProjectile, true)
	}
}

func (g *Game) drawPlayer() {
	p := g.sim.Player()
	if !p.Alive() {
		return
	}
	vector.DrawFilledCircle(g.worldBuf, float32(p.X), float32(p.Y), float32(p.Radius), colPlayer, true)

	// Facing tick.
	fx := p.X + math.Cos(p.Facing)*float64(p.Radius+6)
	fy := p.Y + math.Sin(p.Facing)*float64(p.Radius+6)
	vector.StrokeLine(g.worldBuf, float32(p.X), float32(p.Y), float32(fx), float32(fy),
		2, color.White, true)

	if p.swing != nil {
		g.drawSwing(p)
	}
}

// drawSwing sweeps the weapon edge across the arc as the swing animates.
func (g *Game) drawSwing(p *Player) {
	sw := p.swing
	reach := weaponReach(sw.Weapon)
	if weaponStats(sw.Weapon).thrust {
		t := sw.Progress()
		tx := p.X + math.Cos(sw.AimAngle)*reach*t
		ty := p.Y + math.Sin(sw.AimAngle)*reach*t
		vector.StrokeLine(g.worldBuf, float32(p.X), float32(p.Y), float32(tx), float32(ty),
			3, colSwing, true)
		return
	}
	halfArc := weaponArcDeg(sw.Weapon, p.Level) * math.Pi / 360
	angle := sw.AimAngle - halfArc + 2*halfArc*sw.Progress()
	ex := p.X + math.Cos(angle)*reach
	ey := p.Y + math.Sin(angle)*reach
	vector.StrokeLine(g.worldBuf, float32(p.X), float32(p.Y), float32(ex), float32(ey),
		3, colSwing, true)
}

// drawDamageNumbers floats recent damage amounts up from their hit points.
func (g *Game) drawDamageNumbers() {
	tick := g.sim.Tick()
	for _, ev := range g.sim.DamageFeed() {
		age := tick - ev.Tick
		c := colDamage
		if ev.Crit {
			c = colDamageCrit
		}
		label := strconv.Itoa(ev.Amount)
		if ev.Crit {
			label += "!"
		}
		y := ev.Y - 12 - float64(age)*0.6
		text.Draw(g.worldBuf, label, basicfont.Face7x13, int(ev.X-6), int(y), c)
	}
}

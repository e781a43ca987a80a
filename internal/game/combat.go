package game

import (
	"math"
	"math/rand"
)

const (
	swingDurationTicks = 15 // quarter second at 60 tps
	swingImpactTick    = 6  // hit test resolves on this swing frame
	thrustWidthPx      = 8.0

	playerBoltSpeed  = 400.0 // pixels per second
	projectileRadius = 4.0
	projectileTTL    = 3 * tickRate

	critChance   = 0.05
	critMul      = 2.0
	damageSpread = 0.10 // +/- fraction applied to every hit
)

// Swing is an in-flight melee attack. The hit test runs exactly once, on
// the impact frame; the remaining frames are animation.
type Swing struct {
	Weapon   ItemKind
	AimAngle float64
	Age      int // ticks since the swing started
	resolved bool
}

// Done reports whether the swing animation has finished.
func (s *Swing) Done() bool { return s.Age >= swingDurationTicks }

// Progress returns the swing's animation phase in [0,1].
func (s *Swing) Progress() float64 {
	return clamp(float64(s.Age)/swingDurationTicks, 0, 1)
}

// rollDamage applies the hit variance and crit roll to a base amount.
// Every hit deals at least 1 damage.
func rollDamage(rng *rand.Rand, base float64) (int, bool) {
	dmg := base * (1 - damageSpread + rng.Float64()*2*damageSpread)
	crit := rng.Float64() < critChance
	if crit {
		dmg *= critMul
	}
	n := int(dmg)
	if n < 1 {
		n = 1
	}
	return n, crit
}

// inSwingArc reports whether a target circle is caught by an arc swing
// originating at (ox,oy).
func inSwingArc(ox, oy, aim, reach, arcDeg, tx, ty, tr float64) bool {
	d := dist(ox, oy, tx, ty)
	if d > reach+tr {
		return false
	}
	halfArc := arcDeg * math.Pi / 360.0
	return math.Abs(angleDiff(headingTo(ox, oy, tx, ty), aim)) <= halfArc
}

// inThrustPath reports whether a target circle is caught by a thrust from
// (ox,oy) along aim with the given reach.
func inThrustPath(ox, oy, aim, reach, tx, ty, tr float64) bool {
	tipX := ox + math.Cos(aim)*reach
	tipY := oy + math.Sin(aim)*reach
	return segmentPointDist(ox, oy, tipX, tipY, tx, ty) <= tr+thrustWidthPx
}

// weaponCatches runs the geometry test for one weapon against one target.
func weaponCatches(weapon ItemKind, playerLevel int, ox, oy, aim, tx, ty, tr float64) bool {
	reach := weaponReach(weapon)
	if weaponStats(weapon).thrust {
		return inThrustPath(ox, oy, aim, reach, tx, ty, tr)
	}
	return inSwingArc(ox, oy, aim, reach, weaponArcDeg(weapon, playerLevel), tx, ty, tr)
}

// startPlayerSwing begins a melee attack if the weapon is off cooldown.
func (s *Simulation) startPlayerSwing(aim float64) {
	p := s.player
	if p.swing != nil && !p.swing.Done() {
		return
	}
	if p.meleeCooldown > 0 {
		return
	}
	p.swing = &Swing{Weapon: p.Weapon.Kind, AimAngle: aim}
	p.meleeCooldown = weaponCooldownTicks(p.Weapon.Kind)
	s.pushAudio(AudioSwing)
}

// advancePlayerSwing ages the active swing and resolves its hit test on
// the impact frame. Walls between the player and a target block the hit.
func (s *Simulation) advancePlayerSwing() {
	p := s.player
	if p.swing == nil {
		return
	}
	p.swing.Age++
	if p.swing.Age == swingImpactTick && !p.swing.resolved {
		p.swing.resolved = true
		s.resolvePlayerSwing(p.swing)
	}
	if p.swing.Done() {
		p.swing = nil
	}
}

// resolvePlayerSwing damages every living enemy caught by the swing.
func (s *Simulation) resolvePlayerSwing(sw *Swing) {
	p := s.player
	base := p.Damage() * weaponStats(sw.Weapon).dmgMul
	kb := weaponStats(sw.Weapon).knockback

	for _, e := range s.world.Enemies {
		if !e.Alive() {
			continue
		}
		if !weaponCatches(sw.Weapon, p.Level, p.X, p.Y, sw.AimAngle, e.X, e.Y, e.Radius) {
			continue
		}
		if !s.dungeon.Grid.HasLineOfSight(p.X, p.Y, e.X, e.Y) {
			continue
		}
		dmg, crit := rollDamage(s.rng, base)
		s.damageEnemy(e, dmg, crit)
		if kb > 0 {
			s.knockbackEnemy(e, headingTo(p.X, p.Y, e.X, e.Y), kb)
		}
	}
}

// knockbackEnemy shoves an enemy along a heading, sliding on walls.
func (s *Simulation) knockbackEnemy(e *Enemy, heading, distance float64) {
	nx := e.X + math.Cos(heading)*distance
	ny := e.Y + math.Sin(heading)*distance
	e.X, e.Y = s.dungeon.Grid.SlideCircle(e.X, e.Y, nx, ny, e.Radius)
}

// Projectile is a bolt in flight. hitsEnemies selects the side it can
// damage; mind-controlled shooters fire enemy-hitting bolts.
type Projectile struct {
	Owner       EntityID
	hitsEnemies bool
	X, Y        float64
	VX, VY      float64 // pixels per second
	Damage      float64
	Bounces     int
	Homing      bool
	ttl         int
}

// spawnProjectile adds a bolt to the world aimed along a heading.
func (s *Simulation) spawnProjectile(owner EntityID, hitsEnemies bool, x, y, heading, speed, damage float64, bounces int, homing bool) {
	s.projectiles = append(s.projectiles, &Projectile{
		Owner:       owner,
		hitsEnemies: hitsEnemies,
		X:           x,
		Y:           y,
		VX:          math.Cos(heading) * speed,
		VY:          math.Sin(heading) * speed,
		Damage:      damage,
		Bounces:     bounces,
		Homing:      homing,
		ttl:         projectileTTL,
	})
}

// stepProjectiles advances every bolt one tick: homing correction, wall
// bounce or despawn, then target collision.
func (s *Simulation) stepProjectiles() {
	grid := s.dungeon.Grid
	kept := s.projectiles[:0]

	for _, pr := range s.projectiles {
		pr.ttl--
		if pr.ttl <= 0 {
			continue
		}

		if pr.Homing {
			if pr.hitsEnemies {
				if t, ok := s.world.NearestEnemy(pr.X, pr.Y, pr.Owner); ok {
					s.steerToward(pr, t.X, t.Y)
				}
			} else if s.player.Alive() {
				s.steerToward(pr, s.player.X, s.player.Y)
			}
		}

		nx := pr.X + pr.VX*tickDt
		ny := pr.Y + pr.VY*tickDt

		if t, col, row, hit := grid.SegmentHitsWall(pr.X, pr.Y, nx, ny); hit {
			if pr.Bounces <= 0 {
				continue
			}
			pr.Bounces--
			pr.Damage *= 0.9
			hx := pr.X + (nx-pr.X)*t
			hy := pr.Y + (ny-pr.Y)*t
			reflectOffTile(pr, hx, hy, col, row)
		} else {
			pr.X, pr.Y = nx, ny
		}

		if s.projectileHits(pr) {
			continue
		}
		kept = append(kept, pr)
	}
	s.projectiles = kept
}

// steerToward bends a homing bolt's velocity toward a point, preserving speed.
func (s *Simulation) steerToward(pr *Projectile, tx, ty float64) {
	speed := math.Hypot(pr.VX, pr.VY)
	cur := math.Atan2(pr.VY, pr.VX)
	want := headingTo(pr.X, pr.Y, tx, ty)
	turn := clamp(angleDiff(want, cur), -0.05, 0.05)
	cur += turn
	pr.VX = math.Cos(cur) * speed
	pr.VY = math.Sin(cur) * speed
}

// reflectOffTile mirrors a bolt's velocity off the face of the wall tile
// it struck and parks it at the hit point. The impacted axis is the one
// whose tile edge the hit point sits on. The bolt is nudged off the face
// along the reflected axis so the next tick's sweep starts clear of it.
func reflectOffTile(pr *Projectile, hx, hy float64, col, row int) {
	const eps = 1e-6
	const faceGap = 0.1
	left := float64(col) * tileSize
	right := float64(col+1) * tileSize
	top := float64(row) * tileSize
	bottom := float64(row+1) * tileSize

	onX := math.Abs(hx-left) < eps || math.Abs(hx-right) < eps
	onY := math.Abs(hy-top) < eps || math.Abs(hy-bottom) < eps
	switch {
	case onX && !onY:
		pr.VX = -pr.VX
		hx += math.Copysign(faceGap, pr.VX)
	case onY && !onX:
		pr.VY = -pr.VY
		hy += math.Copysign(faceGap, pr.VY)
	default: // corner hit
		pr.VX = -pr.VX
		pr.VY = -pr.VY
		hx += math.Copysign(faceGap, pr.VX)
		hy += math.Copysign(faceGap, pr.VY)
	}
	pr.X, pr.Y = hx, hy
}

// projectileHits tests the bolt against its valid targets and applies
// damage on contact. Returns true when the bolt is consumed.
func (s *Simulation) projectileHits(pr *Projectile) bool {
	if pr.hitsEnemies {
		for _, e := range s.world.Enemies {
			if !e.Alive() || e.ID == pr.Owner {
				continue
			}
			if dist(pr.X, pr.Y, e.X, e.Y) <= projectileRadius+e.Radius {
				dmg, crit := rollDamage(s.rng, pr.Damage)
				s.damageEnemy(e, dmg, crit)
				return true
			}
		}
		return false
	}

	p := s.player
	if p.Alive() && dist(pr.X, pr.Y, p.X, p.Y) <= projectileRadius+p.Radius {
		dmg, _ := rollDamage(s.rng, pr.Damage)
		s.damagePlayer(dmg)
		return true
	}
	return false
}

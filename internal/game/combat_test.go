package game

import (
	"math"
	"testing"
)

func feedFor(sim *Simulation, id EntityID) []DamageEvent {
	var out []DamageEvent
	for _, ev := range sim.DamageFeed() {
		if ev.Target == id {
			out = append(out, ev)
		}
	}
	return out
}

func TestMeleeSwing_SingleHitPerSwing(t *testing.T) {
	sc := NewScenario(WithEnemy(ArchetypeBasic, 840, 608))
	enemy := sc.Sim.Enemies()[0]

	// Hold the melee button through the whole swing and cooldown window.
	in := sc.Idle()
	in.Melee = true
	sc.RunTicks(20, in)

	hits := feedFor(sc.Sim, enemy.ID)
	if len(hits) != 1 {
		t.Fatalf("one swing should land exactly one hit, got %d", len(hits))
	}
	// Sword: 25 base x1.5 weapon, +/-10% spread, 5% crit x2.
	if hits[0].Amount < 33 || hits[0].Amount > 82 {
		t.Fatalf("sword hit out of damage bounds: %d", hits[0].Amount)
	}
}

func TestMeleeSwing_WallBlocksHit(t *testing.T) {
	sc := NewScenario(
		WithWallBlock(6, 9, 1, 1),
		WithPlayerAt(368, 608),
		WithWeapon(ItemSpear),
		WithEnemy(ArchetypeBasic, 468, 608),
	)

	// Spear reach covers the enemy, but the wall column sits between them.
	in := sc.Idle()
	in.Melee = true
	sc.Sim.Step(in)
	sc.RunIdle(14)

	if n := len(sc.Sim.DamageFeed()); n != 0 {
		t.Fatalf("swing through a wall must not land, got %d damage events", n)
	}
}

func TestMaceSwing_KnocksBack(t *testing.T) {
	sc := NewScenario(WithWeapon(ItemMace), WithEnemy(ArchetypeHeavy, 840, 608))
	enemy := sc.Sim.Enemies()[0]

	in := sc.Idle()
	in.Melee = true
	sc.RunTicks(6, in) // hit test resolves on the impact frame

	if len(feedFor(sc.Sim, enemy.ID)) != 1 {
		t.Fatal("mace swing should land")
	}
	if enemy.X <= 840 {
		t.Fatalf("mace hit should shove the enemy away, X=%v", enemy.X)
	}
}

func TestDamageEnemy_DeadUntilSweep(t *testing.T) {
	sc := NewScenario(WithEnemy(ArchetypeBasic, 1000, 608))
	sim := sc.Sim
	enemy := sim.Enemies()[0]
	xpValue := enemy.XPValue

	sim.damageEnemy(enemy, enemy.HP+50, false)
	if enemy.HP != 0 {
		t.Fatalf("HP must clamp at zero, got %d", enemy.HP)
	}
	if enemy.State != AIStateDead {
		t.Fatalf("lethal damage should mark dead, state %v", enemy.State)
	}
	if len(sim.Enemies()) != 1 {
		t.Fatal("dead enemies stay in the world until the end-of-tick sweep")
	}

	// Further damage to a corpse is a no-op.
	sim.damageEnemy(enemy, 10, false)
	if len(sim.DamageFeed()) != 1 {
		t.Fatalf("corpse damage must not add feed events, got %d", len(sim.DamageFeed()))
	}

	sc.RunIdle(1)
	if len(sim.Enemies()) != 0 {
		t.Fatal("sweep should remove the corpse")
	}
	if sim.Player().XP != xpValue {
		t.Fatalf("kill should pay out %d xp, player has %d", xpValue, sim.Player().XP)
	}
}

func TestReflectOffTile(t *testing.T) {
	pr := &Projectile{VX: 100, VY: 40}
	reflectOffTile(pr, 5*tileSize, 600, 5, 9) // left face
	if pr.VX != -100 || pr.VY != 40 {
		t.Fatalf("vertical face should flip VX only, got %v,%v", pr.VX, pr.VY)
	}
	if pr.X >= 5*tileSize {
		t.Fatalf("bolt should come to rest clear of the struck face, X=%v", pr.X)
	}

	pr = &Projectile{VX: 30, VY: -90}
	reflectOffTile(pr, 330, 10*tileSize, 5, 10) // top face
	if pr.VX != 30 || pr.VY != 90 {
		t.Fatalf("horizontal face should flip VY only, got %v,%v", pr.VX, pr.VY)
	}

	pr = &Projectile{VX: 30, VY: -90}
	reflectOffTile(pr, 5*tileSize, 9*tileSize, 5, 9) // corner
	if pr.VX != -30 || pr.VY != 90 {
		t.Fatalf("corner hit should flip both axes, got %v,%v", pr.VX, pr.VY)
	}
}

func TestProjectile_BounceWeakens(t *testing.T) {
	sc := NewScenario()
	sim := sc.Sim

	// Fire west into the arena border with one bounce in the budget.
	sim.spawnProjectile(PlayerID, true, 800, 608, math.Pi, 400, 20, 1, false)
	sc.RunIdle(120)

	prs := sim.Projectiles()
	if len(prs) != 1 {
		t.Fatalf("bolt should survive its bounce, %d in flight", len(prs))
	}
	pr := prs[0]
	if pr.Bounces != 0 {
		t.Fatalf("bounce budget should be spent, got %d", pr.Bounces)
	}
	if pr.VX <= 0 {
		t.Fatalf("bolt should head back east after the bounce, VX=%v", pr.VX)
	}
	if pr.Damage >= 20 || pr.Damage < 17 {
		t.Fatalf("each bounce should shave damage, got %v", pr.Damage)
	}
}

func TestProjectile_DiagonalBounceKeepsFlying(t *testing.T) {
	sc := NewScenario()
	sim := sc.Sim

	// Angled shot at the south wall: the reflection must leave the bolt
	// clear of the face so following ticks do not re-strike it in place.
	sim.spawnProjectile(PlayerID, true, 800, 608, math.Pi/2-0.3, 400, 20, 3, false)
	sc.RunIdle(90)

	prs := sim.Projectiles()
	if len(prs) != 1 {
		t.Fatalf("bolt should survive the wall bounce, %d in flight", len(prs))
	}
	pr := prs[0]
	if pr.Bounces != 2 {
		t.Fatalf("exactly one bounce should be spent, %d left", pr.Bounces)
	}
	if pr.VY >= 0 || pr.VX <= 0 {
		t.Fatalf("bolt should head back up and right, velocity %v,%v", pr.VX, pr.VY)
	}

	x := pr.X
	sc.RunIdle(20)
	if len(sim.Projectiles()) != 1 || pr.Bounces != 2 {
		t.Fatalf("bolt re-struck the same face, %d in flight, %d bounces left",
			len(sim.Projectiles()), pr.Bounces)
	}
	if pr.X <= x {
		t.Fatalf("bolt should keep travelling after the bounce, X %v -> %v", x, pr.X)
	}
}

package game

import "testing"

func TestAltar_RequiresKeyAndBossKill(t *testing.T) {
	sc := NewScenario(
		WithBoss(1, 1400, 1000),
		WithAltarAt(800, 608),
	)
	sim := sc.Sim
	boss := sim.Enemies()[0]

	use := sc.Idle()
	use.Use = true

	sim.Step(use)
	if sim.Level() != 1 {
		t.Fatal("altar must refuse without the key")
	}

	sim.player.HasKey = true
	sim.keyTaken = true
	sim.Step(use)
	if sim.Level() != 1 {
		t.Fatal("altar must refuse while the boss lives")
	}

	sim.damageEnemy(boss, boss.HP+100, false)
	sc.RunIdle(1)
	if !sim.BossDefeated() {
		t.Fatal("sweep should flag the boss kill")
	}

	sim.Step(use)
	if sim.Level() != 2 {
		t.Fatalf("altar should descend to level 2, at %d", sim.Level())
	}
	if sim.player.HasKey {
		t.Fatal("the key must not carry into the next level")
	}
	if len(sim.Enemies()) == 0 {
		t.Fatal("the next level should be populated")
	}
	if sim.State() != RunPlaying {
		t.Fatalf("run should continue, state %v", sim.State())
	}
}

func TestAltar_VictoryOnFinalLevel(t *testing.T) {
	sc := NewScenario(
		WithBoss(10, 1400, 1000),
		WithAltarAt(800, 608),
	)
	sim := sc.Sim
	boss := sim.Enemies()[0]

	sim.level = finalLevel
	sim.player.HasKey = true
	sim.keyTaken = true
	sim.damageEnemy(boss, boss.HP+100, false)
	sc.RunIdle(1)

	use := sc.Idle()
	use.Use = true
	sim.Step(use)
	if sim.State() != RunVictory {
		t.Fatalf("clearing the final altar should win the run, state %v", sim.State())
	}

	// A finished run is frozen.
	tick := sim.Tick()
	sc.RunIdle(5)
	if sim.Tick() != tick {
		t.Fatal("steps after the run ends must be no-ops")
	}
}

func TestRegen_DelayedAndGradual(t *testing.T) {
	sc := NewScenario()
	sim := sc.Sim

	sim.damagePlayer(10)
	if sim.player.HP != 90 {
		t.Fatalf("want 90 hp after the hit, got %d", sim.player.HP)
	}

	sc.RunIdle(60)
	if sim.player.HP != 90 {
		t.Fatal("regen must hold off for three seconds after damage")
	}

	sc.RunIdle(180)
	if sim.player.HP != 92 {
		t.Fatalf("one second of regen should heal 2, got hp %d", sim.player.HP)
	}
}

func TestDamagePlayer_ImmunityWindow(t *testing.T) {
	sc := NewScenario()
	sim := sc.Sim

	sim.damagePlayer(10)
	sim.damagePlayer(10)
	if sim.player.HP != 90 {
		t.Fatalf("second hit inside the immunity window must not land, hp %d", sim.player.HP)
	}
	if len(sim.DamageFeed()) != 1 {
		t.Fatalf("want one damage event, got %d", len(sim.DamageFeed()))
	}
}

func TestGameOver_OnPlayerDeath(t *testing.T) {
	sc := NewScenario()
	sim := sc.Sim

	sim.player.HP = 1
	sim.damagePlayer(10)
	sc.RunIdle(1)

	if sim.State() != RunGameOver {
		t.Fatalf("want game over, state %v", sim.State())
	}
	if sim.Stats().Deaths != 1 {
		t.Fatalf("death should be recorded once, got %d", sim.Stats().Deaths)
	}
}

func TestHealthPotion_AppliesOnContact(t *testing.T) {
	sc := NewScenario(WithGroundItem(ItemHealthPotion, 800, 608))
	sim := sc.Sim

	sim.damagePlayer(50)
	sc.RunIdle(1)

	if sim.player.HP != 85 {
		t.Fatalf("potion should heal %d on contact, hp %d", healthItemHeal, sim.player.HP)
	}
	if len(sim.GroundItems()) != 0 {
		t.Fatal("consumed potion should leave the floor")
	}
}

func TestHealthPotion_CapsAtMax(t *testing.T) {
	sc := NewScenario(WithGroundItem(ItemHealthPotion, 800, 608))
	sim := sc.Sim

	sim.player.HP = 90
	sc.RunIdle(1)
	if sim.player.HP != sim.player.MaxHP {
		t.Fatalf("healing must clamp at max hp, got %d", sim.player.HP)
	}
}

func TestKey_PickedUpByProximity(t *testing.T) {
	sc := NewScenario(WithKeyAt(820, 608))
	sc.RunIdle(1)

	if !sc.Sim.KeyTaken() || !sc.Sim.Player().HasKey {
		t.Fatal("standing on the key should pick it up")
	}
}

func TestRangedBolt_CooldownGates(t *testing.T) {
	sc := NewScenario()

	in := sc.Idle()
	in.Ranged = true
	sc.RunTicks(30, in)

	if n := len(sc.Sim.Projectiles()); n != 1 {
		t.Fatalf("held trigger should respect the one second cooldown, %d bolts", n)
	}
}

func TestPowerPulse_StunsSurvivors(t *testing.T) {
	sc := NewScenario(
		WithSpell(ItemPowerPulse),
		WithBoss(1, 880, 608),
	)
	sim := sc.Sim
	boss := sim.Enemies()[0]

	in := sc.Idle()
	in.Cast = true
	sc.RunTicks(1, in)

	if boss.HP >= boss.MaxHP {
		t.Fatal("pulse should damage a boss inside the radius")
	}
	if boss.State != AIStateStunned {
		t.Fatalf("pulse should daze survivors, state %v", boss.State)
	}

	x := boss.X
	sc.RunIdle(powerPulseStunTicks - 2)
	if boss.State != AIStateStunned || boss.X != x {
		t.Fatalf("stun should hold until it expires, state %v", boss.State)
	}

	sc.RunIdle(4)
	if boss.State == AIStateStunned {
		t.Fatal("stun should wear off")
	}
}

func TestDropSpell_ReturnsToFloor(t *testing.T) {
	sc := NewScenario(WithSpell(ItemHaste))
	sim := sc.Sim

	in := sc.Idle()
	in.Drop = true
	sim.Step(in)

	if sim.player.Spell != nil {
		t.Fatal("drop should empty the spell slot")
	}
	found := false
	for _, gi := range sim.GroundItems() {
		if gi.Kind == ItemHaste {
			found = true
		}
	}
	if !found {
		t.Fatal("dropped spell should land on the floor")
	}
}

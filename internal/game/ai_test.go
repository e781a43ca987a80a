package game

import "testing"

func TestAI_IdleBeyondSightRange(t *testing.T) {
	sc := NewScenario(WithEnemy(ArchetypeBasic, 1000, 608)) // 200px out, sight 150
	sc.RunIdle(30)
	if st := sc.Sim.Enemies()[0].State; st != AIStateIdle {
		t.Fatalf("enemy out of sight range should stay idle, got %v", st)
	}
}

func TestAI_ReactionDelayBeforeEngage(t *testing.T) {
	sc := NewScenario(WithEnemy(ArchetypeBasic, 900, 608))
	enemy := sc.Sim.Enemies()[0]

	sc.RunIdle(1)
	if enemy.State != AIStateAlert {
		t.Fatalf("spotted enemy should go alert first, got %v", enemy.State)
	}

	took := sc.RunUntil(func(sim *Simulation) bool {
		return enemy.State == AIStateEngage
	}, 60)
	if took != reactDelayTicks {
		t.Fatalf("engage should follow after %d reaction ticks, took %d", reactDelayTicks, took)
	}
}

func TestAI_EngageBranchByArchetype(t *testing.T) {
	cases := []struct {
		arch EnemyArchetype
		x    float64
		want AIState
	}{
		{ArchetypeFast, 900, AIStateFlank},
		{ArchetypeHeavy, 900, AIStateTankPush},
		{ArchetypeRanged, 940, AIStateKite},
		{ArchetypeRicochet, 940, AIStateKite},
		{ArchetypeBasic, 900, AIStateEngage},
	}
	for _, tc := range cases {
		sc := NewScenario(WithEnemy(tc.arch, tc.x, 608))
		sc.RunIdle(reactDelayTicks + 2)
		if st := sc.Sim.Enemies()[0].State; st != tc.want {
			t.Fatalf("%v should branch to %v, got %v", tc.arch, tc.want, st)
		}
	}
}

func TestAI_GiveUpAfterLosingTarget(t *testing.T) {
	sc := NewScenario(WithEnemy(ArchetypeBasic, 900, 608))
	enemy := sc.Sim.Enemies()[0]
	sc.RunIdle(reactDelayTicks + 1)
	if enemy.State != AIStateEngage {
		t.Fatalf("setup: expected engage, got %v", enemy.State)
	}

	// Yank the player far outside the enemy's sight.
	sc.Sim.player.X, sc.Sim.player.Y = 224, 608

	if sc.RunUntil(func(sim *Simulation) bool {
		return enemy.State == AIStateIdle
	}, enemyGiveUpTicks+120) == -1 {
		t.Fatal("enemy should give up the chase and return to idle")
	}
}

func TestAI_StunFreezesAndRestores(t *testing.T) {
	sc := NewScenario(WithEnemy(ArchetypeBasic, 900, 608))
	sim := sc.Sim
	enemy := sim.Enemies()[0]
	sc.RunIdle(reactDelayTicks + 1)

	sim.stunEnemy(enemy, 10)
	if enemy.State != AIStateStunned {
		t.Fatalf("expected stunned, got %v", enemy.State)
	}

	x := enemy.X
	sc.RunIdle(5)
	if enemy.State != AIStateStunned {
		t.Fatal("stun should hold for its full duration")
	}
	if enemy.X != x {
		t.Fatal("stunned enemies must not move")
	}

	sc.RunIdle(5)
	if enemy.State != AIStateEngage {
		t.Fatalf("stun should restore the prior state, got %v", enemy.State)
	}
}

func TestTurnCoat_ControlledChasesVictim(t *testing.T) {
	sc := NewScenario(
		WithSpell(ItemTurnCoat),
		WithEnemy(ArchetypeBasic, 900, 608),
		WithEnemy(ArchetypeFast, 1200, 608),
	)
	sim := sc.Sim
	controlled := sim.Enemies()[0]
	victim := sim.Enemies()[1]

	in := sc.Idle()
	in.Cast = true
	sim.Step(in)

	if !controlled.Controlled || controlled.ControlTarget != victim.ID {
		t.Fatal("cast should turn the nearest visible enemy against its neighbour")
	}
	if sim.player.spellCooldown == 0 {
		t.Fatal("successful cast must spend the cooldown")
	}

	// The victim lies further east; a controlled chaser heads away from
	// the player, not toward it.
	sc.RunIdle(30)
	if controlled.X <= 900 {
		t.Fatalf("controlled enemy should chase its victim east, X=%v", controlled.X)
	}
}

func TestTurnCoat_ReleasesOnVictimDeath(t *testing.T) {
	sc := NewScenario(
		WithSpell(ItemTurnCoat),
		WithEnemy(ArchetypeBasic, 900, 608),
		WithEnemy(ArchetypeFast, 1200, 608),
	)
	sim := sc.Sim
	controlled := sim.Enemies()[0]
	victim := sim.Enemies()[1]

	in := sc.Idle()
	in.Cast = true
	sim.Step(in)

	sim.damageEnemy(victim, victim.HP+10, false)
	sc.RunIdle(1)

	if controlled.Controlled {
		t.Fatal("control must break when the victim dies")
	}
	if controlled.State != AIStateIdle {
		t.Fatalf("released enemy should reset to idle, got %v", controlled.State)
	}
}

func TestTurnCoat_ControlExpires(t *testing.T) {
	sc := NewScenario(
		WithSpell(ItemTurnCoat),
		WithEnemy(ArchetypeBasic, 900, 608),
		WithEnemy(ArchetypeFast, 1200, 608),
	)
	sim := sc.Sim
	controlled := sim.Enemies()[0]

	in := sc.Idle()
	in.Cast = true
	sim.Step(in)

	controlled.ControlTicks = 3
	sc.RunIdle(5)
	if controlled.Controlled || controlled.State != AIStateIdle {
		t.Fatalf("expired control should reset to idle, got %v", controlled.State)
	}
}

func TestTurnCoat_NoVictimSpendsNothing(t *testing.T) {
	sc := NewScenario(
		WithSpell(ItemTurnCoat),
		WithEnemy(ArchetypeBasic, 900, 608),
	)
	sim := sc.Sim

	in := sc.Idle()
	in.Cast = true
	sim.Step(in)

	if sim.Enemies()[0].Controlled {
		t.Fatal("a lone enemy has no victim to turn against")
	}
	if sim.player.spellCooldown != 0 {
		t.Fatal("failed cast must not spend the cooldown")
	}
}

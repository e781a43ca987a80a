package game

import (
	"math"
	"testing"
)

func TestGrantXP_ResidualCarries(t *testing.T) {
	sc := NewScenario()
	sim := sc.Sim
	p := sim.Player()

	sim.grantXP(90)
	if p.Level != 1 || p.XP != 90 {
		t.Fatalf("below threshold: want level 1 xp 90, got level %d xp %d", p.Level, p.XP)
	}

	sim.grantXP(30)
	if p.Level != 2 {
		t.Fatalf("crossing the threshold should level up, got %d", p.Level)
	}
	if p.XP != 20 {
		t.Fatalf("residual xp should carry, got %d", p.XP)
	}
	if p.XPToNext != 150 {
		t.Fatalf("next threshold should grow x1.5, got %d", p.XPToNext)
	}
	if p.MaxHP != 120 || p.HP != 120 {
		t.Fatalf("level up should add and heal 20 hp, got %d/%d", p.HP, p.MaxHP)
	}
	if p.BaseDamage != 30 {
		t.Fatalf("level up should add 5 base damage, got %d", p.BaseDamage)
	}
}

func TestGrantXP_MultipleThresholdsAtOnce(t *testing.T) {
	sc := NewScenario()
	sim := sc.Sim
	p := sim.Player()

	// 100 + 150 = 250 clears two levels; 10 left over.
	sim.grantXP(260)
	if p.Level != 3 {
		t.Fatalf("one big award should clear both thresholds, got level %d", p.Level)
	}
	if p.XP != 10 {
		t.Fatalf("want 10 residual xp, got %d", p.XP)
	}
	if p.XPToNext != 225 {
		t.Fatalf("threshold after two levels should be 225, got %d", p.XPToNext)
	}
}

func TestGrantXP_ScalesMeleeDamage(t *testing.T) {
	sc := NewScenario()
	sim := sc.Sim
	p := sim.Player()

	base := p.Damage()
	sim.grantXP(100)
	// Level 2: base damage 30, character scaling x1.2.
	if got := p.Damage(); got <= base {
		t.Fatalf("damage should rise with level, got %v from %v", got, base)
	}
	if got := p.Damage(); math.Abs(got-36) > 1e-9 {
		t.Fatalf("want effective damage 36, got %v", got)
	}
}

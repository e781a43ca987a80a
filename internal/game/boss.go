package game

import "math"

const (
	bossEnrageHPFrac = 0.3
	bossXPMul        = 3

	fireSpinBolts    = 8
	fireSpinSpeed    = 150.0
	fireSpinCdTicks  = 8 * tickRate
	iceShardSpeed    = 200.0
	iceShardCdTicks  = 4 * tickRate
	frostNovaRadius  = 100.0
	frostNovaCdTicks = 10 * tickRate
	boltSpeed        = 350.0
	boltCdTicks      = 5 * tickRate
	shadowBoltSpeed  = 120.0
	shadowBoltCd     = 3 * tickRate
	darkStormRadius  = 150.0
	darkStormCd      = 12 * tickRate
	darkStormTicks   = 5 * tickRate
	darkStormPeriod  = tickRate / 2 // damage pulse interval while active
	summonCdTicks    = 15 * tickRate
	summonOffsetPx   = 60.0

	bossHasteTicks   = 5 * tickRate
	bossHasteCdTicks = 15 * tickRate
)

// BossKind selects a boss's ability set.
type BossKind int

const (
	BossEliteGuardian BossKind = iota
	BossFlameBerserker
	BossIceMage
	BossLightningStriker
	BossShadowLord
	BossDaggerAssassin
)

func (k BossKind) String() string {
	switch k {
	case BossEliteGuardian:
		return "elite guardian"
	case BossFlameBerserker:
		return "flame berserker"
	case BossIceMage:
		return "ice mage"
	case BossLightningStriker:
		return "lightning striker"
	case BossShadowLord:
		return "shadow lord"
	case BossDaggerAssassin:
		return "dagger assassin"
	default:
		return "unknown"
	}
}

// bossKindFor maps a dungeon level to its guardian.
func bossKindFor(level int) BossKind {
	switch {
	case level >= 10:
		return BossShadowLord
	case level%3 == 0:
		cycle := [3]BossKind{BossFlameBerserker, BossIceMage, BossLightningStriker}
		return cycle[(level/3-1)%3]
	case level >= 4 && level%3 == 1:
		return BossDaggerAssassin
	default:
		return BossEliteGuardian
	}
}

// BossState carries per-boss ability cooldowns and enrage status.
type BossState struct {
	Kind    BossKind
	Enraged bool

	primaryCd int // main ranged ability
	novaCd    int // frost nova / dark storm
	summonCd  int
	stormLeft int // remaining active dark-storm ticks
	stormTick int // pulse phase within an active storm

	hasteLeft int
	hasteCd   int
}

// NewBoss builds the level guardian. Boss stats start from the basic
// archetype and scale much harder with the level index.
func NewBoss(id EntityID, level, playerLevel int, difficulty float64, x, y float64, enchants map[EnchantKind]bool) *Enemy {
	b := baseStats(ArchetypeBasic)
	scale := (1 + 0.3*float64(playerLevel-1)) * difficulty

	kind := bossKindFor(level)
	hp := int(float64(b.hp) * scale * (3.0 + 0.5*float64(level)))
	if enchants[EnchantYellow] {
		hp = int(float64(hp) * 0.85)
	}
	dmg := int(float64(b.damage) * scale * (1.5 + 0.2*float64(level)))

	speed := 80.0 + 10.0*float64(level-1)
	if enchants[EnchantGreen] {
		speed *= 0.75
	}

	e := &Enemy{
		ID:          id,
		Archetype:   ArchetypeBoss,
		X:           x,
		Y:           y,
		Radius:      22,
		HP:          hp,
		MaxHP:       hp,
		Damage:      dmg,
		MoveSpeed:   speed,
		AttackRange: 45,
		SightRange:  enemyDetectRadius * 1.5,
		XPValue:     b.xp * bossXPMul * level,
		attackTicks: int(1.2 * tickRate),
		State:       AIStateIdle,
		Boss:        &BossState{Kind: kind},
	}
	if kind == BossDaggerAssassin {
		e.attackTicks = int(0.6 * tickRate)
	}
	return e
}

// updateBoss runs the guardian's decision tick: simple chase plus the
// kind-specific ability rotation.
func (s *Simulation) updateBoss(e *Enemy, target aiTarget, d float64, canSee bool) {
	bs := e.Boss

	if !bs.Enraged && float64(e.HP) <= bossEnrageHPFrac*float64(e.MaxHP) {
		bs.Enraged = true
		e.MoveSpeed *= 2
		e.attackTicks /= 2
		s.pushNotification(bs.Kind.String() + " is enraged!")
	}

	if bs.primaryCd > 0 {
		bs.primaryCd--
	}
	if bs.novaCd > 0 {
		bs.novaCd--
	}
	if bs.summonCd > 0 {
		bs.summonCd--
	}
	if bs.hasteCd > 0 {
		bs.hasteCd--
	}
	if bs.hasteLeft > 0 {
		bs.hasteLeft--
		if bs.hasteLeft == 0 {
			e.MoveSpeed /= 2
			e.attackTicks *= 2
		}
	}
	s.tickDarkStorm(e)

	switch e.State {
	case AIStateIdle:
		if canSee {
			e.reactTicks = reactDelayTicks
			s.setAIState(e, AIStateAlert)
		}
		return
	case AIStateAlert:
		if !canSee {
			s.setAIState(e, AIStateIdle)
			return
		}
		e.reactTicks--
		if e.reactTicks <= 0 {
			s.setAIState(e, AIStateEngage)
		}
		return
	}

	if !canSee {
		if e.lostTicks > enemyGiveUpTicks {
			s.setAIState(e, AIStateIdle)
			return
		}
		s.moveEnemyToward(e, e.lastSeenX, e.lastSeenY, e.MoveSpeed)
		return
	}

	s.castBossAbilities(e, target, d)

	// Melee pressure.
	if d <= e.AttackRange+target.radius {
		s.setAIState(e, AIStateAttack)
		if e.cooldown <= 0 {
			s.strikeTarget(e, target)
			e.cooldown = e.attackTicks
		}
		return
	}
	s.setAIState(e, AIStateEngage)
	s.moveEnemyToward(e, target.x, target.y, e.MoveSpeed)
}

// castBossAbilities fires whatever is off cooldown for this boss kind.
func (s *Simulation) castBossAbilities(e *Enemy, target aiTarget, d float64) {
	bs := e.Boss
	dmg := float64(e.Damage)

	switch bs.Kind {
	case BossFlameBerserker:
		if bs.primaryCd <= 0 {
			bs.primaryCd = s.bossCd(e, fireSpinCdTicks)
			for i := 0; i < fireSpinBolts; i++ {
				angle := float64(i) * 2 * math.Pi / fireSpinBolts
				s.spawnProjectile(e.ID, e.Controlled, e.X, e.Y, angle, fireSpinSpeed, dmg*0.8, 0, false)
			}
		}

	case BossIceMage:
		if bs.primaryCd <= 0 {
			bs.primaryCd = s.bossCd(e, iceShardCdTicks)
			heading := headingTo(e.X, e.Y, target.x, target.y)
			s.spawnProjectile(e.ID, e.Controlled, e.X, e.Y, heading, iceShardSpeed, dmg*1.5, 0, false)
		}
		if bs.novaCd <= 0 && d <= frostNovaRadius {
			bs.novaCd = s.bossCd(e, frostNovaCdTicks)
			s.strikeTarget(e, target)
		}

	case BossLightningStriker:
		if bs.primaryCd <= 0 {
			bs.primaryCd = s.bossCd(e, boltCdTicks)
			heading := headingTo(e.X, e.Y, target.x, target.y)
			s.spawnProjectile(e.ID, e.Controlled, e.X, e.Y, heading, boltSpeed, dmg*1.8, 0, false)
		}

	case BossShadowLord:
		if bs.primaryCd <= 0 {
			bs.primaryCd = s.bossCd(e, shadowBoltCd)
			heading := headingTo(e.X, e.Y, target.x, target.y)
			s.spawnProjectile(e.ID, e.Controlled, e.X, e.Y, heading, shadowBoltSpeed, dmg, 0, true)
		}
		if bs.novaCd <= 0 && bs.stormLeft <= 0 {
			bs.novaCd = s.bossCd(e, darkStormCd)
			bs.stormLeft = darkStormTicks
			bs.stormTick = 0
		}
		if bs.summonCd <= 0 {
			bs.summonCd = s.bossCd(e, summonCdTicks)
			s.summonMinions(e)
		}

	case BossEliteGuardian:
		if bs.summonCd <= 0 {
			bs.summonCd = s.bossCd(e, summonCdTicks)
			s.summonMinions(e)
		}

	case BossDaggerAssassin:
		if bs.hasteCd <= 0 && bs.hasteLeft <= 0 && d <= e.SightRange {
			bs.hasteCd = bossHasteCdTicks
			bs.hasteLeft = bossHasteTicks
			e.MoveSpeed *= 2
			e.attackTicks /= 2
		}
	}
}

// bossCd halves ability cooldowns once enraged.
func (s *Simulation) bossCd(e *Enemy, base int) int {
	if e.Boss.Enraged {
		return base / 2
	}
	return base
}

// tickDarkStorm pulses area damage around the boss while a storm is up.
func (s *Simulation) tickDarkStorm(e *Enemy) {
	bs := e.Boss
	if bs.stormLeft <= 0 {
		return
	}
	bs.stormLeft--
	bs.stormTick++
	if bs.stormTick%darkStormPeriod != 0 {
		return
	}
	if e.Controlled {
		victim, ok := s.world.Enemy(e.ControlTarget)
		if ok && victim.Alive() && dist(e.X, e.Y, victim.X, victim.Y) <= darkStormRadius {
			s.damageEnemy(victim, e.Damage/3, false)
		}
		return
	}
	p := s.player
	if p.Alive() && dist(e.X, e.Y, p.X, p.Y) <= darkStormRadius {
		s.damagePlayer(e.Damage / 3)
	}
}

// summonMinions spawns three fast minions around the boss.
func (s *Simulation) summonMinions(e *Enemy) {
	offsets := [3]float64{0, 2 * math.Pi / 3, 4 * math.Pi / 3}
	for _, a := range offsets {
		x := e.X + math.Cos(a)*summonOffsetPx
		y := e.Y + math.Sin(a)*summonOffsetPx
		if s.dungeon.Grid.circleBlocked(x, y, 12) {
			continue
		}
		seed := EnemySeed{X: x, Y: y, Archetype: ArchetypeFast}
		minion := NewEnemy(s.world.AllocID(), seed, s.dungeon.Level, s.player.Level, s.difficulty, s.player.Enchants)
		minion.XPValue /= 2
		minion.State = AIStateAlert
		minion.reactTicks = reactDelayTicks
		s.world.Add(minion)
	}
	s.pushNotification(e.Boss.Kind.String() + " summons minions!")
}

package game

import "math"

const (
	reactDelayTicks = 24 // alert-to-engage reaction, 0.4s
	retreatHPFrac   = 0.2
	retreatDurTicks = 3 * tickRate
	flankStandoffPx = 60.0
	flankBonusTicks = 5 * tickRate
	flankSpeedBonus = 1.3 // attack speed multiplier while flanking pays off
	kiteBandFrac    = 0.6 // kite band inner edge as fraction of attack range
)

// AIState is an enemy's behaviour mode.
type AIState int

const (
	AIStateIdle     AIState = iota // unaware, holding position
	AIStateAlert                   // target spotted, reacting
	AIStateEngage                  // closing on the target
	AIStateFlank                   // orbiting to attack from behind
	AIStateKite                    // holding a shooting distance band
	AIStateTankPush                // direct advance, ignores retreat
	AIStateRetreat                 // backing off at low health
	AIStateAttack                  // in range, swinging or shooting
	AIStateStunned                 // frozen, prior state restored after
	AIStateDead                    // terminal
)

func (s AIState) String() string {
	switch s {
	case AIStateIdle:
		return "idle"
	case AIStateAlert:
		return "alert"
	case AIStateEngage:
		return "engage"
	case AIStateFlank:
		return "flank"
	case AIStateKite:
		return "kite"
	case AIStateTankPush:
		return "tankpush"
	case AIStateRetreat:
		return "retreat"
	case AIStateAttack:
		return "attack"
	case AIStateStunned:
		return "stunned"
	case AIStateDead:
		return "dead"
	default:
		return "unknown"
	}
}

// aiTarget is what an enemy is currently trying to kill: the player, or a
// fellow enemy while mind-controlled.
type aiTarget struct {
	x, y   float64
	radius float64
	id     EntityID // 0 radius lookups use this; PlayerID for the player
}

// currentTarget resolves the enemy's target, handling mind-control expiry.
// The bool is false when the enemy has nothing to fight.
func (s *Simulation) currentTarget(e *Enemy) (aiTarget, bool) {
	if e.Controlled {
		t, ok := s.world.Enemy(e.ControlTarget)
		if !ok || e.ControlTicks <= 0 {
			e.Controlled = false
			e.ControlTarget = 0
			s.setAIState(e, AIStateIdle)
			return aiTarget{}, false
		}
		return aiTarget{x: t.X, y: t.Y, radius: t.Radius, id: t.ID}, true
	}
	if !s.player.Alive() {
		return aiTarget{}, false
	}
	p := s.player
	return aiTarget{x: p.X, y: p.Y, radius: p.Radius, id: PlayerID}, true
}

// setAIState transitions an enemy, resetting the per-state tick counter.
// Dead is terminal: no transition ever leaves it.
func (s *Simulation) setAIState(e *Enemy, next AIState) {
	if e.State == AIStateDead || e.State == next {
		return
	}
	e.State = next
	e.stateTicks = 0
}

// updateEnemyAI runs one enemy's decision tick.
func (s *Simulation) updateEnemyAI(e *Enemy) {
	if e.State == AIStateDead {
		return
	}

	if e.cooldown > 0 {
		e.cooldown--
	}
	if e.flankBonusTk > 0 {
		e.flankBonusTk--
	}
	if e.Controlled {
		e.ControlTicks--
	}

	if e.State == AIStateStunned {
		e.stunTicks--
		if e.stunTicks <= 0 {
			s.setAIState(e, e.priorState)
		}
		return
	}

	e.stateTicks++

	target, ok := s.currentTarget(e)
	if !ok {
		if e.State != AIStateIdle {
			s.setAIState(e, AIStateIdle)
		}
		return
	}

	d := dist(e.X, e.Y, target.x, target.y)
	inRange := d <= e.SightRange || e.Controlled // control links track at any distance
	canSee := inRange && s.dungeon.Grid.HasLineOfSight(e.X, e.Y, target.x, target.y)
	if canSee {
		e.lastSeenX, e.lastSeenY = target.x, target.y
		e.lostTicks = 0
	} else {
		e.lostTicks++
	}

	if e.Boss != nil {
		s.updateBoss(e, target, d, canSee)
		return
	}

	switch e.State {
	case AIStateIdle:
		if canSee {
			e.reactTicks = reactDelayTicks
			s.setAIState(e, AIStateAlert)
		}

	case AIStateAlert:
		if !canSee {
			s.setAIState(e, AIStateIdle)
			return
		}
		e.reactTicks--
		if e.reactTicks <= 0 {
			s.setAIState(e, s.engageBranch(e))
		}

	case AIStateEngage, AIStateFlank, AIStateKite, AIStateTankPush:
		if s.shouldRetreat(e, d) {
			s.setAIState(e, AIStateRetreat)
			return
		}
		if e.lostTicks > enemyGiveUpTicks {
			s.setAIState(e, AIStateIdle)
			return
		}
		s.pursue(e, target, d, canSee)

	case AIStateRetreat:
		s.retreatStep(e, target, d)

	case AIStateAttack:
		s.attackStep(e, target, d, canSee)
	}
}

// engageBranch picks the pursuit style for an archetype.
func (s *Simulation) engageBranch(e *Enemy) AIState {
	switch e.Archetype {
	case ArchetypeFast:
		e.flankDir = 1
		if s.rng.Intn(2) == 0 {
			e.flankDir = -1
		}
		return AIStateFlank
	case ArchetypeHeavy:
		return AIStateTankPush
	case ArchetypeRanged, ArchetypeRicochet:
		return AIStateKite
	default:
		return AIStateEngage
	}
}

// shouldRetreat is true for non-heavy enemies at low health with the
// threat closing in. TankPush never retreats.
func (s *Simulation) shouldRetreat(e *Enemy, d float64) bool {
	if e.State == AIStateTankPush || e.Archetype == ArchetypeHeavy {
		return false
	}
	return float64(e.HP) < retreatHPFrac*float64(e.MaxHP) && d < enemyDetectRadius/2
}

// pursue advances one tick of the enemy's pursuit style and transitions
// to Attack when in range.
func (s *Simulation) pursue(e *Enemy, target aiTarget, d float64, canSee bool) {
	if !canSee {
		// Chase the last seen position from memory.
		s.moveEnemyToward(e, e.lastSeenX, e.lastSeenY, e.MoveSpeed)
		return
	}

	if e.Controlled {
		// Controlled enemies charge their victim directly.
		if d <= e.AttackRange+target.radius {
			s.setAIState(e, AIStateAttack)
			return
		}
		s.moveEnemyToward(e, target.x, target.y, e.MoveSpeed)
		return
	}

	switch e.State {
	case AIStateFlank:
		// Orbit to a point behind the target's facing before closing in.
		behind := s.player.Facing + math.Pi + e.flankDir*0.6
		fx := target.x + math.Cos(behind)*flankStandoffPx
		fy := target.y + math.Sin(behind)*flankStandoffPx
		if dist(e.X, e.Y, fx, fy) > 12 && d > e.AttackRange+target.radius {
			s.moveEnemyToward(e, fx, fy, e.MoveSpeed)
			return
		}
		if d <= e.AttackRange+target.radius {
			s.setAIState(e, AIStateAttack)
			return
		}
		s.moveEnemyToward(e, target.x, target.y, e.MoveSpeed)

	case AIStateKite:
		minD := e.AttackRange * kiteBandFrac
		switch {
		case d < minD:
			away := headingTo(target.x, target.y, e.X, e.Y)
			s.moveEnemyToward(e, e.X+math.Cos(away)*tileSize, e.Y+math.Sin(away)*tileSize, e.MoveSpeed)
		case d > e.AttackRange:
			s.moveEnemyToward(e, target.x, target.y, e.MoveSpeed)
		default:
			s.setAIState(e, AIStateAttack)
		}

	default: // Engage, TankPush
		if d <= e.AttackRange+target.radius {
			s.setAIState(e, AIStateAttack)
			return
		}
		s.moveEnemyToward(e, target.x, target.y, e.MoveSpeed)
	}
}

// retreatStep backs the enemy away from its target. A cornered or
// recovered enemy turns and fights again.
func (s *Simulation) retreatStep(e *Enemy, target aiTarget, d float64) {
	if e.stateTicks > retreatDurTicks || d > e.SightRange {
		s.setAIState(e, AIStateIdle)
		return
	}
	away := headingTo(target.x, target.y, e.X, e.Y)
	nx := e.X + math.Cos(away)*e.MoveSpeed*tickDt
	ny := e.Y + math.Sin(away)*e.MoveSpeed*tickDt
	px, py := s.dungeon.Grid.SlideCircle(e.X, e.Y, nx, ny, e.Radius)
	if px == e.X && py == e.Y {
		// Cornered: fight instead.
		s.setAIState(e, AIStateAttack)
		return
	}
	e.X, e.Y = px, py
}

// attackStep fires or swings when the cooldown allows, then falls back to
// pursuit when the target slips out of range.
func (s *Simulation) attackStep(e *Enemy, target aiTarget, d float64, canSee bool) {
	inRange := d <= e.AttackRange+target.radius
	if !canSee || !inRange {
		s.setAIState(e, s.engageBranch(e))
		return
	}
	if e.cooldown > 0 {
		return
	}

	if e.isShooter() {
		heading := headingTo(e.X, e.Y, target.x, target.y)
		s.spawnProjectile(e.ID, e.Controlled, e.X, e.Y, heading,
			e.projectileSpeed, float64(e.Damage), e.bounces, false)
	} else {
		s.strikeTarget(e, target)
	}

	cd := e.attackTicks
	if e.Archetype == ArchetypeFast && s.flankedTarget(e, target) {
		e.flankBonusTk = flankBonusTicks
	}
	if e.flankBonusTk > 0 {
		cd = int(float64(cd) / flankSpeedBonus)
	}
	e.cooldown = cd
}

// flankedTarget reports whether the enemy struck from behind the player's
// facing. Only player targets have a facing to flank.
func (s *Simulation) flankedTarget(e *Enemy, target aiTarget) bool {
	if target.id != PlayerID {
		return false
	}
	toEnemy := headingTo(s.player.X, s.player.Y, e.X, e.Y)
	return math.Abs(angleDiff(toEnemy, s.player.Facing)) > math.Pi/2
}

// moveEnemyToward advances the enemy toward a point with wall sliding.
func (s *Simulation) moveEnemyToward(e *Enemy, tx, ty float64, speed float64) {
	d := dist(e.X, e.Y, tx, ty)
	if d < 1e-6 {
		return
	}
	step := speed * tickDt
	if step > d {
		step = d
	}
	nx := e.X + (tx-e.X)/d*step
	ny := e.Y + (ty-e.Y)/d*step
	e.X, e.Y = s.dungeon.Grid.SlideCircle(e.X, e.Y, nx, ny, e.Radius)
}

// strikeTarget lands a direct hit on whatever the enemy is fighting,
// the player or a mind-control victim.
func (s *Simulation) strikeTarget(e *Enemy, target aiTarget) {
	if target.id == PlayerID {
		s.damagePlayer(e.Damage)
		return
	}
	if victim, ok := s.world.Enemy(target.id); ok {
		dmg, crit := rollDamage(s.rng, float64(e.Damage))
		s.damageEnemy(victim, dmg, crit)
	}
}

// stunEnemy freezes an enemy for the given ticks, remembering its state.
func (s *Simulation) stunEnemy(e *Enemy, ticks int) {
	if e.State == AIStateDead {
		return
	}
	if e.State != AIStateStunned {
		e.priorState = e.State
	}
	e.stunTicks = ticks
	s.setAIState(e, AIStateStunned)
}

// mindControl turns an enemy against the nearest other living enemy. The
// control lock holds until the victim dies or the timer runs out.
func (s *Simulation) mindControl(e *Enemy, durationTicks int) bool {
	victim, ok := s.world.NearestEnemy(e.X, e.Y, e.ID)
	if !ok {
		return false
	}
	e.Controlled = true
	e.ControlTicks = durationTicks
	e.ControlTarget = victim.ID
	e.lastSeenX, e.lastSeenY = victim.X, victim.Y
	s.setAIState(e, AIStateEngage)
	return true
}

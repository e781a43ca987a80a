package game

const (
	tickRate = 60         // simulation ticks per second
	tickDt   = 1.0 / 60.0 // seconds per tick

	playerRadius     = 15.0
	playerBaseSpeed  = 200.0 // pixels per second
	playerBaseHP     = 100
	playerBaseDamage = 25

	hurtImmunityTicks = tickRate / 2 // 0.5s of damage immunity after a hit
	regenDelayTicks   = 3 * tickRate // regen resumes 3s after last damage
	regenPerSecond    = 2

	enemyDetectRadius = 150.0
	enemyGiveUpTicks  = 5 * tickRate // chase memory after losing sight
)

// EntityID is a stable integer handle for an entity. IDs are never reused
// within a run; liveness is checked by lookup, never by pointer identity.
type EntityID int

// PlayerID is the fixed ID of the player entity.
const PlayerID EntityID = 1

// EnemyArchetype selects an enemy's stat block and combat behaviour.
type EnemyArchetype int

const (
	ArchetypeBasic    EnemyArchetype = iota // melee chaser
	ArchetypeFast                           // quick flanker
	ArchetypeHeavy                          // slow bruiser
	ArchetypeRanged                         // bolt shooter, keeps distance
	ArchetypeRicochet                       // shooter with bouncing bolts
	ArchetypeBoss                           // level guardian
)

func (a EnemyArchetype) String() string {
	switch a {
	case ArchetypeBasic:
		return "basic"
	case ArchetypeFast:
		return "fast"
	case ArchetypeHeavy:
		return "heavy"
	case ArchetypeRanged:
		return "ranged"
	case ArchetypeRicochet:
		return "ricochet"
	case ArchetypeBoss:
		return "boss"
	default:
		return "unknown"
	}
}

// Player is the single player-controlled entity.
type Player struct {
	X, Y   float64
	Facing float64 // radians, toward the aim point
	Radius float64

	HP         int
	MaxHP      int
	Level      int
	XP         int
	XPToNext   int
	BaseDamage int

	Weapon   *Item // equipped melee weapon, never nil
	Spell    *Item // equipped spell, may be nil
	Enchants map[EnchantKind]bool

	HasKey bool

	immunityTicks  int
	sinceDamage    int // ticks since last damage taken, drives regen
	regenCarry     float64
	hasteTicks     int
	meleeCooldown  int
	rangedCooldown int
	spellCooldown  int
	swing          *Swing
}

// NewPlayer creates a level-1 player at the given position armed with a sword.
func NewPlayer(x, y float64) *Player {
	return &Player{
		X:          x,
		Y:          y,
		Radius:     playerRadius,
		HP:         playerBaseHP,
		MaxHP:      playerBaseHP,
		Level:      1,
		XPToNext:   xpBaseThreshold,
		BaseDamage: playerBaseDamage,
		Weapon:     NewItem(ItemSword),
		Enchants:   make(map[EnchantKind]bool),
	}
}

// Damage returns the player's effective melee damage before weapon
// multipliers: base damage scaled by character level.
func (p *Player) Damage() float64 {
	return float64(p.BaseDamage) * (1 + float64(p.Level-1)*0.2)
}

// MoveSpeed returns the current movement speed in pixels per second.
func (p *Player) MoveSpeed() float64 {
	speed := playerBaseSpeed
	if p.hasteTicks > 0 {
		speed *= 1.25
	}
	return speed
}

// Alive reports whether the player can still act.
func (p *Player) Alive() bool { return p.HP > 0 }

// Enemy is a hostile (or mind-controlled) dungeon inhabitant.
type Enemy struct {
	ID        EntityID
	Archetype EnemyArchetype

	X, Y   float64
	Radius float64

	HP          int
	MaxHP       int
	Damage      int
	MoveSpeed   float64 // pixels per second
	AttackRange float64
	SightRange  float64
	XPValue     int

	attackTicks     int     // cooldown between attacks, in ticks
	projectileSpeed float64 // >0 for shooter archetypes
	bounces         int     // ricochet bolts only

	// AI bookkeeping
	State        AIState
	priorState   AIState // restored when a stun ends
	stateTicks   int     // ticks spent in the current state
	reactTicks   int     // alert-to-engage delay countdown
	cooldown     int     // ticks until the next attack is allowed
	stunTicks    int
	lastSeenX    float64
	lastSeenY    float64
	lostTicks    int     // ticks since the target was last visible
	flankDir     float64 // +1 or -1, orbit direction while flanking
	flankBonusTk int     // remaining ticks of flank attack-speed bonus

	// Mind control
	Controlled    bool
	ControlTicks  int
	ControlTarget EntityID

	Boss *BossState // nil for regular enemies
}

// Alive reports whether the enemy is still in play.
func (e *Enemy) Alive() bool { return e.State != AIStateDead && e.HP > 0 }

// archetypeBase holds the unscaled stat block for one enemy kind.
type archetypeBase struct {
	hp        int
	damage    int
	xp        int
	cooldownS float64 // seconds between attacks
	speedMul  float64
	sightMul  float64
	radius    float64
	atkRange  float64
	projSpeed float64 // 0 = melee only
	bounces   int
}

func baseStats(a EnemyArchetype) archetypeBase {
	switch a {
	case ArchetypeFast:
		return archetypeBase{hp: 30, damage: 12, xp: 20, cooldownS: 1.0, speedMul: 1.5, sightMul: 1.2, radius: 12, atkRange: 30}
	case ArchetypeHeavy:
		return archetypeBase{hp: 80, damage: 25, xp: 40, cooldownS: 2.5, speedMul: 1.0, sightMul: 1.0, radius: 16, atkRange: 25}
	case ArchetypeRanged:
		return archetypeBase{hp: 40, damage: 20, xp: 35, cooldownS: 2.0, speedMul: 1.0, sightMul: 1.3, radius: 12, atkRange: 100, projSpeed: 300}
	case ArchetypeRicochet:
		return archetypeBase{hp: 45, damage: 22, xp: 50, cooldownS: 2.2, speedMul: 0.9, sightMul: 1.4, radius: 12, atkRange: 120, projSpeed: 280, bounces: 2}
	default: // ArchetypeBasic
		return archetypeBase{hp: 50, damage: 15, xp: 25, cooldownS: 1.5, speedMul: 1.0, sightMul: 1.0, radius: 12, atkRange: 30}
	}
}

// NewEnemy builds an enemy from a spawn seed, scaling stats by the player's
// character level, the run difficulty, and any active enchantments.
func NewEnemy(id EntityID, seed EnemySeed, dungeonLevel, playerLevel int, difficulty float64, enchants map[EnchantKind]bool) *Enemy {
	b := baseStats(seed.Archetype)
	scale := (1 + 0.3*float64(playerLevel-1)) * difficulty

	hp := int(float64(b.hp) * scale)
	if enchants[EnchantYellow] {
		hp = int(float64(hp) * 0.85)
	}
	if hp < 1 {
		hp = 1
	}

	speed := (80.0 + 10.0*float64(dungeonLevel-1)) * b.speedMul
	if enchants[EnchantGreen] {
		speed *= 0.75
	}

	return &Enemy{
		ID:              id,
		Archetype:       seed.Archetype,
		X:               seed.X,
		Y:               seed.Y,
		Radius:          b.radius,
		HP:              hp,
		MaxHP:           hp,
		Damage:          int(float64(b.damage) * scale),
		MoveSpeed:       speed,
		AttackRange:     b.atkRange,
		SightRange:      enemyDetectRadius * b.sightMul,
		XPValue:         b.xp,
		attackTicks:     int(b.cooldownS * tickRate),
		projectileSpeed: b.projSpeed,
		bounces:         b.bounces,
		State:           AIStateIdle,
	}
}

// isShooter reports whether the enemy attacks with projectiles.
func (e *Enemy) isShooter() bool { return e.projectileSpeed > 0 }

// World is the entity table. Enemies are stored in spawn order for
// deterministic iteration and indexed by ID for liveness lookups.
type World struct {
	nextID  EntityID
	Enemies []*Enemy
	byID    map[EntityID]*Enemy
}

// NewWorld creates an empty entity table. IDs start after the player's.
func NewWorld() *World {
	return &World{nextID: PlayerID + 1, byID: make(map[EntityID]*Enemy)}
}

// Reset clears all enemies for a level transition. The ID counter keeps
// climbing so handles from the previous level stay dead forever.
func (w *World) Reset() {
	w.Enemies = w.Enemies[:0]
	w.byID = make(map[EntityID]*Enemy)
}

// AllocID hands out the next entity ID.
func (w *World) AllocID() EntityID {
	id := w.nextID
	w.nextID++
	return id
}

// Add inserts an enemy into the table.
func (w *World) Add(e *Enemy) {
	w.Enemies = append(w.Enemies, e)
	w.byID[e.ID] = e
}

// Enemy looks up a living enemy by ID. The bool is false when the ID is
// unknown or the enemy is dead.
func (w *World) Enemy(id EntityID) (*Enemy, bool) {
	e, ok := w.byID[id]
	if !ok || !e.Alive() {
		return nil, false
	}
	return e, true
}

// RemoveDead sweeps dead enemies out of the table and returns them. Called
// exactly once, at the end of each tick.
func (w *World) RemoveDead() []*Enemy {
	var removed []*Enemy
	kept := w.Enemies[:0]
	for _, e := range w.Enemies {
		if e.State == AIStateDead {
			delete(w.byID, e.ID)
			removed = append(removed, e)
			continue
		}
		kept = append(kept, e)
	}
	w.Enemies = kept
	return removed
}

// NearestEnemy returns the living enemy closest to (x,y), excluding the
// given ID. The bool is false when no candidate exists.
func (w *World) NearestEnemy(x, y float64, exclude EntityID) (*Enemy, bool) {
	var best *Enemy
	bestDist := 0.0
	for _, e := range w.Enemies {
		if !e.Alive() || e.ID == exclude {
			continue
		}
		d := dist(x, y, e.X, e.Y)
		if best == nil || d < bestDist {
			best = e
			bestDist = d
		}
	}
	return best, best != nil
}

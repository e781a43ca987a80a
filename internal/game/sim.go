package game

import (
	"math"
	"math/rand"
	"strconv"

	"github.com/mwrenn/deepdelve/internal/logger"
)

const (
	keyPickupPad   = 20.0 // added to player radius for key pickup
	altarUsePad    = 25.0 // added to player radius for altar activation
	finalLevel     = 10
	damageFeedTTL  = tickRate // how long damage numbers stay in the feed
	groundItemsMin = 3
	groundItemsMax = 7
)

// RunState is the overall outcome of the current run.
type RunState int

const (
	RunPlaying RunState = iota
	RunGameOver
	RunVictory
)

func (r RunState) String() string {
	switch r {
	case RunPlaying:
		return "playing"
	case RunGameOver:
		return "game over"
	case RunVictory:
		return "victory"
	default:
		return "unknown"
	}
}

// InputFrame is one tick of sampled player intent. Button fields are
// edges: true only on the tick the key went down.
type InputFrame struct {
	MoveX, MoveY float64 // normalised movement direction
	AimX, AimY   float64 // world-space aim point
	Melee        bool
	Ranged       bool
	Cast         bool
	Use          bool // pickup / altar
	Drop         bool
}

// Simulation is the complete headless game state. One instance owns
// everything mutable; it has no rendering or OS dependencies.
type Simulation struct {
	rng        *rand.Rand
	settings   Settings
	difficulty float64

	tick  int
	level int
	state RunState

	dungeon *Dungeon
	world   *World
	player  *Player

	projectiles []*Projectile
	ground      []GroundItem

	visible  *VisibilityField
	explored *ExploredMap

	keyTaken bool
	bossID   EntityID
	bossDead bool

	stats      RunStats
	damageFeed []DamageEvent
	notes      []Notification
	audioQueue []AudioEvent
}

// NewSimulation starts a run at dungeon level 1 with a deterministic seed.
func NewSimulation(settings Settings, seed int64) *Simulation {
	s := &Simulation{
		rng:        rand.New(rand.NewSource(seed)), // #nosec G404 -- gameplay randomness
		settings:   settings,
		difficulty: settings.DifficultyScalar(),
		level:      1,
		world:      NewWorld(),
	}
	s.spawnLevel(1, true)
	s.stats.HighestLevel = 1
	return s
}

// spawnLevel generates the dungeon for a level index and populates it.
// When fresh is true the player is created from scratch.
func (s *Simulation) spawnLevel(level int, fresh bool) {
	s.level = level
	dungeon, seeds := GenerateLevel(level, s.rng)
	s.dungeon = dungeon

	if fresh {
		s.player = NewPlayer(dungeon.SpawnX, dungeon.SpawnY)
	} else {
		s.player.X, s.player.Y = dungeon.SpawnX, dungeon.SpawnY
		s.player.HasKey = false
		s.player.swing = nil
	}

	s.world.Reset()
	playerLevel := s.player.Level
	for _, seed := range seeds {
		s.world.Add(NewEnemy(s.world.AllocID(), seed, level, playerLevel, s.difficulty, s.player.Enchants))
	}
	boss := NewBoss(s.world.AllocID(), level, playerLevel, s.difficulty, dungeon.BossX, dungeon.BossY, s.player.Enchants)
	s.world.Add(boss)
	s.bossID = boss.ID
	s.bossDead = false
	s.keyTaken = false

	s.projectiles = s.projectiles[:0]
	s.scatterGroundItems()

	s.visible = ComputeVisibility(s.player.X, s.player.Y, dungeon.Grid)
	s.explored = NewExploredMap(dungeon.Grid.Cols, dungeon.Grid.Rows)
	s.explored.Merge(s.visible)

	logger.Log.WithFields(map[string]interface{}{
		"level":   level,
		"rooms":   len(dungeon.Rooms),
		"enemies": len(s.world.Enemies),
		"boss":    boss.Boss.Kind.String(),
	}).Info("level ready")
}

// scatterGroundItems drops the level's loose loot on random floor tiles.
func (s *Simulation) scatterGroundItems() {
	s.ground = s.ground[:0]
	count := groundItemsMin + s.rng.Intn(groundItemsMax-groundItemsMin+1)
	for i := 0; i < count; i++ {
		for tries := 0; tries < 50; tries++ {
			col := s.rng.Intn(s.dungeon.Grid.Cols)
			row := s.rng.Intn(s.dungeon.Grid.Rows)
			if s.dungeon.Grid.IsWall(col, row) {
				continue
			}
			x, y := TileCenter(col, row)
			kind, ok := rollDrop(s.rng)
			if !ok {
				kind = ItemHealthPotion
			}
			s.ground = append(s.ground, GroundItem{Kind: kind, X: x, Y: y})
			break
		}
	}
}

// Step advances the simulation exactly one tick. Phases run in a fixed
// order; dead entities are removed only in the final sweep.
func (s *Simulation) Step(in InputFrame) {
	if s.state != RunPlaying {
		return
	}
	s.tick++
	s.stats.PlaytimeSeconds += tickDt

	// 1. Timers.
	s.tickPlayerTimers()

	// 2. Player intent: facing, movement, attacks, spell.
	s.applyPlayerInput(in)
	s.advancePlayerSwing()

	// 3. Enemy decisions.
	for _, e := range s.world.Enemies {
		s.updateEnemyAI(e)
	}

	// 4. Projectiles.
	s.stepProjectiles()

	// 5. Regen.
	s.tickRegen()

	// 6. Pickups and the level key.
	s.handlePickups(in)

	// 7. Visibility.
	s.visible = ComputeVisibility(s.player.X, s.player.Y, s.dungeon.Grid)
	s.explored.Merge(s.visible)

	// 8. Altar.
	s.handleAltar(in)

	// 9. End-of-tick death sweep.
	s.sweepDead()

	// 10. Expire transient feeds.
	s.expireFeeds()

	if !s.player.Alive() && s.state == RunPlaying {
		s.state = RunGameOver
		s.stats.Deaths++
		s.pushAudio(AudioPlayerDeath)
		logger.Log.WithField("level", s.level).Info("player defeated")
	}
}

func (s *Simulation) tickPlayerTimers() {
	p := s.player
	if p.immunityTicks > 0 {
		p.immunityTicks--
	}
	p.sinceDamage++
	if p.hasteTicks > 0 {
		p.hasteTicks--
	}
	if p.meleeCooldown > 0 {
		p.meleeCooldown--
	}
	if p.rangedCooldown > 0 {
		p.rangedCooldown--
	}
	if p.spellCooldown > 0 {
		p.spellCooldown--
	}
}

func (s *Simulation) applyPlayerInput(in InputFrame) {
	p := s.player
	if !p.Alive() {
		return
	}

	p.Facing = headingTo(p.X, p.Y, in.AimX, in.AimY)

	// Normalise diagonal movement.
	mx, my := in.MoveX, in.MoveY
	if l := math.Hypot(mx, my); l > 1 {
		mx /= l
		my /= l
	}
	speed := p.MoveSpeed()
	nx := p.X + mx*speed*tickDt
	ny := p.Y + my*speed*tickDt
	p.X, p.Y = s.dungeon.Grid.SlideCircle(p.X, p.Y, nx, ny, p.Radius)

	if in.Melee {
		s.startPlayerSwing(p.Facing)
	}
	if in.Ranged {
		s.firePlayerBolt()
	}
	if in.Cast {
		s.castSpell()
	}
	if in.Drop {
		s.dropSpell()
	}
}

// firePlayerBolt launches the basic ranged attack at half melee damage.
func (s *Simulation) firePlayerBolt() {
	p := s.player
	if p.rangedCooldown > 0 {
		return
	}
	p.rangedCooldown = tickRate // one second between bolts
	s.spawnProjectile(PlayerID, true, p.X, p.Y, p.Facing, playerBoltSpeed, p.Damage()/2, 0, false)
	s.pushAudio(AudioSwing)
}

// castSpell activates the equipped spell if its cooldown allows.
func (s *Simulation) castSpell() {
	p := s.player
	if p.Spell == nil || p.spellCooldown > 0 {
		return
	}

	switch p.Spell.Kind {
	case ItemHaste:
		p.hasteTicks = hasteDurationTicks

	case ItemPowerPulse:
		for _, e := range s.world.Enemies {
			if !e.Alive() {
				continue
			}
			if dist(p.X, p.Y, e.X, e.Y) > powerPulseRadiusPx {
				continue
			}
			if !s.dungeon.Grid.HasLineOfSight(p.X, p.Y, e.X, e.Y) {
				continue
			}
			dmg, crit := rollDamage(s.rng, powerPulseDamage)
			s.damageEnemy(e, dmg, crit)
			s.stunEnemy(e, powerPulseStunTicks) // shock dazes survivors
		}

	case ItemTurnCoat:
		target := s.nearestVisibleEnemy()
		if target == nil || !s.mindControl(target, mindControlTicks) {
			return // no valid target, no cooldown spent
		}
		s.pushNotification("Turned " + target.Archetype.String() + "!")

	case ItemRicochetBolt:
		s.spawnProjectile(PlayerID, true, p.X, p.Y, p.Facing, playerBoltSpeed,
			p.Damage()/2, ricochetBoltBounces, false)
	}

	p.spellCooldown = spellCooldownTicks(p.Spell.Kind)
	s.pushAudio(AudioSpellCast)
}

// nearestVisibleEnemy finds the closest living enemy in sight range with
// a clear line from the player.
func (s *Simulation) nearestVisibleEnemy() *Enemy {
	p := s.player
	var best *Enemy
	bestD := sightRadiusPx
	for _, e := range s.world.Enemies {
		if !e.Alive() {
			continue
		}
		d := dist(p.X, p.Y, e.X, e.Y)
		if d > bestD {
			continue
		}
		if !s.dungeon.Grid.HasLineOfSight(p.X, p.Y, e.X, e.Y) {
			continue
		}
		best = e
		bestD = d
	}
	return best
}

// dropSpell puts the equipped spell back on the floor.
func (s *Simulation) dropSpell() {
	p := s.player
	if p.Spell == nil {
		return
	}
	s.ground = append(s.ground, GroundItem{Kind: p.Spell.Kind, X: p.X, Y: p.Y})
	p.Spell = nil
	p.spellCooldown = 0
}

// tickRegen heals the player slowly once enough time has passed since the
// last hit. Fractional healing carries between ticks.
func (s *Simulation) tickRegen() {
	p := s.player
	if !p.Alive() || p.HP >= p.MaxHP || p.sinceDamage < regenDelayTicks {
		return
	}
	p.regenCarry += regenPerSecond * tickDt
	if p.regenCarry >= 1 {
		heal := int(p.regenCarry)
		p.regenCarry -= float64(heal)
		p.HP += heal
		if p.HP > p.MaxHP {
			p.HP = p.MaxHP
		}
	}
}

// handlePickups walks the ground items: health applies on contact, gear
// equips on the use key, and the level key is grabbed by proximity.
func (s *Simulation) handlePickups(in InputFrame) {
	p := s.player
	if !p.Alive() {
		return
	}

	kept := make([]GroundItem, 0, len(s.ground))
	usePending := in.Use
	for _, gi := range s.ground {
		d := dist(p.X, p.Y, gi.X, gi.Y)
		switch {
		case gi.Kind.Category() == CategoryHealth && d <= pickupRadiusPx:
			p.HP += healthItemHeal
			if p.HP > p.MaxHP {
				p.HP = p.MaxHP
			}
			s.stats.ItemsCollected++
			s.pushNotification("Recovered " + strconv.Itoa(healthItemHeal) + " health")
			s.pushAudio(AudioPickup)

		case usePending && d <= pickupRadiusPx:
			if swapped, ok := s.equip(gi.Kind); ok {
				kept = append(kept, GroundItem{Kind: swapped, X: p.X, Y: p.Y})
			}
			s.stats.ItemsCollected++
			s.pushAudio(AudioPickup)
			usePending = false // one equip per press

		default:
			kept = append(kept, gi)
		}
	}
	s.ground = kept

	if !s.keyTaken && dist(p.X, p.Y, s.dungeon.KeyX, s.dungeon.KeyY) <= p.Radius+keyPickupPad {
		s.keyTaken = true
		p.HasKey = true
		s.pushNotification("Found the level key")
		s.pushAudio(AudioPickup)
	}
}

// equip slots an item, returning any previous occupant of the slot so the
// caller can drop it at the player's feet. Duplicate enchantments are
// absorbed silently.
func (s *Simulation) equip(kind ItemKind) (ItemKind, bool) {
	p := s.player
	switch kind.Category() {
	case CategoryWeapon:
		old := p.Weapon.Kind
		p.Weapon = NewItem(kind)
		s.pushNotification("Equipped " + kind.String())
		return old, true

	case CategorySpell:
		var old ItemKind
		hadOld := p.Spell != nil
		if hadOld {
			old = p.Spell.Kind
		}
		p.Spell = NewItem(kind)
		p.spellCooldown = 0
		s.pushNotification("Learned " + kind.String())
		return old, hadOld

	case CategoryEnchant:
		ek, _ := enchantFor(kind)
		if !p.Enchants[ek] {
			p.Enchants[ek] = true
			if ek == EnchantRed {
				oldMax := p.MaxHP
				p.MaxHP = int(float64(p.MaxHP) * 1.25)
				p.HP += p.MaxHP - oldMax
			}
			s.pushNotification("Attuned " + kind.String())
		}
	}
	return 0, false
}

// handleAltar checks the exit condition: stand at the altar with the key
// after the boss has fallen, then press use.
func (s *Simulation) handleAltar(in InputFrame) {
	if !in.Use || !s.player.HasKey || !s.bossDead {
		return
	}
	if dist(s.player.X, s.player.Y, s.dungeon.AltarX, s.dungeon.AltarY) > s.player.Radius+altarUsePad {
		return
	}

	s.stats.LevelsCompleted++
	s.pushAudio(AudioAltar)

	if s.level >= finalLevel {
		s.state = RunVictory
		logger.Log.Info("the depths are cleared")
		return
	}

	next := s.level + 1
	if next > s.stats.HighestLevel {
		s.stats.HighestLevel = next
	}
	s.pushNotification("Descending to level " + strconv.Itoa(next))
	s.spawnLevel(next, false)
}

// sweepDead removes dead enemies, pays out XP and drops, and flags boss
// kills. This is the only place entities leave the world.
func (s *Simulation) sweepDead() {
	for _, e := range s.world.RemoveDead() {
		s.grantXP(e.XPValue)
		s.stats.EnemiesDefeated++
		s.pushAudio(AudioEnemyDeath)

		if e.ID == s.bossID {
			s.bossDead = true
			s.stats.BossesDefeated++
			s.pushNotification(e.Boss.Kind.String() + " has fallen!")
			s.pushAudio(AudioBossDefeat)
			for _, kind := range rollBossDrops(s.rng) {
				s.dropAt(kind, e.X, e.Y)
			}
			continue
		}
		if kind, ok := rollDrop(s.rng); ok {
			s.dropAt(kind, e.X, e.Y)
		}
	}
}

// dropAt places an item near a point with a small scatter.
func (s *Simulation) dropAt(kind ItemKind, x, y float64) {
	ox := (s.rng.Float64() - 0.5) * tileSize
	oy := (s.rng.Float64() - 0.5) * tileSize
	if s.dungeon.Grid.circleBlocked(x+ox, y+oy, 4) {
		ox, oy = 0, 0
	}
	s.ground = append(s.ground, GroundItem{Kind: kind, X: x + ox, Y: y + oy})
}

// damageEnemy applies damage to an enemy, clamping at zero and marking
// death exactly once. Dead enemies stay in the world until the sweep.
func (s *Simulation) damageEnemy(e *Enemy, dmg int, crit bool) {
	if !e.Alive() {
		return
	}
	e.HP -= dmg
	if e.HP < 0 {
		e.HP = 0
	}
	s.stats.DamageDealt += dmg
	s.damageFeed = append(s.damageFeed, DamageEvent{
		Target: e.ID, Amount: dmg, Crit: crit, X: e.X, Y: e.Y, Tick: s.tick,
	})
	s.pushAudio(AudioHit)

	if e.HP == 0 {
		e.State = AIStateDead
		return
	}
	if e.State == AIStateIdle {
		// Getting hit wakes an enemy even without line of sight.
		e.reactTicks = reactDelayTicks
		s.setAIState(e, AIStateAlert)
	}
}

// damagePlayer applies damage to the player, honouring the post-hit
// immunity window and the black enchantment.
func (s *Simulation) damagePlayer(dmg int) {
	p := s.player
	if !p.Alive() || p.immunityTicks > 0 {
		return
	}
	if p.Enchants[EnchantBlack] {
		dmg = int(float64(dmg) * 0.9)
	}
	if dmg < 1 {
		dmg = 1
	}
	p.HP -= dmg
	if p.HP < 0 {
		p.HP = 0
	}
	p.immunityTicks = hurtImmunityTicks
	p.sinceDamage = 0
	s.stats.DamageTaken += dmg
	s.damageFeed = append(s.damageFeed, DamageEvent{
		Target: PlayerID, Amount: dmg, X: p.X, Y: p.Y, Tick: s.tick,
	})
	s.pushAudio(AudioPlayerHurt)
}

// expireFeeds drops aged-out damage numbers and notifications.
func (s *Simulation) expireFeeds() {
	feed := s.damageFeed[:0]
	for _, ev := range s.damageFeed {
		if s.tick-ev.Tick < damageFeedTTL {
			feed = append(feed, ev)
		}
	}
	s.damageFeed = feed

	notes := s.notes[:0]
	for _, n := range s.notes {
		if s.tick-n.Tick < notificationTTLTicks {
			notes = append(notes, n)
		}
	}
	s.notes = notes
}

func (s *Simulation) pushNotification(text string) {
	s.notes = append(s.notes, Notification{Text: text, Tick: s.tick})
}

func (s *Simulation) pushAudio(ev AudioEvent) {
	s.audioQueue = append(s.audioQueue, ev)
}

// DrainAudio returns and clears the pending audio triggers.
func (s *Simulation) DrainAudio() []AudioEvent {
	out := s.audioQueue
	s.audioQueue = nil
	return out
}

// Accessors for the render layer and external harnesses.

func (s *Simulation) Tick() int                      { return s.tick }
func (s *Simulation) Level() int                     { return s.level }
func (s *Simulation) State() RunState                { return s.state }
func (s *Simulation) Player() *Player                { return s.player }
func (s *Simulation) Enemies() []*Enemy              { return s.world.Enemies }
func (s *Simulation) Projectiles() []*Projectile     { return s.projectiles }
func (s *Simulation) GroundItems() []GroundItem      { return s.ground }
func (s *Simulation) Dungeon() *Dungeon              { return s.dungeon }
func (s *Simulation) Visible() *VisibilityField      { return s.visible }
func (s *Simulation) Explored() *ExploredMap         { return s.explored }
func (s *Simulation) DamageFeed() []DamageEvent      { return s.damageFeed }
func (s *Simulation) Notifications() []Notification { return s.notes }
func (s *Simulation) Stats() RunStats                { return s.stats }
func (s *Simulation) KeyTaken() bool                 { return s.keyTaken }
func (s *Simulation) BossDefeated() bool             { return s.bossDead }

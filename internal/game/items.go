package game

import "math/rand"

const (
	pickupRadiusPx = 32.0
	healthItemHeal = 35
	dropChance     = 0.85
	baseMeleeRange = 40.0
	baseMeleeCdS   = 0.5 // seconds between swings, before weapon speed
)

// ItemCategory groups items by equipment slot.
type ItemCategory int

const (
	CategoryWeapon ItemCategory = iota
	CategorySpell
	CategoryEnchant
	CategoryHealth
)

// ItemKind identifies a concrete item.
type ItemKind int

const (
	ItemSword ItemKind = iota
	ItemSpear
	ItemMace
	ItemDagger
	ItemHaste
	ItemPowerPulse
	ItemTurnCoat
	ItemRicochetBolt
	ItemEnchantRed
	ItemEnchantYellow
	ItemEnchantGreen
	ItemEnchantBlack
	ItemHealthPotion
	itemKindCount // sentinel
)

func (k ItemKind) String() string {
	switch k {
	case ItemSword:
		return "sword"
	case ItemSpear:
		return "spear"
	case ItemMace:
		return "mace"
	case ItemDagger:
		return "dagger"
	case ItemHaste:
		return "haste"
	case ItemPowerPulse:
		return "power pulse"
	case ItemTurnCoat:
		return "turn coat"
	case ItemRicochetBolt:
		return "ricochet bolt"
	case ItemEnchantRed:
		return "red enchantment"
	case ItemEnchantYellow:
		return "yellow enchantment"
	case ItemEnchantGreen:
		return "green enchantment"
	case ItemEnchantBlack:
		return "black enchantment"
	case ItemHealthPotion:
		return "health potion"
	default:
		return "unknown"
	}
}

// Category returns the equipment slot this item occupies.
func (k ItemKind) Category() ItemCategory {
	switch k {
	case ItemSword, ItemSpear, ItemMace, ItemDagger:
		return CategoryWeapon
	case ItemHaste, ItemPowerPulse, ItemTurnCoat, ItemRicochetBolt:
		return CategorySpell
	case ItemEnchantRed, ItemEnchantYellow, ItemEnchantGreen, ItemEnchantBlack:
		return CategoryEnchant
	default:
		return CategoryHealth
	}
}

// Item is an equippable or consumable object.
type Item struct {
	Kind ItemKind
}

// NewItem creates an item of the given kind.
func NewItem(kind ItemKind) *Item {
	return &Item{Kind: kind}
}

// GroundItem is an item lying on the dungeon floor.
type GroundItem struct {
	Kind ItemKind
	X, Y float64
}

// weaponProfile describes a melee weapon's swing geometry and modifiers.
// Thrust weapons test a line segment instead of an arc.
type weaponProfile struct {
	arcDeg     float64 // swing arc width; ignored for thrust weapons
	rangeMul   float64 // multiplier on the base melee range
	fixedRange float64 // overrides rangeMul when > 0
	dmgMul     float64
	speedMul   float64 // attack speed: higher = shorter cooldown
	knockback  float64 // pixels of shove applied on hit
	thrust     bool
}

func weaponStats(k ItemKind) weaponProfile {
	switch k {
	case ItemSpear:
		return weaponProfile{arcDeg: 15, rangeMul: 2.5, dmgMul: 0.8, speedMul: 1.5, thrust: true}
	case ItemMace:
		return weaponProfile{arcDeg: 145, rangeMul: 0.8, dmgMul: 1.2, speedMul: 1.0, knockback: 60}
	case ItemDagger:
		return weaponProfile{arcDeg: 165, fixedRange: 45, rangeMul: 1.0, dmgMul: 0.7, speedMul: 2.0}
	default: // sword
		return weaponProfile{arcDeg: 90, rangeMul: 1.0, dmgMul: 1.5, speedMul: 1.0}
	}
}

// swordArcDeg widens the sword's swing arc with character level, capped.
func swordArcDeg(playerLevel int) float64 {
	arc := 90.0 + 2.0*float64(playerLevel-1)
	if arc > 120 {
		arc = 120
	}
	return arc
}

// weaponArcDeg returns the effective swing arc for a weapon at the given
// character level.
func weaponArcDeg(k ItemKind, playerLevel int) float64 {
	if k == ItemSword {
		return swordArcDeg(playerLevel)
	}
	return weaponStats(k).arcDeg
}

// weaponReach returns the effective melee reach in pixels.
func weaponReach(k ItemKind) float64 {
	p := weaponStats(k)
	if p.fixedRange > 0 {
		return p.fixedRange
	}
	return baseMeleeRange * p.rangeMul
}

// weaponCooldownTicks returns the swing cooldown in ticks.
func weaponCooldownTicks(k ItemKind) int {
	return int(baseMeleeCdS * tickRate / weaponStats(k).speedMul)
}

// EnchantKind is a passive run-long modifier. Only one of each colour can
// be active; picking up a duplicate has no further effect.
type EnchantKind int

const (
	EnchantRed    EnchantKind = iota // player max HP x1.25
	EnchantYellow                    // enemy max HP -15%
	EnchantGreen                     // enemy speed -25%
	EnchantBlack                     // damage taken -10%
)

func (e EnchantKind) String() string {
	switch e {
	case EnchantRed:
		return "red"
	case EnchantYellow:
		return "yellow"
	case EnchantGreen:
		return "green"
	case EnchantBlack:
		return "black"
	default:
		return "unknown"
	}
}

// enchantFor maps an enchantment item to its effect kind.
func enchantFor(k ItemKind) (EnchantKind, bool) {
	switch k {
	case ItemEnchantRed:
		return EnchantRed, true
	case ItemEnchantYellow:
		return EnchantYellow, true
	case ItemEnchantGreen:
		return EnchantGreen, true
	case ItemEnchantBlack:
		return EnchantBlack, true
	default:
		return 0, false
	}
}

// Spell timing and effect constants.
const (
	hasteDurationTicks  = 5 * tickRate
	powerPulseCdTicks   = 8 * tickRate
	powerPulseRadiusPx  = 120.0
	powerPulseDamage    = 60
	powerPulseStunTicks = tickRate / 2
	turnCoatCdTicks     = 4 * tickRate
	mindControlTicks    = 10 * tickRate
	ricochetBoltCdTicks = int(1.5 * tickRate)
	ricochetBoltBounces = 2
)

// spellCooldownTicks returns the cooldown applied after casting.
func spellCooldownTicks(k ItemKind) int {
	switch k {
	case ItemPowerPulse:
		return powerPulseCdTicks
	case ItemTurnCoat:
		return turnCoatCdTicks
	case ItemRicochetBolt:
		return ricochetBoltCdTicks
	default: // haste recasts freely
		return 0
	}
}

// rollDrop picks a drop for a defeated enemy. The bool is false when
// nothing drops.
func rollDrop(rng *rand.Rand) (ItemKind, bool) {
	if rng.Float64() >= dropChance {
		return 0, false
	}
	// Category weights: weapon 3, spell 2, enchantment 2, health 3.
	roll := rng.Intn(10)
	switch {
	case roll < 3:
		weapons := []ItemKind{ItemSword, ItemSpear, ItemMace, ItemDagger}
		return weapons[rng.Intn(len(weapons))], true
	case roll < 5:
		spells := []ItemKind{ItemHaste, ItemPowerPulse, ItemTurnCoat, ItemRicochetBolt}
		return spells[rng.Intn(len(spells))], true
	case roll < 7:
		enchants := []ItemKind{ItemEnchantRed, ItemEnchantYellow, ItemEnchantGreen, ItemEnchantBlack}
		return enchants[rng.Intn(len(enchants))], true
	default:
		return ItemHealthPotion, true
	}
}

// rollBossDrops returns the guaranteed haul for a defeated boss: a spread
// of health potions plus one high-tier item.
func rollBossDrops(rng *rand.Rand) []ItemKind {
	n := 3 + rng.Intn(4)
	drops := make([]ItemKind, 0, n+1)
	for i := 0; i < n; i++ {
		drops = append(drops, ItemHealthPotion)
	}
	highTier := []ItemKind{ItemDagger, ItemMace, ItemRicochetBolt, ItemTurnCoat,
		ItemEnchantRed, ItemEnchantBlack}
	drops = append(drops, highTier[rng.Intn(len(highTier))])
	return drops
}

package game

import (
	"fmt"
	"sort"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/mwrenn/deepdelve/internal/logger"
)

// BehaviourReport summarises the live simulation: run stats, the player
// block, and a census of enemy AI states. Used by the F9 clipboard export
// and the headless report tool.
func BehaviourReport(sim *Simulation) string {
	var b strings.Builder

	st := sim.Stats()
	p := sim.Player()

	fmt.Fprintf(&b, "=== deep delve report (tick %d) ===\n", sim.Tick())
	fmt.Fprintf(&b, "depth: %d  state: %s\n", sim.Level(), sim.State())
	fmt.Fprintf(&b, "player: lvl %d  hp %d/%d  xp %d/%d  weapon %s\n",
		p.Level, p.HP, p.MaxHP, p.XP, p.XPToNext, p.Weapon.Kind)
	if p.Spell != nil {
		fmt.Fprintf(&b, "spell: %s\n", p.Spell.Kind)
	}
	if len(p.Enchants) > 0 {
		var names []string
		for k := range p.Enchants {
			names = append(names, k.String())
		}
		sort.Strings(names)
		fmt.Fprintf(&b, "enchantments: %s\n", strings.Join(names, ", "))
	}
	fmt.Fprintf(&b, "key: %v  boss down: %v\n", sim.KeyTaken(), sim.BossDefeated())

	// Enemy census by archetype and AI state.
	type bucket struct {
		total  int
		states map[AIState]int
	}
	census := map[EnemyArchetype]*bucket{}
	for _, e := range sim.Enemies() {
		bk := census[e.Archetype]
		if bk == nil {
			bk = &bucket{states: map[AIState]int{}}
			census[e.Archetype] = bk
		}
		bk.total++
		bk.states[e.State]++
	}
	fmt.Fprintf(&b, "enemies: %d alive\n", len(sim.Enemies()))
	for arch := ArchetypeBasic; arch <= ArchetypeBoss; arch++ {
		bk := census[arch]
		if bk == nil {
			continue
		}
		var parts []string
		for st := AIStateIdle; st <= AIStateDead; st++ {
			if n := bk.states[st]; n > 0 {
				parts = append(parts, fmt.Sprintf("%s:%d", st, n))
			}
		}
		fmt.Fprintf(&b, "  %-8s %3d  (%s)\n", arch, bk.total, strings.Join(parts, " "))
	}

	fmt.Fprintf(&b, "run: kills %d  bosses %d  dealt %d  taken %d  items %d  playtime %.1fs\n",
		st.EnemiesDefeated, st.BossesDefeated, st.DamageDealt, st.DamageTaken,
		st.ItemsCollected, st.PlaytimeSeconds)
	return b.String()
}

// copyReport puts the behaviour report on the system clipboard.
func (g *Game) copyReport() {
	report := BehaviourReport(g.sim)
	if err := clipboard.WriteAll(report); err != nil {
		logger.Log.WithError(err).Warn("could not copy report to clipboard")
		return
	}
	logger.Log.Info("behaviour report copied to clipboard")
}

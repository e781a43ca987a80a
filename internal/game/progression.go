package game

import "fmt"

const (
	xpBaseThreshold = 100
	xpThresholdMul  = 1.5
	levelUpHPGain   = 20
	levelUpDmgGain  = 5
)

// grantXP awards experience and applies any level ups. Residual XP past a
// threshold carries into the next level; multiple thresholds can be
// crossed by a single award.
func (s *Simulation) grantXP(amount int) {
	p := s.player
	p.XP += amount
	s.stats.XPGained += amount

	for p.XP >= p.XPToNext {
		p.XP -= p.XPToNext
		p.Level++
		p.XPToNext = int(float64(p.XPToNext) * xpThresholdMul)

		p.MaxHP += levelUpHPGain
		p.HP += levelUpHPGain // level up heals by the gained amount
		if p.HP > p.MaxHP {
			p.HP = p.MaxHP
		}
		p.BaseDamage += levelUpDmgGain

		s.pushNotification(fmt.Sprintf("Level %d!", p.Level))
		s.pushAudio(AudioLevelUp)
	}
}

package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	hudBarW = 220
	hudBarH = 14
)

// drawHUD paints the fixed-position status layer over the world view.
func (g *Game) drawHUD(screen *ebiten.Image) {
	sim := g.sim
	p := sim.Player()

	// Health bar.
	vector.DrawFilledRect(screen, 16, 16, hudBarW, hudBarH,
		color.RGBA{R: 40, G: 20, B: 20, A: 220}, false)
	hpFrac := float32(p.HP) / float32(p.MaxHP)
	vector.DrawFilledRect(screen, 16, 16, hudBarW*hpFrac, hudBarH,
		color.RGBA{R: 200, G: 50, B: 50, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("HP %d/%d", p.HP, p.MaxHP), 20, 15)

	// XP bar.
	vector.DrawFilledRect(screen, 16, 34, hudBarW, hudBarH,
		color.RGBA{R: 25, G: 30, B: 20, A: 220}, false)
	xpFrac := float32(p.XP) / float32(p.XPToNext)
	vector.DrawFilledRect(screen, 16, 34, hudBarW*xpFrac, hudBarH,
		color.RGBA{R: 120, G: 190, B: 60, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("LVL %d  %d/%d xp", p.Level, p.XP, p.XPToNext), 20, 33)

	// Loadout and objective line.
	loadout := "weapon: " + p.Weapon.Kind.String()
	if p.Spell != nil {
		loadout += "  spell: " + p.Spell.Kind.String()
	}
	ebitenutil.DebugPrintAt(screen, loadout, 16, 54)

	objective := fmt.Sprintf("depth %d", sim.Level())
	if p.HasKey {
		objective += "  [key]"
	}
	if sim.BossDefeated() {
		objective += "  [boss slain]"
	}
	ebitenutil.DebugPrintAt(screen, objective, 16, 70)

	// Notifications, newest at the bottom.
	notes := sim.Notifications()
	for i, n := range notes {
		y := screenH - 24 - 16*(len(notes)-1-i)
		ebitenutil.DebugPrintAt(screen, n.Text, 16, y)
	}

	if g.settings.ShowFPS {
		ebitenutil.DebugPrintAt(screen,
			fmt.Sprintf("FPS %0.1f  TPS %0.1f", ebiten.ActualFPS(), ebiten.ActualTPS()),
			screenW-140, 8)
	}

	switch {
	case g.paused:
		g.drawCenterText(screen, "PAUSED", "press P to resume")
	case sim.State() == RunGameOver:
		g.drawCenterText(screen, "YOU DIED",
			fmt.Sprintf("depth %d reached -- press R to try again", sim.Stats().HighestLevel))
	case sim.State() == RunVictory:
		g.drawCenterText(screen, "THE DEPTHS ARE CLEARED",
			"press R for a new run")
	}
}

// drawCenterText dims the screen and prints a two-line banner.
func (g *Game) drawCenterText(screen *ebiten.Image, title, sub string) {
	vector.DrawFilledRect(screen, 0, 0, screenW, screenH,
		color.RGBA{A: 150}, false)
	ebitenutil.DebugPrintAt(screen, title, screenW/2-len(title)*3, screenH/2-16)
	ebitenutil.DebugPrintAt(screen, sub, screenW/2-len(sub)*3, screenH/2+4)
}

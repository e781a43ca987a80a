package game

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/mwrenn/deepdelve/internal/audio"
	"github.com/mwrenn/deepdelve/internal/logger"
)

const (
	screenW = 1280
	screenH = 800
)

// Game is the Ebiten shell around the simulation: input sampling, camera,
// rendering, audio dispatch, and stats persistence.
type Game struct {
	sim      *Simulation
	settings Settings
	snd      *audio.Manager

	worldBuf *ebiten.Image // full dungeon render target
	camX     float64
	camY     float64

	prevKeys       map[ebiten.Key]bool
	prevMouseLeft  bool
	prevMouseRight bool

	paused bool

	totals    RunStats // lifetime stats loaded at startup
	lastLevel int
	lastState RunState
	runSaved  bool
}

// New builds the playable game around a fresh simulation.
func New(settings Settings, snd *audio.Manager, totals RunStats) *Game {
	g := &Game{
		settings: settings,
		snd:      snd,
		totals:   totals,
		prevKeys: make(map[ebiten.Key]bool),
	}
	g.startRun()
	return g
}

// startRun begins a new simulation and resets per-run bookkeeping.
func (g *Game) startRun() {
	g.sim = NewSimulation(g.settings, time.Now().UnixNano())
	g.lastLevel = g.sim.Level()
	g.lastState = RunPlaying
	g.runSaved = false
	g.worldBuf = ebiten.NewImage(levelCols*tileSize, levelRows*tileSize)
}

// keyPressed is an edge trigger: true only on the frame the key went down.
func (g *Game) keyPressed(k ebiten.Key) bool {
	down := ebiten.IsKeyPressed(k)
	was := g.prevKeys[k]
	g.prevKeys[k] = down
	return down && !was
}

func (g *Game) Update() error {
	if g.keyPressed(ebiten.KeyEscape) {
		g.persistStats()
		return ebiten.Termination
	}
	if g.keyPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if g.keyPressed(ebiten.KeyF1) {
		g.settings.ShowDebug = !g.settings.ShowDebug
	}
	if g.keyPressed(ebiten.KeyF9) {
		g.copyReport()
	}

	if g.sim.State() != RunPlaying {
		g.persistStats()
		if g.keyPressed(ebiten.KeyR) {
			g.startRun()
		}
		return nil
	}
	if g.paused {
		return nil
	}

	g.sim.Step(g.sampleInput())
	g.dispatchAudio()

	// Save lifetime stats on every level transition.
	if g.sim.Level() != g.lastLevel {
		g.lastLevel = g.sim.Level()
		g.saveSnapshot()
	}
	return nil
}

// sampleInput reads the keyboard and mouse into one input frame.
// Movement is held state; every action button is an edge.
func (g *Game) sampleInput() InputFrame {
	var in InputFrame

	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		in.MoveY -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		in.MoveY += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		in.MoveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		in.MoveX += 1
	}

	mx, my := ebiten.CursorPosition()
	in.AimX = float64(mx) + g.camX
	in.AimY = float64(my) + g.camY

	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	in.Melee = left && !g.prevMouseLeft
	g.prevMouseLeft = left

	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	in.Ranged = right && !g.prevMouseRight
	g.prevMouseRight = right

	in.Cast = g.keyPressed(ebiten.KeySpace)
	in.Use = g.keyPressed(ebiten.KeyE)
	in.Drop = g.keyPressed(ebiten.KeyQ)
	return in
}

// dispatchAudio maps simulation sound triggers onto synthesised tones.
func (g *Game) dispatchAudio() {
	for _, ev := range g.sim.DrainAudio() {
		switch ev {
		case AudioSwing:
			g.snd.PlayTone(220, 80*time.Millisecond, audio.WaveSaw)
		case AudioHit:
			g.snd.PlayTone(160, 60*time.Millisecond, audio.WaveSquare)
		case AudioPlayerHurt:
			g.snd.PlayTone(110, 150*time.Millisecond, audio.WaveSquare)
		case AudioEnemyDeath:
			g.snd.PlayTone(90, 200*time.Millisecond, audio.WaveNoise)
		case AudioPickup:
			g.snd.PlayTone(660, 90*time.Millisecond, audio.WaveSine)
		case AudioLevelUp:
			g.snd.PlayTone(880, 350*time.Millisecond, audio.WaveSine)
		case AudioSpellCast:
			g.snd.PlayTone(440, 180*time.Millisecond, audio.WaveSaw)
		case AudioBossDefeat:
			g.snd.PlayTone(523, 500*time.Millisecond, audio.WaveSine)
		case AudioAltar:
			g.snd.PlayTone(392, 400*time.Millisecond, audio.WaveSine)
		case AudioPlayerDeath:
			g.snd.PlayTone(70, 700*time.Millisecond, audio.WaveNoise)
		}
	}
}

// saveSnapshot merges current run stats into the lifetime totals on disk.
// The baseline totals stay fixed; only the run delta moves.
func (g *Game) saveSnapshot() {
	merged := g.totals
	merged.Merge(g.sim.Stats())
	if err := SaveRunStats(g.settings.SavePath, merged); err != nil {
		logger.Log.WithError(err).Warn("could not save run stats")
	}
}

// persistStats writes stats once when a run ends.
func (g *Game) persistStats() {
	if g.runSaved {
		return
	}
	g.runSaved = true
	g.saveSnapshot()
}

func (g *Game) Layout(_, _ int) (int, int) {
	return screenW, screenH
}

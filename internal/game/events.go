package game

// DamageEvent records one application of damage, for floating damage
// numbers and the behaviour report. Exactly one event is emitted per hit.
type DamageEvent struct {
	Target EntityID
	Amount int
	Crit   bool
	X, Y   float64
	Tick   int
}

// Notification is a short player-facing message (pickups, level ups).
type Notification struct {
	Text string
	Tick int
}

// notificationTTLTicks controls how long a notification stays on screen.
const notificationTTLTicks = 3 * tickRate

// AudioEvent is a sound trigger drained by the audio layer each frame.
type AudioEvent int

const (
	AudioSwing AudioEvent = iota
	AudioHit
	AudioPlayerHurt
	AudioEnemyDeath
	AudioPickup
	AudioLevelUp
	AudioSpellCast
	AudioBossDefeat
	AudioAltar
	AudioPlayerDeath
)

func (a AudioEvent) String() string {
	switch a {
	case AudioSwing:
		return "swing"
	case AudioHit:
		return "hit"
	case AudioPlayerHurt:
		return "player-hurt"
	case AudioEnemyDeath:
		return "enemy-death"
	case AudioPickup:
		return "pickup"
	case AudioLevelUp:
		return "level-up"
	case AudioSpellCast:
		return "spell-cast"
	case AudioBossDefeat:
		return "boss-defeat"
	case AudioAltar:
		return "altar"
	case AudioPlayerDeath:
		return "player-death"
	default:
		return "unknown"
	}
}

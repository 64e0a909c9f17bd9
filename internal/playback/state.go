package playback

// State is a playback session's position in the autoplay negotiation
type State int

const (
	StateIdle State = iota
	StateEmbedding
	StateAttemptingPlay
	StatePlaying
	StatePlayingUnmuted
	StateAwaitingGesture
	StateAutoplayBlocked
	StateFailed
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateEmbedding:
		return "embedding"
	case StateAttemptingPlay:
		return "attempting_play"
	case StatePlaying:
		return "playing"
	case StatePlayingUnmuted:
		return "playing_unmuted"
	case StateAwaitingGesture:
		return "awaiting_gesture"
	case StateAutoplayBlocked:
		return "autoplay_blocked"
	case StateFailed:
		return "failed"
	case StateDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}

// IsPlaying reports whether the trailer is running, muted or not
func (s State) IsPlaying() bool {
	return s == StatePlaying || s == StatePlayingUnmuted || s == StateAwaitingGesture
}

// MuteState tracks what the session last knew about the player's audio
type MuteState int

const (
	MuteUnknown MuteState = iota
	MuteMuted
	MuteUnmuted
)

func (m MuteState) String() string {
	switch m {
	case MuteMuted:
		return "muted"
	case MuteUnmuted:
		return "unmuted"
	default:
		return "unknown"
	}
}

// Change describes one state transition
type Change struct {
	SessionID string
	Key       string
	From      State
	To        State
	Mute      MuteState
}

// Observer receives state transitions. Implementations must not block and
// must not call back into the session.
type Observer interface {
	OnStateChange(Change)
}

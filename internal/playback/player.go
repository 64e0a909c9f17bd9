package playback

import (
	"errors"
	"fmt"
	"log/slog"
	"os/exec"

	"github.com/mmcdole/marquee/internal/config"
)

// ErrNotReady is returned by player commands issued before the player has
// reported ready or after it has been closed.
var ErrNotReady = errors.New("player not ready")

// EventType identifies an asynchronous player notification
type EventType int

const (
	EventReady EventType = iota
	EventEnded
	EventError
)

func (e EventType) String() string {
	switch e {
	case EventReady:
		return "ready"
	case EventEnded:
		return "ended"
	default:
		return "error"
	}
}

// Event is a notification from the player
type Event struct {
	Type EventType
	Err  error
}

// Listener receives player events
type Listener func(Event)

// Player is the narrow command channel to an embedded trailer.
//
// Embed must return promptly; readiness arrives later through the listener.
// The listener is never invoked synchronously from inside a Player method.
type Player interface {
	Embed(key string, listener Listener) error
	Play() error
	Playing() (bool, error)
	Unmute() error
	Muted() (bool, error)
	Close() error
}

// Factory builds a fresh player for each session
type Factory func() Player

// WatchURL is the public page for a trailer key
func WatchURL(key string) string {
	return "https://www.youtube.com/watch?v=" + key
}

// NewFactory returns the player factory for the configured backend. A nil
// factory means trailers are not embedded and only their URL is shown.
func NewFactory(cfg config.PlayerConfig, logger *slog.Logger) (Factory, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.Backend {
	case config.PlayerBackendNone:
		return nil, nil
	case config.PlayerBackendMPV, "":
		command := cfg.Command
		if command == "" {
			command = "mpv"
		}
		if _, err := exec.LookPath(command); err != nil {
			logger.Warn("trailer player not found, embedding disabled", "command", command)
			return nil, nil
		}
		args := append([]string{}, cfg.Args...)
		return func() Player {
			return NewMPV(command, args, logger)
		}, nil
	default:
		return nil, fmt.Errorf("unknown player backend %q", cfg.Backend)
	}
}

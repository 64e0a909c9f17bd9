package tui

import "github.com/mmcdole/marquee/internal/playback"

// ChannelObserver adapts playback.Observer to a channel for Bubble Tea.
type ChannelObserver struct {
	ch chan<- playback.Change
}

// NewChannelObserver creates a new channel-based observer.
func NewChannelObserver(ch chan<- playback.Change) *ChannelObserver {
	return &ChannelObserver{ch: ch}
}

// OnStateChange sends the change to the channel (non-blocking if full).
func (o *ChannelObserver) OnStateChange(c playback.Change) {
	select {
	case o.ch <- c:
	default: // Non-blocking if channel full
	}
}

package playback

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mmcdole/marquee/internal/config"
)

// Timing is the bounded retry schedule for one session
type Timing struct {
	Autoplay       bool
	PollInterval   time.Duration
	PollAttempts   int
	UnmuteInterval time.Duration
	UnmuteAttempts int
}

// DefaultTiming polls play state every 200ms and retries unmute every
// 300ms, ten attempts each.
var DefaultTiming = Timing{
	Autoplay:       true,
	PollInterval:   200 * time.Millisecond,
	PollAttempts:   10,
	UnmuteInterval: 300 * time.Millisecond,
	UnmuteAttempts: 10,
}

// TimingFromConfig converts the playback config section
func TimingFromConfig(cfg config.PlaybackConfig) Timing {
	return Timing{
		Autoplay:       cfg.Autoplay,
		PollInterval:   cfg.PollInterval,
		PollAttempts:   cfg.PollAttempts,
		UnmuteInterval: cfg.UnmuteInterval,
		UnmuteAttempts: cfg.UnmuteAttempts,
	}
}

// Options configures a Bootstrap
type Options struct {
	Factory   Factory
	Scheduler Scheduler
	Timing    Timing
	Observer  Observer
	Logger    *slog.Logger
}

// Bootstrap starts playback sessions that share one configuration
type Bootstrap struct {
	opts Options
}

// NewBootstrap creates a Bootstrap. A nil Factory disables embedding.
func NewBootstrap(opts Options) *Bootstrap {
	if opts.Scheduler == nil {
		opts.Scheduler = SystemScheduler{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Timing.PollAttempts <= 0 || opts.Timing.UnmuteAttempts <= 0 {
		opts.Timing = DefaultTiming
	}
	return &Bootstrap{opts: opts}
}

// Enabled reports whether sessions will embed a player
func (b *Bootstrap) Enabled() bool {
	return b != nil && b.opts.Factory != nil
}

// Start embeds the trailer for key and begins the autoplay negotiation.
// It returns nil when embedding is disabled.
func (b *Bootstrap) Start(key string) *Session {
	if !b.Enabled() || key == "" {
		return nil
	}
	s := &Session{
		id:       uuid.NewString(),
		key:      key,
		factory:  b.opts.Factory,
		sched:    b.opts.Scheduler,
		timing:   b.opts.Timing,
		observer: b.opts.Observer,
	}
	s.logger = b.opts.Logger.With("session", s.id, "key", key)
	s.start()
	return s
}

// Session drives one embedded trailer from embed through unmute.
// All methods are safe for concurrent use.
type Session struct {
	id       string
	key      string
	factory  Factory
	sched    Scheduler
	timing   Timing
	observer Observer
	logger   *slog.Logger

	mu             sync.Mutex
	state          State
	mute           MuteState
	playAttempts   int
	unmuteAttempts int
	player         Player
	gen            uint64 // bumped on dispose; stale player events compare against it
	timer          Timer
	timerSeq       uint64 // bumped on every schedule and stop; stale timer callbacks compare against it
	gestureArmed   bool
}

func (s *Session) ID() string  { return s.id }
func (s *Session) Key() string { return s.key }

// WatchURL is the public page for the session's trailer
func (s *Session) WatchURL() string { return WatchURL(s.key) }

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Mute() MuteState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mute
}

// Attempts returns the play-poll and unmute attempt counters
func (s *Session) Attempts() (play, unmute int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playAttempts, s.unmuteAttempts
}

// start embeds the player. Nothing else holds the session yet, so the
// embed runs without mu and a synchronous listener cannot deadlock.
func (s *Session) start() {
	s.mu.Lock()
	s.setState(StateEmbedding)
	s.mute = MuteMuted
	p := s.factory()
	s.player = p
	gen := s.gen
	s.mu.Unlock()

	err := p.Embed(s.key, func(ev Event) {
		s.handleEvent(gen, ev)
	})
	if err == nil {
		return
	}

	s.logger.Error("embed failed", "error", err)
	s.mu.Lock()
	var dead Player
	if gen == s.gen {
		dead = s.fail()
	}
	s.mu.Unlock()
	s.closePlayer(dead)
}

func (s *Session) handleEvent(gen uint64, ev Event) {
	s.mu.Lock()
	if gen != s.gen || s.player == nil {
		s.mu.Unlock()
		return
	}
	p := s.player

	var play bool
	var dead Player
	switch ev.Type {
	case EventReady:
		if s.state != StateEmbedding {
			break
		}
		if !s.timing.Autoplay {
			s.setState(StateAutoplayBlocked)
			break
		}
		s.setState(StateAttemptingPlay)
		s.playAttempts = 0
		play = true
		s.schedule(s.timing.PollInterval, StateAttemptingPlay, &s.playAttempts, s.pollPlay)

	case EventEnded:
		// Trailers loop
		play = s.state.IsPlaying()

	case EventError:
		// Before ready this is an embed failure; after it the player is gone
		s.logger.Error("player failed", "state", s.state, "error", ev.Err)
		dead = s.fail()
	}
	s.mu.Unlock()

	s.closePlayer(dead)
	if play {
		if err := p.Play(); err != nil {
			s.logger.Debug("play command failed", "error", err)
		}
	}
}

// pollPlay checks play state without mu and returns the transition to
// apply. A miss reissues play before the next poll.
func (s *Session) pollPlay(p Player, attempt int) func() {
	playing, err := p.Playing()
	if err == nil && playing {
		return func() {
			s.setState(StatePlaying)
			s.unmuteAttempts = 0
			s.schedule(s.timing.UnmuteInterval, StatePlaying, &s.unmuteAttempts, s.tryUnmute)
		}
	}

	if attempt >= s.timing.PollAttempts {
		return func() {
			s.logger.Info("autoplay blocked", "attempts", attempt)
			s.setState(StateAutoplayBlocked)
		}
	}

	if err := p.Play(); err != nil {
		s.logger.Debug("play command failed", "attempt", attempt, "error", err)
	}
	return func() {
		s.schedule(s.timing.PollInterval, StateAttemptingPlay, &s.playAttempts, s.pollPlay)
	}
}

func (s *Session) tryUnmute(p Player, attempt int) func() {
	if err := p.Unmute(); err != nil {
		s.logger.Debug("unmute command failed", "attempt", attempt, "error", err)
	}
	muted, err := p.Muted()
	if err == nil && !muted {
		return func() {
			s.mute = MuteUnmuted
			s.setState(StatePlayingUnmuted)
		}
	}

	if attempt >= s.timing.UnmuteAttempts {
		return func() {
			s.logger.Info("unmute deferred to next gesture", "attempts", attempt)
			s.gestureArmed = true
			s.setState(StateAwaitingGesture)
		}
	}
	return func() {
		s.schedule(s.timing.UnmuteInterval, StatePlaying, &s.unmuteAttempts, s.tryUnmute)
	}
}

// Gesture reports a user interaction. The first gesture after unmute
// retries are exhausted unmutes the trailer; every other call is a no-op.
// It returns true when the gesture was consumed.
func (s *Session) Gesture() bool {
	s.mu.Lock()
	if !s.gestureArmed || s.state != StateAwaitingGesture || s.player == nil {
		s.mu.Unlock()
		return false
	}
	s.gestureArmed = false
	p := s.player
	s.mute = MuteUnmuted
	s.setState(StatePlayingUnmuted)
	s.mu.Unlock()

	if err := p.Unmute(); err != nil {
		s.logger.Warn("gesture unmute failed", "error", err)
	}
	return true
}

// Dispose tears the session down: timers first, then the gesture hook,
// then the player. Safe to call more than once.
func (s *Session) Dispose() {
	s.mu.Lock()
	if s.state == StateDisposed {
		s.mu.Unlock()
		return
	}
	s.gen++
	s.stopTimer()
	s.gestureArmed = false
	p := s.player
	s.player = nil
	s.setState(StateDisposed)
	s.mu.Unlock()

	s.closePlayer(p)
}

// fail detaches the player after an error and returns it for closing once
// mu is released. Caller holds mu.
func (s *Session) fail() Player {
	s.stopTimer()
	s.gestureArmed = false
	p := s.player
	s.player = nil
	s.setState(StateFailed)
	return p
}

func (s *Session) closePlayer(p Player) {
	if p == nil {
		return
	}
	if err := p.Close(); err != nil {
		s.logger.Debug("player close failed", "error", err)
	}
}

// schedule arms the single session timer for a retry step in state want.
// counter is bumped as the step fires. The step talks to the player
// without mu and returns the transition, which is dropped if the session
// moved on while the player was busy. Caller holds mu.
func (s *Session) schedule(d time.Duration, want State, counter *int, step func(Player, int) func()) {
	s.stopTimer()
	seq := s.timerSeq
	gen := s.gen
	current := func() bool {
		return seq == s.timerSeq && gen == s.gen && s.player != nil && s.state == want
	}

	s.timer = s.sched.AfterFunc(d, func() {
		s.mu.Lock()
		if !current() {
			s.mu.Unlock()
			return
		}
		s.timer = nil
		*counter++
		attempt := *counter
		p := s.player
		s.mu.Unlock()

		apply := step(p, attempt)

		s.mu.Lock()
		defer s.mu.Unlock()
		if current() {
			apply()
		}
	})
}

func (s *Session) stopTimer() {
	s.timerSeq++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Session) setState(to State) {
	from := s.state
	if from == to {
		return
	}
	s.state = to
	s.logger.Debug("playback state", "from", from, "to", to)
	if s.observer != nil {
		s.observer.OnStateChange(Change{
			SessionID: s.id,
			Key:       s.key,
			From:      from,
			To:        to,
			Mute:      s.mute,
		})
	}
}

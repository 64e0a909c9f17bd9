package playback

import (
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakePlayer reports playing from the playingAfter-th Playing call and
// unmuted from the unmutedAfter-th Muted call. Zero means never.
type fakePlayer struct {
	mu           sync.Mutex
	listener     Listener
	embedErr     error
	playingAfter int
	unmutedAfter int

	// When block is set, Playing signals entered and waits on block
	block   chan struct{}
	entered chan struct{}

	playCalls    int
	playingCalls int
	unmuteCalls  int
	mutedCalls   int
	closeCalls   int
}

func (p *fakePlayer) Embed(key string, listener Listener) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listener = listener
	return p.embedErr
}

func (p *fakePlayer) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playCalls++
	return nil
}

func (p *fakePlayer) Playing() (bool, error) {
	p.mu.Lock()
	p.playingCalls++
	playing := p.playingAfter > 0 && p.playingCalls >= p.playingAfter
	block, entered := p.block, p.entered
	p.mu.Unlock()

	if block != nil {
		entered <- struct{}{}
		<-block
	}
	return playing, nil
}

func (p *fakePlayer) Unmute() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.unmuteCalls++
	return nil
}

func (p *fakePlayer) Muted() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mutedCalls++
	return !(p.unmutedAfter > 0 && p.mutedCalls >= p.unmutedAfter), nil
}

func (p *fakePlayer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closeCalls++
	return nil
}

func (p *fakePlayer) emit(ev Event) {
	p.mu.Lock()
	l := p.listener
	p.mu.Unlock()
	l(ev)
}

func (p *fakePlayer) counts() (play, unmute, closed int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playCalls, p.unmuteCalls, p.closeCalls
}

// manualScheduler fires timers only when the test advances its clock
type manualScheduler struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*manualTimer
}

type manualTimer struct {
	s       *manualScheduler
	at      time.Duration
	f       func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.stopped {
		return false
	}
	t.stopped = true
	return true
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTimer{s: s, at: s.now + d, f: f}
	s.timers = append(s.timers, t)
	return t
}

// Advance moves the clock forward, firing due timers in order. Timers
// scheduled by a firing callback also fire if they fall within d.
func (s *manualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	for {
		idx := -1
		for i, t := range s.timers {
			if t.stopped || t.at > target {
				continue
			}
			if idx == -1 || t.at < s.timers[idx].at {
				idx = i
			}
		}
		if idx == -1 {
			break
		}
		t := s.timers[idx]
		s.timers = slices.Delete(s.timers, idx, idx+1)
		t.stopped = true
		s.now = t.at
		s.mu.Unlock()
		t.f()
		s.mu.Lock()
	}
	s.now = target
	s.mu.Unlock()
}

// Pending counts live timers
func (s *manualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

type recordingObserver struct {
	mu      sync.Mutex
	changes []Change
}

func (o *recordingObserver) OnStateChange(c Change) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.changes = append(o.changes, c)
}

func (o *recordingObserver) states() []State {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]State, len(o.changes))
	for i, c := range o.changes {
		out[i] = c.To
	}
	return out
}

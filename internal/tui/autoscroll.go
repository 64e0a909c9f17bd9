package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Auto-scroll tuning. Speeds and zones are in pixels at a nominal row
// height so that the feel matches a pointer-driven page.
const (
	autoScrollFrame  = 16 * time.Millisecond
	baseScrollSpeed  = 3.0
	topScrollZone    = 200.0
	bottomScrollZone = 100.0
	pixelsPerRow     = 20.0

	defaultScrollVelocity = baseScrollSpeed / pixelsPerRow
)

// scrollVelocity returns the auto-scroll speed in grid lines per frame for
// a pointer on row y of a viewport height rows tall. Negative scrolls up.
// Zero means the pointer is outside both edge zones and the current speed
// should be kept.
func scrollVelocity(y, height int) float64 {
	if height <= 0 || y < 0 || y >= height {
		return 0
	}

	h := float64(height) * pixelsPerRow
	// Zones never cover more than a third of the viewport each
	top := min(topScrollZone, h/3)
	bottom := min(bottomScrollZone, h/3)
	mouseY := (float64(y) + 0.5) * pixelsPerRow

	switch {
	case mouseY < top:
		closeness := 1 - clamp01(mouseY/top)
		speed := max(0.5, baseScrollSpeed*(1+closeness*0.5))
		return -speed / pixelsPerRow
	case mouseY > h-bottom:
		closeness := 1 - clamp01((h-mouseY)/bottom)
		speed := max(1, baseScrollSpeed*(1+closeness*0.8))
		return speed / pixelsPerRow
	}
	return 0
}

func clamp01(v float64) float64 {
	return min(1, max(0, v))
}

// autoScroller drives the continuous listing scroll. It holds while the
// pointer is over the grid or the terminal has lost focus. Every start or
// halt bumps seq so ticks scheduled by an earlier run are dropped.
type autoScroller struct {
	velocity float64 // lines per frame, negative scrolls up
	seq      int
	running  bool
	hovering bool
	blurred  bool
}

func (a *autoScroller) held() bool {
	return a.hovering || a.blurred
}

// run starts ticking unless a run is already live or the scroller is held
func (a *autoScroller) run() tea.Cmd {
	if a.velocity == 0 {
		a.velocity = defaultScrollVelocity
	}
	if a.running || a.held() {
		return nil
	}
	a.running = true
	a.seq++
	return AutoScrollTickCmd(a.seq)
}

func (a *autoScroller) halt() {
	if a.running {
		a.running = false
		a.seq++
	}
}

// enter holds the scroll while the pointer is over the grid. A non-zero
// velocity from an edge zone steers the run that starts on leave.
func (a *autoScroller) enter(velocity float64) {
	a.hovering = true
	if velocity != 0 {
		a.velocity = velocity
	}
	a.halt()
}

func (a *autoScroller) leave() {
	a.hovering = false
}

func (a *autoScroller) blur() {
	a.blurred = true
	a.halt()
}

func (a *autoScroller) focus() {
	a.blurred = false
}

// reverse flips direction at either end of the listing
func (a *autoScroller) reverse() {
	a.velocity = -a.velocity
}

// live reports whether a tick belongs to the current run
func (a *autoScroller) live(seq int) bool {
	return a.running && seq == a.seq
}

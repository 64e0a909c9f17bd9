package components

import "github.com/charmbracelet/lipgloss"

// CenteredOrigin returns the top-left corner of view when placed in the
// middle of a width x height screen with lipgloss.Place.
func CenteredOrigin(view string, width, height int) (x, y int) {
	w, h := lipgloss.Size(view)
	return max(0, (width-w)/2), max(0, (height-h)/2)
}

// CenteredHit converts a screen point to coordinates local to a centered
// view. ok is false when the point falls outside it.
func CenteredHit(view string, width, height, x, y int) (lx, ly int, ok bool) {
	ox, oy := CenteredOrigin(view, width, height)
	w, h := lipgloss.Size(view)
	lx, ly = x-ox, y-oy
	return lx, ly, lx >= 0 && lx < w && ly >= 0 && ly < h
}

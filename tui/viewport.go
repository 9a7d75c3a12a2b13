// ABOUTME: Scroll offset calculation for the image list
// ABOUTME: Implements vim/less style scrolling that keeps the cursor mid-screen

package tui

// ScrollPhase describes where the cursor sits relative to the visible window
type ScrollPhase int

// Scroll phases: at the top the cursor moves, in the middle the list moves,
// at the bottom the cursor moves again.
const (
	TopPhase ScrollPhase = iota
	MiddlePhase
	BottomPhase
)

// scrollPhase returns the phase for a cursor in a list of total lines
// shown through a window of height lines
func scrollPhase(height, cursor, total int) ScrollPhase {
	if total == 0 || height < 1 {
		return TopPhase
	}

	middle := height / 2

	switch {
	case cursor < middle:
		return TopPhase
	case cursor < total-height+middle:
		return MiddlePhase
	default:
		return BottomPhase
	}
}

// scrollOffset returns the first visible line so the cursor stays visible
func scrollOffset(height, cursor, total int) int {
	switch scrollPhase(height, cursor, total) {
	case MiddlePhase:
		return cursor - height/2
	case BottomPhase:
		return max(total-height, 0)
	default:
		return 0
	}
}

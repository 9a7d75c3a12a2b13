// ABOUTME: Rendering and display functions for the TUI
// ABOUTME: Implements the Bubble Tea View() function and all render helpers

package tui

import (
	"fmt"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"cycle-backgrounds/playlist"
)

// View renders the TUI
func (m model) View() string {
	defer func() {
		if r := recover(); r != nil {
			m.debugf("[PANIC] View panic: %v", r)
			m.debugf("[PANIC] Stack trace: %s", string(debug.Stack()))
			panic(r) // Re-panic so Bubble Tea can handle it
		}
	}()

	if m.quitting {
		return "Closing preview...\n"
	}

	panelHeight := max(m.height-(statusBarHeight+helpHeight+1), minViewportHeight)

	leftPanelStyle := lipgloss.NewStyle().
		Width(paramPanelWidth).
		Height(panelHeight).
		Padding(0, 1)

	rightPanelStyle := lipgloss.NewStyle().
		Width(max(m.width-paramPanelWidth-panelPadding, minViewportWidth*2)).
		Height(panelHeight).
		Padding(0, 1)

	combined := lipgloss.JoinHorizontal(
		lipgloss.Top,
		leftPanelStyle.Render(m.renderParameters()),
		rightPanelStyle.Render(m.renderImages()),
	)

	return combined + "\n" + m.renderStatus() + "\n" + m.renderHelp()
}

// renderParameters renders the duration controls and slideshow summary
func (m model) renderParameters() string {
	var b strings.Builder

	title := "Slideshow"
	if m.focusedPanel == panelParams {
		title = "► " + title + " [FOCUSED]"
	}

	b.WriteString(titleStyle.Render(title) + "\n\n")

	for i, param := range m.params.All() {
		prefix := "  "
		if i == m.params.Selected() {
			prefix = "► "
		}

		line := fmt.Sprintf("%s%-20s %8s", prefix, param.Name, playlist.FormatSeconds(*param.Value))

		if i == m.params.Selected() {
			b.WriteString(selectedParamStyle.Render(line) + "\n")
		} else {
			b.WriteString(paramStyle.Render(line) + "\n")
		}
	}

	order := "directory"
	if m.shuffled {
		order = "shuffled"
	}

	b.WriteString("\n")
	b.WriteString(paramStyle.Render(fmt.Sprintf("%-22s %s", "Order", order)) + "\n")
	b.WriteString(paramStyle.Render(fmt.Sprintf("%-22s %s", "Cycle length", m.cycleLength().Round(time.Second))) + "\n")
	b.WriteString(paramStyle.Render(fmt.Sprintf("%-22s %s", "Output", truncate(filepath.Base(m.outputPath), 16))) + "\n")

	if m.errorMsg != "" {
		b.WriteString("\n" + errorStyle.Render(truncate(m.errorMsg, paramPanelWidth-2)) + "\n")
	}

	return b.String()
}

// renderImages renders the image list with viewport scrolling
func (m model) renderImages() string {
	var b strings.Builder

	title := "Images"
	if m.focusedPanel == panelImages {
		title = "► " + title + " [FOCUSED]"
	}

	b.WriteString(titleStyle.Render(title) + "\n\n")
	b.WriteString(listHeaderStyle.Render(fmt.Sprintf("%-4s %-10s %s", "#", "Starts", "Image")) + "\n")
	b.WriteString(m.viewport.View())

	return b.String()
}

// updateViewportContent builds and sets the viewport content.
// Every image is rendered; the viewport handles scrolling.
func (m *model) updateViewportContent() {
	var b strings.Builder

	step := m.localConfig.StaticSeconds + m.localConfig.TransitionSeconds
	nameWidth := max(m.viewport.Width-16, 10)

	for i, img := range m.order {
		starts := time.Duration(float64(i) * step * float64(time.Second)).Round(time.Second)

		line := fmt.Sprintf("%-4d %-10s %s", i+1, starts, truncate(filepath.Base(img), nameWidth))

		if i == m.cursorPos {
			line = cursorStyle.Render(line)
		}

		b.WriteString(line + "\n")
	}

	m.viewport.SetContent(b.String())
}

// renderStatus renders the status bar
func (m model) renderStatus() string {
	if m.statusMsg != "" && time.Since(m.statusMsgAge) < statusMessageDuration {
		return statusStyle.Width(m.width).Render(m.statusMsg)
	}

	position := 0
	if len(m.order) > 0 {
		position = m.cursorPos + 1
	}

	state := "unsaved"
	switch {
	case m.dryRun:
		state = "dry run"
	case !m.dirty:
		state = "saved"
	}

	status := fmt.Sprintf("%d images | Image %d/%d | U:%d R:%d | %s",
		len(m.order),
		position,
		len(m.order),
		m.undoMgr.UndoSize(),
		m.undoMgr.RedoSize(),
		state,
	)

	return statusStyle.Width(m.width).Render(status)
}

// renderHelp renders the help text
func (m model) renderHelp() string {
	return helpStyle.Render(" Tab: switch panel | ↑/↓/j/k: navigate | ←/→/h/l: adjust duration | s: shuffle | o: directory order | r: reset | u: undo | ctrl+r: redo | w: write | q: quit")
}

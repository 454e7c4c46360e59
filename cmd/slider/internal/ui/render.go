package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/recera/slider/pkg/carousel"
)

const (
	// cellHeight is the number of rows of a slide
	cellHeight = 5
	// arrowWidth is the number of columns of each arrow
	arrowWidth = 3
	// trackTop is the first row of the track
	trackTop = 2
)

// Style definitions
var (
	primaryColor = lipgloss.Color("#3b82f6")
	mutedColor   = lipgloss.Color("#94a3b8")
	errorColor   = lipgloss.Color("#ef4444")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	slideStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e2e8f0"))

	activeSlideStyle = lipgloss.NewStyle().
				Foreground(primaryColor).
				Bold(true)

	arrowStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	disabledArrowStyle = lipgloss.NewStyle().
				Foreground(mutedColor)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)
)

// View renders the preview
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	snap := m.ctrl.Snapshot()

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")

	track := m.renderTrack(snap)
	for row, line := range track {
		b.WriteString(m.renderArrow(snap, carousel.ArrowPrev, row))
		b.WriteString(line)
		b.WriteString(m.renderArrow(snap, carousel.ArrowNext, row))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(snap.Dots) > 0 {
		b.WriteString(lipgloss.PlaceHorizontal(m.totalWidth(), lipgloss.Center, m.dots.View()))
		b.WriteString("\n")
	}
	if snap.PageLabel != "" {
		b.WriteString(lipgloss.PlaceHorizontal(m.totalWidth(), lipgloss.Center, mutedStyle.Render(snap.PageLabel)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
	} else {
		b.WriteString(mutedStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) totalWidth() int {
	return m.vw + 2*arrowWidth
}

// renderArrow draws one row of an arrow column. The glyph sits on the
// middle row.
func (m *Model) renderArrow(snap carousel.Snapshot, kind carousel.ArrowKind, row int) string {
	blank := strings.Repeat(" ", arrowWidth)
	if !snap.Navigable || row != cellHeight/2 {
		return blank
	}
	glyph, disabled := " ‹ ", snap.PrevDisabled
	if kind == carousel.ArrowNext {
		glyph, disabled = " › ", snap.NextDisabled
	}
	if disabled {
		return disabledArrowStyle.Render(glyph)
	}
	return arrowStyle.Render(glyph)
}

// renderTrack crops the padded track to the viewport at the animated
// position. Columns outside the track render blank.
func (m *Model) renderTrack(snap carousel.Snapshot) []string {
	var lines [cellHeight]strings.Builder

	start := int(math.Round(-m.pos))
	end := start + m.vw
	col := start

	pad := func(n int) {
		for row := range lines {
			lines[row].WriteString(strings.Repeat(" ", n))
		}
	}

	for i, slide := range m.ctrl.PaddedSlides() {
		left, right := i*m.cw, (i+1)*m.cw
		lo, hi := max(left, col), min(right, end)
		if lo >= hi {
			continue
		}
		if lo > col {
			pad(lo - col)
		}
		style := slideStyle
		if i == snap.RenderIndex {
			style = activeSlideStyle
		}
		for row, text := range drawCell(slide, m.cw) {
			runes := []rune(text)
			lines[row].WriteString(style.Render(string(runes[lo-left : hi-left])))
		}
		col = hi
	}
	if col < end {
		pad(end - col)
	}

	out := make([]string, cellHeight)
	for row := range lines {
		out[row] = lines[row].String()
	}
	return out
}

// drawCell draws a slide as a rounded box of width w with its text
// centered on the middle row
func drawCell(text string, w int) [cellHeight]string {
	var cell [cellHeight]string
	if w < 2 {
		for row := range cell {
			cell[row] = strings.Repeat(" ", max(w, 0))
		}
		return cell
	}

	inner := w - 2
	label := []rune(text)
	if room := max(inner-2, 0); len(label) > room {
		label = label[:room]
	}
	left := (inner - len(label)) / 2

	blank := "│" + strings.Repeat(" ", inner) + "│"
	cell[0] = "╭" + strings.Repeat("─", inner) + "╮"
	for row := 1; row < cellHeight-1; row++ {
		cell[row] = blank
	}
	cell[cellHeight/2] = "│" + strings.Repeat(" ", left) + string(label) + strings.Repeat(" ", inner-len(label)-left) + "│"
	cell[cellHeight-1] = "╰" + strings.Repeat("─", inner) + "╯"
	return cell
}

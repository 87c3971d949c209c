package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	upGlyph   = "█"
	downGlyph = "·"
)

// Text renders binary cells as terminal rows, one glyph per site.
type Text struct {
	up, down lipgloss.Style
	color    bool
}

// NewText returns a text renderer. With color disabled the output is plain
// glyphs with no escape sequences.
func NewText(color bool) *Text {
	return &Text{
		up:    lipgloss.NewStyle().Foreground(lipgloss.Color("#f2c14e")),
		down:  lipgloss.NewStyle().Foreground(lipgloss.Color("#1c2a4a")),
		color: color,
	}
}

// Render draws w columns per row. Cells beyond the last full row are ignored.
func (t *Text) Render(cells []uint8, w int) string {
	if w <= 0 || len(cells) < w {
		return ""
	}
	rows := len(cells) / w
	var sb strings.Builder
	sb.Grow(rows * (w + 1))
	for y := 0; y < rows; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		t.renderRow(&sb, cells[y*w:(y+1)*w])
	}
	return sb.String()
}

// renderRow emits runs of equal cells through a single style call.
func (t *Text) renderRow(sb *strings.Builder, row []uint8) {
	start := 0
	for i := 1; i <= len(row); i++ {
		if i < len(row) && (row[i] != 0) == (row[start] != 0) {
			continue
		}
		glyph, style := downGlyph, t.down
		if row[start] != 0 {
			glyph, style = upGlyph, t.up
		}
		run := strings.Repeat(glyph, i-start)
		if t.color {
			run = style.Render(run)
		}
		sb.WriteString(run)
		start = i
	}
}

package render

import (
	"image/color"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestFillBinaryRGBA(t *testing.T) {
	cells := []uint8{1, 0, 1}
	buf := make([]byte, 4*len(cells))
	fillBinaryRGBA(buf, cells, color.White, color.Black)
	want := []byte{255, 255, 255, 255, 0, 0, 0, 255, 255, 255, 255, 255}
	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("byte %d = %d, want %d (buf %v)", i, buf[i], want[i], buf)
		}
	}
}

func TestTextRenderPlain(t *testing.T) {
	cells := []uint8{
		1, 1, 0,
		0, 1, 0,
	}
	got := NewText(false).Render(cells, 3)
	want := "██·\n·█·"
	if got != want {
		t.Fatalf("Render = %q, want %q", got, want)
	}
}

func TestTextRenderColorKeepsWidth(t *testing.T) {
	cells := []uint8{1, 0, 0, 1, 1, 0, 1, 0}
	out := NewText(true).Render(cells, 4)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 rows, got %d: %q", len(lines), out)
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 4 {
			t.Fatalf("row %d printable width = %d, want 4 (%q)", i, w, line)
		}
	}
}

func TestTextRenderDegenerate(t *testing.T) {
	r := NewText(false)
	if got := r.Render(nil, 3); got != "" {
		t.Fatalf("Render(nil) = %q", got)
	}
	if got := r.Render([]uint8{1}, 0); got != "" {
		t.Fatalf("Render with zero width = %q", got)
	}
}

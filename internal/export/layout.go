package export

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Page geometry in points, origin at the bottom left corner.
const (
	PageWidth    = 595.0
	PageHeight   = 842.0
	Margin       = 50.0
	BottomMargin = 50.0
	StartCursor  = 800.0
)

type Color struct {
	R, G, B float64
}

var (
	Black = Color{0, 0, 0}
	Gray  = Color{0.5, 0.5, 0.5}
)

type Style struct {
	Size  float64
	Bold  bool
	Color Color
}

// Backend draws on pages. Pages are numbered from 1.
type Backend interface {
	AddPage()
	PageCount() int
	SetPage(n int)
	Text(x, y float64, s string, style Style)
	Line(x1, y1, x2, y2, thickness float64, color Color)
	TextWidth(s string, style Style) float64
}

// Layout flows text down the page with a running cursor and breaks to a
// new page when the remaining space runs out.
type Layout struct {
	backend Backend
	cursor  float64
}

func NewLayout(backend Backend) *Layout {
	backend.AddPage()
	return &Layout{
		backend: backend,
		cursor:  StartCursor,
	}
}

func (l *Layout) Cursor() float64 {
	return l.cursor
}

// Skip moves the cursor down by dy points.
func (l *Layout) Skip(dy float64) {
	l.cursor -= dy
}

// EnsureSpace starts a new page when less than required points remain
// above the bottom margin. It reports whether a page was added.
func (l *Layout) EnsureSpace(required float64) bool {
	if l.cursor >= BottomMargin+required {
		return false
	}
	l.backend.AddPage()
	l.cursor = PageHeight - Margin
	return true
}

// Write draws sanitized text at x, one line per newline, wrapped to the
// width left between x and the right margin.
func (l *Layout) Write(text string, x float64, style Style) {
	clean := Sanitize(text)
	if clean == "" {
		return
	}

	maxWidth := PageWidth - 2*Margin - (x - Margin)
	for _, line := range strings.Split(clean, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			l.cursor -= style.Size / 2
			continue
		}
		for _, wrapped := range l.wrap(line, maxWidth, style) {
			l.EnsureSpace(style.Size + 5)
			l.backend.Text(x, l.cursor, wrapped, style)
			l.cursor -= style.Size + 2
		}
	}
}

// Rule draws a horizontal line across the printable width at the cursor.
func (l *Layout) Rule(thickness float64, color Color) {
	l.backend.Line(Margin, l.cursor, PageWidth-Margin, l.cursor, thickness, color)
}

// wrap splits line greedily on spaces. A single word wider than maxWidth
// gets a line of its own.
func (l *Layout) wrap(line string, maxWidth float64, style Style) []string {
	if l.backend.TextWidth(line, style) <= maxWidth {
		return []string{line}
	}

	var lines []string
	current := ""
	for _, word := range strings.Fields(line) {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if current != "" && l.backend.TextWidth(candidate, style) > maxWidth {
			lines = append(lines, current)
			current = word
			continue
		}
		current = candidate
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// Sanitize folds accented letters to their base form and drops everything
// outside ASCII, emoji included. The core PDF fonts cannot draw them.
func Sanitize(s string) string {
	decomposed := norm.NFD.String(s)
	var sb strings.Builder
	sb.Grow(len(decomposed))
	for _, r := range decomposed {
		if r <= unicode.MaxASCII {
			sb.WriteRune(r)
		}
	}
	return strings.TrimSpace(sb.String())
}

package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// barGap is the styled spacing between segments of the header and command bar.
const barGap = 2

// barWriter renders text segments on a solid background colour. lipgloss
// resets the background after every styled run, so each word and each gap
// is painted separately to keep the bar free of holes.
type barWriter struct {
	fill lipgloss.Style
}

func newBarWriter(bgColor string) barWriter {
	return barWriter{fill: lipgloss.NewStyle().Background(lipgloss.Color(bgColor))}
}

// Text renders text in style, painting the spaces between words too.
func (w barWriter) Text(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	words := strings.Split(text, " ")
	styled := style.Background(w.fill.GetBackground())
	for i, word := range words {
		if word != "" {
			words[i] = styled.Render(word)
		}
	}
	return strings.Join(words, w.Gap(1))
}

// Gap returns n painted spaces.
func (w barWriter) Gap(n int) string {
	if n <= 0 {
		return ""
	}
	return w.fill.Render(strings.Repeat(" ", n))
}

// Hint renders a "key:label" pair for the command bar.
func (w barWriter) Hint(key, label string, keyStyle, labelStyle lipgloss.Style) string {
	return w.Text(key, keyStyle) + w.fill.Render(":") + w.Text(label, labelStyle)
}

// Line joins rendered segments with the standard bar gap, skipping empty ones.
func (w barWriter) Line(segments ...string) string {
	kept := make([]string, 0, len(segments))
	for _, s := range segments {
		if s != "" {
			kept = append(kept, s)
		}
	}
	return strings.Join(kept, w.Gap(barGap))
}

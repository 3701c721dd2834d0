// Package table renders meal rows as bordered text tables.
package table

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// wrapWidth is the maximum display width of the first and last column.
const wrapWidth = 10

// Render draws rows as a rounded-border table. The first and the last
// column are word-wrapped once a cell exceeds ten display characters;
// interior columns keep their natural width. Zero rows still produce
// the header and borders.
func Render(headers []string, rows [][]string) string {
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle()).
		StyleFunc(func(_, _ int) lipgloss.Style { return cellStyle }).
		Headers(headers...)

	for _, row := range rows {
		wrapped := make([]string, len(row))
		copy(wrapped, row)
		if len(wrapped) > 0 {
			wrapped[0] = wrapWords(wrapped[0], wrapWidth)
			wrapped[len(wrapped)-1] = wrapWords(wrapped[len(wrapped)-1], wrapWidth)
		}
		t.Row(wrapped...)
	}

	return t.String()
}

// wrapWords breaks s into lines of at most width display cells without
// ever splitting a word. A single word longer than width keeps its own
// line intact.
func wrapWords(s string, width int) string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return s
	}

	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		if lipgloss.Width(line)+1+lipgloss.Width(word) <= width {
			line += " " + word
			continue
		}
		lines = append(lines, line)
		line = word
	}
	lines = append(lines, line)

	return strings.Join(lines, "\n")
}

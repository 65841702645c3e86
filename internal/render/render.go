// Package render draws puzzles for the terminal.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/robalobadob/wordsearch/internal/daily"
	"github.com/robalobadob/wordsearch/internal/grid"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)
	letterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("7"))
	highlightStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
	wordStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14"))
)

// Grid renders g one row per line with letters separated by spaces. Cells
// covered by any highlighted placement are emphasised.
func Grid(g grid.Grid, highlight []grid.Placement) string {
	lit := make(map[grid.Cell]bool)
	for _, p := range highlight {
		for i := range []rune(p.Word) {
			lit[p.Start.Add(p.Dir, i)] = true
		}
	}
	n := g.Size()
	lines := make([]string, n)
	for r := 0; r < n; r++ {
		cells := make([]string, n)
		for c := 0; c < n; c++ {
			at := grid.Cell{Row: r, Col: c}
			style := letterStyle
			if lit[at] {
				style = highlightStyle
			}
			cells[c] = style.Render(string(g.At(at)))
		}
		lines[r] = strings.Join(cells, " ")
	}
	return strings.Join(lines, "\n")
}

// Puzzle renders a titled, boxed grid followed by its word list. With
// solve set, every placement is highlighted.
func Puzzle(p *daily.Puzzle, solve bool) string {
	var hl []grid.Placement
	if solve {
		hl = p.Placements
	}
	title := titleStyle.Render(fmt.Sprintf("%s #%d", p.PackID, p.Index))
	if p.Grid.IsSentinel() {
		return lipgloss.JoinVertical(lipgloss.Left, title, "generation failed")
	}
	words := make([]string, len(p.Words))
	for i, w := range p.Words {
		words[i] = wordStyle.Render(w)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		boxStyle.Render(Grid(p.Grid, hl)),
		strings.Join(words, "  "),
	)
}

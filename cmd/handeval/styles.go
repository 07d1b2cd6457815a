package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/pokereval/poker"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	handStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	tieStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
)

// suitSymbols renders cards with suit glyphs for the terminal.
var suitSymbols = strings.NewReplacer("c", "♣", "d", "♦", "h", "♥", "s", "♠")

func formatCards(cards []poker.Card) string {
	return suitSymbols.Replace(poker.FormatCards(cards))
}

func formatPercent(f float64) string {
	return fmt.Sprintf("%.2f%%", f*100)
}

// winnerMark labels the winners of one half of the pot.
func winnerMark(winners []int, i int, half string) string {
	for _, w := range winners {
		if w != i {
			continue
		}
		if len(winners) > 1 {
			return tieStyle.Render("split " + half)
		}
		return winStyle.Render("wins " + half)
	}
	return ""
}

package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/codr1/Pitchside/internal/balancer"
	"github.com/codr1/Pitchside/internal/templates/components/teams"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	squadStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1).
			MarginRight(2)
)

// renderLineups lays out both squads side by side with the rating gap below.
func renderLineups(result *balancer.MatchResult, seed *uint64) string {
	data := teams.NewLineupData(result, seed)

	columns := lipgloss.JoinHorizontal(lipgloss.Top,
		squadStyle.Render(renderSquad(data.TeamA)),
		squadStyle.Render(renderSquad(data.TeamB)),
	)

	footer := "Rating difference: " + data.RatingDifference
	if data.Seed != nil {
		footer += mutedStyle.Render(fmt.Sprintf("  (seed %d)", *data.Seed))
	}
	return lipgloss.JoinVertical(lipgloss.Left, columns, footer) + "\n"
}

func renderSquad(squad teams.SquadView) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s  %s", squad.Label, squad.Formation)))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("total %d  avg %s", squad.TotalRating, squad.AverageRating)))
	b.WriteString("\n\n")

	for _, slot := range squad.Slots {
		line := fmt.Sprintf("%-3s  %-20s %2d", slot.Position, truncate(slot.PlayerName, 20), slot.Rating)
		if slot.OutOfPosition {
			line += " " + warnStyle.Render("("+slot.NativePos+")")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderFormations(formations []balancer.Formation) string {
	var b strings.Builder
	for _, f := range formations {
		positions := make([]string, len(f.Positions))
		for i, p := range f.Positions {
			positions[i] = p.String()
		}
		fmt.Fprintf(&b, "%s  %s\n", headerStyle.Render(f.Name), strings.Join(positions, " "))
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

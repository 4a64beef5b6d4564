package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pdrpinto/gridsearch/benchmark"
)

var (
	colorWall     = lipgloss.Color("#29434e")
	colorExpanded = lipgloss.Color("#4db6ac")
	colorPath     = lipgloss.Color("#FFC107")
	colorStart    = lipgloss.Color("#8BC34A")
	colorGoal     = lipgloss.Color("#e53935")
	colorMuted    = lipgloss.Color("#6b7280")
)

var markStyles = [...]lipgloss.Style{
	MarkFree:     lipgloss.NewStyle().Foreground(colorMuted),
	MarkBlocked:  lipgloss.NewStyle().Foreground(colorWall).Background(colorWall),
	MarkExpanded: lipgloss.NewStyle().Foreground(colorExpanded),
	MarkPath:     lipgloss.NewStyle().Foreground(colorPath).Bold(true),
	MarkStart:    lipgloss.NewStyle().Foreground(colorStart).Bold(true),
	MarkGoal:     lipgloss.NewStyle().Foreground(colorGoal).Bold(true),
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	sepStyle    = lipgloss.NewStyle().Foreground(colorMuted)
)

// Styled renders the same layout as ASCII with colours.
func Styled(v View) string {
	var b strings.Builder
	for _, row := range v.Marks() {
		for _, mark := range row {
			b.WriteString(markStyles[mark].Render(string(mark.Rune())))
		}
		b.WriteByte('\n')
	}
	if v.Title == "" {
		return b.String()
	}
	return titleStyle.Render(v.Title) + "\n" + b.String()
}

// ResultsTable renders benchmark rows under the results table header.
func ResultsTable(rows []benchmark.Row) string {
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.Record())
	}

	widths := make([]int, len(benchmark.Header))
	for i, h := range benchmark.Header {
		widths[i] = lipgloss.Width(h)
	}
	for _, record := range records {
		for i, cell := range record {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}
	for i := range widths {
		widths[i] += 2
	}

	var b strings.Builder
	line := func(cells []string, style lipgloss.Style) {
		for i, cell := range cells {
			b.WriteString(style.Width(widths[i]).Render(cell))
			if i < len(cells)-1 {
				b.WriteString(sepStyle.Render("|"))
			}
		}
		b.WriteByte('\n')
	}

	line(benchmark.Header, headerStyle)
	for i, w := range widths {
		b.WriteString(sepStyle.Render(strings.Repeat("-", w)))
		if i < len(widths)-1 {
			b.WriteString(sepStyle.Render("+"))
		}
	}
	b.WriteByte('\n')
	for _, record := range records {
		line(record, cellStyle)
	}
	return b.String()
}

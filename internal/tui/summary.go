package tui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/mindsight/internal/model"
	"github.com/verte-zerg/mindsight/internal/stats"
)

const plotHeight = 8

var (
	cardStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
)

func (m *Model) refreshSummary() {
	bodyHeight := m.height - 2
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	m.summaryView.Width = m.width
	m.summaryView.Height = bodyHeight
	m.summaryView.SetContent(renderSummaryBody(m.final, m.curveWindow, m.width))
}

func (m *Model) renderSummaryScreen() string {
	header := fitLines(titleStyle.Render("Score Summary"), m.width, 1)
	body := fitLines(m.summaryView.View(), m.width, m.summaryView.Height)
	footer := fitLines(m.help.ShortHelpView(m.keys.helpFor(screenSummary)), m.width, 1)
	return strings.Join([]string{header, body, footer}, "\n")
}

func renderSummaryBody(st model.Statistics, window, width int) string {
	summary := stats.Summarize(st)
	rows := stats.SummaryRows(summary)
	cards := make([]string, len(rows))
	for i, row := range rows {
		cards[i] = metricCard(row[0], row[1])
	}
	out := packCards(cards, width)
	if len(st.ResponseTimes) < 2 {
		return out + "\n\n" + cardTitleStyle.Render("Answer at least two trials to see a response curve.")
	}
	return out + "\n\n" + renderCurve(st, window, width)
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

// packCards joins cards left to right, wrapping to a new row when width is reached.
func packCards(cards []string, width int) string {
	var rows []string
	var row []string
	rowWidth := 0
	for _, card := range cards {
		w := lipgloss.Width(card)
		if len(row) > 0 && width > 0 && rowWidth+w > width {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
			rowWidth = 0
		}
		row = append(row, card)
		rowWidth += w
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderCurve(st model.Statistics, window, width int) string {
	var buf bytes.Buffer
	if err := stats.RenderResponseCurveWithSize(&buf, st.ResponseTimes, window, width, plotHeight, true); err != nil {
		return fmt.Sprintf("Failed to render curve: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func nextCurveWindow(n int) int {
	if n < 5 {
		return 5
	}
	if n%5 == 0 {
		return n + 5
	}
	return ((n / 5) + 1) * 5
}

func prevCurveWindow(n int) int {
	if n <= 5 {
		return 1
	}
	if n%5 == 0 {
		return n - 5
	}
	return (n / 5) * 5
}

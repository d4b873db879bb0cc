// Package analytics draws the read-only dashboard of stat, chart and activity cards.
package analytics

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	nt "portal/entity"
	"portal/style"
)

const (
	statWidth  = 18
	chartWidth = 40
	meterWidth = 20
)

var gap = lipgloss.NewStyle().PaddingLeft(1)

// Stat is a headline number with an optional trend.
type Stat struct {
	Title       string
	Value       string
	Description string
	Trend       string // percent change, empty when not tracked
	Down        bool
}

// Meter is a labelled percentage bar.
type Meter struct {
	Label   string
	Note    string
	Percent int
}

var (
	stats = []Stat{
		{Title: "Total Revenue", Value: "$45,231.89", Description: "Monthly revenue", Trend: "20.1%"},
		{Title: "New Customers", Value: "+2350", Description: "From last month", Trend: "10.3%"},
		{Title: "Total Orders", Value: "12,234", Description: "For this quarter", Trend: "5.1%", Down: true},
		{Title: "Active Users", Value: "573", Description: "Currently online"},
	}

	// monthly revenue in thousands, Jan through Dec
	revenue = []float64{18.2, 21.5, 19.8, 24.1, 27.3, 31.0, 29.4, 33.8, 36.2, 38.9, 42.7, 45.2}

	categories = []Meter{
		{Label: "Apparel", Percent: 38},
		{Label: "Accessories", Percent: 27},
		{Label: "Footwear", Percent: 21},
		{Label: "Other", Percent: 14},
	}

	system = []Meter{
		{Label: "API Response Time", Note: "Healthy", Percent: 24},
		{Label: "Database Load", Note: "Healthy", Percent: 41},
		{Label: "Memory Usage", Note: "Healthy", Percent: 37},
		{Label: "CPU Utilization", Note: "Healthy", Percent: 29},
	}

	campaigns = []Meter{
		{Label: "Summer Sale", Note: "4,812 impressions", Percent: 82},
		{Label: "New Product Launch", Note: "3,205 impressions", Percent: 64},
		{Label: "Holiday Special", Note: "2,147 impressions", Percent: 47},
		{Label: "Loyalty Program", Note: "1,390 impressions", Percent: 35},
	}
)

type SizeMsg struct {
	Width  int
	Height int
}

// Panel is the analytics view for one role.
type Panel struct {
	role   nt.Role
	width  int
	height int
}

func New(role nt.Role) Panel {
	return Panel{role: role}
}

func (pnl Panel) Update(msg SizeMsg) Panel {
	pnl.width = msg.Width
	pnl.height = msg.Height
	return pnl
}

// Render lays the cards out in rows that fit the panel width.
func (pnl Panel) Render() string {

	var cards []string
	for _, stat := range stats {
		cards = append(cards, statCard(stat))
	}
	rows := grid(cards, pnl.width)

	second := []string{
		card("Revenue Overview", "Monthly revenue for the current year", sparkline(revenue)),
		card("Recent Activity", "Latest system events", activity(pnl.role)),
	}
	rows = append(rows, grid(second, pnl.width)...)

	third := []string{card("Sales Distribution", "By product category", meters(categories))}
	switch pnl.role {
	case nt.Admin:
		third = append(third, card("System Performance", "Server and application metrics", meters(system)))
	case nt.Brand:
		third = append(third, card("Campaign Performance", "Active marketing campaigns", meters(campaigns)))
	}
	rows = append(rows, grid(third, pnl.width)...)

	out := lipgloss.JoinVertical(lipgloss.Left, rows...)
	if pnl.height > 0 {
		out = lipgloss.NewStyle().MaxHeight(pnl.height).Render(out)
	}
	return out
}

// grid joins cards left to right, starting a new row when the next would overflow width
func grid(cards []string, width int) (rows []string) {

	var row []string
	used := 0
	for _, c := range cards {
		w := lipgloss.Width(c) + 1
		if len(row) > 0 && width > 0 && used+w > width {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row, used = nil, 0
		}
		if len(row) > 0 {
			c = gap.Render(c)
		}
		row = append(row, c)
		used += w
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return
}

func statCard(stat Stat) string {

	trend := ""
	switch {
	case stat.Trend == "":
	case stat.Down:
		trend = style.DownStyle.Render("↓ "+stat.Trend) + " "
	default:
		trend = style.UpStyle.Render("↑ "+stat.Trend) + " "
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		style.MutedStyle.Render(stat.Title),
		style.TitleStyle.Render(stat.Value),
		trend+style.MutedStyle.Render(stat.Description),
	)
	return style.CardStyle.Width(statWidth).Render(body)
}

func card(title, description, body string) string {

	content := lipgloss.JoinVertical(lipgloss.Left,
		style.TitleStyle.Render(title),
		style.MutedStyle.Render(description),
		"",
		body,
	)
	return style.CardStyle.Width(chartWidth).Render(content)
}

// sparkline draws one block per value, scaled to the largest
func sparkline(values []float64) string {

	blocks := []rune("▁▂▃▄▅▆▇█")

	top := 0.0
	for _, val := range values {
		top = max(top, val)
	}

	var line strings.Builder
	for _, val := range values {
		idx := 0
		if top > 0 {
			idx = int(val / top * float64(len(blocks)-1))
		}
		line.WriteRune(blocks[idx])
		line.WriteRune(blocks[idx])
	}

	return style.BarStyle.Render(line.String()) + "\n" +
		style.MutedStyle.Render("J F M A M J J A S O N D")
}

func activity(role nt.Role) string {

	event := "New brand registration"
	if role == nt.Brand {
		event = "Campaign performance update"
	}

	var lines []string
	for i := 1; i <= 5; i++ {
		ago := fmt.Sprintf("%d hour ago", i)
		if i > 1 {
			ago = fmt.Sprintf("%d hours ago", i)
		}
		lines = append(lines, fmt.Sprintf("%s %s", event, style.MutedStyle.Render(ago)))
	}
	return strings.Join(lines, "\n")
}

func meters(ms []Meter) string {

	var lines []string
	for _, mtr := range ms {
		label := mtr.Label
		if mtr.Note != "" {
			label += "  " + style.MutedStyle.Render(mtr.Note)
		}
		lines = append(lines, label, bar(mtr.Percent))
	}
	return strings.Join(lines, "\n")
}

// bar renders percent of meterWidth as filled blocks
func bar(percent int) string {

	percent = min(max(percent, 0), 100)
	filled := percent * meterWidth / 100

	return style.BarStyle.Render(strings.Repeat("█", filled)) +
		style.MutedStyle.Render(strings.Repeat("░", meterWidth-filled)) +
		fmt.Sprintf(" %d%%", percent)
}

// Package nav is the role based sidebar and header around the portal screens.
package nav

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	nt "portal/entity"
	"portal/style"
)

const sidebarWidth = 22

// Route is a sidebar destination.
type Route struct {
	Label string
	Path  string
	Table     bool // shows the data table
	Analytics bool // shows the analytics cards
}

var routes = map[nt.Role][]Route{
	nt.Admin: {
		{Label: "Dashboard", Path: "/admin/dashboard", Table: true},
		{Label: "Users", Path: "/admin/users", Table: true},
		{Label: "Brands", Path: "/admin/brands", Table: true},
		{Label: "Analytics", Path: "/admin/analytics", Analytics: true},
		{Label: "Settings", Path: "/admin/settings"},
	},
	nt.Brand: {
		{Label: "Dashboard", Path: "/brand/dashboard", Table: true},
		{Label: "Products", Path: "/brand/products", Table: true},
		{Label: "Analytics", Path: "/brand/analytics", Analytics: true},
		{Label: "Settings", Path: "/brand/settings"},
	},
}

// Routes returns the destinations available to role.
func Routes(role nt.Role) []Route {
	return routes[role]
}

// RouteMsg announces a change of destination.
type RouteMsg struct {
	Route Route
}

// Sidebar tracks the active route for a user.
type Sidebar struct {
	user      nt.User
	routes    []Route
	active    int
	collapsed bool
}

func New(user nt.User) Sidebar {
	return Sidebar{
		user:   user,
		routes: Routes(user.Role),
	}
}

// Active returns the current route.
func (sb Sidebar) Active() Route {
	if len(sb.routes) == 0 {
		return Route{}
	}
	return sb.routes[sb.active]
}

func (sb Sidebar) Collapsed() bool {
	return sb.collapsed
}

// Key moves between routes with [ and ], and collapses with m.
func (sb Sidebar) Key(key string) (Sidebar, tea.Cmd) {

	switch key {
	case "m":
		sb.collapsed = !sb.collapsed
		return sb, nil
	case "]":
		return sb.Go(sb.active + 1)
	case "[":
		return sb.Go(sb.active - 1)
	}
	return sb, nil
}

// Go activates the route at idx, wrapping around.
func (sb Sidebar) Go(idx int) (Sidebar, tea.Cmd) {

	count := len(sb.routes)
	if count == 0 {
		return sb, nil
	}

	idx = ((idx % count) + count) % count
	if idx == sb.active {
		return sb, nil
	}

	sb.active = idx
	route := sb.routes[idx]
	return sb, func() tea.Msg {
		return RouteMsg{Route: route}
	}
}

// Render draws the sidebar height rows tall, empty when collapsed.
func (sb Sidebar) Render(height int) string {

	if sb.collapsed {
		return ""
	}

	letter, title := "A", "Admin Portal"
	if sb.user.Role == nt.Brand {
		letter, title = "B", "Brand Portal"
	}

	lines := []string{
		style.BadgeStyle.Render(" "+letter+" ") + " " + style.TitleStyle.Render(title),
		"",
	}
	for i, route := range sb.routes {
		label := fmt.Sprintf(" %-*s", sidebarWidth-3, route.Label)
		if i == sb.active {
			lines = append(lines, style.ActiveStyle.Reverse(true).Render(label))
			continue
		}
		lines = append(lines, label)
	}

	body := strings.Join(lines, "\n")
	footer := style.MutedStyle.Render("ctrl+l: logout")

	gap := max(height-lipgloss.Height(body)-lipgloss.Height(footer), 1)
	content := body + strings.Repeat("\n", gap) + footer

	return lipgloss.NewStyle().
		Width(sidebarWidth).
		Border(lipgloss.NormalBorder(), false, true, false, false).
		BorderForeground(style.TableBorderStyle.GetForeground()).
		Render(content)
}

// Header draws the route title on the left and the user on the right.
func (sb Sidebar) Header(width int) string {

	left := style.TitleStyle.Render(sb.Active().Label)
	right := fmt.Sprintf("%s %s", sb.user.Name, style.MutedStyle.Render("("+string(sb.user.Role)+")"))

	padding := max(width-lipgloss.Width(left)-lipgloss.Width(right), 2)
	return left + strings.Repeat(" ", padding) + right
}

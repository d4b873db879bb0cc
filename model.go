package portal

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"portal/analytics"
	"portal/auth"
	"portal/datatable"
	"portal/detail"
	nt "portal/entity"
	"portal/message"
	"portal/nav"
	"portal/style"
)

const (
	headerHeight = 2
	footerHeight = 1
)

// Model is the bubbletea model for the portal.
type Model struct {
	provider Provider
	authn    auth.Authenticator
	cfg      Config
	logger   nt.Logger
	ctx      context.Context

	CurrentScreen Screen

	Login     auth.Panel
	Sidebar   nav.Sidebar
	Table     datatable.Controller
	Detail    detail.Panel
	Analytics analytics.Panel
	User      nt.User

	view     nt.View
	sort     datatable.SortState
	page     int
	pageSize int
	fetchSeq int

	errorString string

	Width  int
	Height int
}

// NewModel creates a new bt model, starting at the login screen.
func NewModel(ctx context.Context, cfg Config, provider Provider, authn auth.Authenticator, lgr nt.Logger) (model Model, err error) {

	cfg = cfg.withDefaults()

	tbl, err := datatable.New(ctx, cfg.Table, nil, lgr)
	if err != nil {
		return
	}

	model = Model{
		provider:      provider,
		authn:         authn,
		cfg:           cfg,
		logger:        lgr,
		ctx:           ctx,
		CurrentScreen: LoginScreen,
		Login:         auth.New(ctx, authn, cfg.ProviderTimeout, lgr),
		Table:         tbl,
		Detail:        detail.New(cfg.Table.Columns),
		page:          1,
		pageSize:      cfg.Table.PageSize,
	}

	return
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {

	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Login, _ = m.Login.Update(msg)
		return m.resize(), nil

	case auth.LoggedInMsg:
		m.Login, _ = m.Login.Update(msg)
		m.logger.Info(m.ctx, "logged in", "email", msg.User.Email, "role", string(msg.User.Role))

		m.User = msg.User
		m.Sidebar = nav.New(msg.User)
		m.Analytics = analytics.New(msg.User.Role)
		m.CurrentScreen = DashboardScreen
		return m.resize().refresh(nt.View{})

	case nav.RouteMsg:
		m.logger.Info(m.ctx, "route", "path", msg.Route.Path)
		return m, nil

	case fetchedMsg:
		if msg.seq != m.fetchSeq {
			m.logger.Info(m.ctx, "dropping stale page", "seq", msg.seq)
			return m, nil
		}
		m.page = msg.page.CurrentPage
		m.errorString = ""
		m.Table, _ = m.Table.Update(msg.page)
		return m, nil

	case fetchFailedMsg:
		if msg.seq != m.fetchSeq {
			m.logger.Info(m.ctx, "dropping stale fetch error", "seq", msg.seq, "error", msg.err.Error())
			return m, nil
		}
		return m.Update(message.ErrorMsg{Err: msg.err})

	// intents from the table

	case message.PageChangeMsg:
		m.page = msg.Page
		return m.reload()

	case message.RowsPerPageMsg:
		m.pageSize = msg.Size
		m.page = 1
		return m.reload()

	case message.SearchMsg:
		view := m.view
		view.Search = msg.Term
		m.page = 1
		return m.refresh(view)

	case message.SortMsg:
		view := m.view
		view.Sort = m.sortOf(msg)
		next, err := m.setView(view)
		if err != nil {
			// the header goes back to the sort still in effect
			m.Table, _ = m.Table.Update(datatable.SortStateMsg{Sort: m.sort})
			return m, message.ErrorCmd(err)
		}
		next.sort = datatable.SortState{Column: msg.Column, Direction: msg.Direction}
		return next.reload()

	case message.FilterMsg:
		view := m.view
		view.Filters = msg.Filters
		m.page = 1
		return m.refresh(view)

	case message.CreateItemMsg:
		return m, m.createItem(msg)

	case message.EditItemMsg:
		return m, m.editItem(msg)

	case message.DeleteItemMsg:
		return m, m.deleteItem(msg)

	case message.ResultMsg:
		m.Table, _ = m.Table.Update(msg)
		if msg.Err != nil {
			return m, nil
		}
		return m.reload()

	case message.ErrorMsg:
		m.Table, _ = m.Table.Update(msg)
		m.errorString = msg.Err.Error()
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	// everything else belongs to the login panel or the table
	var cmd tea.Cmd
	switch m.CurrentScreen {
	case LoginScreen:
		m.Login, cmd = m.Login.Update(msg)
	case DashboardScreen:
		m.Table, cmd = m.Table.Update(msg)
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {

	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	var cmd tea.Cmd
	if m.CurrentScreen == LoginScreen {
		if key == "esc" {
			return m, tea.Quit
		}
		m.Login, cmd = m.Login.Update(msg)
		return m, cmd
	}

	m.errorString = ""
	if m.CurrentScreen == DetailScreen {
		switch key {
		case "q":
			return m, tea.Quit
		case "esc", "v", "left", "h":
			m.CurrentScreen = DashboardScreen
			return m, nil
		}
		m.Detail, cmd = m.Detail.Update(msg)
		return m, cmd
	}

	if m.Table.Capturing() {
		m.Table, cmd = m.Table.Update(msg)
		return m, cmd
	}

	switch key {
	case "q":
		return m, tea.Quit
	case "ctrl+l":
		next, err := m.logout()
		if err != nil {
			return m, message.ErrorCmd(err)
		}
		return next, nil
	case "[", "]":
		m.Sidebar, cmd = m.Sidebar.Key(key)
		return m, cmd
	case "m":
		m.Sidebar, _ = m.Sidebar.Key(key)
		return m.resize(), nil
	case "v":
		row := m.Table.SelectedRow()
		if row == nil || !m.Sidebar.Active().Table {
			return m, nil
		}
		m.Detail, _ = m.Detail.Update(detail.RowMsg{Row: row})
		m.CurrentScreen = DetailScreen
		return m, nil
	}

	if m.Sidebar.Active().Table {
		m.Table, cmd = m.Table.Update(msg)
	}
	return m, cmd
}

// setView hands view to the provider and keeps it only once accepted
func (m Model) setView(view nt.View) (Model, error) {

	err := m.provider.SetView(view)
	if err != nil {
		return m, err
	}

	m.view = view
	return m, nil
}

// refresh applies view and reloads, leaving the current view in place when it is refused
func (m Model) refresh(view nt.View) (Model, tea.Cmd) {

	next, err := m.setView(view)
	if err != nil {
		return m, message.ErrorCmd(err)
	}
	return next.reload()
}

// reload marks the table loading and fetches the current page
func (m Model) reload() (Model, tea.Cmd) {

	m.fetchSeq++
	m.Table, _ = m.Table.Update(datatable.LoadingMsg{Loading: true})
	return m, m.fetch()
}

// logout returns to a fresh login card, dropping the session's table state
func (m Model) logout() (Model, error) {

	m.logger.Info(m.ctx, "logged out", "email", m.User.Email)

	tbl, err := datatable.New(m.ctx, m.cfg.Table, nil, m.logger)
	if err != nil {
		return m, err
	}

	m.User = nt.User{}
	m.CurrentScreen = LoginScreen
	m.Table = tbl
	m.view = nt.View{}
	m.sort = datatable.SortState{}
	m.page = 1
	m.pageSize = m.cfg.Table.PageSize
	m.errorString = ""
	// responses still in flight belong to the old session
	m.fetchSeq++

	m.Login = auth.New(m.ctx, m.authn, m.cfg.ProviderTimeout, m.logger)
	m.Login, _ = m.Login.Update(tea.WindowSizeMsg{Width: m.Width, Height: m.Height})
	return m.resize(), nil
}

// resize tells the table how much room is left beside the sidebar
func (m Model) resize() Model {

	sidebar := lipgloss.Width(m.Sidebar.Render(m.Height))
	width := max(m.Width-sidebar-1, 0)
	height := max(m.Height-headerHeight-footerHeight, 0)

	m.Table, _ = m.Table.Update(datatable.SizeMsg{Width: width, Height: height})
	m.Detail, _ = m.Detail.Update(detail.SizeMsg{Width: width, Height: height})
	m.Analytics = m.Analytics.Update(analytics.SizeMsg{Width: width, Height: height})
	return m
}

func (m Model) View() tea.View {

	if m.Width == 0 {
		return tea.NewView("Loading...")
	}

	view := tea.NewView(m.render())
	view.AltScreen = true
	return view
}

// render draws the current screen
func (m Model) render() string {

	switch m.CurrentScreen {
	case LoginScreen:
		return m.Login.Render()
	case DashboardScreen, DetailScreen:
		return m.renderDashboard()
	}
	return "Unknown screen"
}

func (m Model) renderDashboard() string {

	bodyHeight := max(m.Height-footerHeight, 1)
	sidebar := m.Sidebar.Render(bodyHeight)
	mainWidth := max(m.Width-lipgloss.Width(sidebar)-1, 0)

	var body string
	route := m.Sidebar.Active()
	switch {
	case m.CurrentScreen == DetailScreen:
		body = m.Detail.Render()
	case route.Table:
		body = m.Table.Render()
	case route.Analytics:
		body = m.Analytics.Render()
	default:
		body = style.MutedStyle.Render(route.Label + " is coming soon.")
	}

	main := lipgloss.JoinVertical(lipgloss.Left, m.Sidebar.Header(mainWidth), "", body)
	main = lipgloss.NewStyle().PaddingLeft(1).Height(bodyHeight).MaxHeight(bodyHeight).Render(main)

	screen := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, main)

	footer := RenderFooter(m.Table.State().CurrentPage, m.Table.TotalPages(), m.provider.Name(), m.Width)
	if m.errorString != "" {
		footer = style.ErrorStyle.Render(m.errorString)
	}

	return lipgloss.JoinVertical(lipgloss.Left, screen, footer)
}
